package plink

import (
	"testing"

	"github.com/bruno-ariano/pileupTools/pileup"
	"github.com/grailbio/testutil/expect"
)

func callsFromStrings(bases, quals string) []pileup.Call {
	if len(bases) != len(quals) {
		panic("callsFromStrings: unequal lengths")
	}
	calls := make([]pileup.Call, len(bases))
	for i := range calls {
		calls[i] = pileup.Call{Base: bases[i], Qual: quals[i]}
	}
	return calls
}

func basesOf(calls []pileup.Call) string {
	b := make([]byte, len(calls))
	for i, c := range calls {
		b[i] = c.Base
	}
	return string(b)
}

func qualsOf(calls []pileup.Call) string {
	q := make([]byte, len(calls))
	for i, c := range calls {
		q[i] = c.Qual
	}
	return string(q)
}

func TestFilterCalls(t *testing.T) {
	// Phred+33: 'F' = 37, '?' = 30, '>' = 29, '.' = 13.
	tests := []struct {
		name        string
		bases       string
		quals       string
		minBaseQual int
		wantBases   string
		wantQuals   string
	}{
		{"all_pass", "AAAAG", "FFFFF", 30, "AAAAG", "FFFFF"},
		{"low_qual_dropped", "AAAAG", "FF...", 30, "AA", "FF"},
		{"threshold_inclusive", "ACGT", "????", 30, "ACGT", "????"},
		{"just_below_threshold", "ACGT", ">>>>", 30, "", ""},
		{"non_acgt_dropped", "ANA*G", "FFFFF", 30, "AAG", "FFF"},
		{"order_preserved", "GTACA", "F.F.F", 30, "GAA", "FFF"},
		{"no_calls", "", "", 30, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := pileup.Record{Calls: callsFromStrings(tt.bases, tt.quals)}
			filterCalls(&rec, tt.minBaseQual)
			expect.EQ(t, basesOf(rec.Calls), tt.wantBases)
			expect.EQ(t, qualsOf(rec.Calls), tt.wantQuals)
		})
	}
}

func TestFilterCallsIdempotent(t *testing.T) {
	rec := pileup.Record{Calls: callsFromStrings("ANAAG", "FF.?F")}
	filterCalls(&rec, 30)
	once := basesOf(rec.Calls)
	filterCalls(&rec, 30)
	expect.EQ(t, basesOf(rec.Calls), once)
}
