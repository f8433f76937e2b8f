// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pileup

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is returned when a structurally invalid pileup line is
	// encountered.
	ErrMalformed = errors.New("malformed pileup line")
	// ErrLengthMismatch is returned when a line's base-quality string and
	// allele string have different lengths.
	ErrLengthMismatch = errors.New("quality and allele strings differ in length")
)

const (
	nDataFields   = 7
	nReduceFields = 6
	nInfoFields   = 5

	reduceMarker = "[REDUCE"
)

// A Call is one aligned (allele, base-quality) pair from a single supporting
// read.
type Call struct {
	Base byte
	Qual byte
}

// Phred returns the Phred+33-decoded quality score of the call.
func (c Call) Phred() int {
	return int(c.Qual) - PhredOffset
}

// A Record is one genotype-call line of a GATK pileup file.  Alleles and
// base qualities are stored as index-aligned pairs, so the two can never
// fall out of step after extraction.
type Record struct {
	// Chrom is the chromosome name with legacy chr/OAR/Chr prefixes stripped.
	Chrom string
	// Pos is the 1-based position on the chromosome, kept as text.
	Pos string
	// RefBase is the reference base at the site.
	RefBase byte
	// Name identifies the site, usually an rs number.
	Name string
	// Expected holds the two alleles the reference panel expects at the site.
	Expected [2]string
	// Calls holds one (allele, quality) pair per supporting read, with
	// alleles upper-cased.
	Calls []Call
}

// chromReplacer strips the legacy chromosome-naming prefixes seen in sheep
// and human reference builds.  The substrings don't overlap, so a single
// pass is equivalent to stripping them one at a time.
var chromReplacer = strings.NewReplacer("chr", "", "OAR", "", "Chr", "")

// parseRecord fills rec from the fields of a 7-field pileup line.  The last
// field carries a tab-delimited payload whose subfields 2-4 hold the SNP
// name and the two expected alleles, the second with a trailing ']'.
func parseRecord(fields []string, rec *Record) error {
	info := strings.Split(fields[6], "\t")
	if len(info) < nInfoFields {
		return fmt.Errorf("pileup.parseRecord: info payload has %d of %d expected subfields: %w",
			len(info), nInfoFields, ErrMalformed)
	}
	if len(fields[2]) != 1 {
		return fmt.Errorf("pileup.parseRecord: reference base %q at %s is not a single character: %w",
			fields[2], info[2], ErrMalformed)
	}
	alleles := strings.ToUpper(fields[3])
	quals := fields[4]
	if len(alleles) != len(quals) {
		return fmt.Errorf("pileup.parseRecord: %d quals and %d bases at %s: %w",
			len(quals), len(alleles), info[2], ErrLengthMismatch)
	}
	rec.Chrom = chromReplacer.Replace(fields[0])
	rec.Pos = fields[1]
	rec.RefBase = fields[2][0]
	rec.Name = info[2]
	rec.Expected[0] = info[3]
	rec.Expected[1] = strings.TrimRight(info[4], "]")
	rec.Calls = rec.Calls[:0]
	for i := 0; i < len(alleles); i++ {
		rec.Calls = append(rec.Calls, Call{Base: alleles[i], Qual: quals[i]})
	}
	return nil
}
