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

package plink

import (
	"math/rand"

	"github.com/bruno-ariano/pileupTools/pileup"
)

// consensusBase reduces the surviving calls at a site to the single
// best-supported allele.  When several alleles share the maximum count, one
// of them is picked uniformly at random from the provided source; a unique
// mode is returned without consuming any randomness.
//
// calls must be non-empty and contain only A/C/G/T bases (filterCalls
// guarantees both).
func consensusBase(calls []pileup.Call, random *rand.Rand) byte {
	var counts [pileup.NBase]int
	for _, c := range calls {
		counts[pileup.ASCIIToEnumTable[c.Base]]++
	}
	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}
	var tied [pileup.NBase]byte
	nTied := 0
	for enum, n := range counts {
		if n == maxCount {
			tied[nTied] = pileup.EnumToASCIITable[enum]
			nTied++
		}
	}
	if nTied == 1 {
		return tied[0]
	}
	return tied[random.Intn(nTied)]
}

// matchesExpected reports whether the called allele is one of the two
// alleles the reference panel expects at the site.  No normalization is
// applied: an expected allele that is not a single character never
// matches.
func matchesExpected(base byte, expected [2]string) bool {
	for _, a := range &expected {
		if len(a) == 1 && a[0] == base {
			return true
		}
	}
	return false
}
