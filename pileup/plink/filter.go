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

import "github.com/bruno-ariano/pileupTools/pileup"

// filterCalls rebuilds rec.Calls in place, keeping only the pairs whose
// decoded quality reaches minBaseQual and whose allele is one of A/C/G/T.
// Survivor order matches input order.  A record may end up with zero calls;
// that is the normal "no usable coverage" state, not an error.
func filterCalls(rec *pileup.Record, minBaseQual int) {
	kept := rec.Calls[:0]
	for _, c := range rec.Calls {
		if c.Phred() < minBaseQual {
			continue
		}
		if pileup.ASCIIToEnumTable[c.Base] == pileup.BaseX {
			continue
		}
		kept = append(kept, c)
	}
	rec.Calls = kept
}
