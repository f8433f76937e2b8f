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

// Package pileup reads the space-delimited genotype-call text emitted by the
// GATK pileup walker, one record per aligned site.
package pileup

// Common pileup components.

// PhredOffset is the ASCII offset of the Phred+33 base-quality encoding.
const PhredOffset = 33

// These constants are the natural values for A/C/G/T in a packed 2-bit
// representation, with X as a catch-all for everything else.

const (
	// BaseA represents an A base.
	BaseA byte = iota
	// BaseC represents an C base.
	BaseC
	// BaseG represents an G base.
	BaseG
	// BaseT represents an T base.
	BaseT
	// BaseX is a catch-all.
	BaseX
)

const (
	// NBase is the number of regular base types.
	NBase = 4
	// NBaseEnum counts BaseX as well as the regular base types.
	NBaseEnum = 5
)

// EnumToASCIITable is the A/C/G/T/X -> ASCII mapping, with X rendered as 'N'.
var EnumToASCIITable = [...]byte{'A', 'C', 'G', 'T', 'N'}

// ASCIIToEnumTable maps an allele character to its base enum.  Anything that
// is not an upper-case A/C/G/T maps to BaseX.
var ASCIIToEnumTable [256]byte

func init() {
	for i := range ASCIIToEnumTable {
		ASCIIToEnumTable[i] = BaseX
	}
	ASCIIToEnumTable['A'] = BaseA
	ASCIIToEnumTable['C'] = BaseC
	ASCIIToEnumTable['G'] = BaseG
	ASCIIToEnumTable['T'] = BaseT
}
