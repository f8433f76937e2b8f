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

/*
Given a GATK pileup file annotated with the expected reference-panel alleles,
pileup2plink calls one consensus allele per site and writes the accepted
calls as a PLINK PED/MAP pair.

Per site, base calls below the minimum quality or outside A/C/G/T are
dropped, the remaining calls are reduced to a tie-broken majority allele,
and the result is kept only when it matches one of the two expected
alleles.  Sites failing the filters or matching neither expected allele are
logged and counted, never fatal; a structurally malformed line aborts the
run.

Plain and gzip-compressed input is accepted.  Output paths derive from the
input path with the .pileup suffix replaced by .map/.ped.

Sample usage:
pileup2plink \
    -q 30 \
    -s sample42 \
    sample42.pileup
*/
package main
