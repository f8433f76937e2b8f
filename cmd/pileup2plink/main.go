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
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/bruno-ariano/pileupTools/pileup/plink"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	minBaseQual = flag.Int("q", plink.DefaultOpts.MinBaseQual, "Minimum base quality for a call to count toward the consensus")
	sampleName  = flag.String("s", plink.DefaultOpts.SampleName, "Sample name written to the PED row")
	format      = flag.String("format", plink.FormatTSV, "Output format; 'tsv' and 'tsv-bgz' supported")
	outPrefix   = flag.String("out", "", "Output path prefix; defaults to the input path with its .pileup[.gz] suffix stripped")
	seed        = flag.Int64("seed", 0, "Seed for the consensus tie-break random source")
)

func pileup2plinkUsage() {
	fmt.Printf("Usage: %s [OPTIONS] pileuppath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = pileup2plinkUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		if flag.NArg() < 1 {
			log.Fatalf("Missing positional argument (pileuppath required); please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
		} else {
			log.Fatalf("Too many positional arguments (only pileuppath expected); please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
		}
	}
	pileupPath := flag.Arg(0)
	prefix := *outPrefix
	if prefix == "" {
		prefix = strings.TrimSuffix(pileupPath, ".gz")
		prefix = strings.TrimSuffix(prefix, ".pileup")
	}
	ctx := vcontext.Background()
	opts := plink.Opts{
		SampleName:  *sampleName,
		MinBaseQual: *minBaseQual,
		Rand:        rand.New(rand.NewSource(*seed)),
	}
	stats, err := plink.Convert(ctx, pileupPath, *format, prefix, &opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	mapPath, pedPath := plink.OutputPaths(prefix, *format)
	fmt.Printf("Analysis finished wrote %d SNPs to output files removed %d.\n", stats.Accepted, stats.Rejected())
	fmt.Printf("Output PED ---> %s\n", pedPath)
	fmt.Printf("Output MAP ---> %s\n", mapPath)
}
