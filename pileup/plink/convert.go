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

// Package plink converts GATK pileup genotype calls into the PED/MAP
// genotype-matrix pair consumed by PLINK and other population-genetics
// tools.
//
// The conversion is a single pass over the input: each line is validated,
// quality-filtered, reduced to a consensus allele, checked against the two
// alleles the reference panel expects at the site, and, if accepted,
// appended to the growing PED genotype row and MAP marker table.  Sites
// rejected along the way are tallied, never fatal; a structurally corrupt
// input line or a quality/allele length mismatch aborts the whole run.
package plink

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"

	"github.com/bruno-ariano/pileupTools/pileup"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/bgzf"
	"github.com/pkg/errors"
)

// Supported output formats.
const (
	// FormatTSV writes plain .map and .ped files.
	FormatTSV = "tsv"
	// FormatTSVBgz writes bgzf-compressed .map.gz and .ped.gz files.
	FormatTSVBgz = "tsv-bgz"
)

// Opts holds the conversion options.
type Opts struct {
	// SampleName is written to the PED family and individual ID columns.
	SampleName string
	// MinBaseQual is the minimum Phred-scaled base quality for a call to
	// count toward the consensus.
	MinBaseQual int
	// Rand settles consensus ties.  nil means a fixed-seed generator, so
	// default runs replay deterministically.
	Rand *rand.Rand
}

// DefaultOpts is the default option set; the zero SampleName placeholder
// matches the historical tool.
var DefaultOpts = Opts{
	SampleName:  "XXX",
	MinBaseQual: 30,
}

// Stats summarizes one conversion run.
type Stats struct {
	// Sites counts the data lines scanned.
	Sites int
	// Accepted counts the sites written to both outputs.
	Accepted int
	// FailedFilters counts the sites left with no usable calls after
	// quality/base filtering.
	FailedFilters int
	// TriAllelic counts the sites whose consensus allele matched neither
	// expected allele.
	TriAllelic int
}

// Rejected returns the total number of rejected sites.
func (s Stats) Rejected() int {
	return s.FailedFilters + s.TriAllelic
}

// OutputPaths returns the MAP and PED paths Convert writes for the given
// output prefix and format.
func OutputPaths(outPrefix, format string) (mapPath, pedPath string) {
	mapPath = outPrefix + ".map"
	pedPath = outPrefix + ".ped"
	if format == FormatTSVBgz {
		mapPath += ".gz"
		pedPath += ".gz"
	}
	return mapPath, pedPath
}

// Convert reads the pileup file at pileupPath and writes one MAP line and
// one pair of PED allele columns per accepted site, in input order.  The
// outputs are created at outPrefix + ".map"/".ped" (with a ".gz" suffix
// for FormatTSVBgz).  A nil opts means DefaultOpts.
//
// The returned error is always fatal for the run: a malformed line, a
// quality/allele length mismatch, or an I/O failure.  Per-site rejections
// are reported through Stats and the log only.
func Convert(ctx context.Context, pileupPath, format, outPrefix string, opts *Opts) (stats Stats, err error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	var bgzip bool
	switch format {
	case "", FormatTSV:
	case FormatTSVBgz:
		bgzip = true
	default:
		return stats, fmt.Errorf("plink.Convert: unsupported format %q", format)
	}
	random := opts.Rand
	if random == nil {
		random = rand.New(rand.NewSource(0))
	}

	scanner, closeIn, err := pileup.Open(ctx, pileupPath)
	if err != nil {
		return stats, errors.Wrap(err, "error opening pileup input")
	}
	defer func() {
		if cerr := closeIn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	mapPath, pedPath := OutputPaths(outPrefix, format)
	var dstMap file.File
	if dstMap, err = file.Create(ctx, mapPath); err != nil {
		return stats, err
	}
	defer file.CloseAndReport(ctx, dstMap, &err)
	var dstPed file.File
	if dstPed, err = file.Create(ctx, pedPath); err != nil {
		return stats, err
	}
	defer file.CloseAndReport(ctx, dstPed, &err)

	var mapTSV *tsv.Writer
	var pedOut *bufio.Writer
	if !bgzip {
		mapTSV = tsv.NewWriter(dstMap.Writer(ctx))
		pedOut = bufio.NewWriter(dstPed.Writer(ctx))
	} else {
		bgzfMapWriter := bgzf.NewWriter(dstMap.Writer(ctx), 1)
		bgzfPedWriter := bgzf.NewWriter(dstPed.Writer(ctx), 1)
		mapTSV = tsv.NewWriter(bgzfMapWriter)
		pedOut = bufio.NewWriter(bgzfPedWriter)
		defer func() {
			if e := bgzfMapWriter.Close(); e != nil && err == nil {
				err = e
			}
			if e := bgzfPedWriter.Close(); e != nil && err == nil {
				err = e
			}
		}()
	}

	// The PED row opens with the six fixed columns: family and individual
	// IDs, unknown parents, unknown sex, missing phenotype.
	if _, err = fmt.Fprintf(pedOut, "%s %s 0 0 0 -9", opts.SampleName, opts.SampleName); err != nil {
		return stats, err
	}

	var rec pileup.Record
	for scanner.Scan(&rec) {
		stats.Sites++
		filterCalls(&rec, opts.MinBaseQual)
		if len(rec.Calls) == 0 {
			stats.FailedFilters++
			log.Printf("%s failed filters", rec.Name)
			continue
		}
		called := consensusBase(rec.Calls, random)
		if !matchesExpected(called, rec.Expected) {
			stats.TriAllelic++
			log.Printf("%s possible tri-allele removed", rec.Name)
			continue
		}
		mapTSV.WriteString(rec.Chrom)
		mapTSV.WriteString(rec.Name)
		mapTSV.WriteByte('0') // genetic distance placeholder
		mapTSV.WriteString(rec.Pos)
		if err = mapTSV.EndLine(); err != nil {
			return stats, err
		}
		if _, err = fmt.Fprintf(pedOut, " %c %c", called, called); err != nil {
			return stats, err
		}
		stats.Accepted++
	}
	if scanErr := scanner.Err(); scanErr != nil {
		// Flush what was accepted before the bad line so the outputs hold
		// every complete prior write, then abort.
		if err = mapTSV.Flush(); err != nil {
			return stats, err
		}
		if err = pedOut.Flush(); err != nil {
			return stats, err
		}
		return stats, scanErr
	}
	if err = pedOut.WriteByte('\n'); err != nil {
		return stats, err
	}
	if err = mapTSV.Flush(); err != nil {
		return stats, err
	}
	if err = pedOut.Flush(); err != nil {
		return stats, err
	}
	log.Printf("plink.Convert: done, wrote %d site(s) to %s and %s, rejected %d",
		stats.Accepted, mapPath, pedPath, stats.Rejected())
	return stats, nil
}
