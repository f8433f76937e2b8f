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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
)

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading pileup genotype-call
// records.  The Scan method advances to the next data record, returning a
// boolean indicating whether the read succeeded.  Scanners are not
// threadsafe.
//
// Reduced-output marker lines ("[REDUCE ...") are not data records; Scan
// logs the SNP count they report and skips them.  Any other line shape
// stops the scan with ErrMalformed: a wrong field count signals a
// structurally corrupt file, not a per-record condition.
type Scanner struct {
	b       *bufio.Scanner
	err     error
	lineIdx int
	nReduce int
}

// NewScanner constructs a Scanner that reads raw pileup text from the
// provided reader.
func NewScanner(r io.Reader) *Scanner {
	// Note that bufio.Scanner does not handle very long lines unless we
	// specify an adequate buffer size in advance; it does not auto-resize.
	// High-coverage sites can produce long allele strings, so give it room.
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 1<<20), 1<<20)
	return &Scanner{b: b}
}

// Scan reads the next data record into rec, reusing rec's storage.  It
// returns a boolean indicating whether the scan succeeded.  Once Scan
// returns false, it never returns true again.  Upon completion, the user
// should check the Err method to determine whether scanning stopped
// because of an error or because the end of the stream was reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for s.b.Scan() {
		s.lineIdx++
		fields := strings.Split(strings.TrimRight(s.b.Text(), " \t\r"), " ")
		switch {
		case len(fields) == nDataFields:
			if err := parseRecord(fields, rec); err != nil {
				s.err = fmt.Errorf("pileup.Scan: line %d: %w", s.lineIdx, err)
				return false
			}
			return true
		case len(fields) == nReduceFields && fields[0] == reduceMarker:
			s.nReduce++
			log.Printf("NB: GATK pileup reporting reduced output stating only %s SNPs used.", fields[5])
		default:
			s.err = fmt.Errorf("pileup.Scan: line %d has %d fields: %w", s.lineIdx, len(fields), ErrMalformed)
			return false
		}
	}
	if s.err = s.b.Err(); s.err == nil {
		s.err = errEOF
	}
	return false
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// NReduceNotices returns the number of reduced-output marker lines seen so
// far.
func (s *Scanner) NReduceNotices() int {
	return s.nReduce
}

// Open opens a plain or gzip-compressed pileup file and returns a Scanner
// over its contents, along with a close function for the underlying
// handles.
func Open(ctx context.Context, path string) (*Scanner, func() error, error) {
	infile, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	reader := io.Reader(infile.Reader(ctx))
	var gz *gzip.Reader
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if gz, err = gzip.NewReader(reader); err != nil {
			_ = infile.Close(ctx)
			return nil, nil, err
		}
		reader = gz
	}
	closer := func() (err error) {
		if gz != nil {
			err = gz.Close()
		}
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
		return err
	}
	return NewScanner(reader), closer, nil
}
