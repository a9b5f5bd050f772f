// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
)

// zopen returns a reader for the given file, transparently
// decompressing the input if fnm ends with ".gz".
func zopen(fnm string) (io.ReadCloser, error) {
	f, err := os.Open(fnm)
	if err != nil || !strings.HasSuffix(fnm, ".gz") {
		return f, err
	}
	rdr, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipr{rdr, f}, nil
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// zcreate returns a writer for the given file, gzip-compressing the
// output if fnm ends with ".gz".
func zcreate(fnm string) (io.WriteCloser, error) {
	f, err := os.OpenFile(fnm, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0777)
	if err != nil || !strings.HasSuffix(fnm, ".gz") {
		return f, err
	}
	return gzipw{pgzip.NewWriter(f), f}, nil
}

type gzipw struct {
	*pgzip.Writer
	f io.Closer
}

func (gw gzipw) Close() error {
	e1 := gw.Writer.Close()
	e2 := gw.f.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// tabixLocus satisfies the position interface bix queries expect.
type tabixLocus struct {
	chrom string
	start int
	end   int
}

func (tl tabixLocus) Chrom() string { return tl.chrom }
func (tl tabixLocus) Start() uint32 { return uint32(tl.start) }
func (tl tabixLocus) End() uint32   { return uint32(tl.end) }

// parseRegion converts a 1-based inclusive "chrom:start-end" region
// into the 0-based half-open locus tabix queries use.
func parseRegion(region string) (tabixLocus, error) {
	chrom, span, ok := strings.Cut(region, ":")
	if !ok || chrom == "" {
		return tabixLocus{}, fmt.Errorf("%w: region %q: expected chrom:start-end", errFormat, region)
	}
	first, last, ok := strings.Cut(span, "-")
	if !ok {
		return tabixLocus{}, fmt.Errorf("%w: region %q: expected chrom:start-end", errFormat, region)
	}
	start, err := strconv.Atoi(first)
	if err != nil || start < 1 {
		return tabixLocus{}, fmt.Errorf("%w: region %q: bad start position", errFormat, region)
	}
	end, err := strconv.Atoi(last)
	if err != nil || end < start {
		return tabixLocus{}, fmt.Errorf("%w: region %q: bad end position", errFormat, region)
	}
	return tabixLocus{chrom: chrom, start: start - 1, end: end}, nil
}
