// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"strings"

	"github.com/brentp/bix"
	"github.com/brentp/irelate/interfaces"
	"github.com/brentp/vcfgo"
	log "github.com/sirupsen/logrus"
)

// annotatecmd streams a VCF and writes per-group population statistics
// into each record's INFO column. One variant is fully read, annotated
// and written before the next begins; masks and tag descriptors are
// computed once before streaming and are read-only afterwards.
type annotatecmd struct {
	inputFilename     string
	outputFilename    string
	labelsFilename    string
	tagSelection      string
	strict            bool
	region            string
	clampMultiallelic bool
	caseGroup         string
	controlGroup      string

	tags   []statTag
	runHWE bool
	labels *groupLabels
	masks  map[string][]bool
	stale  []string
}

func (cmd *annotatecmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	loglevel := flags.String("loglevel", "info", "logging `level` (debug, info, warn, error)")
	flags.StringVar(&cmd.inputFilename, "i", "-", "input VCF `file` (\"-\" for stdin; .gz accepted)")
	flags.StringVar(&cmd.outputFilename, "o", "-", "output VCF `file` (\"-\" for stdout; .gz suffix compresses)")
	flags.StringVar(&cmd.labelsFilename, "labels", "", "label `file`: tab-separated sample/group rows")
	flags.StringVar(&cmd.tagSelection, "tags", tagNames(defaultStatTags), "comma-separated `tags` to compute, or \"all\"")
	flags.BoolVar(&cmd.strict, "strict", false, "fail if a label sample is missing from the VCF sample columns")
	flags.StringVar(&cmd.region, "region", "", "annotate only this `chrom:start-end` region (input must be bgzipped and tabix-indexed)")
	flags.BoolVar(&cmd.clampMultiallelic, "clamp-multiallelic", false, "fold allele indexes >=2 into ALT instead of failing")
	flags.StringVar(&cmd.caseGroup, "case-group", "", "emit a CHI2P association tag with this case `group`")
	flags.StringVar(&cmd.controlGroup, "control-group", "", "emit a CHI2P association tag with this control `group`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	} else if flags.NArg() > 0 {
		err = fmt.Errorf("errant command line arguments after parsed flags: %v", flags.Args())
		return 2
	}

	var lvl log.Level
	lvl, err = log.ParseLevel(*loglevel)
	if err != nil {
		return 2
	}
	log.SetLevel(lvl)

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	err = cmd.run(stdin, stdout)
	if err != nil {
		return 1
	}
	return 0
}

func (cmd *annotatecmd) run(stdin io.Reader, stdout io.Writer) error {
	if cmd.labelsFilename == "" {
		return errors.New("-labels file not specified")
	}
	if (cmd.caseGroup == "") != (cmd.controlGroup == "") {
		return errors.New("must provide both -case-group and -control-group, or neither")
	}
	if cmd.region != "" && cmd.inputFilename == "-" {
		return errors.New("-region needs a tabix-indexed input file, not stdin")
	}
	var err error
	cmd.tags, err = parseTags(cmd.tagSelection)
	if err != nil {
		return err
	}
	cmd.runHWE = needHWE(cmd.tags)

	cmd.labels, err = loadGroupLabels(cmd.labelsFilename)
	if err != nil {
		return err
	}
	log.Infof("loaded %d groups from %s", len(cmd.labels.names), cmd.labelsFilename)
	for _, group := range []string{cmd.caseGroup, cmd.controlGroup} {
		if group != "" {
			if _, ok := cmd.labels.membership[group]; !ok {
				return fmt.Errorf("group %q not present in %s", group, cmd.labelsFilename)
			}
		}
	}

	var output io.WriteCloser
	if cmd.outputFilename == "-" {
		output = nopCloser{stdout}
	} else {
		output, err = zcreate(cmd.outputFilename)
		if err != nil {
			return fmt.Errorf("creating %s: %w: %v", cmd.outputFilename, errOutput, err)
		}
	}
	bufw := bufio.NewWriterSize(output, 1<<20)

	if cmd.region != "" {
		err = cmd.annotateRegion(cmd.inputFilename, cmd.region, cmd.strict, bufw)
	} else {
		var input io.ReadCloser
		if cmd.inputFilename == "-" {
			input = io.NopCloser(stdin)
		} else {
			input, err = zopen(cmd.inputFilename)
			if err != nil {
				output.Close()
				return fmt.Errorf("opening %s: %w: %v", cmd.inputFilename, errInput, err)
			}
		}
		err = cmd.annotateStream(input, cmd.strict, bufw)
		input.Close()
	}
	if err != nil {
		output.Close()
		return err
	}
	if err = bufw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w: %v", errOutput, err)
	}
	if err = output.Close(); err != nil {
		return fmt.Errorf("closing output: %w: %v", errOutput, err)
	}
	return nil
}

// setup runs everything that must be finished before the first record:
// strict-mode sample check, group masks, stale-tag discovery, and the
// INFO descriptor declarations, which are injected into hdr so the
// writer emits them with the header.
func (cmd *annotatecmd) setup(hdr *vcfgo.Header, strict bool) error {
	sampleOrder := hdr.SampleNames
	if len(sampleOrder) == 0 {
		return fmt.Errorf("building masks: %w: VCF has no sample columns", errFormat)
	}
	if err := checkSampleOrder(sampleOrder, cmd.labels, strict); err != nil {
		return err
	}
	cmd.masks = buildGroupMasks(sampleOrder, cmd.labels)
	cmd.stale = staleTagIDs(hdr.Infos)
	if len(cmd.stale) > 0 {
		log.Infof("replacing %d related tag(s) found in the input header: %s", len(cmd.stale), strings.Join(cmd.stale, ","))
	}
	descriptors := declareTags(cmd.tags, cmd.labels)
	if cmd.caseGroup != "" {
		descriptors = append(descriptors, assocDescriptor(cmd.caseGroup, cmd.controlGroup, cmd.labels))
	}
	for _, d := range descriptors {
		hdr.Infos[d.id] = &vcfgo.Info{Id: d.id, Number: d.number, Type: d.vcfType, Description: d.description}
	}
	return nil
}

// annotateVariant is the per-record state machine: normalize all
// genotype calls once, then per group fold the masked calls into an
// aggregate, approximate HWE when requested, and emit the tag values.
// Any failure aborts the variant (and the run) with nothing written.
func (cmd *annotatecmd) annotateVariant(v *vcfgo.Variant) error {
	if err := v.Header.ParseSamples(v); err != nil {
		return fmt.Errorf("aggregating %s:%d: %w: parsing genotypes: %v", v.Chrom(), v.Pos, errFormat, err)
	}
	gts := make([]normGT, len(v.Header.SampleNames))
	for i := range gts {
		var sample *vcfgo.SampleGenotype
		if i < len(v.Samples) {
			sample = v.Samples[i]
		}
		gt, err := normalizeGT(sample, cmd.clampMultiallelic)
		if err != nil {
			return fmt.Errorf("aggregating %s:%d sample %s: %w", v.Chrom(), v.Pos, v.Header.SampleNames[i], err)
		}
		gts[i] = gt
	}
	for _, id := range cmd.stale {
		v.Info().Delete(id)
	}
	assocAC := map[string][2]int{}
	for _, group := range cmd.labels.names {
		st := calcAF(gts, cmd.masks[group])
		if cmd.runHWE {
			st.excHet, st.hwe = hweApprox(st.ac[0], st.ac[1], st.nHet)
		}
		for _, tv := range tagValues(cmd.tags, group, st) {
			if err := v.Info().Set(tv.key, tv.val); err != nil {
				return fmt.Errorf("aggregating %s:%d: %w: setting %s: %v", v.Chrom(), v.Pos, errOutput, tv.key, err)
			}
		}
		if group == cmd.caseGroup || group == cmd.controlGroup {
			assocAC[group] = st.ac
		}
	}
	if cmd.caseGroup != "" {
		key := assocTagPrefix + cmd.caseGroup + "_" + cmd.controlGroup
		if err := v.Info().Set(key, pvalue(assocAC[cmd.caseGroup], assocAC[cmd.controlGroup])); err != nil {
			return fmt.Errorf("aggregating %s:%d: %w: setting %s: %v", v.Chrom(), v.Pos, errOutput, key, err)
		}
	}
	return nil
}

func (cmd *annotatecmd) annotateStream(input io.Reader, strict bool, out io.Writer) error {
	rdr, err := vcfgo.NewReader(bufio.NewReaderSize(input, 1<<20), true)
	if err != nil || rdr == nil {
		return fmt.Errorf("reading VCF header: %w: %v", errFormat, err)
	}
	if err := rdr.Error(); err != nil {
		// vcfgo collects spec violations; tolerate them the way
		// other readers of real-world VCFs do
		log.Warnf("input VCF has invalid features, attempting to continue: %s", err)
		rdr.Clear()
	}
	if err := cmd.setup(rdr.Header, strict); err != nil {
		return err
	}
	wtr, err := vcfgo.NewWriter(out, rdr.Header)
	if err != nil {
		return fmt.Errorf("writing VCF header: %w: %v", errOutput, err)
	}
	n := 0
	for {
		v := rdr.Read()
		if v == nil {
			break
		}
		n++
		if n%10000 == 0 {
			log.Infof("processed %d variants, last %s:%d", n, v.Chrom(), v.Pos)
		}
		if err := cmd.annotateVariant(v); err != nil {
			return err
		}
		wtr.WriteVariant(v)
	}
	if err := rdr.Error(); err != nil {
		log.Warnf("input VCF has invalid features: %s", err)
		rdr.Clear()
	}
	log.Infof("processed %d variants", n)
	return nil
}

func (cmd *annotatecmd) annotateRegion(fnm, region string, strict bool, out io.Writer) error {
	locus, err := parseRegion(region)
	if err != nil {
		return err
	}
	tbx, err := bix.New(fnm)
	if err != nil {
		return fmt.Errorf("opening %s: %w: %v", fnm, errInput, err)
	}
	defer tbx.Close()
	if err := cmd.setup(tbx.VReader.Header, strict); err != nil {
		return err
	}
	wtr, err := vcfgo.NewWriter(out, tbx.VReader.Header)
	if err != nil {
		return fmt.Errorf("writing VCF header: %w: %v", errOutput, err)
	}
	vals, err := tbx.Query(locus)
	if err != nil {
		return fmt.Errorf("querying %s in %s: %w: %v", region, fnm, errInput, err)
	}
	defer vals.Close()
	n := 0
	for {
		r, err := vals.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("reading %s from %s: %w: %v", region, fnm, errInput, err)
		}
		wrap, ok := r.(interfaces.VarWrap)
		if !ok {
			return fmt.Errorf("reading %s from %s: %w: %T is not a VCF record", region, fnm, errFormat, r)
		}
		v, ok := wrap.IVariant.(*vcfgo.Variant)
		if !ok {
			return fmt.Errorf("reading %s from %s: %w: %T is not a VCF record", region, fnm, errFormat, wrap.IVariant)
		}
		n++
		if n%10000 == 0 {
			log.Infof("processed %d variants, last %s:%d", n, v.Chrom(), v.Pos)
		}
		if err := cmd.annotateVariant(v); err != nil {
			return err
		}
		wtr.WriteVariant(v)
	}
	log.Infof("processed %d variants in %s", n, region)
	return nil
}
