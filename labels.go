// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// groupLabels is the sample->group assignment declared by a label
// file. membership preserves file order within each group; names is
// sorted so every consumer iterates groups in a stable order.
// Immutable after loadGroupLabels returns.
type groupLabels struct {
	membership map[string][]string
	names      []string
}

// loadGroupLabels reads a two-column tab-separated file, one
// <sample><TAB><group> row per line, no header. Duplicate sample rows
// are retained: each row is an independent assignment, so a sample
// listed twice in one group counts twice toward that group's declared
// size (mask construction collapses it to one column).
func loadGroupLabels(fnm string) (*groupLabels, error) {
	f, err := zopen(fnm)
	if err != nil {
		return nil, fmt.Errorf("loading labels %s: %w: %v", fnm, errInput, err)
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("loading labels %s: %w: %v", fnm, errInput, err)
	}
	labels := &groupLabels{membership: map[string][]string{}}
	for lineIdx, line := range bytes.Split(buf, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(strings.TrimSuffix(string(line), "\r"), "\t")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			return nil, fmt.Errorf("%s line %d: %w: expected <sample>\\t<group>, got %q", fnm, lineIdx+1, errFormat, line)
		}
		sample, group := fields[0], fields[1]
		if _, seen := labels.membership[group]; !seen {
			labels.names = append(labels.names, group)
		}
		labels.membership[group] = append(labels.membership[group], sample)
	}
	if len(labels.names) == 0 {
		return nil, fmt.Errorf("%s: %w: no label rows", fnm, errFormat)
	}
	sort.Strings(labels.names)
	return labels, nil
}

// allSamples returns the union of samples across groups, in label file
// order, without duplicates.
func (labels *groupLabels) allSamples() []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range labels.names {
		for _, sample := range labels.membership[group] {
			if !seen[sample] {
				seen[sample] = true
				out = append(out, sample)
			}
		}
	}
	return out
}

type groupscmd struct{}

func (command *groupscmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	labelsFilename := flags.String("labels", "", "label `file` (tab-separated sample/group rows)")
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
	if *labelsFilename == "" {
		err = fmt.Errorf("-labels file not specified")
		return 2
	}
	labels, err := loadGroupLabels(*labelsFilename)
	if err != nil {
		return 1
	}
	for _, group := range labels.names {
		fmt.Fprintf(stdout, "%s\t%d\n", group, len(labels.membership[group]))
	}
	return 0
}
