// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// buildGroupMasks returns, for each group, a boolean inclusion vector
// aligned index-for-index with sampleOrder: mask[i] is true iff
// sampleOrder[i] belongs to that group. Built once per run, read-only
// afterwards.
func buildGroupMasks(sampleOrder []string, labels *groupLabels) map[string][]bool {
	masks := make(map[string][]bool, len(labels.names))
	for _, group := range labels.names {
		members := make(map[string]bool, len(labels.membership[group]))
		for _, sample := range labels.membership[group] {
			members[sample] = true
		}
		mask := make([]bool, len(sampleOrder))
		for i, sample := range sampleOrder {
			mask[i] = members[sample]
		}
		masks[group] = mask
	}
	return masks
}

// checkSampleOrder verifies that every label-declared sample appears in
// the dataset's sample columns. In strict mode an absent sample aborts
// the run before any variant is processed; otherwise the mismatch is
// logged once and the absent samples simply never match any mask.
func checkSampleOrder(sampleOrder []string, labels *groupLabels, strict bool) error {
	inData := make(map[string]bool, len(sampleOrder))
	for _, sample := range sampleOrder {
		inData[sample] = true
	}
	var absent []string
	for _, sample := range labels.allSamples() {
		if !inData[sample] {
			absent = append(absent, sample)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	if !strict {
		log.Warnf("%d label sample(s) not present in the VCF sample columns (first: %s)", len(absent), absent[0])
		return nil
	}
	show := absent
	if len(show) > 10 {
		show = show[:10]
	}
	return fmt.Errorf("building masks: %w: %d label sample(s) not in VCF sample columns: %s", errConsistency, len(absent), strings.Join(show, ", "))
}
