// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"errors"

	"gopkg.in/check.v1"
)

type maskSuite struct{}

var _ = check.Suite(&maskSuite{})

func (s *maskSuite) TestBuildGroupMasks(c *check.C) {
	labels := &groupLabels{
		membership: map[string][]string{
			"G1": {"A", "B"},
			"G2": {"C", "C"}, // duplicate row collapses to one column
		},
		names: []string{"G1", "G2"},
	}
	sampleOrder := []string{"C", "A", "D", "B"}
	masks := buildGroupMasks(sampleOrder, labels)
	c.Check(masks["G1"], check.DeepEquals, []bool{false, true, false, true})
	c.Check(masks["G2"], check.DeepEquals, []bool{true, false, false, false})
}

func (s *maskSuite) TestCheckSampleOrder(c *check.C) {
	labels := &groupLabels{
		membership: map[string][]string{"G1": {"A", "Z"}},
		names:      []string{"G1"},
	}
	sampleOrder := []string{"A", "B"}

	// non-strict: warn only
	c.Check(checkSampleOrder(sampleOrder, labels, false), check.IsNil)

	err := checkSampleOrder(sampleOrder, labels, true)
	c.Assert(err, check.NotNil)
	c.Check(errors.Is(err, errConsistency), check.Equals, true)
	c.Check(err, check.ErrorMatches, `.*1 label sample\(s\) not in VCF sample columns: Z`)

	// all present
	labels.membership["G1"] = []string{"B", "A"}
	c.Check(checkSampleOrder(sampleOrder, labels, true), check.IsNil)
}
