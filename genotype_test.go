// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"errors"

	"github.com/brentp/vcfgo"
	"gopkg.in/check.v1"
)

type genotypeSuite struct{}

var _ = check.Suite(&genotypeSuite{})

func (s *genotypeSuite) TestNormalizeGT(c *check.C) {
	for _, trial := range []struct {
		gt    []int
		clamp bool
		want  normGT
		fail  bool
	}{
		{gt: nil, want: nil},
		{gt: []int{}, want: nil},
		{gt: []int{-1}, want: nil},             // "."
		{gt: []int{-1, -1}, want: nil},         // "./."
		{gt: []int{0}, want: normGT{0}},        // haploid REF
		{gt: []int{1}, want: normGT{1}},        // haploid ALT
		{gt: []int{0, 1}, want: normGT{0, 1}},  // het
		{gt: []int{1, 1}, want: normGT{1, 1}},  // homalt
		{gt: []int{0, -1}, want: normGT{0, -1}}, // partial missing survives
		{gt: []int{-1, 1}, want: normGT{-1, 1}},
		{gt: []int{0, 1, 1}, want: normGT{0, 1}}, // extra slots ignored
		{gt: []int{0, 2}, fail: true},
		{gt: []int{2}, fail: true},
		{gt: []int{0, 2}, clamp: true, want: normGT{0, 1}},
		{gt: []int{2, 3}, clamp: true, want: normGT{1, 1}},
	} {
		c.Logf("=== GT %v clamp %v", trial.gt, trial.clamp)
		got, err := normalizeGT(&vcfgo.SampleGenotype{GT: trial.gt}, trial.clamp)
		if trial.fail {
			c.Check(err, check.NotNil)
			c.Check(errors.Is(err, errFormat), check.Equals, true)
			continue
		}
		c.Check(err, check.IsNil)
		c.Check(got, check.DeepEquals, trial.want)
	}
}

func (s *genotypeSuite) TestNormalizeNilSample(c *check.C) {
	got, err := normalizeGT(nil, false)
	c.Check(err, check.IsNil)
	c.Check(got, check.IsNil)
}
