// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"fmt"
	"math"

	"gopkg.in/check.v1"
)

type hweSuite struct{}

var _ = check.Suite(&hweSuite{})

func (s *hweSuite) TestApprox(c *check.C) {
	// ac=[3,1], nHet=1: nHomRef=1, nHomAlt=0, n=2, expHet=1.5,
	// chiSq=(1-1.5)^2/1.5
	excHet, p := hweApprox(3, 1, 1)
	c.Check(excHet, check.Equals, 1)
	c.Check(p, check.Equals, math.Exp(-0.5*(0.25/1.5)))
	c.Check(fmt.Sprintf("%.8f", p), check.Equals, "0.92004441")
}

func (s *hweSuite) TestApproxEmpty(c *check.C) {
	excHet, p := hweApprox(0, 0, 0)
	c.Check(excHet, check.Equals, 0)
	c.Check(p, check.Equals, 0.0)
}

func (s *hweSuite) TestApproxEquilibrium(c *check.C) {
	// observed het equals the Hardy-Weinberg expectation exactly
	excHet, p := hweApprox(1000, 1000, 1000)
	c.Check(excHet, check.Equals, 1)
	c.Check(p, check.Equals, 1.0)
}

func (s *hweSuite) TestApproxFlagged(c *check.C) {
	// ac=[600,200], nHet=200: nHomRef=200, nHomAlt=0, n=400,
	// expHet=300, chiSq=100^2/300 > 27.6, so p < 1e-6
	excHet, p := hweApprox(600, 200, 200)
	c.Check(excHet, check.Equals, 0)
	c.Check(p < 1e-6, check.Equals, true)
	c.Check(p > 0, check.Equals, true)
}

func (s *hweSuite) TestApproxSmallExpHetDenominator(c *check.C) {
	// ac=[2,2], nHet=0: nHomRef=1, nHomAlt=1, n=2, expHet=2*2*2/4=2,
	// above the clamp threshold
	excHet, p := hweApprox(2, 2, 0)
	c.Check(excHet, check.Equals, 1)
	c.Check(p, check.Equals, math.Exp(-0.5*((0-2.0)*(0-2.0)/2.0)))

	// ac=[1,1], nHet=2: nHomRef=nHomAlt=0 (truncating division), n=2,
	// expHet=2*1*1/4=0.5, so the denominator clamps to 1 and
	// chiSq=(2-0.5)^2/1. An unclamped denominator would give
	// exp(-2.25) = 0.10539922 instead.
	excHet, p = hweApprox(1, 1, 2)
	c.Check(excHet, check.Equals, 1)
	c.Check(p, check.Equals, math.Exp(-0.5*2.25))
	c.Check(fmt.Sprintf("%.8f", p), check.Equals, "0.32465247")
}
