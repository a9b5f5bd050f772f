// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import "math"

// hweApprox returns an excess-heterozygosity flag and an approximate
// Hardy-Weinberg deviation significance value for one group's REF/ALT
// allele counts and heterozygote count. excHet is 1 when no excess
// heterozygosity is flagged and 0 when p drops below 1e-6.
//
// This is an approximation carried over from the upstream tool, not
// the exact test: p = exp(-0.5*chi2) is not a chi-square survival
// function. Callers wanting a recognized statistic should look at
// pvalue (chisquare.go) instead; this formula is preserved verbatim so
// existing consumers of HWE_* tags see unchanged values.
func hweApprox(ac0, ac1, nHet int) (excHet int, p float64) {
	nHomRef := (ac0 - nHet) / 2
	nHomAlt := (ac1 - nHet) / 2
	n := nHomRef + nHet + nHomAlt
	if n == 0 {
		return 0, 0
	}
	expHet := float64(2*ac0*ac1) / float64(2*n)
	denom := expHet
	if denom < 1 {
		denom = 1
	}
	d := float64(nHet) - expHet
	chiSq := d * d / denom
	p = math.Exp(-0.5 * chiSq)
	excHet = 1
	if p < 1e-6 {
		excHet = 0
	}
	return excHet, p
}
