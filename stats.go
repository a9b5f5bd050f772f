// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

// afStats is the aggregate for one (variant, group) pair. The zero
// value is the identity state of the fold. An instance lives for one
// variant and one group: it is filled by calcAF, consumed into output
// tags, and discarded.
type afStats struct {
	ac      [2]int // allele counts (REF, ALT)
	an      int    // allele number
	nHemi   int
	nHomRef int
	nHet    int
	nHomAlt int
	nMiss   int
	af      float64
	maf     float64
	mac     int

	// filled by the orchestrator via hweApprox, only when the tag
	// selection asks for ExcHet or HWE
	excHet int
	hwe    float64
}

// calcAF folds the normalized genotype calls of the samples selected
// by mask into one afStats. Every masked sample lands in exactly one
// of the five categories, so
// nHemi+nHomRef+nHet+nHomAlt+nMiss == number of true mask entries.
// The fold is order independent: the result is identical under any
// permutation of the sample order.
func calcAF(gts []normGT, mask []bool) afStats {
	var st afStats
	for i, gt := range gts {
		if !mask[i] {
			continue
		}
		switch {
		case gt == nil:
			st.nMiss++
		case len(gt) == 1:
			if gt[0] < 0 {
				st.nMiss++
				break
			}
			st.an++
			st.ac[gt[0]]++
			st.nHemi++
		default:
			for _, allele := range gt {
				if allele >= 0 {
					st.an++
					st.ac[allele]++
				}
			}
			a0, a1 := gt[0], gt[1]
			switch {
			case a0 < 0 && a1 < 0:
				st.nMiss++
			case a0 < 0 || a1 < 0:
				// partial missingness counts as hemizygous
				st.nHemi++
			case a0 == 0 && a1 == 0:
				st.nHomRef++
			case a0 == 1 && a1 == 1:
				st.nHomAlt++
			default:
				st.nHet++
			}
		}
	}
	if st.an > 0 {
		st.af = float64(st.ac[1]) / float64(st.an)
		st.mac = st.ac[0]
		if st.ac[1] < st.mac {
			st.mac = st.ac[1]
		}
		st.maf = float64(st.mac) / float64(st.an)
	}
	return st
}
