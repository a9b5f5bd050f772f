// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const assocTagPrefix = "CHI2P_"

var chisquared = distuv.ChiSquared{K: 1, Src: rand.NewSource(rand.Uint64())}

// pvalue returns a chi-square (1 d.f.) p-value for the difference in
// REF/ALT allele counts between two groups at one variant. A table
// with an empty margin (no calls in a group, or an allele absent from
// both groups) carries no signal and returns 1.
func pvalue(caseAC, controlAC [2]int) float64 {
	rowCase := float64(caseAC[0] + caseAC[1])
	rowControl := float64(controlAC[0] + controlAC[1])
	colRef := float64(caseAC[0] + controlAC[0])
	colAlt := float64(caseAC[1] + controlAC[1])
	total := rowCase + rowControl
	if rowCase == 0 || rowControl == 0 || colRef == 0 || colAlt == 0 {
		return 1
	}
	obs := [4]float64{
		float64(caseAC[0]), float64(caseAC[1]),
		float64(controlAC[0]), float64(controlAC[1]),
	}
	exp := [4]float64{
		rowCase * colRef / total, rowCase * colAlt / total,
		rowControl * colRef / total, rowControl * colAlt / total,
	}
	var sum float64
	for i := range exp {
		d := obs[i] - exp[i]
		sum += d * d / exp[i]
	}
	return 1 - chisquared.CDF(sum)
}

// assocDescriptor declares the CHI2P tag for one case/control pair.
func assocDescriptor(caseGroup, controlGroup string, labels *groupLabels) infoDescriptor {
	return infoDescriptor{
		id:      assocTagPrefix + caseGroup + "_" + controlGroup,
		number:  "1",
		vcfType: "Float",
		description: fmt.Sprintf("Chi-square allele association p-value between %d %s and %d %s samples",
			len(labels.membership[caseGroup]), caseGroup,
			len(labels.membership[controlGroup]), controlGroup),
	}
}
