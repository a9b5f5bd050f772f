// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"fmt"

	"github.com/brentp/vcfgo"
)

// normGT is one sample's genotype call reduced to allele indexes: 0 is
// REF, 1 is ALT, -1 is an unresolved slot. A nil normGT is a fully
// missing call. Length is 1 for haploid calls, 2 for diploid; extra
// slots in the raw call are ignored. A diploid call keeps each slot's
// missing/present status independently, so one resolved + one
// unresolved survives as {a, -1} rather than collapsing to missing.
type normGT []int

// normalizeGT converts a raw vcfgo genotype into a normGT. The
// aggregate keeps a fixed two-slot REF/ALT allele-count model, so an
// allele index >= 2 (a true multi-allelic call) is an error unless
// clampMultiallelic is set, in which case it is folded into ALT.
func normalizeGT(sample *vcfgo.SampleGenotype, clampMultiallelic bool) (normGT, error) {
	if sample == nil || len(sample.GT) == 0 {
		return nil, nil
	}
	gt := sample.GT
	if len(gt) > 2 {
		gt = gt[:2]
	}
	out := make(normGT, 0, len(gt))
	resolved := false
	for _, allele := range gt {
		switch {
		case allele < 0:
			out = append(out, -1)
		case allele > 1 && !clampMultiallelic:
			return nil, fmt.Errorf("%w: allele index %d exceeds the REF/ALT model (use -clamp-multiallelic to fold into ALT)", errFormat, allele)
		case allele > 1:
			out = append(out, 1)
			resolved = true
		default:
			out = append(out, allele)
			resolved = true
		}
	}
	if !resolved {
		// "." and "./." are fully missing calls
		return nil, nil
	}
	return out, nil
}
