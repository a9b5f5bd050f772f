// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brentp/vcfgo"
)

// statTag enumerates the per-group statistics this tool can emit. Each
// tag knows its INFO name, value type, cardinality, and how to read
// its value out of an afStats, so declaration and emission iterate the
// same enum instead of matching tag names per record.
type statTag int

const (
	tagAF statTag = iota
	tagMAF
	tagMAC
	tagAC
	tagAN
	tagNHemi
	tagNMiss
	tagNHomRef
	tagNHet
	tagNHomAlt
	tagExcHet
	tagHWE
)

var allStatTags = []statTag{
	tagAF, tagMAF, tagMAC, tagAC, tagAN,
	tagNHemi, tagNMiss, tagNHomRef, tagNHet, tagNHomAlt,
	tagExcHet, tagHWE,
}

// defaultStatTags matches the upstream default tag set; ExcHet and HWE
// are opt-in via -tags.
var defaultStatTags = allStatTags[:10]

func (t statTag) name() string {
	switch t {
	case tagAF:
		return "AF"
	case tagMAF:
		return "MAF"
	case tagMAC:
		return "MAC"
	case tagAC:
		return "AC"
	case tagAN:
		return "AN"
	case tagNHemi:
		return "N_HEMI"
	case tagNMiss:
		return "N_MISS"
	case tagNHomRef:
		return "N_HOMREF"
	case tagNHet:
		return "N_HET"
	case tagNHomAlt:
		return "N_HOMALT"
	case tagExcHet:
		return "ExcHet"
	case tagHWE:
		return "HWE"
	}
	panic("unknown statTag")
}

// vcfType returns the declared INFO Type.
func (t statTag) vcfType() string {
	switch t {
	case tagAF, tagMAF, tagHWE:
		return "Float"
	default:
		return "Integer"
	}
}

// number returns the declared INFO Number: "A" (one value per
// alternate allele) for the allele-indexed count tags, "1" otherwise.
func (t statTag) number() string {
	switch t {
	case tagAC, tagMAC:
		return "A"
	default:
		return "1"
	}
}

// value reads the tag's value out of a finished aggregate. Always a
// Go type consistent with vcfType: int for Integer, float64 for Float.
func (t statTag) value(st afStats) interface{} {
	switch t {
	case tagAF:
		return st.af
	case tagMAF:
		return st.maf
	case tagMAC:
		return st.mac
	case tagAC:
		return st.ac[1]
	case tagAN:
		return st.an
	case tagNHemi:
		return st.nHemi
	case tagNMiss:
		return st.nMiss
	case tagNHomRef:
		return st.nHomRef
	case tagNHet:
		return st.nHet
	case tagNHomAlt:
		return st.nHomAlt
	case tagExcHet:
		return st.excHet
	case tagHWE:
		return st.hwe
	}
	panic("unknown statTag")
}

// parseTags resolves a comma-separated -tags selection. The sentinel
// "all" selects every tag including ExcHet and HWE.
func parseTags(selection string) ([]statTag, error) {
	if selection == "all" {
		return allStatTags, nil
	}
	byName := map[string]statTag{}
	for _, t := range allStatTags {
		byName[t.name()] = t
	}
	var tags []statTag
	seen := map[statTag]bool{}
	for _, name := range strings.Split(selection, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown tag %q (have %s, or \"all\")", name, tagNames(allStatTags))
		}
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("empty tag selection")
	}
	return tags, nil
}

func tagNames(tags []statTag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name()
	}
	return strings.Join(names, ",")
}

// needHWE reports whether the selection requires running the HWE
// approximator.
func needHWE(tags []statTag) bool {
	for _, t := range tags {
		if t == tagExcHet || t == tagHWE {
			return true
		}
	}
	return false
}

// infoDescriptor is one dataset-level INFO declaration, finalized
// before any record is processed.
type infoDescriptor struct {
	id          string
	number      string
	vcfType     string
	description string
}

// declareTags builds the full descriptor list: one per (tag, group),
// groups in sorted order, each description naming the group's declared
// sample count.
func declareTags(tags []statTag, labels *groupLabels) []infoDescriptor {
	var descriptors []infoDescriptor
	for _, group := range labels.names {
		count := len(labels.membership[group])
		for _, t := range tags {
			descriptors = append(descriptors, infoDescriptor{
				id:          t.name() + "_" + group,
				number:      t.number(),
				vcfType:     t.vcfType(),
				description: fmt.Sprintf("%s on %d %s samples", t.name(), count, group),
			})
		}
	}
	return descriptors
}

// tagValue is one emitted (INFO key, typed value) pair.
type tagValue struct {
	key string
	val interface{}
}

// tagValues emits the selected statistics for one group's finished
// aggregate, in enum order.
func tagValues(tags []statTag, group string, st afStats) []tagValue {
	out := make([]tagValue, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagValue{key: t.name() + "_" + group, val: t.value(st)})
	}
	return out
}

// staleTagIDs returns the INFO IDs already declared in the input
// header that look like output of a previous run (any known tag name
// followed by "_"). These are deleted from every record before new
// values are written, so reannotating never mixes generations.
func staleTagIDs(infos map[string]*vcfgo.Info) []string {
	var stale []string
	for id := range infos {
		if strings.HasPrefix(id, assocTagPrefix) {
			stale = append(stale, id)
			continue
		}
		for _, t := range allStatTags {
			if strings.HasPrefix(id, t.name()+"_") {
				stale = append(stale, id)
				break
			}
		}
	}
	sort.Strings(stale)
	return stale
}
