// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import "errors"

// The four failure categories surfaced by a run. Every error returned
// out of this package wraps exactly one of them, with enough context to
// name the failing stage. There is no local recovery: the first error
// aborts the run, and no partially annotated record is written.
var (
	errInput       = errors.New("input unreadable")
	errFormat      = errors.New("malformed input")
	errConsistency = errors.New("labels inconsistent with dataset")
	errOutput      = errors.New("write failed")
)
