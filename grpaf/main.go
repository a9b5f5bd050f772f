// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/popgen-tools/grpaf"
)

func main() {
	grpaf.Main()
}
