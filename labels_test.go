// Copyright (C) The grpaf Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package grpaf

import (
	"bytes"
	"errors"
	"os"

	"gopkg.in/check.v1"
)

type labelsSuite struct{}

var _ = check.Suite(&labelsSuite{})

func (s *labelsSuite) TestLoadGroupLabels(c *check.C) {
	tmpdir := c.MkDir()
	fnm := tmpdir + "/labels.tsv"
	err := os.WriteFile(fnm, []byte("s1\tEUR\ns2\tAFR\ns3\tEUR\ns1\tEUR\n"), 0644)
	c.Assert(err, check.IsNil)

	labels, err := loadGroupLabels(fnm)
	c.Assert(err, check.IsNil)
	c.Check(labels.names, check.DeepEquals, []string{"AFR", "EUR"})
	// duplicate rows are retained: each row is an independent assignment
	c.Check(labels.membership["EUR"], check.DeepEquals, []string{"s1", "s3", "s1"})
	c.Check(labels.membership["AFR"], check.DeepEquals, []string{"s2"})
	c.Check(labels.allSamples(), check.DeepEquals, []string{"s2", "s1", "s3"})
}

func (s *labelsSuite) TestLoadGroupLabelsMalformed(c *check.C) {
	tmpdir := c.MkDir()
	fnm := tmpdir + "/labels.tsv"
	err := os.WriteFile(fnm, []byte("s1\tEUR\njust-one-column\n"), 0644)
	c.Assert(err, check.IsNil)

	_, err = loadGroupLabels(fnm)
	c.Assert(err, check.NotNil)
	c.Check(errors.Is(err, errFormat), check.Equals, true)
	c.Check(err, check.ErrorMatches, `.*line 2:.*`)
}

func (s *labelsSuite) TestLoadGroupLabelsMissingFile(c *check.C) {
	_, err := loadGroupLabels(c.MkDir() + "/nonexistent.tsv")
	c.Assert(err, check.NotNil)
	c.Check(errors.Is(err, errInput), check.Equals, true)
}

func (s *labelsSuite) TestLoadGroupLabelsEmpty(c *check.C) {
	tmpdir := c.MkDir()
	fnm := tmpdir + "/labels.tsv"
	c.Assert(os.WriteFile(fnm, []byte("\n\n"), 0644), check.IsNil)
	_, err := loadGroupLabels(fnm)
	c.Check(errors.Is(err, errFormat), check.Equals, true)
}

func (s *labelsSuite) TestGroupsCommand(c *check.C) {
	tmpdir := c.MkDir()
	fnm := tmpdir + "/labels.tsv"
	err := os.WriteFile(fnm, []byte("s1\tEUR\ns2\tAFR\ns3\tEUR\n"), 0644)
	c.Assert(err, check.IsNil)

	var stdout, stderr bytes.Buffer
	code := (&groupscmd{}).RunCommand("grpaf groups", []string{"-labels", fnm}, bytes.NewReader(nil), &stdout, &stderr)
	c.Check(code, check.Equals, 0)
	c.Check(stdout.String(), check.Equals, "AFR\t1\nEUR\t2\n")
}
