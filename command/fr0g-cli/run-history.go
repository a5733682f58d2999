// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
)

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := m.owner(c)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fault.ErrInvalidCount
	}

	s, err := openServices(m)
	if nil != err {
		return err
	}
	defer s.close()

	if nil == s.journal {
		return ErrJournalDisabled
	}

	entries, err := s.journal.List(owner.String(), count)
	if nil != err {
		return err
	}

	return printJson(m.w, entries)
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text := c.Args().First()
	if "" == text {
		return ErrRequiredHash
	}
	hash, err := envelope.DigestFromString(text)
	if nil != err {
		return err
	}

	s, err := openServices(m)
	if nil != err {
		return err
	}
	defer s.close()

	if nil == s.journal {
		return ErrJournalDisabled
	}

	entry, err := s.journal.Get(hash)
	if nil != err {
		return err
	}

	return printJson(m.w, entry)
}
