// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/identity"
)

type idConversion struct {
	Address string `json:"address"`
	ID      string `json:"id"`
	Marker  string `json:"marker"`
}

func runID(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	text := c.Args().First()
	if "" == text {
		text = c.GlobalString("identity")
	}

	var acc *account.Account
	var err error
	if nil == m.config {
		if "" == text {
			return ErrRequiredIdentity
		}
		acc, err = identity.AccountFromText(text)
	} else {
		acc, err = m.config.Account(text)
	}
	if nil != err {
		return err
	}

	id := identity.ID(acc)
	return printJson(m.w, idConversion{
		Address: acc.String(),
		ID:      id,
		Marker:  identity.MarkerKey(id),
	})
}
