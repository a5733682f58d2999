// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/identity"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	seed := c.String("seed")
	acc := c.String("account")
	enable := c.Bool("enable")

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
		fmt.Fprintf(m.e, "account: %s\n", acc)
		fmt.Fprintf(m.e, "enable: %t\n", enable)
	}

	if "" != acc {
		if "" != seed || enable {
			return ErrIncompatibleOptions
		}

		a, err := identity.AccountFromText(acc)
		if nil != err {
			return err
		}
		err = m.config.AddReceiveOnlyIdentity(name, description, a)
		if nil != err {
			return err
		}
		m.save = true

		return printJson(m.w, identityResult{
			Name:    name,
			Account: a.String(),
			ID:      identity.ID(a),
			Status:  "receive only",
		})
	}

	keyPair, err := checkSeed(seed)
	if nil != err {
		return err
	}

	password, err := newPassword(c)
	if nil != err {
		return err
	}

	err = m.config.AddIdentity(name, description, keyPair, password)
	if nil != err {
		return err
	}

	// require configuration update
	m.save = true

	return finishIdentity(m, name, keyPair, enable)
}
