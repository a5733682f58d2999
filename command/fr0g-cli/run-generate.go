// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/identity"
	"github.com/bitmark-inc/fr0g/keypair"
)

type generated struct {
	ID string `json:"id"`
	*keypair.RawKeyPair
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	keyPair, err := keypair.New()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "keyPair: %#v\n", keyPair)
	}

	return printJson(m.w, generated{
		ID:         identity.ID(keyPair.Account()),
		RawKeyPair: keyPair.Raw(),
	})
}
