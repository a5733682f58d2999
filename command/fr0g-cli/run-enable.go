// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runEnable(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	keyPair, err := m.keyPair(c)
	if nil != err {
		return err
	}

	return finishIdentity(m, c.GlobalString("identity"), keyPair, true)
}
