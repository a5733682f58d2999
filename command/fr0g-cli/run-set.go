// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/objectstore"
)

func runSet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	key, err := checkKey(c.String("key"))
	if nil != err {
		return err
	}

	var value []byte
	if c.Bool("delete") {
		if c.IsSet("value") {
			return ErrIncompatibleOptions
		}
	} else {
		value = []byte(c.String("value"))
	}

	if m.verbose {
		fmt.Fprintf(m.e, "key: %q\n", key)
		fmt.Fprintf(m.e, "delete: %t\n", nil == value)
	}

	keyPair, err := m.keyPair(c)
	if nil != err {
		return err
	}

	s, err := openServices(m)
	if nil != err {
		return err
	}
	defer s.close()

	ctx := context.Background()
	receipt, err := retryOnce(m, func() (*objectstore.Receipt, error) {
		return s.store.SetValue(ctx, keyPair, key, value)
	})
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}
