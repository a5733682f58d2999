// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/objectstore"
)

func runUpload(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkFileName(c.String("file"))
	if nil != err {
		return err
	}
	fileIndex := c.Uint64("index")

	blob, err := ioutil.ReadFile(fileName)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "file: %s\n", fileName)
		fmt.Fprintf(m.e, "bytes: %d\n", len(blob))
		fmt.Fprintf(m.e, "index: %d\n", fileIndex)
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
		return s.store.Upload(ctx, keyPair, fileIndex, blob)
	})
	if nil != err {
		return err
	}

	return printJson(m.w, receipt)
}
