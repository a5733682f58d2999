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
)

func runDownload(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileIndex, err := checkFileIndex(c.Uint64("index"))
	if nil != err {
		return err
	}

	owner, err := m.owner(c)
	if nil != err {
		return err
	}

	s, err := openServices(m)
	if nil != err {
		return err
	}
	defer s.close()

	object, err := s.store.Load(context.Background(), owner.String(), fileIndex)
	if nil != err {
		return err
	}

	data := object.Data
	if c.Bool("trim") {
		data = object.Content()
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "index: %d  length: %d  chunks: %d\n", object.FileIndex, object.Length, object.Chunks)
	}

	output := c.String("output")
	if "" == output {
		_, err = m.w.Write(data)
		return err
	}
	return ioutil.WriteFile(output, data, 0600)
}
