// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/chunk"
	"github.com/bitmark-inc/fr0g/identity"
)

type fileList struct {
	Account string           `json:"account"`
	ID      string           `json:"id"`
	Next    uint64           `json:"next"`
	Files   []chunk.FileInfo `json:"files"`
}

func runFiles(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := m.owner(c)
	if nil != err {
		return err
	}

	s, err := openServices(m)
	if nil != err {
		return err
	}
	defer s.close()

	files, err := s.store.Files(context.Background(), owner.String())
	if nil != err {
		return err
	}

	next := uint64(1)
	if n := len(files); n > 0 {
		next = files[n-1].FileIndex + 1
	}

	return printJson(m.w, fileList{
		Account: owner.String(),
		ID:      identity.ID(owner),
		Next:    next,
		Files:   files,
	})
}
