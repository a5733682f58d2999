// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/envelope"
)

type decodedOperation struct {
	Key    string  `json:"key"`
	Delete bool    `json:"delete,omitempty"`
	Text   *string `json:"text,omitempty"`
	Hex    string  `json:"hex,omitempty"`
}

type decodedEnvelope struct {
	Hash       envelope.Digest    `json:"hash"`
	Network    string             `json:"network"`
	Source     string             `json:"source"`
	Sequence   uint64             `json:"sequence,string"`
	Fee        uint64             `json:"fee"`
	Operations []decodedOperation `json:"operations"`
	Verified   bool               `json:"verified"`
	Error      string             `json:"error,omitempty"`
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	transport := strings.TrimSpace(c.Args().First())
	if "" == transport {
		return ErrRequiredTransport
	}

	parameters, err := m.settings.Parameters()
	if nil != err {
		return err
	}

	e, err := envelope.FromTransport(transport, parameters.ID)
	if nil != err {
		return err
	}

	tx := e.Transaction
	output := decodedEnvelope{
		Hash:       e.Hash,
		Network:    parameters.Name,
		Source:     tx.Source.String(),
		Sequence:   tx.Sequence,
		Fee:        tx.Fee(),
		Operations: make([]decodedOperation, len(tx.Operations)),
		Verified:   true,
	}
	for i, op := range tx.Operations {
		d := decodedOperation{
			Key:    op.Key,
			Delete: nil == op.Value,
		}
		if nil != op.Value {
			d.Hex = hex.EncodeToString(op.Value)
			if printable(op.Value) {
				s := string(op.Value)
				d.Text = &s
			}
		}
		output.Operations[i] = d
	}

	// a signature made for another network fails here
	if err := e.Verify(parameters.ID); nil != err {
		output.Verified = false
		output.Error = err.Error()
	}

	return printJson(m.w, output)
}

func printable(b []byte) bool {
	for _, r := range string(b) {
		if unicode.ReplacementChar == r || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
