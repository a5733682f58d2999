// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/command/fr0g-cli/configuration"
	"github.com/bitmark-inc/fr0g/identity"
	"github.com/bitmark-inc/fr0g/keypair"
)

// output of setup, add and enable
type identityResult struct {
	Name    string `json:"name,omitempty"`
	Account string `json:"account"`
	ID      string `json:"id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, err := checkName(c.GlobalString("identity"))
	if nil != err {
		return err
	}

	description, err := checkDescription(c.String("description"))
	if nil != err {
		return err
	}

	keyPair, err := checkSeed(c.String("seed"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "config: %s\n", m.file)
		fmt.Fprintf(m.e, "network: %s\n", m.network)
		fmt.Fprintf(m.e, "identity: %s\n", name)
		fmt.Fprintf(m.e, "description: %s\n", description)
	}

	password, err := newPassword(c)
	if nil != err {
		return err
	}

	config := configuration.New(m.network, name)
	err = config.AddIdentity(name, description, keyPair, password)
	if nil != err {
		return err
	}

	m.config = config
	m.save = true

	return finishIdentity(m, name, keyPair, c.Bool("enable"))
}

// optionally enable a newly stored identity and print the outcome
//
// a failed enable still leaves the identity stored
func finishIdentity(m *metadata, name string, keyPair *keypair.KeyPair, enable bool) error {

	var enabler identity.Enabler
	if enable {
		s, err := openServices(m)
		if nil != err {
			return err
		}
		defer s.close()
		enabler = s.enabler()
	}

	result := identity.Adopt(context.Background(), keyPair, enabler)

	output := identityResult{
		Name:    name,
		Account: keyPair.EncodedPublic,
		ID:      result.ID,
		Status:  result.Status().String(),
	}
	if nil != result.EnableError {
		output.Error = result.EnableError.Error()
	}

	err := printJson(m.w, output)
	if nil != err {
		return err
	}
	return result.EnableError
}
