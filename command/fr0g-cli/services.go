// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/fr0g/identity"
	"github.com/bitmark-inc/fr0g/journal"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/objectstore"
)

// everything that talks to the ledger
type services struct {
	parameters *chain.Parameters
	client     *gateway.Client
	journal    *journal.Journal
	store      *objectstore.Store
}

// build the gateway client, journal and store from the configuration
func openServices(m *metadata) (*services, error) {

	parameters, err := m.settings.Parameters()
	if nil != err {
		return nil, err
	}

	network := m.settings.Network()
	limit, burst := network.Rate()

	client, err := gateway.New(gateway.Configuration{
		Horizon:   parameters.Horizon,
		Friendbot: parameters.Friendbot,
		Timeout:   network.TimeoutDuration(),
		RateLimit: limit,
		RateBurst: burst,
		CacheTTL:  network.CacheDuration(),
	}, logger.New("gateway"))
	if nil != err {
		return nil, err
	}

	s := &services{
		parameters: parameters,
		client:     client,
	}

	// a nil *journal.Journal must not become a non-nil Recorder
	var recorder objectstore.Recorder
	if !m.settings.Journal.Disable {
		j, err := journal.Open(m.settings.Journal.Directory, parameters.Name, logger.New("journal"))
		if nil != err {
			return nil, err
		}
		s.journal = j
		recorder = j
	}

	s.store = objectstore.New(client, parameters, recorder, logger.New("objectstore"))

	if m.verbose {
		fmt.Fprintf(m.e, "network: %s\n", parameters.Name)
		fmt.Fprintf(m.e, "horizon: %s\n", parameters.Horizon)
		fmt.Fprintf(m.e, "journal: %t\n", nil != s.journal)
	}

	return s, nil
}

func (s *services) close() {
	if nil != s.journal {
		s.journal.Close()
	}
}

func (s *services) enabler() identity.Enabler {
	return identity.NewEnabler(s.client, s.store, logger.New("identity"))
}

// decrypt the selected identity, prompting for the password if needed
func (m *metadata) keyPair(c *cli.Context) (*keypair.KeyPair, error) {
	password := c.GlobalString("password")
	if "" == password {
		var err error
		password, err = promptPassword()
		if nil != err {
			return nil, err
		}
	}
	return m.config.KeyPair(password, c.GlobalString("identity"))
}

// password for a new identity
func newPassword(c *cli.Context) (string, error) {
	password := c.GlobalString("password")
	if "" == password {
		return promptNewPassword()
	}
	if err := checkPasswordLength(password); nil != err {
		return "", err
	}
	return password, nil
}

// owner flag, else global identity, else the default identity
func (m *metadata) owner(c *cli.Context) (*account.Account, error) {
	name := c.String("owner")
	if "" == name {
		name = c.GlobalString("identity")
	}
	if nil == m.config {
		if "" == name {
			return nil, ErrNotSetup
		}
		return identity.AccountFromText(name)
	}
	return m.config.Account(name)
}

// run one submission, repeating it once after a sequence mismatch
//
// the repeat re-reads the account so it uses a fresh sequence number
func retryOnce(m *metadata, submit func() (*objectstore.Receipt, error)) (*objectstore.Receipt, error) {
	receipt, err := submit()
	if nil != err && fault.IsErrRetryable(err) {
		if m.verbose {
			fmt.Fprintf(m.e, "retrying after: %s\n", err)
		}
		receipt, err = submit()
	}
	return receipt, err
}
