// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"context"

	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/objectstore"
	"github.com/bitmark-inc/logger"
)

// Status - how far identity creation got
type Status int

// possible outcomes of Create
const (
	StatusCreated Status = iota // key pair exists locally only
	StatusEnabled               // funded and marked on the ledger
)

// String - for printing
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusEnabled:
		return "enabled"
	default:
		return "*unknown*"
	}
}

// Result - a new identity and whether it was enabled
//
// EnableError is set when enabling was requested but failed; the key
// pair is still valid and Enable can be retried later
type Result struct {
	KeyPair     *keypair.KeyPair `json:"-"`
	ID          string           `json:"id"`
	Enabled     bool             `json:"enabled"`
	EnableError error            `json:"-"`
}

// Status - created or enabled
func (r *Result) Status() Status {
	if r.Enabled {
		return StatusEnabled
	}
	return StatusCreated
}

// Enabler - make an identity usable on the ledger
type Enabler interface {
	Enable(ctx context.Context, keyPair *keypair.KeyPair) error
}

// Create - generate a new identity, optionally enabling it
//
// only key generation failure is an error; a nil enabler skips the
// network step
func Create(ctx context.Context, enabler Enabler) (*Result, error) {
	keyPair, err := keypair.New()
	if nil != err {
		return nil, err
	}
	return Adopt(ctx, keyPair, enabler), nil
}

// Adopt - as Create but for an existing key pair
func Adopt(ctx context.Context, keyPair *keypair.KeyPair, enabler Enabler) *Result {
	result := &Result{
		KeyPair: keyPair,
		ID:      ID(keyPair.Account()),
	}
	if nil == enabler {
		return result
	}

	err := enabler.Enable(ctx, keyPair)
	if nil != err {
		result.EnableError = err
		return result
	}
	result.Enabled = true
	return result
}

// NetworkEnabler - funds the account then writes the marker key
type NetworkEnabler struct {
	log    *logger.L
	funder gateway.Funder
	store  *objectstore.Store
}

// NewEnabler - create an enabler
func NewEnabler(funder gateway.Funder, store *objectstore.Store, log *logger.L) *NetworkEnabler {
	return &NetworkEnabler{
		log:    log,
		funder: funder,
		store:  store,
	}
}

// Enable - fund and mark
func (enabler *NetworkEnabler) Enable(ctx context.Context, keyPair *keypair.KeyPair) error {
	id := ID(keyPair.Account())

	err := enabler.funder.Fund(ctx, keyPair.EncodedPublic)
	if nil != err {
		enabler.log.Warnf("fund: %s  error: %s", id, err)
		return err
	}

	receipt, err := enabler.store.SetValue(ctx, keyPair, MarkerKey(id), []byte{0x01})
	if nil != err {
		enabler.log.Warnf("mark: %s  error: %s", id, err)
		return err
	}

	enabler.log.Infof("enabled: %s  hash: %s", id, receipt.Hash)
	return nil
}

// IsEnabled - check the marker key of an identity
func IsEnabled(ctx context.Context, store *objectstore.Store, id string) (bool, error) {
	acc, err := Account(id)
	if nil != err {
		return false, err
	}
	_, ok, err := store.Value(ctx, acc.String(), MarkerKey(id))
	if fault.ErrAccountNotFound == err {
		return false, nil
	}
	return ok, err
}
