// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/fr0g/fault"
)

// names of all chains
const (
	Live    = "live"
	Testing = "testing"
	Local   = "local"
)

// network passphrases, hashed to give the network identifier
const (
	LivePassphrase    = "Public Global Stellar Network ; September 2015"
	TestingPassphrase = "Test SDF Network ; September 2015"
	LocalPassphrase   = "Standalone Network ; February 2017"
)

// defaults shared by all chains
const (
	DefaultBaseFee       = 100 // per operation, in stroops
	DefaultMaxOperations = 100 // per transaction
)

// NetworkID - SHA-256 of a network passphrase
type NetworkID [sha256.Size]byte

// Parameters - everything needed to build and submit for one network
type Parameters struct {
	Name       string    `json:"name"`
	Passphrase string    `json:"passphrase"`
	ID         NetworkID `json:"id"`
	Horizon    string    `json:"horizon"`
	Friendbot  string    `json:"friendbot,omitempty"`
	BaseFee    uint32    `json:"baseFee"`
}

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Live, Testing, Local:
		return true
	default:
		return false
	}
}

// Canonical - map the accepted aliases onto a chain name
func Canonical(name string) (string, error) {
	switch strings.ToLower(name) {
	case Live, "public", "production":
		return Live, nil
	case Testing, "test", "testnet":
		return Testing, nil
	case Local, "standalone":
		return Local, nil
	default:
		return "", fault.ErrInvalidChain
	}
}

// NetworkIDFromPassphrase - hash a passphrase
func NetworkIDFromPassphrase(passphrase string) NetworkID {
	return sha256.Sum256([]byte(passphrase))
}

// Defaults - the built-in parameters for a chain
func Defaults(name string) (*Parameters, error) {
	p := &Parameters{
		Name:    name,
		BaseFee: DefaultBaseFee,
	}
	switch name {
	case Live:
		p.Passphrase = LivePassphrase
		p.Horizon = "https://horizon.stellar.org"
	case Testing:
		p.Passphrase = TestingPassphrase
		p.Horizon = "https://horizon-testnet.stellar.org"
		p.Friendbot = "https://friendbot.stellar.org"
	case Local:
		p.Passphrase = LocalPassphrase
		p.Horizon = "http://localhost:8000"
		p.Friendbot = "http://localhost:8000/friendbot"
	default:
		return nil, fault.ErrInvalidChain
	}
	p.ID = NetworkIDFromPassphrase(p.Passphrase)
	return p, nil
}

// String - hex form of a network identifier
func (id NetworkID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - network identifier as hex for JSON
func (id NetworkID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
