// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/account"
)

// KeyPair - structure to hold public and private keys and the seed
// that was used to generate them
type KeyPair struct {
	Seed          account.Seed
	PublicKey     ed25519.PublicKey
	PrivateKey    ed25519.PrivateKey
	EncodedPublic string
	EncodedSecret string
}

// RawKeyPair - text version of seed and keys
type RawKeyPair struct {
	Address    string `json:"address"`
	Secret     string `json:"secret"`
	Seed       string `json:"seed"`
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// New - create a key pair from secure random data
func New() (*KeyPair, error) {
	seed, err := account.NewSeed()
	if nil != err {
		return nil, err
	}
	return fromSeed(seed), nil
}

// Derive - deterministically generate a key pair from 32 bytes of seed
func Derive(seed []byte) (*KeyPair, error) {
	s, err := account.SeedFromBytes(seed)
	if nil != err {
		return nil, err
	}
	return fromSeed(s), nil
}

// FromSecret - generate a key pair from an "S..." encoded secret
func FromSecret(encoded string) (*KeyPair, error) {
	s, err := account.SeedFromString(encoded)
	if nil != err {
		return nil, err
	}
	return fromSeed(s), nil
}

func fromSeed(seed *account.Seed) *KeyPair {
	privateKey := seed.PrivateKey()
	acc := seed.Account()

	return &KeyPair{
		Seed:          *seed,
		PublicKey:     acc.PublicKey,
		PrivateKey:    privateKey,
		EncodedPublic: acc.String(),
		EncodedSecret: seed.String(),
	}
}

// Account - the ledger account controlled by this key pair
func (keyPair *KeyPair) Account() *account.Account {
	return &account.Account{
		PublicKey: keyPair.PublicKey,
	}
}

// Sign - detached signature of a message
func (keyPair *KeyPair) Sign(message []byte) account.Signature {
	return account.Signature(ed25519.Sign(keyPair.PrivateKey, message))
}

// Raw - text version suitable for JSON output
func (keyPair *KeyPair) Raw() *RawKeyPair {
	return &RawKeyPair{
		Address:    keyPair.EncodedPublic,
		Secret:     keyPair.EncodedSecret,
		Seed:       keyPair.Seed.Hex(),
		PublicKey:  hex.EncodeToString(keyPair.PublicKey),
		PrivateKey: hex.EncodeToString(keyPair.PrivateKey),
	}
}

// GoString - prevent the secret leaking via %#v
func (keyPair KeyPair) GoString() string {
	return "<keypair:" + keyPair.EncodedPublic + ">"
}
