// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/fault"
)

// SeedLength - raw secret size
const SeedLength = ed25519.SeedSize

// Seed - the sole secret of an account
type Seed [SeedLength]byte

// NewSeed - create a new seed from secure random data
func NewSeed() (*Seed, error) {
	seed := new(Seed)
	n, err := rand.Read(seed[:])
	if nil != err {
		return nil, err
	}
	if SeedLength != n {
		return nil, fmt.Errorf("got: %d bytes, expected: %d bytes", n, SeedLength)
	}
	return seed, nil
}

// SeedFromBytes - copy exactly 32 raw bytes into a seed
func SeedFromBytes(b []byte) (*Seed, error) {
	if SeedLength != len(b) {
		return nil, fault.ErrInvalidSeedLength
	}
	seed := new(Seed)
	copy(seed[:], b)
	return seed, nil
}

// SeedFromString - this converts an "S..." encoded string and returns a seed
func SeedFromString(encoded string) (*Seed, error) {
	b, err := Decode(SeedVersion, encoded)
	if nil != err {
		return nil, err
	}
	return SeedFromBytes(b)
}

// SeedFromHex - 64 hexadecimal digits, the plain form used by fr0g secrets
func SeedFromHex(s string) (*Seed, error) {
	b, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidSeedLength
	}
	return SeedFromBytes(b)
}

// PrivateKey - expand the seed to an ed25519 signing key
func (seed Seed) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(seed[:])
}

// Account - the account belonging to the seed
func (seed Seed) Account() *Account {
	privateKey := seed.PrivateKey()
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return &Account{
		PublicKey: ed25519.PublicKey(publicKey),
	}
}

// String - checksummed text form of the seed
func (seed Seed) String() string {
	s, _ := Encode(SeedVersion, seed[:])
	return s
}

// Hex - plain hexadecimal form of the seed
func (seed Seed) Hex() string {
	return hex.EncodeToString(seed[:])
}

// GoString - never print the secret with %#v
func (seed Seed) GoString() string {
	return "<seed>"
}
