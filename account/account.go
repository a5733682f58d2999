// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/fault"
)

// HintLength - number of trailing public key bytes used as a signature hint
const HintLength = 4

// Hint - selects a signer among several
type Hint [HintLength]byte

// Account - an ed25519 verifying key, i.e. a ledger account
type Account struct {
	PublicKey ed25519.PublicKey
}

// FromAddress - this converts a "G..." encoded string and returns an account
func FromAddress(address string) (*Account, error) {
	publicKey, err := Decode(AccountVersion, address)
	if nil != err {
		return nil, err
	}
	return &Account{
		PublicKey: ed25519.PublicKey(publicKey),
	}, nil
}

// FromPublicKey - wrap raw verifying key bytes
func FromPublicKey(publicKey []byte) (*Account, error) {
	if ed25519.PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	k := make([]byte, ed25519.PublicKeySize)
	copy(k, publicKey)
	return &Account{
		PublicKey: ed25519.PublicKey(k),
	}, nil
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// Hint - last four bytes of the public key
func (account *Account) Hint() Hint {
	var h Hint
	copy(h[:], account.PublicKey[ed25519.PublicKeySize-HintLength:])
	return h
}

// Equal - compare the keys of two accounts
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return false
	}
	return bytes.Equal(account.PublicKey, other.PublicKey)
}

// CheckSignature - check the signature of a message
func (account *Account) CheckSignature(message []byte, signature Signature) error {

	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}

	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - checksummed text form of the account
func (account *Account) String() string {
	s, err := Encode(AccountVersion, account.PublicKey)
	if nil != err {
		return ""
	}
	return s
}

// MarshalText - convert an account to its text form for JSON
func (account Account) MarshalText() ([]byte, error) {
	s, err := Encode(AccountVersion, account.PublicKey)
	if nil != err {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText - convert text form to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromAddress(string(s))
	if nil != err {
		return err
	}
	account.PublicKey = a.PublicKey
	return nil
}
