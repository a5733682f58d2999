// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/fault"
)

// EnvelopeTypeTx - tag hashed between network identifier and body
const EnvelopeTypeTx = 2

// DigestLength - number of bytes in the digest
const DigestLength = sha256.Size

// Digest - type for a SHA-256 transaction hash
type Digest [DigestLength]byte

// HashBody - network scoped digest of a packed transaction body
//
//   SHA-256(network id ‖ uint32(EnvelopeTypeTx) ‖ body)
//
// this is both what gets signed and the transaction identifier
func HashBody(networkID chain.NetworkID, body []byte) Digest {
	var tag [4]byte
	binary.BigEndian.PutUint32(tag[:], EnvelopeTypeTx)

	h := sha256.New()
	h.Write(networkID[:])
	h.Write(tag[:])
	h.Write(body)

	var digest Digest
	copy(digest[:], h.Sum(nil))
	return digest
}

// DigestFromString - parse a hex digest
func DigestFromString(s string) (Digest, error) {
	var digest Digest
	err := digest.UnmarshalText([]byte(s))
	return digest, err
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DigestLength))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if hex.EncodedLen(DigestLength) != len(s) {
		return fault.ErrInvalidKeyLength
	}
	_, err := hex.Decode(digest[:], s)
	if nil != err {
		return fault.ErrInvalidKeyLength
	}
	return nil
}
