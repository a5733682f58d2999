// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/keypair"
)

type derivationTest struct {
	seed      []byte
	publicKey string
	address   string
	secret    string
}

func sequentialSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	return seed
}

var derivations = []derivationTest{
	{
		seed:      make([]byte, 32),
		publicKey: "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29",
		address:   "GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH",
		secret:    "SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2",
	},
	{
		seed:      sequentialSeed(),
		publicKey: "03a107bff3ce10be1d70dd18e74bc09967e4d6309ba50d5f1ddc8664125531b8",
		address:   "GAB2CB576PHBBPQ5ODORRZ2LYCMWPZGWGCN2KDK7DXOIMZASKUY3QZ6Q",
		secret:    "SAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6NKI",
	},
}

func TestDeriveKnown(t *testing.T) {
	for i, d := range derivations {
		kp, err := keypair.Derive(d.seed)
		if nil != err {
			t.Fatalf("%d: derive error: %s", i, err)
		}
		assert.Equal(t, d.publicKey, hex.EncodeToString(kp.PublicKey), "public key")
		assert.Equal(t, d.address, kp.EncodedPublic, "address")
		assert.Equal(t, d.secret, kp.EncodedSecret, "secret")
		assert.Equal(t, d.address, kp.Account().String(), "account")

		fromSecret, err := keypair.FromSecret(d.secret)
		assert.Nil(t, err, "from secret")
		assert.Equal(t, kp, fromSecret, "from secret")
	}
}

func TestDeriveDeterministic(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 4; i += 1 {
		seed := bytes.Repeat([]byte{byte(0x11 * (i + 1))}, 32)

		a, err := keypair.Derive(seed)
		assert.Nil(t, err, "first derive")
		b, err := keypair.Derive(seed)
		assert.Nil(t, err, "second derive")

		assert.Equal(t, a.EncodedPublic, b.EncodedPublic, "address")
		assert.Equal(t, a.EncodedSecret, b.EncodedSecret, "secret")
		assert.Equal(t, a.PublicKey, b.PublicKey, "public key")

		if _, ok := seen[a.EncodedPublic]; ok {
			t.Errorf("seed: %x produced duplicate address: %s", seed, a.EncodedPublic)
		}
		seen[a.EncodedPublic] = struct{}{}
	}
}

func TestDeriveInvalid(t *testing.T) {
	_, err := keypair.Derive(make([]byte, 16))
	assert.Equal(t, fault.ErrInvalidSeedLength, err, "short seed")

	_, err = keypair.FromSecret("GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH")
	assert.Equal(t, fault.ErrInvalidVersionByte, err, "address is not a secret")

	_, err = keypair.FromSecret("SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU3")
	assert.Equal(t, fault.ErrChecksumMismatch, err, "corrupt secret")
}

func TestNewSignVerify(t *testing.T) {
	kp, err := keypair.New()
	assert.Nil(t, err, "new")

	message := []byte("some message")
	signature := kp.Sign(message)
	assert.True(t, ed25519.Verify(kp.PublicKey, message, signature), "verify")
	assert.Nil(t, kp.Account().CheckSignature(message, signature), "account check")
}

func TestRawAndGoString(t *testing.T) {
	kp, _ := keypair.Derive(make([]byte, 32))
	raw := kp.Raw()

	assert.Equal(t, derivations[0].address, raw.Address, "address")
	assert.Equal(t, derivations[0].secret, raw.Secret, "secret")
	assert.Equal(t, hex.EncodeToString(make([]byte, 32)), raw.Seed, "seed")
	assert.Equal(t, derivations[0].publicKey, raw.PublicKey, "public key")
	assert.Equal(t, 128, len(raw.PrivateKey), "private key hex length")

	assert.Equal(t, "<keypair:"+derivations[0].address+">", fmt.Sprintf("%#v", kp), "GoString")
}
