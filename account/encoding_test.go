// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

type encodingTest struct {
	version account.VersionByte
	payload []byte
	text    string
}

var validEncodings = []encodingTest{
	{
		version: account.AccountVersion,
		payload: make([]byte, 32),
		text:    "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF",
	},
	{
		version: account.SeedVersion,
		payload: make([]byte, 32),
		text:    "SAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSU2",
	},
	{
		version: account.AccountVersion,
		payload: decodeHex("3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29"),
		text:    "GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH",
	},
	{
		version: account.AccountVersion,
		payload: decodeHex("03a107bff3ce10be1d70dd18e74bc09967e4d6309ba50d5f1ddc8664125531b8"),
		text:    "GAB2CB576PHBBPQ5ODORRZ2LYCMWPZGWGCN2KDK7DXOIMZASKUY3QZ6Q",
	},
	{
		version: account.SeedVersion,
		payload: decodeHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"),
		text:    "SAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB6NKI",
	},
}

func TestChecksum(t *testing.T) {
	// standard CRC-16/XMODEM check value
	assert.Equal(t, uint16(0x31c3), account.Checksum([]byte("123456789")), "check value")
	assert.Equal(t, uint16(0), account.Checksum(nil), "empty")
}

func TestEncode(t *testing.T) {
	for i, e := range validEncodings {
		text, err := account.Encode(e.version, e.payload)
		if nil != err {
			t.Fatalf("%d: encode error: %s", i, err)
		}
		if e.text != text {
			t.Errorf("%d: encoded: %q  expected: %q", i, text, e.text)
		}
	}
}

func TestDecode(t *testing.T) {
	for i, e := range validEncodings {
		version, payload, err := account.DecodeAny(e.text)
		if nil != err {
			t.Fatalf("%d: decode error: %s", i, err)
		}
		if e.version != version {
			t.Errorf("%d: version: %x  expected: %x", i, version, e.version)
		}
		if !bytes.Equal(e.payload, payload) {
			t.Errorf("%d: payload: %x  expected: %x", i, payload, e.payload)
		}

		payload, err = account.Decode(e.version, e.text)
		assert.Nil(t, err, "decode with expected version")
		assert.Equal(t, e.payload, payload, "payload")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, version := range []account.VersionByte{account.AccountVersion, account.SeedVersion} {
		for fill := 0; fill < 256; fill += 17 {
			payload := bytes.Repeat([]byte{byte(fill)}, account.PayloadLength)
			payload[fill%account.PayloadLength] ^= 0x5a

			text, err := account.Encode(version, payload)
			assert.Nil(t, err, "encode")

			v, p, err := account.DecodeAny(text)
			assert.Nil(t, err, "decode")
			assert.Equal(t, version, v, "version")
			assert.Equal(t, payload, p, "payload")
		}
	}
}

// every single character substitution must be caught by the checksum
func TestMutationDetected(t *testing.T) {
	for _, e := range validEncodings {
		for position := 0; position < len(e.text); position += 1 {
			c := e.text[position]
			replacement := base32Alphabet[(strings.IndexByte(base32Alphabet, c)+1)%len(base32Alphabet)]
			mutated := e.text[:position] + string(replacement) + e.text[position+1:]

			_, _, err := account.DecodeAny(mutated)
			if fault.ErrChecksumMismatch != err {
				t.Errorf("%q position: %d  mutated: %q  error: %v", e.text, position, mutated, err)
			}
		}
	}
}

func TestDecodeWrongVersion(t *testing.T) {
	_, err := account.Decode(account.SeedVersion, validEncodings[0].text)
	assert.Equal(t, fault.ErrInvalidVersionByte, err, "account decoded as seed")

	_, err = account.Decode(account.AccountVersion, validEncodings[1].text)
	assert.Equal(t, fault.ErrInvalidVersionByte, err, "seed decoded as account")
}

func TestEncodeInvalid(t *testing.T) {
	_, err := account.Encode(account.VersionByte(1<<3), make([]byte, 32))
	assert.Equal(t, fault.ErrInvalidVersionByte, err, "unsupported version")

	_, err = account.Encode(account.AccountVersion, make([]byte, 31))
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short payload")

	_, err = account.Encode(account.SeedVersion, make([]byte, 33))
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "long payload")
}

func TestDecodeInvalid(t *testing.T) {
	_, _, err := account.DecodeAny("not base32!")
	assert.Equal(t, fault.ErrCannotDecodeAddress, err, "bad alphabet")

	// 8 base32 characters decode to 5 bytes
	_, _, err = account.DecodeAny("GAAAAAAA")
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short")

	_, _, err = account.DecodeAny("")
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "empty")
}

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if nil != err {
		panic(err)
	}
	return b
}
