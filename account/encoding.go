// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/base32"
	"encoding/binary"

	"github.com/bitmark-inc/fr0g/fault"
)

// VersionByte - leading byte of an encoded key
type VersionByte byte

// the only supported payload types
const (
	AccountVersion VersionByte = 6 << 3  // base32 "G..."
	SeedVersion    VersionByte = 18 << 3 // base32 "S..."
)

// miscellaneous constants
const (
	PayloadLength  = 32
	checksumLength = 2
	rawLength      = 1 + PayloadLength + checksumLength
)

var encoding = base32.StdEncoding

// Valid - check that a version byte is one of the supported types
func (v VersionByte) Valid() bool {
	return AccountVersion == v || SeedVersion == v
}

// Encode - produce the checksummed text form of a payload
func Encode(version VersionByte, payload []byte) (string, error) {
	if !version.Valid() {
		return "", fault.ErrInvalidVersionByte
	}
	if PayloadLength != len(payload) {
		return "", fault.ErrInvalidKeyLength
	}

	buffer := make([]byte, 1, rawLength)
	buffer[0] = byte(version)
	buffer = append(buffer, payload...)

	var checksum [checksumLength]byte
	binary.LittleEndian.PutUint16(checksum[:], Checksum(buffer))
	buffer = append(buffer, checksum[:]...)

	return encoding.EncodeToString(buffer), nil
}

// Decode - recover the payload of a text form that must carry the
// expected version byte
func Decode(expected VersionByte, text string) ([]byte, error) {
	version, payload, err := DecodeAny(text)
	if nil != err {
		return nil, err
	}
	if expected != version {
		return nil, fault.ErrInvalidVersionByte
	}
	return payload, nil
}

// DecodeAny - recover version byte and payload of a text form
//
// the checksum is verified before the version byte so that any
// corruption is reported as a checksum mismatch
func DecodeAny(text string) (VersionByte, []byte, error) {
	raw, err := encoding.DecodeString(text)
	if nil != err {
		return 0, nil, fault.ErrCannotDecodeAddress
	}
	if rawLength != len(raw) {
		return 0, nil, fault.ErrInvalidKeyLength
	}

	checksumStart := rawLength - checksumLength
	expected := binary.LittleEndian.Uint16(raw[checksumStart:])
	if Checksum(raw[:checksumStart]) != expected {
		return 0, nil, fault.ErrChecksumMismatch
	}

	version := VersionByte(raw[0])
	if !version.Valid() {
		return 0, nil, fault.ErrInvalidVersionByte
	}

	payload := make([]byte, PayloadLength)
	copy(payload, raw[1:checksumStart])
	return version, payload, nil
}
