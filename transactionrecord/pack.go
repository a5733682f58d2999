// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/fault"
)

// Pack - serialise the transaction body into the ledger wire format
//
// all integers are big endian and variable length fields are zero
// padded to a multiple of 4 bytes:
//
//   key type, public key, fee, sequence, memo, time bounds, count
//   { source, type, key, has value, [value] } × count
//   extension
//
// the body is what gets hashed and signed
func (tx *Transaction) Pack() (Packed, error) {
	if nil == tx.Source || ed25519.PublicKeySize != len(tx.Source.PublicKey) {
		return nil, fault.ErrMissingSource
	}
	if len(tx.Operations) > MaxOperations {
		return nil, fault.ErrTooManyOperations
	}
	fee := tx.Fee()
	if fee > math.MaxUint32 {
		return nil, fault.ErrFeeTooLarge
	}

	message := make(Packed, 0, 64+len(tx.Operations)*160)
	message = appendUint32(message, KeyTypeEd25519)
	message = append(message, tx.Source.PublicKey...)
	message = appendUint32(message, uint32(fee))
	message = appendUint64(message, tx.Sequence)
	message = appendUint32(message, MemoNone)
	message = appendUint32(message, TimeBoundsNone)
	message = appendUint32(message, uint32(len(tx.Operations)))

	for _, op := range tx.Operations {
		err := op.Validate()
		if nil != err {
			return nil, err
		}
		message = appendUint32(message, SourceNone)
		message = appendUint32(message, ManageDataType)
		message = appendOpaque(message, []byte(op.Key))
		if nil == op.Value {
			message = appendUint32(message, 0)
		} else {
			message = appendUint32(message, 1)
			message = appendOpaque(message, op.Value)
		}
	}

	return appendUint32(message, ExtensionNone), nil
}

// number of zero bytes needed to round length up to a multiple of 4
func padding(length int) int {
	return (4 - length%4) % 4
}

// append a variable length field to a buffer
//
// the field is prefixed by its unpadded length
func appendOpaque(buffer Packed, data []byte) Packed {
	buffer = appendUint32(buffer, uint32(len(data)))
	buffer = append(buffer, data...)
	return append(buffer, make([]byte, padding(len(data)))...)
}

func appendUint32(buffer Packed, value uint32) Packed {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], value)
	return append(buffer, b[:]...)
}

func appendUint64(buffer Packed, value uint64) Packed {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	return append(buffer, b[:]...)
}
