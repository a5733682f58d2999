// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
)

// Unpack - turn a packed body back into a transaction
//
// returns the transaction and the number of bytes consumed, bytes
// after the body (the signature block of an envelope) are left for
// the caller.  Only the subset of the wire format produced by Pack is
// accepted; any other discriminant, a non-zero padding byte or an
// oversize field is an error.
func (record Packed) Unpack() (*Transaction, int, error) {
	r := &reader{
		buffer: record,
	}

	keyType, err := r.uint32()
	if nil != err {
		return nil, 0, err
	}
	if KeyTypeEd25519 != keyType {
		return nil, 0, fault.ErrUnsupportedDiscriminant
	}
	publicKey, err := r.fixed(ed25519.PublicKeySize)
	if nil != err {
		return nil, 0, err
	}
	source, err := account.FromPublicKey(publicKey)
	if nil != err {
		return nil, 0, err
	}

	fee, err := r.uint32()
	if nil != err {
		return nil, 0, err
	}
	sequence, err := r.uint64()
	if nil != err {
		return nil, 0, err
	}

	for _, expected := range []uint32{MemoNone, TimeBoundsNone} {
		d, err := r.uint32()
		if nil != err {
			return nil, 0, err
		}
		if expected != d {
			return nil, 0, fault.ErrUnsupportedDiscriminant
		}
	}

	count, err := r.uint32()
	if nil != err {
		return nil, 0, err
	}
	if count > MaxOperations {
		return nil, 0, fault.ErrTooManyOperations
	}

	multiplier := feeMultiplier(int(count))
	if 0 != uint64(fee)%multiplier {
		return nil, 0, fault.ErrInvalidFee
	}

	tx := &Transaction{
		Source:     source,
		Sequence:   sequence,
		BaseFee:    uint32(uint64(fee) / multiplier),
		Operations: make([]WriteOperation, 0, count),
	}

	for i := uint32(0); i < count; i += 1 {
		op, err := r.operation()
		if nil != err {
			return nil, 0, err
		}
		tx.Operations = append(tx.Operations, op)
	}

	extension, err := r.uint32()
	if nil != err {
		return nil, 0, err
	}
	if ExtensionNone != extension {
		return nil, 0, fault.ErrUnsupportedDiscriminant
	}

	return tx, r.n, nil
}

// sequential reader over a packed buffer
type reader struct {
	buffer []byte
	n      int
}

func (r *reader) fixed(length int) ([]byte, error) {
	if length < 0 || r.n+length > len(r.buffer) {
		return nil, fault.ErrCannotDecodeEnvelope
	}
	b := make([]byte, length)
	copy(b, r.buffer[r.n:r.n+length])
	r.n += length
	return b, nil
}

func (r *reader) uint32() (uint32, error) {
	b, err := r.fixed(4)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) uint64() (uint64, error) {
	b, err := r.fixed(8)
	if nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// length prefixed field followed by zero padding
func (r *reader) opaque(maximum int, tooLong error) ([]byte, error) {
	length, err := r.uint32()
	if nil != err {
		return nil, err
	}
	if length > uint32(maximum) {
		return nil, tooLong
	}
	data, err := r.fixed(int(length))
	if nil != err {
		return nil, err
	}
	pad, err := r.fixed(padding(int(length)))
	if nil != err {
		return nil, err
	}
	for _, b := range pad {
		if 0 != b {
			return nil, fault.ErrInvalidPadding
		}
	}
	return data, nil
}

func (r *reader) operation() (WriteOperation, error) {
	op := WriteOperation{}

	source, err := r.uint32()
	if nil != err {
		return op, err
	}
	if SourceNone != source {
		return op, fault.ErrUnsupportedDiscriminant
	}

	opType, err := r.uint32()
	if nil != err {
		return op, err
	}
	if ManageDataType != opType {
		return op, fault.ErrUnsupportedDiscriminant
	}

	key, err := r.opaque(MaxKeyLength, fault.ErrKeyTooLong)
	if nil != err {
		return op, err
	}
	op.Key = string(key)

	hasValue, err := r.uint32()
	if nil != err {
		return op, err
	}
	switch hasValue {
	case 0:
	case 1:
		op.Value, err = r.opaque(MaxValueLength, fault.ErrValueTooLong)
		if nil != err {
			return op, err
		}
	default:
		return op, fault.ErrUnsupportedDiscriminant
	}

	return op, op.Validate()
}
