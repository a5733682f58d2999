// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
)

// discriminants of the ledger wire format
// only the values listed here are ever written or accepted
const (
	KeyTypeEd25519 = 0  // source account key type
	MemoNone       = 0  // no memo
	TimeBoundsNone = 0  // no time bounds
	SourceNone     = 0  // operation uses the transaction source
	ManageDataType = 10 // operation type: write data
	ExtensionNone  = 0  // trailing body extension
)

// byte sizes for various fields
const (
	MaxKeyLength   = 64
	MaxValueLength = 64
	MaxOperations  = 100
)

// Packed - packed records are just a byte slice
type Packed []byte

// WriteOperation - set or clear one key on the source account
//
// a nil Value clears the key, any other value (including empty) sets it
type WriteOperation struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// Transaction - an unsigned ledger transaction
//
// Fee is not stored, it is recomputed from the base fee and the
// number of operations every time it is needed
type Transaction struct {
	Source     *account.Account `json:"source"`
	Sequence   uint64           `json:"sequence,string"`
	BaseFee    uint32           `json:"baseFee"`
	Operations []WriteOperation `json:"operations"`
}

// New - create an empty transaction
func New(source *account.Account, sequence uint64, baseFee uint32) *Transaction {
	return &Transaction{
		Source:     source,
		Sequence:   sequence,
		BaseFee:    baseFee,
		Operations: make([]WriteOperation, 0, 4),
	}
}

// Validate - check the key and value limits of a single operation
func (op WriteOperation) Validate() error {
	if 0 == len(op.Key) {
		return fault.ErrEmptyKey
	}
	if len(op.Key) > MaxKeyLength {
		return fault.ErrKeyTooLong
	}
	for i := 0; i < len(op.Key); i += 1 {
		if op.Key[i] >= 0x80 {
			return fault.ErrKeyNotASCII
		}
	}
	if len(op.Value) > MaxValueLength {
		return fault.ErrValueTooLong
	}
	return nil
}

// AppendWrite - add a write operation
//
// the fee returned by Fee() afterwards reflects the new operation count
func (tx *Transaction) AppendWrite(key string, value []byte) error {
	if len(tx.Operations) >= MaxOperations {
		return fault.ErrTooManyOperations
	}

	op := WriteOperation{
		Key: key,
	}
	if nil != value {
		op.Value = make([]byte, len(value))
		copy(op.Value, value)
	}

	err := op.Validate()
	if nil != err {
		return err
	}

	tx.Operations = append(tx.Operations, op)
	return nil
}

// Fee - base fee × operation count
//
// a transaction with no operations is charged a single base fee
func (tx *Transaction) Fee() uint64 {
	return uint64(tx.BaseFee) * feeMultiplier(len(tx.Operations))
}

func feeMultiplier(operationCount int) uint64 {
	if operationCount < 1 {
		return 1
	}
	return uint64(operationCount)
}

// Keys - the keys written, in order
func (tx *Transaction) Keys() []string {
	keys := make([]string, len(tx.Operations))
	for i, op := range tx.Operations {
		keys[i] = op.Key
	}
	return keys
}
