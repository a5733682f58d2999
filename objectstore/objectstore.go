// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"context"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/chunk"
	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/transactionrecord"
	"github.com/bitmark-inc/logger"
)

// Recorder - receives every accepted envelope
type Recorder interface {
	Record(e *envelope.Envelope, result *gateway.SubmitResult) error
}

// Receipt - outcome of a successful write
type Receipt struct {
	FileIndex uint64          `json:"fileIndex,omitempty"`
	Hash      envelope.Digest `json:"hash"`
	Ledger    uint64          `json:"ledger"`
	Sequence  uint64          `json:"sequence,string"`
	Keys      []string        `json:"keys"`
}

// Store - files and single values held in ledger account data
type Store struct {
	log      *logger.L
	gateway  gateway.Gateway
	network  chain.NetworkID
	baseFee  uint32
	recorder Recorder
}

// New - create a store; recorder may be nil
func New(gw gateway.Gateway, parameters *chain.Parameters, recorder Recorder, log *logger.L) *Store {
	return &Store{
		log:      log,
		gateway:  gw,
		network:  parameters.ID,
		baseFee:  parameters.BaseFee,
		recorder: recorder,
	}
}

// Upload - write a blob as one file in a single transaction
//
// a zero file index selects the next free index.  Allocation is a
// read followed by a write so two concurrent uploads to one account
// can pick the same index; the ledger accepts only one of them and
// the other gets fault.ErrBadSequence
func (store *Store) Upload(ctx context.Context, keyPair *keypair.KeyPair, fileIndex uint64, blob []byte) (*Receipt, error) {
	if chunk.Count(len(blob)) > transactionrecord.MaxOperations {
		return nil, fault.ErrObjectTooLarge
	}

	state, err := store.gateway.Account(ctx, keyPair.EncodedPublic)
	if nil != err {
		return nil, err
	}

	if 0 == fileIndex {
		fileIndex = chunk.NextFileIndex(state.Data)
	}

	operations, err := chunk.WriteOperations(fileIndex, blob)
	if nil != err {
		return nil, err
	}

	store.log.Infof("upload: %s  file: %d  bytes: %d  chunks: %d", keyPair.EncodedPublic, fileIndex, len(blob), len(operations))

	receipt, err := store.submit(ctx, keyPair, state.Sequence+1, operations)
	if nil != err {
		return nil, err
	}
	receipt.FileIndex = fileIndex
	return receipt, nil
}

// Load - reassemble one file of an account
func (store *Store) Load(ctx context.Context, address string, fileIndex uint64) (*chunk.Object, error) {
	state, err := store.gateway.Account(ctx, address)
	if nil != err {
		return nil, err
	}

	object, ok := chunk.Assemble(state.Data, fileIndex)
	if !ok {
		store.log.Debugf("load: %s  file: %d  not found", address, fileIndex)
		return nil, fault.ErrObjectNotFound
	}

	store.log.Debugf("load: %s  file: %d  chunks: %d  length: %d", address, fileIndex, object.Chunks, object.Length)
	return object, nil
}

// NextFileIndex - the index the next upload would use
func (store *Store) NextFileIndex(ctx context.Context, address string) (uint64, error) {
	state, err := store.gateway.Account(ctx, address)
	if nil != err {
		return 0, err
	}
	return chunk.NextFileIndex(state.Data), nil
}

// Files - list stored files
func (store *Store) Files(ctx context.Context, address string) ([]chunk.FileInfo, error) {
	state, err := store.gateway.Account(ctx, address)
	if nil != err {
		return nil, err
	}
	return chunk.Files(state.Data), nil
}

// Value - read a single data entry
func (store *Store) Value(ctx context.Context, address string, key string) ([]byte, bool, error) {
	state, err := store.gateway.Account(ctx, address)
	if nil != err {
		return nil, false, err
	}
	value, ok := state.Data[key]
	return value, ok, nil
}

// SetValue - write one key, a nil value deletes it
func (store *Store) SetValue(ctx context.Context, keyPair *keypair.KeyPair, key string, value []byte) (*Receipt, error) {
	op := transactionrecord.WriteOperation{
		Key:   key,
		Value: value,
	}
	if err := op.Validate(); nil != err {
		return nil, err
	}

	state, err := store.gateway.Account(ctx, keyPair.EncodedPublic)
	if nil != err {
		return nil, err
	}

	store.log.Infof("set: %s  key: %q  delete: %t", keyPair.EncodedPublic, key, nil == value)
	return store.submit(ctx, keyPair, state.Sequence+1, []transactionrecord.WriteOperation{op})
}

// build, sign and submit one transaction
func (store *Store) submit(ctx context.Context, keyPair *keypair.KeyPair, sequence uint64, operations []transactionrecord.WriteOperation) (*Receipt, error) {
	tx := transactionrecord.New(keyPair.Account(), sequence, store.baseFee)
	for _, op := range operations {
		if err := tx.AppendWrite(op.Key, op.Value); nil != err {
			return nil, err
		}
	}

	e, err := envelope.Sign(tx, keyPair, store.network)
	if nil != err {
		return nil, err
	}

	result, err := store.gateway.Submit(ctx, e)
	if nil != err {
		store.log.Warnf("submit: %s  sequence: %d  error: %s", e.Hash, sequence, err)
		return nil, err
	}

	if nil != store.recorder {
		if err := store.recorder.Record(e, result); nil != err {
			store.log.Errorf("record: %s  error: %s", e.Hash, err)
		}
	}

	return &Receipt{
		Hash:     e.Hash,
		Ledger:   result.Ledger,
		Sequence: sequence,
		Keys:     tx.Keys(),
	}, nil
}
