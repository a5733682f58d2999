// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chunk

import (
	"sort"

	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/transactionrecord"
)

const (
	// Size - bytes per chunk, the ledger limit for one data value
	Size = transactionrecord.MaxValueLength

	// Padding - fills the final chunk
	Padding = 0xff
)

// Split - pad to a multiple of Size and cut into chunks
//
// an empty blob gives one chunk consisting entirely of padding
func Split(blob []byte) [][]byte {
	count := Count(len(blob))
	padded := make([]byte, count*Size)
	copy(padded, blob)
	for i := len(blob); i < len(padded); i += 1 {
		padded[i] = Padding
	}

	chunks := make([][]byte, count)
	for i := range chunks {
		chunks[i] = padded[i*Size : (i+1)*Size]
	}
	return chunks
}

// Count - number of chunks for a blob of the given length
func Count(length int) int {
	if 0 == length {
		return 1
	}
	return (length + Size - 1) / Size
}

// Join - concatenate chunks in the order given
func Join(chunks [][]byte) []byte {
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	joined := make([]byte, 0, n)
	for _, c := range chunks {
		joined = append(joined, c...)
	}
	return joined
}

// WriteOperations - the write operations that store a blob as a file
//
// all operations are intended for a single transaction so the object
// is written atomically; an object that needs more operations than a
// transaction allows is rejected rather than split across transactions
func WriteOperations(fileIndex uint64, blob []byte) ([]transactionrecord.WriteOperation, error) {
	if 0 == fileIndex {
		return nil, fault.ErrInvalidFileIndex
	}
	count := Count(len(blob))
	if count > transactionrecord.MaxOperations {
		return nil, fault.ErrObjectTooLarge
	}

	operations := make([]transactionrecord.WriteOperation, count)
	for i, c := range Split(blob) {
		key := Key{
			FileIndex:  fileIndex,
			ChunkIndex: uint64(i + 1),
			Length:     uint64(len(blob)),
		}
		op := transactionrecord.WriteOperation{
			Key:   key.String(),
			Value: c,
		}
		err := op.Validate()
		if nil != err {
			return nil, err
		}
		operations[i] = op
	}
	return operations, nil
}

// Piece - one stored chunk
type Piece struct {
	Key   Key
	Value []byte
}

// Collect - the chunks of one file, ordered by chunk index
//
// duplicate chunk indices are all kept, ordered by recorded length
func Collect(data map[string][]byte, fileIndex uint64) []Piece {
	pieces := make([]Piece, 0, 4)
	for k, v := range data {
		key, ok := ParseKey(k)
		if !ok || fileIndex != key.FileIndex {
			continue
		}
		pieces = append(pieces, Piece{
			Key:   key,
			Value: v,
		})
	}
	sortPieces(pieces)
	return pieces
}

func sortPieces(pieces []Piece) {
	sort.Slice(pieces, func(i, j int) bool {
		a, b := pieces[i].Key, pieces[j].Key
		if a.ChunkIndex != b.ChunkIndex {
			return a.ChunkIndex < b.ChunkIndex
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return string(pieces[i].Value) < string(pieces[j].Value)
	})
}
