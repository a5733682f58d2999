// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chunk

import (
	"sort"
)

// Object - a file reassembled from account data
//
// Data is the concatenation of the stored chunks and so still
// carries the trailing padding; use Content for the original bytes
type Object struct {
	FileIndex uint64 `json:"fileIndex"`
	Length    uint64 `json:"length"`
	Chunks    int    `json:"chunks"`
	Data      []byte `json:"-"`
}

// Content - Data truncated to the recorded length
func (object *Object) Content() []byte {
	if object.Length < uint64(len(object.Data)) {
		return object.Data[:object.Length]
	}
	return object.Data
}

// Assemble - rebuild one file
//
// returns false if no chunk of the file is present.  A gap in the
// chunk indices is not detected.  When chunks disagree on the length
// the length recorded with the lowest chunk index is used.
func Assemble(data map[string][]byte, fileIndex uint64) (*Object, bool) {
	pieces := Collect(data, fileIndex)
	if 0 == len(pieces) {
		return nil, false
	}

	values := make([][]byte, len(pieces))
	for i, p := range pieces {
		values[i] = p.Value
	}

	return &Object{
		FileIndex: fileIndex,
		Length:    pieces[0].Key.Length,
		Chunks:    len(pieces),
		Data:      Join(values),
	}, true
}

// FileInfo - summary of one stored file
type FileInfo struct {
	FileIndex uint64 `json:"fileIndex"`
	Length    uint64 `json:"length"`
	Chunks    int    `json:"chunks"`
}

// Files - summaries of all files present, ordered by file index
func Files(data map[string][]byte) []FileInfo {
	lowest := make(map[uint64]Key)
	counts := make(map[uint64]int)

	for k := range data {
		key, ok := ParseKey(k)
		if !ok {
			continue
		}
		counts[key.FileIndex] += 1
		current, seen := lowest[key.FileIndex]
		if !seen || key.ChunkIndex < current.ChunkIndex ||
			(key.ChunkIndex == current.ChunkIndex && key.Length < current.Length) {
			lowest[key.FileIndex] = key
		}
	}

	files := make([]FileInfo, 0, len(lowest))
	for fileIndex, key := range lowest {
		files = append(files, FileInfo{
			FileIndex: fileIndex,
			Length:    key.Length,
			Chunks:    counts[fileIndex],
		})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].FileIndex < files[j].FileIndex
	})
	return files
}

// NextFileIndex - one more than the highest file index present
//
// file index 0 is never allocated, so an account with no files
// gives 1
func NextFileIndex(data map[string][]byte) uint64 {
	highest := uint64(0)
	for k := range data {
		key, ok := ParseKey(k)
		if ok && key.FileIndex > highest {
			highest = key.FileIndex
		}
	}
	return highest + 1
}
