// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chunk

import (
	"strconv"
	"strings"
)

// Key - the parsed form of a chunk key
type Key struct {
	FileIndex  uint64 `json:"fileIndex"`
	ChunkIndex uint64 `json:"chunkIndex"`
	Length     uint64 `json:"length"`
}

// String - render as f<file>c<chunk>:<length>
func (key Key) String() string {
	return "f" + strconv.FormatUint(key.FileIndex, 10) +
		"c" + strconv.FormatUint(key.ChunkIndex, 10) +
		":" + strconv.FormatUint(key.Length, 10)
}

// ParseKey - strict parse of a chunk key
//
// integers are decimal without leading zeros and the chunk index
// starts at 1, anything else is not a chunk key
func ParseKey(s string) (Key, bool) {
	if !strings.HasPrefix(s, "f") {
		return Key{}, false
	}
	rest := s[1:]

	c := strings.IndexByte(rest, 'c')
	if c < 0 {
		return Key{}, false
	}
	fileIndex, ok := decimal(rest[:c])
	if !ok {
		return Key{}, false
	}
	rest = rest[c+1:]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return Key{}, false
	}
	chunkIndex, ok := decimal(rest[:colon])
	if !ok || 0 == chunkIndex {
		return Key{}, false
	}

	length, ok := decimal(rest[colon+1:])
	if !ok {
		return Key{}, false
	}

	return Key{
		FileIndex:  fileIndex,
		ChunkIndex: chunkIndex,
		Length:     length,
	}, true
}

func decimal(s string) (uint64, bool) {
	if 0 == len(s) {
		return 0, false
	}
	if len(s) > 1 && '0' == s[0] {
		return 0, false
	}
	for i := 0; i < len(s); i += 1 {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return 0, false
	}
	return n, true
}
