// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chunk - store a byte blob as a set of ledger data entries
//
// A blob is padded with 0xff to a multiple of 64 bytes and cut into
// 64 byte chunks.  Chunk i (1-based) of file n of a blob of length l
// is written under the key:
//
//   f<n>c<i>:<l>
//
// Reading collects every key of the form above for one file index,
// orders by chunk index and concatenates the values.  Any other key
// in the account data is ignored.
package chunk
