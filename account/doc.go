// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - checksummed text encoding of ledger keys
//
// A 32 byte payload is prefixed with a version byte, followed by a
// little endian CRC-16/XMODEM of (version || payload) and the 35 bytes
// rendered in RFC 4648 base32.  The version byte selects between an
// account (ed25519 verifying key, text starts with "G") and a secret
// seed (text starts with "S").
package account
