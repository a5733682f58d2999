// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"strings"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
)

// Prefix - start of every fr0g ID
const Prefix = "fr0g"

// ID - the fr0g ID of an account: prefix followed by the lower case
// address reversed
func ID(acc *account.Account) string {
	return Prefix + reverse(strings.ToLower(acc.String()))
}

// Account - decode a fr0g ID back to its account
func Account(id string) (*account.Account, error) {
	if !strings.HasPrefix(id, Prefix) {
		return nil, fault.ErrInvalidIdentity
	}
	body := id[len(Prefix):]
	if body != strings.ToLower(body) {
		return nil, fault.ErrInvalidIdentity
	}
	return account.FromAddress(strings.ToUpper(reverse(body)))
}

// AccountFromText - accept either a fr0g ID or a ledger address
func AccountFromText(s string) (*account.Account, error) {
	if strings.HasPrefix(s, Prefix) {
		return Account(s)
	}
	return account.FromAddress(s)
}

// MarkerKey - data key written when an identity is enabled
func MarkerKey(id string) string {
	return ":" + id + ":"
}

// ValidName - local identity names: non-empty ASCII digits, lower
// case letters and underscore
func ValidName(s string) bool {
	if 0 == len(s) {
		return false
	}
	for i := 0; i < len(s); i += 1 {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case '_' == c:
		default:
			return false
		}
	}
	return true
}

// addresses are ASCII so byte reversal is safe
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
