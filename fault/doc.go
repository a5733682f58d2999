// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Each error
// belongs to a class so that callers can decide how to react:
//
//   InvalidError    - bad input, detected before any network effect
//   NotFoundError   - the ledger holds no such item
//   ExistsError     - duplicate item in a local store
//   ProcessError    - the ledger or a local store refused the request
//   RetryableError  - sequence number race, re-read the account and rebuild
//   TransportError  - the ledger gateway could not be reached
package fault
