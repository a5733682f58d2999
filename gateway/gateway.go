// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"context"

	"github.com/bitmark-inc/fr0g/envelope"
)

// AccountState - the parts of a ledger account that are used here
type AccountState struct {
	Address  string            `json:"address"`
	Sequence uint64            `json:"sequence,string"`
	Data     map[string][]byte `json:"data"`
}

// SubmitResult - ledger response to an accepted envelope
type SubmitResult struct {
	Hash   string `json:"hash"`
	Ledger uint64 `json:"ledger"`
}

// Gateway - read account state and submit signed envelopes
type Gateway interface {
	Account(ctx context.Context, address string) (*AccountState, error)
	Submit(ctx context.Context, e *envelope.Envelope) (*SubmitResult, error)
}

// Funder - create and fund a new account on a test network
type Funder interface {
	Fund(ctx context.Context, address string) error
}
