// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope

import (
	"encoding/base64"
	"encoding/binary"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/transactionrecord"
)

// only single signature envelopes are produced or accepted
const signatureCount = 1

// bytes following the body: count, hint, length, signature
const signatureBlockLength = 4 + account.HintLength + 4 + ed25519.SignatureSize

// Envelope - a signed transaction
type Envelope struct {
	Transaction *transactionrecord.Transaction `json:"transaction"`
	Body        transactionrecord.Packed       `json:"-"`
	Hint        account.Hint                   `json:"-"`
	Signature   account.Signature              `json:"signature"`
	Hash        Digest                         `json:"hash"`
}

// Sign - serialise, hash and sign a transaction
//
// the key pair must control the transaction source account
func Sign(tx *transactionrecord.Transaction, keyPair *keypair.KeyPair, networkID chain.NetworkID) (*Envelope, error) {
	if nil == keyPair {
		return nil, fault.ErrNotPrivateKey
	}
	if nil == tx.Source {
		return nil, fault.ErrMissingSource
	}
	if !tx.Source.Equal(keyPair.Account()) {
		return nil, fault.ErrSourceMismatch
	}

	body, err := tx.Pack()
	if nil != err {
		return nil, err
	}

	hash := HashBody(networkID, body)

	return &Envelope{
		Transaction: tx,
		Body:        body,
		Hint:        keyPair.Account().Hint(),
		Signature:   keyPair.Sign(hash[:]),
		Hash:        hash,
	}, nil
}

// SignWithSecret - sign using an "S..." encoded secret
func SignWithSecret(tx *transactionrecord.Transaction, secret string, networkID chain.NetworkID) (*Envelope, error) {
	keyPair, err := keypair.FromSecret(secret)
	if nil != err {
		return nil, err
	}
	return Sign(tx, keyPair, networkID)
}

// Bytes - body followed by the signature block
func (envelope *Envelope) Bytes() []byte {
	buffer := make([]byte, 0, len(envelope.Body)+signatureBlockLength)
	buffer = append(buffer, envelope.Body...)
	buffer = appendUint32(buffer, signatureCount)
	buffer = append(buffer, envelope.Hint[:]...)
	buffer = appendUint32(buffer, uint32(len(envelope.Signature)))
	return append(buffer, envelope.Signature...)
}

// Transport - base64 text to hand to the ledger gateway
func (envelope *Envelope) Transport() string {
	return base64.StdEncoding.EncodeToString(envelope.Bytes())
}

// Verify - check the hash and signature against a network
func (envelope *Envelope) Verify(networkID chain.NetworkID) error {
	if nil == envelope.Transaction || nil == envelope.Transaction.Source {
		return fault.ErrMissingSource
	}
	source := envelope.Transaction.Source

	hash := HashBody(networkID, envelope.Body)
	if hash != envelope.Hash {
		return fault.ErrInvalidSignature
	}
	if source.Hint() != envelope.Hint {
		return fault.ErrInvalidSignature
	}
	return source.CheckSignature(hash[:], envelope.Signature)
}

// FromTransport - decode base64 transport text
//
// the hash is computed for the given network; the signature is not
// checked, call Verify for that
func FromTransport(text string, networkID chain.NetworkID) (*Envelope, error) {
	data, err := base64.StdEncoding.DecodeString(text)
	if nil != err {
		return nil, fault.ErrCannotDecodeEnvelope
	}

	tx, n, err := transactionrecord.Packed(data).Unpack()
	if nil != err {
		return nil, err
	}

	body := make(transactionrecord.Packed, n)
	copy(body, data[:n])
	block := data[n:]

	if len(block) < 4 {
		return nil, fault.ErrCannotDecodeEnvelope
	}
	if signatureCount != binary.BigEndian.Uint32(block) {
		return nil, fault.ErrInvalidSignatureCount
	}
	if len(block) < signatureBlockLength {
		return nil, fault.ErrCannotDecodeEnvelope
	}
	if len(block) > signatureBlockLength {
		return nil, fault.ErrUnexpectedTrailingBytes
	}

	envelope := &Envelope{
		Transaction: tx,
		Body:        body,
		Hash:        HashBody(networkID, body),
	}
	copy(envelope.Hint[:], block[4:])

	length := binary.BigEndian.Uint32(block[4+account.HintLength:])
	if ed25519.SignatureSize != length {
		return nil, fault.ErrInvalidSignature
	}
	envelope.Signature = make(account.Signature, ed25519.SignatureSize)
	copy(envelope.Signature, block[4+account.HintLength+4:])

	return envelope, nil
}

func appendUint32(buffer []byte, value uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], value)
	return append(buffer, b[:]...)
}
