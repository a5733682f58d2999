// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RetryableError GenericError
type TransportError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound         = NotFoundError("account not found")
	ErrBadSequence             = RetryableError("sequence number mismatch")
	ErrCannotDecodeAddress     = InvalidError("cannot decode address")
	ErrCannotDecodeEnvelope    = InvalidError("cannot decode envelope")
	ErrChecksumMismatch        = InvalidError("checksum mismatch")
	ErrConfigurationNotTable   = InvalidError("configuration did not return a table")
	ErrCryptoFailed            = InvalidError("cryptographic operation failed")
	ErrEmptyKey                = InvalidError("key is empty")
	ErrFeeTooLarge             = InvalidError("fee exceeds 32 bits")
	ErrGatewayUnreachable      = TransportError("ledger gateway unreachable")
	ErrIdentityNameExists      = ExistsError("identity name already exists")
	ErrIdentityNameNotFound    = NotFoundError("identity name not found")
	ErrInvalidChain            = InvalidError("invalid chain")
	ErrInvalidCount            = InvalidError("invalid count")
	ErrInvalidFee              = InvalidError("fee is not a multiple of operation count")
	ErrInvalidFileIndex        = InvalidError("invalid file index")
	ErrInvalidIdentity         = InvalidError("invalid identity")
	ErrInvalidKeyLength        = InvalidError("invalid key length")
	ErrInvalidPadding          = InvalidError("non-zero padding")
	ErrInvalidPasswordLength   = InvalidError("invalid password length")
	ErrInvalidSaltLength       = InvalidError("invalid salt length")
	ErrInvalidSeedLength       = InvalidError("invalid seed length")
	ErrInvalidSignature        = InvalidError("invalid signature")
	ErrInvalidSignatureCount   = InvalidError("invalid signature count")
	ErrInvalidVersionByte      = InvalidError("invalid version byte")
	ErrJournalEntryNotFound    = NotFoundError("journal entry not found")
	ErrKeyNotASCII             = InvalidError("key is not ASCII")
	ErrKeyTooLong              = InvalidError("key too long")
	ErrMissingEndpoint         = InvalidError("missing gateway endpoint")
	ErrMissingSource           = InvalidError("missing source account")
	ErrNotPrivateKey           = InvalidError("not a private key")
	ErrObjectNotFound          = NotFoundError("object not found")
	ErrObjectTooLarge          = InvalidError("object needs more operations than one transaction allows")
	ErrPasswordMismatch        = InvalidError("password mismatch")
	ErrSourceMismatch          = InvalidError("source account does not match signing key")
	ErrSubmissionRejected      = ProcessError("submission rejected")
	ErrTooManyOperations       = InvalidError("too many operations")
	ErrUnexpectedTrailingBytes = InvalidError("unexpected trailing bytes")
	ErrUnsupportedDiscriminant = InvalidError("unsupported discriminant")
	ErrValueTooLong            = InvalidError("value too long")
	ErrWrongPassword           = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RetryableError) Error() string { return string(e) }
func (e TransportError) Error() string { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool    { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool   { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool  { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool   { var x ProcessError; return errors.As(e, &x) }
func IsErrRetryable(e error) bool { var x RetryableError; return errors.As(e, &x) }
func IsErrTransport(e error) bool { var x TransportError; return errors.As(e, &x) }
