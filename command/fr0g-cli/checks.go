// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/keypair"
)

// command line errors - keep in alphabetic order
var (
	ErrIncompatibleOptions = fault.InvalidError("incompatible options")
	ErrJournalDisabled     = fault.InvalidError("journal is disabled")
	ErrNotSetup            = fault.NotFoundError("identity file not found: run setup first")
	ErrRequiredDescription = fault.InvalidError("description is required")
	ErrRequiredFileIndex   = fault.InvalidError("file index is required")
	ErrRequiredFileName    = fault.InvalidError("file name is required")
	ErrRequiredHash        = fault.InvalidError("transaction hash is required")
	ErrRequiredIdentity    = fault.InvalidError("identity is required")
	ErrRequiredKey         = fault.InvalidError("key is required")
	ErrRequiredTransport   = fault.InvalidError("transaction transport text is required")
)

// identity is required, but not check the config file
func checkName(name string) (string, error) {
	if "" == name {
		return "", ErrRequiredIdentity
	}

	return name, nil
}

// description is required
func checkDescription(description string) (string, error) {
	if "" == description {
		return "", ErrRequiredDescription
	}

	return description, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", ErrRequiredFileName
	}

	return fileName, nil
}

func checkFileIndex(index uint64) (uint64, error) {
	if 0 == index {
		return 0, ErrRequiredFileIndex
	}
	return index, nil
}

func checkKey(key string) (string, error) {
	if "" == key {
		return "", ErrRequiredKey
	}
	return key, nil
}

// seed is optional:
//   blank          = make a new random key pair
//   S...           = encoded secret
//   64 hex digits  = raw seed
func checkSeed(seed string) (*keypair.KeyPair, error) {
	seed = strings.TrimSpace(seed)
	switch {
	case "" == seed:
		return keypair.New()
	case strings.HasPrefix(seed, "S"):
		return keypair.FromSecret(seed)
	}

	s, err := account.SeedFromHex(seed)
	if nil != err {
		return nil, err
	}
	return keypair.Derive(s[:])
}
