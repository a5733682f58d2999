// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bitmark-inc/fr0g/account"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/identity"
	"github.com/bitmark-inc/fr0g/keypair"
)

// Configuration - identity file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	Network         string              `json:"network"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
//
// Data and Salt are empty for a receive only identity
type Identity struct {
	Description string `json:"description"`
	Account     string `json:"account"`
	Data        string `json:"data"`
	Salt        string `json:"salt"`
}

// InfoIdentity - restricted view of one identity (excludes private items)
type InfoIdentity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
	ID          string `json:"id"`
	Private     bool   `json:"private"`
}

// Info - restricted view of configuration
type Info struct {
	DefaultIdentity string         `json:"default_identity"`
	Network         string         `json:"network"`
	Identities      []InfoIdentity `json:"identities"`
}

// New - empty configuration for a network
func New(network string, defaultIdentity string) *Configuration {
	return &Configuration{
		DefaultIdentity: defaultIdentity,
		Network:         network,
		Identities:      make(map[string]Identity),
	}
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	options := &Configuration{}

	err := readConfiguration(filename, options)
	if nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// generic JSON decoder
func readConfiguration(filename string, options interface{}) error {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return err
	}

	f, err := os.Open(filename)
	if nil != err {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	return dec.Decode(options)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	if "" == name {
		name = config.DefaultIdentity
	}
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.ErrIdentityNameNotFound
	}

	return &id, nil
}

// Account - find identity for a given name and convert to an account
//
// a name that is not in the file is tried as an address or fr0g ID
func (config *Configuration) Account(name string) (*account.Account, error) {
	id, err := config.Identity(name)
	if nil == err {
		return account.FromAddress(id.Account)
	}
	if "" == name {
		return nil, err
	}
	acc, e := identity.AccountFromText(name)
	if nil != e {
		return nil, err
	}
	return acc, nil
}

// KeyPair - find identity and decrypt the secret for a given name
func (config *Configuration) KeyPair(password string, name string) (*keypair.KeyPair, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}

	return decryptIdentity(password, id)
}

// AddIdentity - store encrypted identity
func (config *Configuration) AddIdentity(name string, description string, keyPair *keypair.KeyPair, password string) error {

	if _, ok := config.Identities[name]; ok {
		return fault.ErrIdentityNameExists
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(keyPair.EncodedSecret, secretKey)
	if nil != err {
		return err
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     keyPair.EncodedPublic,
		Data:        encrypted,
		Salt:        salt.String(),
	}

	return nil
}

// AddReceiveOnlyIdentity - store public-only identity
func (config *Configuration) AddReceiveOnlyIdentity(name string, description string, acc *account.Account) error {

	if _, ok := config.Identities[name]; ok {
		return fault.ErrIdentityNameExists
	}

	config.Identities[name] = Identity{
		Description: description,
		Account:     acc.String(),
	}

	return nil
}

// Info - configuration without secrets, identities sorted by name
func (config *Configuration) Info() (*Info, error) {
	info := &Info{
		DefaultIdentity: config.DefaultIdentity,
		Network:         config.Network,
		Identities:      make([]InfoIdentity, 0, len(config.Identities)),
	}

	for name, id := range config.Identities {
		acc, err := account.FromAddress(id.Account)
		if nil != err {
			return nil, err
		}
		info.Identities = append(info.Identities, InfoIdentity{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
			ID:          identity.ID(acc),
			Private:     "" != id.Data,
		})
	}
	sort.Slice(info.Identities, func(i int, j int) bool {
		return info.Identities[i].Name < info.Identities[j].Name
	})

	return info, nil
}
