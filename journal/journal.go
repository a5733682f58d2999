// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/logger"
)

// key prefixes
//   H<hash>                       → JSON entry
//   S<account>\x00<BE sequence>   → hash
const (
	hashPrefix     = 'H'
	sequencePrefix = 'S'
)

const currentVersion = 1

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// Entry - one accepted submission
type Entry struct {
	Hash       envelope.Digest `json:"hash"`
	Account    string          `json:"account"`
	Sequence   uint64          `json:"sequence,string"`
	Operations int             `json:"operations"`
	Keys       []string        `json:"keys"`
	Transport  string          `json:"transport"`
	Ledger     uint64          `json:"ledger"`
	Network    string          `json:"network"`
	Time       time.Time       `json:"time"`
}

// Journal - leveldb record of submitted envelopes
type Journal struct {
	sync.RWMutex
	log      *logger.L
	network  string
	database *leveldb.DB
}

// Open - open or create a journal directory
func Open(directory string, network string, log *logger.L) (*Journal, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, network, log)
}

// OpenStorage - open on an explicit leveldb storage
func OpenStorage(stor ldb_storage.Storage, network string, log *logger.L) (*Journal, error) {
	db, err := leveldb.Open(stor, nil)
	if nil != err {
		return nil, err
	}
	return setup(db, network, log)
}

func setup(db *leveldb.DB, network string, log *logger.L) (*Journal, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		version := make([]byte, 4)
		binary.BigEndian.PutUint32(version, currentVersion)
		err = db.Put(versionKey, version, nil)
	} else if nil == err && (4 != len(versionValue) || currentVersion != binary.BigEndian.Uint32(versionValue)) {
		err = fmt.Errorf("incompatible journal version: %x", versionValue)
	}
	if nil != err {
		db.Close()
		return nil, err
	}

	log.Infof("journal opened for network: %s", network)
	return &Journal{
		log:      log,
		network:  network,
		database: db,
	}, nil
}

// Close - flush and close the database
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()
	if nil == j.database {
		return nil
	}
	err := j.database.Close()
	j.database = nil
	return err
}

// Record - journal an accepted envelope
func (j *Journal) Record(e *envelope.Envelope, result *gateway.SubmitResult) error {
	entry := &Entry{
		Hash:       e.Hash,
		Account:    e.Transaction.Source.String(),
		Sequence:   e.Transaction.Sequence,
		Operations: len(e.Transaction.Operations),
		Keys:       e.Transaction.Keys(),
		Transport:  e.Transport(),
		Network:    j.network,
		Time:       time.Now().UTC(),
	}
	if nil != result {
		entry.Ledger = result.Ledger
	}
	return j.Put(entry)
}

// Put - store an entry, replacing one with the same hash
func (j *Journal) Put(entry *Entry) error {
	value, err := json.Marshal(entry)
	if nil != err {
		return err
	}

	j.RLock()
	defer j.RUnlock()
	if nil == j.database {
		return leveldb.ErrClosed
	}

	batch := new(leveldb.Batch)
	batch.Put(hashKey(entry.Hash), value)
	batch.Put(sequenceKey(entry.Account, entry.Sequence), entry.Hash[:])

	err = j.database.Write(batch, nil)
	if nil != err {
		j.log.Errorf("put: %s  error: %s", entry.Hash, err)
		return err
	}
	j.log.Debugf("put: %s  account: %s  sequence: %d", entry.Hash, entry.Account, entry.Sequence)
	return nil
}

// Get - fetch an entry by hash
func (j *Journal) Get(hash envelope.Digest) (*Entry, error) {
	j.RLock()
	defer j.RUnlock()
	if nil == j.database {
		return nil, leveldb.ErrClosed
	}
	return j.get(hash)
}

func (j *Journal) get(hash envelope.Digest) (*Entry, error) {
	value, err := j.database.Get(hashKey(hash), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrJournalEntryNotFound
	}
	if nil != err {
		return nil, err
	}
	var entry Entry
	err = json.Unmarshal(value, &entry)
	if nil != err {
		return nil, err
	}
	return &entry, nil
}

// List - newest entries of an account, highest sequence first
func (j *Journal) List(account string, count int) ([]*Entry, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	j.RLock()
	defer j.RUnlock()
	if nil == j.database {
		return nil, leveldb.ErrClosed
	}

	iter := j.database.NewIterator(ldb_util.BytesPrefix(accountPrefix(account)), nil)
	defer iter.Release()

	entries := make([]*Entry, 0, count)
	for ok := iter.Last(); ok && len(entries) < count; ok = iter.Prev() {
		var hash envelope.Digest
		if envelope.DigestLength != len(iter.Value()) {
			continue
		}
		copy(hash[:], iter.Value())

		entry, err := j.get(hash)
		if nil != err {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, iter.Error()
}

func hashKey(hash envelope.Digest) []byte {
	key := make([]byte, 1, 1+len(hash))
	key[0] = hashPrefix
	return append(key, hash[:]...)
}

func accountPrefix(account string) []byte {
	key := make([]byte, 1, len(account)+2)
	key[0] = sequencePrefix
	key = append(key, account...)
	return append(key, 0x00)
}

func sequenceKey(account string, sequence uint64) []byte {
	var s [8]byte
	binary.BigEndian.PutUint64(s[:], sequence)
	return append(accountPrefix(account), s[:]...)
}
