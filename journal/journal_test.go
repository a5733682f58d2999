// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/fr0g/journal"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/transactionrecord"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
	logCategory    = "journal"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialization failed: %s", err))
	}

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func signed(t *testing.T, sequence uint64) *envelope.Envelope {
	kp, err := keypair.Derive(make([]byte, 32))
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	tx := transactionrecord.New(kp.Account(), sequence, 100)
	if err := tx.AppendWrite(fmt.Sprintf("key%d", sequence), []byte("v")); nil != err {
		t.Fatalf("append error: %s", err)
	}
	e, err := envelope.Sign(tx, kp, chain.NetworkIDFromPassphrase(chain.TestingPassphrase))
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return e
}

func TestRecordGet(t *testing.T) {
	j, err := journal.OpenStorage(ldb_storage.NewMemStorage(), chain.Testing, logger.New(logCategory))
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer j.Close()

	e := signed(t, 10)
	err = j.Record(e, &gateway.SubmitResult{Hash: e.Hash.String(), Ledger: 77})
	assert.Nil(t, err, "record")

	entry, err := j.Get(e.Hash)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	assert.Equal(t, e.Hash, entry.Hash, "hash")
	assert.Equal(t, e.Transaction.Source.String(), entry.Account, "account")
	assert.Equal(t, uint64(10), entry.Sequence, "sequence")
	assert.Equal(t, 1, entry.Operations, "operations")
	assert.Equal(t, []string{"key10"}, entry.Keys, "keys")
	assert.Equal(t, e.Transport(), entry.Transport, "transport")
	assert.Equal(t, uint64(77), entry.Ledger, "ledger")
	assert.Equal(t, chain.Testing, entry.Network, "network")
	assert.WithinDuration(t, time.Now(), entry.Time, time.Minute, "time")

	_, err = j.Get(envelope.Digest{})
	assert.Equal(t, fault.ErrJournalEntryNotFound, err, "missing")
}

func TestList(t *testing.T) {
	j, err := journal.OpenStorage(ldb_storage.NewMemStorage(), chain.Testing, logger.New(logCategory))
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer j.Close()

	// sequence order differs from insertion order
	for _, sequence := range []uint64{3, 1, 300, 2} {
		assert.Nil(t, j.Record(signed(t, sequence), nil), "record %d", sequence)
	}
	assert.Nil(t, j.Put(&journal.Entry{Hash: envelope.Digest{1}, Account: "GOTHER", Sequence: 1000}), "other account")

	account := signed(t, 1).Transaction.Source.String()

	entries, err := j.List(account, 10)
	assert.Nil(t, err, "list")
	sequences := make([]uint64, len(entries))
	for i, e := range entries {
		sequences[i] = e.Sequence
	}
	assert.Equal(t, []uint64{300, 3, 2, 1}, sequences, "newest first")

	entries, err = j.List(account, 2)
	assert.Nil(t, err, "list limited")
	assert.Equal(t, 2, len(entries), "limited count")

	entries, err = j.List("GOTHER", 10)
	assert.Nil(t, err, "other")
	assert.Equal(t, 1, len(entries), "other count")

	_, err = j.List(account, 0)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count")
}

func TestOpenDirectory(t *testing.T) {
	directory := testingDirName + "/journal"

	j, err := journal.Open(directory, chain.Testing, logger.New(logCategory))
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	e := signed(t, 5)
	assert.Nil(t, j.Record(e, nil), "record")
	assert.Nil(t, j.Close(), "close")
	assert.Nil(t, j.Close(), "second close")

	_, err = j.Get(e.Hash)
	assert.NotNil(t, err, "closed")

	j, err = journal.Open(directory, chain.Testing, logger.New(logCategory))
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}
	defer j.Close()

	entry, err := j.Get(e.Hash)
	assert.Nil(t, err, "persisted")
	assert.Equal(t, uint64(5), entry.Sequence, "sequence")
}
