// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/gateway"
	"github.com/bitmark-inc/fr0g/keypair"
	"github.com/bitmark-inc/fr0g/transactionrecord"
	"github.com/bitmark-inc/fr0g/version"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
	logCategory    = "gateway"

	address = "GA5WUJ54Z23KILLCUOUNAKTPBVZWKMQVO4O6EQ5GHLAERIMLLHNCSKYH"
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

func newClient(t *testing.T, server *httptest.Server, cacheTTL time.Duration) *gateway.Client {
	c, err := gateway.New(gateway.Configuration{
		Horizon:   server.URL,
		Friendbot: server.URL + "/friendbot",
		Timeout:   5 * time.Second,
		CacheTTL:  cacheTTL,
	}, logger.New(logCategory))
	if nil != err {
		t.Fatalf("new client error: %s", err)
	}
	return c
}

func signedEnvelope(t *testing.T) *envelope.Envelope {
	kp, err := keypair.Derive(make([]byte, 32))
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	tx := transactionrecord.New(kp.Account(), 5, 100)
	if err := tx.AppendWrite("hello", []byte("world")); nil != err {
		t.Fatalf("append error: %s", err)
	}
	e, err := envelope.Sign(tx, kp, chain.NetworkIDFromPassphrase(chain.TestingPassphrase))
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return e
}

func TestAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "method")
		assert.Equal(t, "/accounts/"+address, r.URL.Path, "path")
		assert.Equal(t, version.UserAgent, r.Header.Get("User-Agent"), "user agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"account_id":%q,"sequence":"123456789012","data":{"f1c1:3":"AQID","bin":"/wD+"}}`, address)
	}))
	defer server.Close()

	state, err := newClient(t, server, 0).Account(context.Background(), address)
	if nil != err {
		t.Fatalf("account error: %s", err)
	}
	assert.Equal(t, address, state.Address, "address")
	assert.Equal(t, uint64(123456789012), state.Sequence, "sequence")
	assert.Equal(t, []byte{1, 2, 3}, state.Data["f1c1:3"], "chunk value")
	assert.Equal(t, []byte{0xff, 0x00, 0xfe}, state.Data["bin"], "binary value kept intact")
}

func TestAccountNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"title":"Resource Missing","status":404}`)
	}))
	defer server.Close()

	_, err := newClient(t, server, 0).Account(context.Background(), address)
	assert.Equal(t, fault.ErrAccountNotFound, err, "not found")
	assert.True(t, fault.IsErrNotFound(err), "not found class")
}

func TestAccountCache(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/transactions":
			fmt.Fprint(w, `{"hash":"abc","ledger":7}`)
		default:
			n := atomic.AddInt32(&requests, 1)
			fmt.Fprintf(w, `{"account_id":%q,"sequence":"%d","data":{}}`, address, n)
		}
	}))
	defer server.Close()

	c := newClient(t, server, time.Minute)
	ctx := context.Background()

	first, err := c.Account(ctx, address)
	assert.Nil(t, err, "first")
	first.Data["mutated"] = []byte{1}

	second, err := c.Account(ctx, address)
	assert.Nil(t, err, "second")
	assert.Equal(t, uint64(1), second.Sequence, "cached sequence")
	assert.Equal(t, 0, len(second.Data), "cache not changed by caller")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "one request")

	_, err = c.Submit(ctx, signedEnvelope(t))
	assert.Nil(t, err, "submit")

	third, err := c.Account(ctx, address)
	assert.Nil(t, err, "third")
	assert.Equal(t, uint64(2), third.Sequence, "refreshed after submit")
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests), "two requests")
}

func TestSubmit(t *testing.T) {
	e := signedEnvelope(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method, "method")
		assert.Equal(t, "/transactions", r.URL.Path, "path")
		assert.Nil(t, r.ParseForm(), "parse form")
		assert.Equal(t, e.Transport(), r.PostForm.Get("tx"), "transport")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"hash":%q,"ledger":4242}`, e.Hash.String())
	}))
	defer server.Close()

	result, err := newClient(t, server, 0).Submit(context.Background(), e)
	if nil != err {
		t.Fatalf("submit error: %s", err)
	}
	assert.Equal(t, e.Hash.String(), result.Hash, "hash")
	assert.Equal(t, uint64(4242), result.Ledger, "ledger")
}

func TestSubmitRejected(t *testing.T) {
	type rejection struct {
		status    int
		result    string
		retryable bool
	}
	rejections := []rejection{
		{http.StatusBadRequest, "tx_bad_seq", true},
		{http.StatusBadRequest, "tx_insufficient_fee", false},
		{http.StatusInternalServerError, "", false},
	}

	for _, r := range rejections {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(r.status)
			fmt.Fprintf(w, `{"title":"Transaction Failed","status":%d,"extras":{"result_codes":{"transaction":%q}}}`, r.status, r.result)
		}))

		_, err := newClient(t, server, 0).Submit(context.Background(), signedEnvelope(t))
		server.Close()

		assert.NotNil(t, err, "%d %s: error", r.status, r.result)
		assert.Equal(t, r.retryable, fault.IsErrRetryable(err), "%d %s: retryable", r.status, r.result)
		assert.Equal(t, !r.retryable, fault.IsErrProcess(err), "%d %s: process", r.status, r.result)
	}
}

func TestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := gateway.New(gateway.Configuration{
		Horizon:   url,
		Friendbot: url + "/friendbot",
		Timeout:   time.Second,
	}, logger.New(logCategory))
	assert.Nil(t, err, "new")

	_, err = c.Account(context.Background(), address)
	assert.True(t, fault.IsErrTransport(err), "account: %v", err)

	_, err = c.Submit(context.Background(), signedEnvelope(t))
	assert.True(t, fault.IsErrTransport(err), "submit: %v", err)

	err = c.Fund(context.Background(), address)
	assert.True(t, fault.IsErrTransport(err), "fund: %v", err)
}

func TestFund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/friendbot", r.URL.Path, "path")
		if address != r.URL.Query().Get("addr") {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"title":"Bad Request","detail":"already funded"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"hash":"abc"}`)
	}))
	defer server.Close()

	c := newClient(t, server, 0)
	assert.Nil(t, c.Fund(context.Background(), address), "fund")

	err := c.Fund(context.Background(), "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF")
	assert.True(t, fault.IsErrProcess(err), "rejected: %v", err)
}

func TestNewInvalid(t *testing.T) {
	_, err := gateway.New(gateway.Configuration{}, logger.New(logCategory))
	assert.Equal(t, fault.ErrMissingEndpoint, err, "no horizon")

	c, err := gateway.New(gateway.Configuration{Horizon: "http://localhost:1"}, logger.New(logCategory))
	assert.Nil(t, err, "no friendbot")
	assert.Equal(t, fault.ErrMissingEndpoint, c.Fund(context.Background(), address), "fund without friendbot")
}

func TestRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"account_id":%q,"sequence":"1","data":{}}`, address)
	}))
	defer server.Close()

	c, err := gateway.New(gateway.Configuration{
		Horizon:   server.URL,
		RateLimit: 20,
		RateBurst: 1,
	}, logger.New(logCategory))
	assert.Nil(t, err, "new")

	start := time.Now()
	for i := 0; i < 5; i += 1 {
		_, err := c.Account(context.Background(), address)
		assert.Nil(t, err, "account %d", i)
	}
	assert.True(t, time.Since(start) >= 150*time.Millisecond, "requests were spaced out")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Account(ctx, address)
	assert.NotNil(t, err, "cancelled context")
}
