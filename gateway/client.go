// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fr0g/envelope"
	"github.com/bitmark-inc/fr0g/fault"
	"github.com/bitmark-inc/fr0g/version"
	"github.com/bitmark-inc/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateBurst = 1

	badSequence = "tx_bad_seq"
)

// Configuration - client settings
//
// RateLimit is requests per second, zero means unlimited; CacheTTL of
// zero disables the account cache
type Configuration struct {
	Horizon   string
	Friendbot string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	CacheTTL  time.Duration
}

// Client - REST client for a Horizon style ledger gateway
type Client struct {
	log       *logger.L
	rest      *resty.Client
	friendbot string
	limiter   *rate.Limiter
	accounts  *cache.Cache
}

// JSON bodies from the gateway
type accountReply struct {
	AccountID string            `json:"account_id"`
	Sequence  string            `json:"sequence"`
	Data      map[string]string `json:"data"`
}

type submitReply struct {
	Hash   string `json:"hash"`
	Ledger uint64 `json:"ledger"`
}

type problemReply struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}

// New - create a client
func New(configuration Configuration, log *logger.L) (*Client, error) {
	if "" == configuration.Horizon {
		return nil, fault.ErrMissingEndpoint
	}
	if _, err := url.Parse(configuration.Horizon); nil != err {
		return nil, err
	}

	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	burst := configuration.RateBurst
	if configuration.RateLimit > 0 {
		limit = rate.Limit(configuration.RateLimit)
	}
	if burst <= 0 {
		burst = defaultRateBurst
	}

	c := &Client{
		log: log,
		rest: resty.New().
			SetHostURL(strings.TrimSuffix(configuration.Horizon, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", version.UserAgent),
		friendbot: configuration.Friendbot,
		limiter:   rate.NewLimiter(limit, burst),
	}
	if configuration.CacheTTL > 0 {
		c.accounts = cache.New(configuration.CacheTTL, 2*configuration.CacheTTL)
	}

	log.Infof("horizon: %s  timeout: %s  rate: %v  cache: %s", configuration.Horizon, timeout, limit, configuration.CacheTTL)
	return c, nil
}

// Account - fetch sequence number and data entries
func (c *Client) Account(ctx context.Context, address string) (*AccountState, error) {
	if nil != c.accounts {
		if cached, found := c.accounts.Get(address); found {
			c.log.Debugf("account: %s  from cache", address)
			return cached.(*AccountState).clone(), nil
		}
	}

	if err := c.limiter.Wait(ctx); nil != err {
		return nil, err
	}

	var reply accountReply
	var problem problemReply
	response, err := c.rest.R().
		SetContext(ctx).
		SetResult(&reply).
		SetError(&problem).
		Get("/accounts/" + url.PathEscape(address))
	if nil != err {
		c.log.Errorf("account: %s  error: %s", address, err)
		return nil, fmt.Errorf("%w: %s", fault.ErrGatewayUnreachable, err)
	}

	switch status := response.StatusCode(); {
	case http.StatusNotFound == status:
		return nil, fault.ErrAccountNotFound
	case response.IsError():
		c.log.Warnf("account: %s  status: %d  title: %q", address, status, problem.Title)
		return nil, fmt.Errorf("%w: status: %d %s", fault.ErrSubmissionRejected, status, problem.Title)
	}

	state, err := reply.state(address)
	if nil != err {
		return nil, err
	}
	c.log.Debugf("account: %s  sequence: %d  entries: %d", address, state.Sequence, len(state.Data))

	if nil != c.accounts {
		c.accounts.Set(address, state.clone(), cache.DefaultExpiration)
	}
	return state, nil
}

// Submit - post a signed envelope
//
// a sequence number mismatch is returned as fault.ErrBadSequence so
// the caller can re-read the account and rebuild
func (c *Client) Submit(ctx context.Context, e *envelope.Envelope) (*SubmitResult, error) {
	if nil != c.accounts && nil != e.Transaction && nil != e.Transaction.Source {
		c.accounts.Delete(e.Transaction.Source.String())
	}

	if err := c.limiter.Wait(ctx); nil != err {
		return nil, err
	}

	var reply submitReply
	var problem problemReply
	response, err := c.rest.R().
		SetContext(ctx).
		SetResult(&reply).
		SetError(&problem).
		SetFormData(map[string]string{"tx": e.Transport()}).
		Post("/transactions")
	if nil != err {
		c.log.Errorf("submit: %s  error: %s", e.Hash, err)
		return nil, fmt.Errorf("%w: %s", fault.ErrGatewayUnreachable, err)
	}

	if response.IsError() {
		codes := problem.Extras.ResultCodes
		c.log.Warnf("submit: %s  status: %d  result: %s  operations: %v", e.Hash, response.StatusCode(), codes.Transaction, codes.Operations)
		if badSequence == codes.Transaction {
			return nil, fault.ErrBadSequence
		}
		return nil, fmt.Errorf("%w: status: %d  result: %s  operations: %v", fault.ErrSubmissionRejected, response.StatusCode(), codes.Transaction, codes.Operations)
	}

	c.log.Infof("submitted: %s  ledger: %d", reply.Hash, reply.Ledger)
	return &SubmitResult{
		Hash:   reply.Hash,
		Ledger: reply.Ledger,
	}, nil
}

// Fund - ask the funding service to create an account
func (c *Client) Fund(ctx context.Context, address string) error {
	if "" == c.friendbot {
		return fault.ErrMissingEndpoint
	}

	if err := c.limiter.Wait(ctx); nil != err {
		return err
	}

	var problem problemReply
	response, err := c.rest.R().
		SetContext(ctx).
		SetError(&problem).
		SetQueryParam("addr", address).
		Get(c.friendbot)
	if nil != err {
		c.log.Errorf("fund: %s  error: %s", address, err)
		return fmt.Errorf("%w: %s", fault.ErrGatewayUnreachable, err)
	}
	if response.IsError() {
		c.log.Warnf("fund: %s  status: %d  detail: %s", address, response.StatusCode(), problem.Detail)
		return fmt.Errorf("%w: fund status: %d %s", fault.ErrSubmissionRejected, response.StatusCode(), problem.Detail)
	}

	if nil != c.accounts {
		c.accounts.Delete(address)
	}
	c.log.Infof("funded: %s", address)
	return nil
}

// convert a JSON reply, data values are base64 of raw bytes
func (reply *accountReply) state(address string) (*AccountState, error) {
	sequence, err := strconv.ParseUint(reply.Sequence, 10, 64)
	if nil != err {
		return nil, fmt.Errorf("%w: sequence: %q", fault.ErrSubmissionRejected, reply.Sequence)
	}

	state := &AccountState{
		Address:  address,
		Sequence: sequence,
		Data:     make(map[string][]byte, len(reply.Data)),
	}
	for k, v := range reply.Data {
		b, err := base64.StdEncoding.DecodeString(v)
		if nil != err {
			return nil, fmt.Errorf("%w: data key: %q", fault.ErrSubmissionRejected, k)
		}
		state.Data[k] = b
	}
	return state, nil
}

func (state *AccountState) clone() *AccountState {
	data := make(map[string][]byte, len(state.Data))
	for k, v := range state.Data {
		data[k] = v
	}
	return &AccountState{
		Address:  state.Address,
		Sequence: state.Sequence,
		Data:     data,
	}
}
