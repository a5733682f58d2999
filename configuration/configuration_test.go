// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/configuration"
	"github.com/bitmark-inc/fr0g/fault"
)

const sample = `
local network = chain or "testing"
return {
    data_directory = ".",
    chain = network,
    testing = {
        horizon = "http://127.0.0.1:8000/",
        base_fee = 200,
        timeout = 7,
        rate_limit = -1,
        cache_ttl = -1,
    },
    journal = {
        directory = "records",
    },
    logging = {
        size = 4096,
        count = 3,
        levels = {
            DEFAULT = "warn",
        },
    },
}
`

func writeFile(t *testing.T, dir string, name string, content string) string {
	fileName := filepath.Join(dir, name)
	err := ioutil.WriteFile(fileName, []byte(content), 0600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "fr0g-configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	dir, err = filepath.EvalSymlinks(dir)
	if nil != err {
		t.Fatalf("eval symlinks error: %s", err)
	}
	return dir
}

func TestGetConfiguration(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", sample)

	conf, err := configuration.GetConfiguration(fileName, "testnet")
	assert.Nil(t, err, "parse error")

	assert.Equal(t, dir, conf.DataDirectory, "data directory")
	assert.Equal(t, chain.Testing, conf.Chain, "canonical chain")
	assert.Equal(t, filepath.Join(dir, "log"), conf.Logging.Directory, "log directory")
	assert.Equal(t, filepath.Join(dir, "records", chain.Testing), conf.Journal.Directory, "journal directory")
	assert.Equal(t, 4096, conf.Logging.Size, "log size")
	assert.Equal(t, 3, conf.Logging.Count, "log count")
	assert.Equal(t, "warn", conf.Logging.Levels["DEFAULT"], "log level")

	fileInfo, err := os.Stat(conf.Logging.Directory)
	assert.Nil(t, err, "log directory created")
	assert.True(t, fileInfo.IsDir(), "log directory is directory")

	p, err := conf.Parameters()
	assert.Nil(t, err, "parameters")
	assert.Equal(t, "http://127.0.0.1:8000", p.Horizon, "horizon override")
	assert.Equal(t, "https://friendbot.stellar.org", p.Friendbot, "friendbot default")
	assert.Equal(t, uint32(200), p.BaseFee, "base fee override")
	assert.Equal(t, chain.NetworkIDFromPassphrase(chain.TestingPassphrase), p.ID, "network id")

	n := conf.Network()
	assert.Equal(t, 7*time.Second, n.TimeoutDuration(), "timeout")
	limit, burst := n.Rate()
	assert.Equal(t, float64(0), limit, "rate limit disabled")
	assert.Equal(t, 2, burst, "default burst")
	assert.Equal(t, time.Duration(0), n.CacheDuration(), "cache disabled")
}

func TestGetConfigurationChainVariable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", sample)

	conf, err := configuration.GetConfiguration(fileName, "local")
	assert.Nil(t, err, "parse error")
	assert.Equal(t, chain.Local, conf.Chain, "chain from variable")

	p, err := conf.Parameters()
	assert.Nil(t, err, "parameters")
	assert.Equal(t, "http://localhost:8000", p.Horizon, "local horizon not overridden")
	assert.Equal(t, uint32(chain.DefaultBaseFee), p.BaseFee, "local base fee")

	n := conf.Network()
	assert.Equal(t, 30*time.Second, n.TimeoutDuration(), "default timeout")
	limit, burst := n.Rate()
	assert.Equal(t, float64(5), limit, "default rate")
	assert.Equal(t, 2, burst, "default burst")
	assert.Equal(t, 5*time.Second, n.CacheDuration(), "default cache")
}

func TestGetConfigurationInvalidChain(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", sample)

	_, err := configuration.GetConfiguration(fileName, "bitcoin")
	assert.NotNil(t, err, "unsupported chain accepted")
}

func TestGetConfigurationNotTable(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", `return "text"`)

	_, err := configuration.GetConfiguration(fileName, "testing")
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "non-table result")
}

func TestGetConfigurationSyntaxError(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", `return {`)

	_, err := configuration.GetConfiguration(fileName, "testing")
	assert.NotNil(t, err, "syntax error accepted")
}

func TestGetConfigurationBadLogFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	fileName := writeFile(t, dir, "fr0g.conf", `return { logging = { file = "sub/fr0g.log" } }`)

	_, err := configuration.GetConfiguration(fileName, "testing")
	assert.NotNil(t, err, "log file with directory accepted")
}

func TestNew(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	conf, err := configuration.New(dir, "live")
	assert.Nil(t, err, "defaults")
	assert.Equal(t, chain.Live, conf.Chain, "chain")
	assert.Equal(t, filepath.Join(dir, "journal", chain.Live), conf.Journal.Directory, "journal directory")

	p, err := conf.Parameters()
	assert.Nil(t, err, "parameters")
	assert.Equal(t, "https://horizon.stellar.org", p.Horizon, "live horizon")
	assert.Equal(t, "", p.Friendbot, "no live friendbot")
}

func TestNewMissingDirectory(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	_, err := configuration.New(filepath.Join(dir, "absent"), "testing")
	assert.NotNil(t, err, "missing data directory accepted")
}
