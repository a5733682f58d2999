// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory")
const (
	defaultLogDirectory = "log"
	defaultLogFile      = "fr0g.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultJournalDirectory = "journal"

	defaultTimeout   = 30 // seconds
	defaultRateLimit = 5  // requests per second
	defaultRateBurst = 2
	defaultCacheTTL  = 5 // seconds
)

// to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	"gateway":         "info",
	"objectstore":     "info",
	logger.DefaultTag: "critical",
}

// NetworkType - overrides for one network, zero values keep the default
type NetworkType struct {
	Horizon   string  `gluamapper:"horizon" json:"horizon"`
	Friendbot string  `gluamapper:"friendbot" json:"friendbot"`
	BaseFee   int     `gluamapper:"base_fee" json:"base_fee"`
	Timeout   int     `gluamapper:"timeout" json:"timeout"`
	RateLimit float64 `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst int     `gluamapper:"rate_burst" json:"rate_burst"`
	CacheTTL  int     `gluamapper:"cache_ttl" json:"cache_ttl"`
}

// JournalType - local record of submissions
type JournalType struct {
	Disable   bool   `gluamapper:"disable" json:"disable"`
	Directory string `gluamapper:"directory" json:"directory"`
}

// Configuration - everything read from the Lua file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Live          NetworkType          `gluamapper:"live" json:"live"`
	Testing       NetworkType          `gluamapper:"testing" json:"testing"`
	Local         NetworkType          `gluamapper:"local" json:"local"`
	Journal       JournalType          `gluamapper:"journal" json:"journal"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// New - defaults rooted at a data directory, no file is read
func New(dataDirectory string, chainName string) (*Configuration, error) {
	options := defaults(dataDirectory, chainName)
	if err := options.resolve(); nil != err {
		return nil, err
	}
	return options, nil
}

func defaults(dataDirectory string, chainName string) *Configuration {
	levels := make(map[string]string, len(defaultLogLevels))
	for k, v := range defaultLogLevels {
		levels[k] = v
	}
	return &Configuration{
		DataDirectory: dataDirectory,
		Chain:         chainName,
		Journal: JournalType{
			Directory: defaultJournalDirectory,
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}
}

// GetConfiguration - read decode and verify a configuration file
//
// a data_directory of "." (the default) means the directory
// containing the file
func GetConfiguration(configurationFileName string, chainName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := defaults(".", chainName)

	variables := map[string]string{
		"chain": chainName,
	}
	if err := ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}

	if err := options.resolve(); nil != err {
		return nil, err
	}
	return options, nil
}

// check chain and make all paths absolute
func (options *Configuration) resolve() error {
	name, err := chain.Canonical(options.Chain)
	if nil != err {
		return fmt.Errorf("chain: %q is not supported", options.Chain)
	}
	options.Chain = name

	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return err
	} else if !fileInfo.IsDir() {
		return fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	directories := []*string{&options.Logging.Directory}
	if !options.Journal.Disable {
		directories = append(directories, &options.Journal.Directory)
	}
	for _, d := range directories {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return err
		}
	}
	if !options.Journal.Disable {
		options.Journal.Directory = filepath.Join(options.Journal.Directory, options.Chain)
	}

	return nil
}

// Network - the override block of the selected chain
func (options *Configuration) Network() NetworkType {
	switch options.Chain {
	case chain.Live:
		return options.Live
	case chain.Local:
		return options.Local
	default:
		return options.Testing
	}
}

// Parameters - chain defaults with overrides applied
func (options *Configuration) Parameters() (*chain.Parameters, error) {
	p, err := chain.Defaults(options.Chain)
	if nil != err {
		return nil, err
	}
	n := options.Network()
	if "" != n.Horizon {
		p.Horizon = strings.TrimSuffix(n.Horizon, "/")
	}
	if "" != n.Friendbot {
		p.Friendbot = n.Friendbot
	}
	if n.BaseFee > 0 {
		p.BaseFee = uint32(n.BaseFee)
	}
	return p, nil
}

// Timeout - HTTP timeout
func (n NetworkType) TimeoutDuration() time.Duration {
	if n.Timeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(n.Timeout) * time.Second
}

// Rate - requests per second and burst; negative rate disables limiting
func (n NetworkType) Rate() (float64, int) {
	limit := n.RateLimit
	switch {
	case limit < 0:
		limit = 0
	case 0 == limit:
		limit = defaultRateLimit
	}
	burst := n.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	return limit, burst
}

// CacheDuration - account cache lifetime; negative disables the cache
func (n NetworkType) CacheDuration() time.Duration {
	switch {
	case n.CacheTTL < 0:
		return 0
	case 0 == n.CacheTTL:
		return defaultCacheTTL * time.Second
	default:
		return time.Duration(n.CacheTTL) * time.Second
	}
}
