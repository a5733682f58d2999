// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fr0g/chain"
	"github.com/bitmark-inc/fr0g/command/fr0g-cli/configuration"
	settings "github.com/bitmark-inc/fr0g/configuration"
	"github.com/bitmark-inc/fr0g/util"
	fr0gversion "github.com/bitmark-inc/fr0g/version"
)

type metadata struct {
	file     string
	network  string
	config   *configuration.Configuration
	settings *settings.Configuration
	save     bool
	logging  bool
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = fr0gversion.Version

// replaced by tests, which initialise logging once
var (
	initialiseLogging = logger.Initialise
	finaliseLogging   = logger.Finalise
)

// commands that run without an identity file
var noIdentityFile = map[string]bool{
	"generate": true,
	"id":       true,
	"decode":   true,
	"setup":    true,
}

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "fr0g-cli"
	app.Usage = "store small files in ledger account data"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Testing,
			Usage: " connect to ledger `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " Lua configuration `FILE` with network overrides",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise fr0g-cli configuration with a first identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing secret or hex seed `SEED`",
				},
				cli.BoolFlag{
					Name:  "enable, e",
					Usage: " fund and mark the new identity on the ledger",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing secret or hex seed `SEED`",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " receive only address or fr0g ID `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "enable, e",
					Usage: " fund and mark the new identity on the ledger",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "info",
			Usage:  "display fr0g-cli identities",
			Action: runInfo,
		},
		{
			Name:      "id",
			Usage:     "convert between address and fr0g ID",
			ArgsUsage: "[ADDRESS | ID | NAME]",
			Action:    runID,
		},
		{
			Name:   "enable",
			Usage:  "fund the identity account and write its marker",
			Action: runEnable,
		},
		{
			Name:      "set",
			Usage:     "write or delete a single data key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "key, k",
					Value: "",
					Usage: "*data `KEY` (ASCII, at most 64 bytes)",
				},
				cli.StringFlag{
					Name:  "value, V",
					Value: "",
					Usage: " data `VALUE` (at most 64 bytes)",
				},
				cli.BoolFlag{
					Name:  "delete, D",
					Usage: " remove the key",
				},
			},
			Action: runSet,
		},
		{
			Name:      "upload",
			Usage:     "store a file in one transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` to store",
				},
				cli.Uint64Flag{
					Name:  "index, x",
					Value: 0,
					Usage: " file `INDEX` [default next free index]",
				},
			},
			Action: runUpload,
		},
		{
			Name:      "download",
			Usage:     "read a stored file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "index, x",
					Value: 0,
					Usage: "*file `INDEX`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name, address or fr0g ID `ACCOUNT` default is global identity",
				},
				cli.StringFlag{
					Name:  "output, O",
					Value: "",
					Usage: " write to `FILE` instead of stdout",
				},
				cli.BoolFlag{
					Name:  "trim, t",
					Usage: " remove chunk padding",
				},
			},
			Action: runDownload,
		},
		{
			Name:  "files",
			Usage: "list stored files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name, address or fr0g ID `ACCOUNT` default is global identity",
				},
			},
			Action: runFiles,
		},
		{
			Name:      "decode",
			Usage:     "decode a base64 transaction envelope",
			ArgsUsage: "*TRANSPORT",
			Action:    runDecode,
		},
		{
			Name:      "history",
			Usage:     "list journal entries of submitted transactions",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name, address or fr0g ID `ACCOUNT` default is global identity",
				},
				cli.IntFlag{
					Name:  "count, C",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "show",
			Usage:     "display one journal entry",
			ArgsUsage: "*HASH",
			Action:    runShow,
		},
		{
			Name:  "version",
			Usage: "display fr0g-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = before
	app.After = after

	return app
}

// read the configuration
func before(c *cli.Context) error {

	e := c.App.ErrWriter
	w := c.App.Writer
	verbose := c.GlobalBool("verbose")

	// to suppress reading config file if certain commands
	command := c.Args().Get(0)
	switch command {
	case "", "version", "help", "h":
		return nil
	}

	network, err := chain.Canonical(c.GlobalString("network"))
	if nil != err {
		return fmt.Errorf("network: %q can only be live/testing/local", c.GlobalString("network"))
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		p, err = os.UserConfigDir()
		if nil != err {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
	}
	dataDirectory := path.Join(p, c.App.Name)
	if err := os.MkdirAll(dataDirectory, 0750); nil != err {
		return err
	}

	file := path.Join(dataDirectory, network+"-"+c.App.Name+".json")
	if verbose {
		fmt.Fprintf(e, "file: %q\n", file)
	}

	m := &metadata{
		file:    file,
		network: network,
		verbose: verbose,
		e:       e,
		w:       w,
	}

	luaFile := c.GlobalString("config")
	if "" == luaFile {
		m.settings, err = settings.New(dataDirectory, network)
	} else {
		if verbose {
			fmt.Fprintf(e, "reading configuration: %s\n", luaFile)
		}
		m.settings, err = settings.GetConfiguration(luaFile, network)
	}
	if nil != err {
		return err
	}
	if network != m.settings.Chain {
		return fmt.Errorf("configuration chain: %q does not match network: %q", m.settings.Chain, network)
	}

	if err := initialiseLogging(m.settings.Logging); nil != err {
		return err
	}
	m.logging = true
	c.App.Metadata["config"] = m

	exists := util.EnsureFileExists(file)

	switch {
	case "setup" == command && exists:
		return fmt.Errorf("not overwriting existing configuration: %q", file)

	case exists:
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}
		m.config, err = configuration.Load(file)
		if nil != err {
			return err
		}

	case !noIdentityFile[command]:
		return ErrNotSetup
	}

	return nil
}

// update the configuration if required
func after(c *cli.Context) error {
	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok {
		return nil
	}
	if m.logging {
		defer finaliseLogging()
	}
	if m.save {
		if m.verbose {
			fmt.Fprintf(m.e, "updating config file: %s\n", m.file)
		}
		return configuration.Save(m.file, m.config)
	}
	return nil
}
