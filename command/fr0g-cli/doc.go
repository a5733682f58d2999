// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// fr0g-cli - store small files and key/value data in ledger accounts
//
// identities are kept in:
//   ${XDG_CONFIG_HOME}/fr0g-cli/<network>-fr0g-cli.json
//
// an optional Lua file given by --config overrides the gateway
// endpoints, fees, logging and journal location, e.g.
//
//   fr0g-cli --network=testing --identity=first setup --description="my files"
//   fr0g-cli enable
//   fr0g-cli upload --file=notes.txt
//   fr0g-cli download --index=1 --trim
package main
