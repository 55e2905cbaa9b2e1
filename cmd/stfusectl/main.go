// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command stfusectl views and edits the configuration of a running
// SyncthingFuse agent over its REST API.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/burkemw3/syncthingfuse/cmd/stfusectl/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root,
		kong.Name("stfusectl"),
		kong.Description("SyncthingFuse configuration tool"),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
