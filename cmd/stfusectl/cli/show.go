// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
)

type showCommand struct {
	Config struct{} `cmd:"" help:"Print the raw configuration document"`
	Insync struct{} `cmd:"" help:"Print whether the published configuration is active"`
	Shares struct{} `cmd:"" help:"Print folders and the devices they are shared with"`
}

func (*showCommand) Run(ctx Context, kongCtx *kong.Context) error {
	switch kongCtx.Selected().Name {
	case "config":
		return dumpOutput(ctx, "system/config")
	case "insync":
		return dumpOutput(ctx, "system/config/insync")
	case "shares":
		return showShares(ctx)
	}
	return nil
}

func showShares(ctx Context) error {
	d, _, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FOLDER\tCACHE\tSHARED WITH")
	for _, folder := range d.Config().Folders {
		fmt.Fprintf(w, "%s\t%s\t%s\n", folder.ID, folder.CacheSize, d.SharesFolder(folder))
	}
	return w.Flush()
}
