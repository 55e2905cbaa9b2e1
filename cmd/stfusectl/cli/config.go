// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/AudriusButkevicius/recli"
	"github.com/urfave/cli"
)

type configCommand struct {
	Args []string `arg:"" optional:""`
}

// Run reflects the configuration document into a per-field command
// tree and posts the document back if any command changed it.
func (c *configCommand) Run(ctx Context) error {
	client, err := ctx.clientFactory.getClient()
	if err != nil {
		return err
	}
	cfg, err := getConfig(client)
	if err != nil {
		return err
	}
	original := cfg.Copy()

	// Copy the config and set the default flags
	recliCfg := recli.DefaultConfig
	recliCfg.IDTag.Name = "xml"
	recliCfg.SkipTag.Name = "json"

	commands, err := recli.New(recliCfg).Construct(&cfg)
	if err != nil {
		return fmt.Errorf("config reflect: %w", err)
	}

	app := cli.NewApp()
	app.Name = "stfusectl config"
	app.HideHelp = true
	app.Commands = commands

	if err := app.Run(append([]string{app.Name}, c.Args...)); err != nil {
		return err
	}

	if reflect.DeepEqual(cfg, original) {
		return nil
	}

	body, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	resp, err := client.Post("system/config", string(body))
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
