// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/alecthomas/kong"
	"github.com/kballard/go-shellquote"

	"github.com/burkemw3/syncthingfuse/lib/apiclient"
	"github.com/burkemw3/syncthingfuse/lib/config"
)

type CLI struct {
	GUIAddress string `name:"gui-address" env:"STGUIADDRESS" default:"127.0.0.1:5833" help:"Agent GUI address, a host:port pair or a unix socket path"`
	GUIAPIKey  string `name:"gui-apikey" env:"STGUIAPIKEY" help:"Agent API key"`

	Show        showCommand        `cmd:"" help:"Show command group"`
	Devices     devicesCommand     `cmd:"" help:"Device command group"`
	Folders     foldersCommand     `cmd:"" help:"Folder command group"`
	Config      configCommand      `cmd:"" help:"Configuration modification command group" passthrough:""`
	AwaitInsync awaitInsyncCommand `cmd:"" name:"await-insync" help:"Wait until the agent reports the published configuration active"`
	Stdin       stdinCommand       `cmd:"" name:"-" help:"Read commands from stdin"`
}

type Context struct {
	clientFactory *apiClientFactory
}

func (cli CLI) AfterApply(kongCtx *kong.Context) error {
	clientFactory := &apiClientFactory{
		cfg: config.GUIConfiguration{
			RawAddress: cli.GUIAddress,
			APIKey:     cli.GUIAPIKey,
		},
	}

	kongCtx.Bind(Context{
		clientFactory: clientFactory,
	})
	return nil
}

type apiClientFactory struct {
	cfg config.GUIConfiguration
}

func (f *apiClientFactory) getClient() (apiclient.APIClient, error) {
	if f.cfg.Address() == "" {
		return nil, errors.New("--gui-address must be specified")
	}
	return apiclient.New(f.cfg), nil
}

type stdinCommand struct{}

func (*stdinCommand) Run() error {
	// Drop the `-` not to recurse into self.
	args := make([]string, len(os.Args)-1)
	copy(args, os.Args)

	fmt.Println("Reading commands from stdin...", args)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input, err := shellquote.Split(scanner.Text())
		if err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		if len(input) == 0 {
			continue
		}
		cmd := exec.Command(os.Args[0], append(args[1:], input...)...)
		out, err := cmd.CombinedOutput()
		fmt.Print(string(out))
		if err != nil {
			if _, ok := err.(*exec.ExitError); ok {
				// we will continue loop no matter the command succeeds or not
				continue
			} else {
				return err
			}
		}
	}
	return scanner.Err()
}
