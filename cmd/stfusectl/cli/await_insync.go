// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"time"

	"github.com/burkemw3/syncthingfuse/lib/draft"
)

type awaitInsyncCommand struct {
	Timeout time.Duration `default:"1m" help:"Give up after this long"`
}

func (c *awaitInsyncCommand) Run(ctx Context) error {
	client, err := ctx.clientFactory.getClient()
	if err != nil {
		return err
	}
	return draft.New(client).AwaitInSync(c.Timeout)
}
