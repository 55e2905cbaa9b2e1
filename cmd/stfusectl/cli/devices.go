// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/burkemw3/syncthingfuse/lib/config"
	"github.com/burkemw3/syncthingfuse/lib/draft"
	"github.com/burkemw3/syncthingfuse/lib/validate"
)

type devicesCommand struct {
	List   devicesListCommand  `cmd:"" help:"List devices in the configuration"`
	Add    deviceAddCommand    `cmd:"" help:"Add a device"`
	Edit   deviceEditCommand   `cmd:"" help:"Edit an existing device"`
	Remove deviceRemoveCommand `cmd:"" help:"Remove a device and its folder memberships"`
}

type devicesListCommand struct{}

func (*devicesListCommand) Run(ctx Context) error {
	d, _, err := loadDraft(ctx)
	if err != nil {
		return err
	}
	cfg := d.Config()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE ID\tNAME\tADDRESSES")
	for _, dev := range cfg.Devices {
		name := d.DisplayName(dev)
		if dev.DeviceID == cfg.MyID {
			name += " (this device)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", dev.DeviceID, name, strings.Join(dev.Addresses, ", "))
	}
	return w.Flush()
}

type deviceAddCommand struct {
	DeviceID    string   `arg:"" help:"Device ID of the new device"`
	Name        string   `help:"Display name"`
	Addresses   string   `default:"dynamic" help:"Comma separated address list"`
	Compression string   `default:"metadata" enum:"always,metadata,never" help:"Compression mode"`
	Introducer  bool     `help:"Device introduces other devices"`
	Folder      []string `placeholder:"ID" help:"Share the given folder with the device (repeatable)"`
}

func (c *deviceAddCommand) Run(ctx Context) error {
	d, client, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	if st := <-validate.NewDeviceID(client).Check(d.Config(), c.DeviceID, false); st != validate.Valid {
		return fmt.Errorf("device ID %q rejected", c.DeviceID)
	}

	ed := draft.NewDeviceEditor(d)
	cur, err := ed.BeginAdd()
	if err != nil {
		return err
	}
	cur.Device.DeviceID = c.DeviceID
	cur.Device.Name = c.Name
	cur.Device.Compression = config.Compression(c.Compression)
	cur.Device.Introducer = c.Introducer
	cur.AddressesStr = c.Addresses
	for _, id := range c.Folder {
		cur.SelectedFolders[id] = true
	}
	return ed.Commit()
}

type deviceEditCommand struct {
	DeviceID    string   `arg:"" help:"Device ID of the device to edit"`
	Name        *string  `help:"Display name"`
	Addresses   *string  `help:"Comma separated address list"`
	Compression *string  `help:"Compression mode (always, metadata or never)"`
	Introducer  *bool    `negatable:"" help:"Device introduces other devices"`
	Share       []string `placeholder:"ID" help:"Additionally share the given folder (repeatable)"`
	Unshare     []string `placeholder:"ID" help:"Stop sharing the given folder (repeatable)"`
}

func (c *deviceEditCommand) Run(ctx Context) error {
	d, _, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	ed := draft.NewDeviceEditor(d)
	cur, err := ed.BeginEdit(c.DeviceID)
	if err != nil {
		return err
	}
	if c.Name != nil {
		cur.Device.Name = *c.Name
	}
	if c.Addresses != nil {
		cur.AddressesStr = *c.Addresses
	}
	if c.Compression != nil {
		cur.Device.Compression = config.Compression(*c.Compression)
	}
	if c.Introducer != nil {
		cur.Device.Introducer = *c.Introducer
	}
	for _, id := range c.Share {
		cur.SelectedFolders[id] = true
	}
	for _, id := range c.Unshare {
		cur.SelectedFolders[id] = false
	}
	return ed.Commit()
}

type deviceRemoveCommand struct {
	DeviceID string `arg:"" help:"Device ID of the device to remove"`
}

func (c *deviceRemoveCommand) Run(ctx Context) error {
	d, _, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	ed := draft.NewDeviceEditor(d)
	if _, err := ed.BeginEdit(c.DeviceID); err != nil {
		return err
	}
	return ed.Delete()
}
