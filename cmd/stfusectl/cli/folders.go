// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/burkemw3/syncthingfuse/lib/draft"
	"github.com/burkemw3/syncthingfuse/lib/validate"
)

type foldersCommand struct {
	List   foldersListCommand  `cmd:"" help:"List folders in the configuration"`
	Add    folderAddCommand    `cmd:"" help:"Add a folder"`
	Edit   folderEditCommand   `cmd:"" help:"Edit an existing folder"`
	Remove folderRemoveCommand `cmd:"" help:"Remove a folder"`
}

type foldersListCommand struct{}

func (*foldersListCommand) Run(ctx Context) error {
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

type folderAddCommand struct {
	ID        string   `arg:"" help:"Folder ID"`
	CacheSize string   `name:"cache-size" help:"Local cache size, for example \"512 MiB\""`
	Device    []string `placeholder:"DEVICE-ID" help:"Share the folder with the given device (repeatable)"`
}

func (c *folderAddCommand) Run(ctx Context) error {
	d, client, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	if st := <-validate.NewHumanSize(client).Check(c.CacheSize); st != validate.Valid {
		return fmt.Errorf("cache size %q rejected", c.CacheSize)
	}

	ed := draft.NewFolderEditor(d)
	cur, err := ed.BeginAdd()
	if err != nil {
		return err
	}
	cur.Folder.ID = c.ID
	if c.CacheSize != "" {
		cur.Folder.CacheSize = c.CacheSize
	}
	for _, id := range c.Device {
		cur.SelectedDevices[id] = true
	}
	return ed.Commit()
}

type folderEditCommand struct {
	ID        string   `arg:"" help:"Folder ID of the folder to edit"`
	CacheSize *string  `name:"cache-size" help:"Local cache size, for example \"512 MiB\""`
	Share     []string `placeholder:"DEVICE-ID" help:"Additionally share with the given device (repeatable)"`
	Unshare   []string `placeholder:"DEVICE-ID" help:"Stop sharing with the given device (repeatable)"`
}

func (c *folderEditCommand) Run(ctx Context) error {
	d, client, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	if c.CacheSize != nil {
		if st := <-validate.NewHumanSize(client).Check(*c.CacheSize); st != validate.Valid {
			return fmt.Errorf("cache size %q rejected", *c.CacheSize)
		}
	}

	ed := draft.NewFolderEditor(d)
	cur, err := ed.BeginEdit(c.ID)
	if err != nil {
		return err
	}
	if c.CacheSize != nil && *c.CacheSize != "" {
		cur.Folder.CacheSize = *c.CacheSize
	}
	for _, id := range c.Share {
		cur.SelectedDevices[id] = true
	}
	for _, id := range c.Unshare {
		cur.SelectedDevices[id] = false
	}
	return ed.Commit()
}

type folderRemoveCommand struct {
	ID string `arg:"" help:"Folder ID of the folder to remove"`
}

func (c *folderRemoveCommand) Run(ctx Context) error {
	d, _, err := loadDraft(ctx)
	if err != nil {
		return err
	}

	ed := draft.NewFolderEditor(d)
	if _, err := ed.BeginEdit(c.ID); err != nil {
		return err
	}
	return ed.Delete()
}
