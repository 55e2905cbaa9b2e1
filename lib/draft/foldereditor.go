// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package draft

import (
	"slices"

	"github.com/burkemw3/syncthingfuse/lib/config"
)

// FolderDraft is the staged copy of a folder under edit plus the
// transient device selection map.
type FolderDraft struct {
	Folder          config.FolderConfiguration
	SelectedDevices map[string]bool

	existing bool
	// identity at BeginEdit time, kept through Commit
	originalID string
}

// FolderEditor stages one folder at a time for editing. Unlike the
// device editor it holds the authoritative view of the folder's full
// membership: on commit the member list is rebuilt from the selection
// rather than diffed against it.
type FolderEditor struct {
	draft *Draft
	cur   *FolderDraft
}

func NewFolderEditor(d *Draft) *FolderEditor {
	return &FolderEditor{draft: d}
}

// BeginAdd stages a fresh folder with the default cache size.
func (e *FolderEditor) BeginAdd() (*FolderDraft, error) {
	if err := e.draft.beginStaging(); err != nil {
		return nil, err
	}
	e.cur = &FolderDraft{
		Folder: config.FolderConfiguration{
			CacheSize: config.DefaultCacheSize,
		},
		SelectedDevices: make(map[string]bool),
	}
	return e.cur, nil
}

// BeginEdit stages a deep copy of an existing folder, with the device
// selection map seeded from the current member list.
func (e *FolderEditor) BeginEdit(folderID string) (*FolderDraft, error) {
	i, err := e.draft.folderIndex(folderID)
	if err != nil {
		return nil, err
	}
	if err := e.draft.beginStaging(); err != nil {
		return nil, err
	}

	folder := e.draft.cfg.Folders[i].Copy()
	cur := &FolderDraft{
		Folder:          folder,
		SelectedDevices: make(map[string]bool),
		existing:        true,
		originalID:      folderID,
	}
	for _, member := range folder.Devices {
		cur.SelectedDevices[member.DeviceID] = true
	}

	e.cur = cur
	return cur, nil
}

func (e *FolderEditor) Existing() bool {
	return e.cur != nil && e.cur.existing
}

// Commit rebuilds the folder's member list from the selection, folds
// the folder into the document and publishes the result. Any previous
// member entries are discarded; the new list follows document device
// order.
func (e *FolderEditor) Commit() error {
	if e.cur == nil {
		return ErrNoEdit
	}
	cur := e.cur

	folder := cur.Folder.Copy()
	members := make([]config.FolderDeviceConfiguration, 0, len(cur.SelectedDevices))
	for _, dev := range e.draft.cfg.Devices {
		if cur.SelectedDevices[dev.DeviceID] {
			members = append(members, config.FolderDeviceConfiguration{DeviceID: dev.DeviceID})
		}
	}
	folder.Devices = members

	if cur.existing {
		folder.ID = cur.originalID
		i, err := e.draft.folderIndex(folder.ID)
		if err != nil {
			return err
		}
		e.draft.cfg.Folders[i] = folder
	} else {
		e.draft.cfg.Folders = append(e.draft.cfg.Folders, folder)
	}
	e.draft.cfg.SortFolders()

	e.cur = nil
	e.draft.endStaging()
	return e.draft.Save()
}

// Discard drops the staged folder without touching the document.
func (e *FolderEditor) Discard() {
	e.cur = nil
	e.draft.endStaging()
}

// Delete removes the staged folder from the document.
func (e *FolderEditor) Delete() error {
	if e.cur == nil {
		return ErrNoEdit
	}
	if !e.cur.existing {
		return ErrFolderNotFound
	}

	i, err := e.draft.folderIndex(e.cur.originalID)
	if err != nil {
		return err
	}
	e.draft.cfg.Folders = slices.Delete(e.draft.cfg.Folders, i, i+1)

	e.cur = nil
	e.draft.endStaging()
	return e.draft.Save()
}
