// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package draft

import (
	"slices"
	"strings"

	"github.com/burkemw3/syncthingfuse/lib/config"
)

// DeviceDraft is the staged copy of a device under edit, together with
// the transient form fields that never reach the stored document: the
// comma separated address list and the folder selection map.
type DeviceDraft struct {
	Device          config.DeviceConfiguration
	AddressesStr    string
	SelectedFolders map[string]bool

	existing bool
	// identity at BeginEdit time; an existing device keeps it through
	// Commit no matter what happened to the staged copy
	originalID string
}

// DeviceEditor stages one device at a time for editing. The device ID
// of an existing device is immutable; editing never changes which
// entity is being edited.
type DeviceEditor struct {
	draft *Draft
	cur   *DeviceDraft
}

func NewDeviceEditor(d *Draft) *DeviceEditor {
	return &DeviceEditor{draft: d}
}

// BeginAdd stages a fresh device with the usual defaults.
func (e *DeviceEditor) BeginAdd() (*DeviceDraft, error) {
	if err := e.draft.beginStaging(); err != nil {
		return nil, err
	}
	e.cur = &DeviceDraft{
		Device: config.DeviceConfiguration{
			Compression: config.CompressionMetadata,
		},
		AddressesStr:    "dynamic",
		SelectedFolders: make(map[string]bool),
	}
	return e.cur, nil
}

// BeginEdit stages a deep copy of an existing device. The document is
// not touched until Commit. The folder selection map is seeded from the
// folders that currently list the device as a member.
func (e *DeviceEditor) BeginEdit(deviceID string) (*DeviceDraft, error) {
	dev, err := e.draft.FindDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if err := e.draft.beginStaging(); err != nil {
		return nil, err
	}

	cur := &DeviceDraft{
		Device:          dev,
		AddressesStr:    strings.Join(dev.Addresses, ", "),
		SelectedFolders: make(map[string]bool),
		existing:        true,
		originalID:      deviceID,
	}
	for _, folder := range e.draft.cfg.Folders {
		if folder.SharedWith(deviceID) {
			cur.SelectedFolders[folder.ID] = true
		}
	}

	e.cur = cur
	return cur, nil
}

func (e *DeviceEditor) Existing() bool {
	return e.cur != nil && e.cur.existing
}

// Commit folds the staged device into the document, reconciles its
// folder memberships and publishes the result. The document is updated
// in full before Save is invoked.
func (e *DeviceEditor) Commit() error {
	if e.cur == nil {
		return ErrNoEdit
	}
	cur := e.cur

	dev := cur.Device.Copy()
	dev.Addresses = parseAddresses(cur.AddressesStr)

	if cur.existing {
		dev.DeviceID = cur.originalID
		i, err := e.draft.deviceIndex(dev.DeviceID)
		if err != nil {
			return err
		}
		e.draft.cfg.Devices[i] = dev
	} else {
		e.draft.cfg.Devices = append(e.draft.cfg.Devices, dev)
		e.draft.cfg.SortDevices()
	}

	// Apply the selection to each folder's member list. Only folders
	// whose membership actually changed for this device are touched;
	// the other members keep their position.
	for i := range e.draft.cfg.Folders {
		folder := &e.draft.cfg.Folders[i]
		j := memberIndex(folder.Devices, dev.DeviceID)
		selected := cur.SelectedFolders[folder.ID]
		switch {
		case j == -1 && selected:
			folder.Devices = append(folder.Devices, config.FolderDeviceConfiguration{DeviceID: dev.DeviceID})
		case j != -1 && !selected:
			folder.Devices = slices.Delete(folder.Devices, j, j+1)
		}
	}

	e.cur = nil
	e.draft.endStaging()
	return e.draft.Save()
}

// Discard drops the staged device without touching the document.
func (e *DeviceEditor) Discard() {
	e.cur = nil
	e.draft.endStaging()
}

// Delete removes the staged device from the document, first dropping
// its membership entry from every folder so no folder is left with a
// dangling reference.
func (e *DeviceEditor) Delete() error {
	if e.cur == nil {
		return ErrNoEdit
	}
	if !e.cur.existing {
		return ErrDeviceNotFound
	}
	deviceID := e.cur.originalID

	i, err := e.draft.deviceIndex(deviceID)
	if err != nil {
		return err
	}

	for fi := range e.draft.cfg.Folders {
		folder := &e.draft.cfg.Folders[fi]
		if j := memberIndex(folder.Devices, deviceID); j != -1 {
			folder.Devices = slices.Delete(folder.Devices, j, j+1)
		}
	}

	e.draft.cfg.Devices = slices.Delete(e.draft.cfg.Devices, i, i+1)

	e.cur = nil
	e.draft.endStaging()
	return e.draft.Save()
}

func memberIndex(members []config.FolderDeviceConfiguration, deviceID string) int {
	return slices.IndexFunc(members, func(m config.FolderDeviceConfiguration) bool {
		return m.DeviceID == deviceID
	})
}

// parseAddresses splits the comma separated form value into the stored
// address list. An empty string yields a single empty address.
func parseAddresses(s string) []string {
	addrs := strings.Split(s, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}
	return addrs
}
