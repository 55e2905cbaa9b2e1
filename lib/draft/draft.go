// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package draft maintains a local working copy of the agent
// configuration, lets devices and folders be edited through staged
// drafts, and publishes the whole document back to the agent.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/burkemw3/syncthingfuse/lib/config"
)

var (
	ErrDeviceNotFound  = errors.New("device not found")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrAmbiguousDevice = errors.New("multiple devices with the same ID")
	ErrEditInProgress  = errors.New("another edit is already in progress")
	ErrNoEdit          = errors.New("no edit in progress")
)

// APIClient is the part of the agent's REST API the draft uses.
type APIClient interface {
	Get(url string) (*http.Response, error)
	Post(url, body string) (*http.Response, error)
}

// Draft is the working copy of the configuration document. All edits
// go through a DeviceEditor or FolderEditor; each committed edit
// publishes the whole document and marks the draft out of sync until
// the next Load.
type Draft struct {
	client  APIClient
	cfg     config.Configuration
	synced  bool
	staging bool

	// OnSaved, when set, is called after each successful Save. The
	// presentation layer uses it to reset scroll and focus state.
	OnSaved func()
}

func New(client APIClient) *Draft {
	return &Draft{client: client}
}

// Load replaces the draft wholesale with the document the agent
// currently holds and seeds the sync status from the agent's own view.
func (d *Draft) Load() error {
	resp, err := d.client.Get("system/config")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := config.ReadJSON(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	d.cfg = cfg
	d.synced = true

	if insync, err := d.fetchInSync(); err != nil {
		slog.Debug("Sync status unavailable", "error", err)
	} else {
		d.synced = insync
	}

	return nil
}

func (d *Draft) fetchInSync() (bool, error) {
	resp, err := d.client.Get("system/config/insync")
	if err != nil {
		return false, err
	}
	bs, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return false, err
	}
	var insync bool
	if err := json.Unmarshal(bs, &insync); err != nil {
		return false, err
	}
	return insync, nil
}

// InSync reports whether the draft is believed to match the document
// the agent holds. It is false from the first committed edit until the
// next Load.
func (d *Draft) InSync() bool {
	return d.synced
}

// Config returns a deep copy of the current draft document.
func (d *Draft) Config() config.Configuration {
	return d.cfg.Copy()
}

// FindDevice returns the device with the given ID. A duplicated ID in
// the document is an integrity fault and reported as ErrAmbiguousDevice.
func (d *Draft) FindDevice(deviceID string) (config.DeviceConfiguration, error) {
	i, err := d.deviceIndex(deviceID)
	if err != nil {
		return config.DeviceConfiguration{}, err
	}
	return d.cfg.Devices[i].Copy(), nil
}

func (d *Draft) deviceIndex(deviceID string) (int, error) {
	idx := -1
	for i, dev := range d.cfg.Devices {
		if dev.DeviceID == deviceID {
			if idx != -1 {
				slog.Error("Configuration lists the same device twice", "device", deviceID)
				return -1, ErrAmbiguousDevice
			}
			idx = i
		}
	}
	if idx == -1 {
		return -1, ErrDeviceNotFound
	}
	return idx, nil
}

func (d *Draft) folderIndex(folderID string) (int, error) {
	for i, folder := range d.cfg.Folders {
		if folder.ID == folderID {
			return i, nil
		}
	}
	return -1, ErrFolderNotFound
}

// ThisDevice returns the device entry for the local device, if the
// local device is represented in the document at all.
func (d *Draft) ThisDevice() (config.DeviceConfiguration, bool) {
	for _, dev := range d.cfg.Devices {
		if dev.DeviceID == d.cfg.MyID {
			return dev.Copy(), true
		}
	}
	return config.DeviceConfiguration{}, false
}

// OtherDevices returns all devices except the local one, in draft order.
func (d *Draft) OtherDevices() []config.DeviceConfiguration {
	var devices []config.DeviceConfiguration
	for _, dev := range d.cfg.Devices {
		if dev.DeviceID != d.cfg.MyID {
			devices = append(devices, dev.Copy())
		}
	}
	return devices
}

// DisplayName returns the device name, or a truncated device ID for
// unnamed devices.
func (*Draft) DisplayName(device config.DeviceConfiguration) string {
	if device.Name != "" {
		return device.Name
	}
	if len(device.DeviceID) > 6 {
		return device.DeviceID[:6]
	}
	return device.DeviceID
}

// SharesFolder returns the display names of the folder's member
// devices, excluding the local device, sorted and comma separated.
func (d *Draft) SharesFolder(folder config.FolderConfiguration) string {
	var names []string
	for _, member := range folder.Devices {
		if member.DeviceID == d.cfg.MyID {
			continue
		}
		i, err := d.deviceIndex(member.DeviceID)
		if err != nil {
			continue
		}
		names = append(names, d.DisplayName(d.cfg.Devices[i]))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// Save publishes the whole draft document to the agent. The in-memory
// edit is never rolled back on failure. A successful save still leaves
// the draft marked out of sync; only a fresh Load proves convergence.
func (d *Draft) Save() error {
	bs, err := json.Marshal(d.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	resp, err := d.client.Post("system/config", string(bs))
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	resp.Body.Close()

	d.synced = false
	if d.OnSaved != nil {
		d.OnSaved()
	}
	return nil
}

// AwaitInSync polls the agent until it reports the published
// configuration active, or the timeout expires.
func (d *Draft) AwaitInSync(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		insync, err := d.fetchInSync()
		if err != nil {
			return err
		}
		if insync {
			d.synced = true
			return nil
		}
		if time.Now().After(deadline) {
			return errors.New("timed out waiting for config to sync")
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func (d *Draft) beginStaging() error {
	if d.staging {
		return ErrEditInProgress
	}
	d.staging = true
	return nil
}

func (d *Draft) endStaging() {
	d.staging = false
}
