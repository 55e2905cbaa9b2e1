// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import "slices"

const DefaultCacheSize = "512 MiB"

// FolderDeviceConfiguration is one entry in a folder's member list,
// stating that the referenced device replicates the folder.
type FolderDeviceConfiguration struct {
	DeviceID string `xml:"id,attr" json:"deviceID"`
}

type FolderConfiguration struct {
	ID        string                      `xml:"id,attr" json:"id"`
	Devices   []FolderDeviceConfiguration `xml:"device" json:"devices"`
	CacheSize string                      `xml:"cacheSize" json:"cacheSize" default:"512 MiB"`
}

func (cfg FolderConfiguration) Copy() FolderConfiguration {
	c := cfg
	c.Devices = slices.Clone(cfg.Devices)
	return c
}

func (cfg *FolderConfiguration) prepare() {
	if cfg.Devices == nil {
		cfg.Devices = []FolderDeviceConfiguration{}
	}
	if cfg.CacheSize == "" {
		cfg.CacheSize = DefaultCacheSize
	}
}

// SharedWith returns whether the given device is a member of the folder.
func (cfg FolderConfiguration) SharedWith(deviceID string) bool {
	for _, dev := range cfg.Devices {
		if dev.DeviceID == deviceID {
			return true
		}
	}
	return false
}
