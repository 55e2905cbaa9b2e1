// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import "slices"

type Compression string

const (
	CompressionAlways   Compression = "always"
	CompressionMetadata Compression = "metadata"
	CompressionNever    Compression = "never"
)

type DeviceConfiguration struct {
	DeviceID    string      `xml:"id,attr" json:"deviceID"`
	Name        string      `xml:"name,attr,omitempty" json:"name"`
	Addresses   []string    `xml:"address,omitempty" json:"addresses"`
	Compression Compression `xml:"compression,attr" json:"compression"`
	Introducer  bool        `xml:"introducer,attr" json:"introducer"`
}

func NewDeviceConfiguration(id, name string) DeviceConfiguration {
	d := DeviceConfiguration{
		DeviceID: id,
		Name:     name,
	}
	d.prepare()
	return d
}

func (cfg DeviceConfiguration) Copy() DeviceConfiguration {
	c := cfg
	c.Addresses = slices.Clone(cfg.Addresses)
	return c
}

func (cfg *DeviceConfiguration) prepare() {
	if len(cfg.Addresses) == 0 {
		cfg.Addresses = []string{"dynamic"}
	}
	if cfg.Compression == "" {
		cfg.Compression = CompressionMetadata
	}
}
