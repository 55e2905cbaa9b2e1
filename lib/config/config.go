// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config implements the SyncthingFuse configuration document as
// published by the agent's REST API.
package config

import (
	"encoding/json"
	"io"
	"reflect"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const CurrentVersion = 0

type Configuration struct {
	Version    int                   `xml:"version,attr" json:"version"`
	MyID       string                `xml:"-" json:"myID"`
	MountPoint string                `xml:"mountPoint" json:"mountPoint"`
	Folders    []FolderConfiguration `xml:"folder" json:"folders"`
	Devices    []DeviceConfiguration `xml:"device" json:"devices"`
	Options    OptionsConfiguration  `xml:"options" json:"options"`
	GUI        GUIConfiguration      `xml:"gui" json:"gui"`
}

func New(myID string) Configuration {
	var cfg Configuration
	cfg.Version = CurrentVersion
	cfg.MyID = myID

	setDefaults(&cfg)
	setDefaults(&cfg.GUI)
	setDefaults(&cfg.Options)

	cfg.Prepare()

	return cfg
}

// ReadJSON decodes a configuration document, for example the response
// body of GET system/config.
func ReadJSON(r io.Reader) (Configuration, error) {
	var cfg Configuration
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Configuration{}, err
	}
	cfg.Prepare()
	return cfg, nil
}

func (cfg Configuration) Copy() Configuration {
	newCfg := cfg

	newCfg.Devices = make([]DeviceConfiguration, len(cfg.Devices))
	for i := range cfg.Devices {
		newCfg.Devices[i] = cfg.Devices[i].Copy()
	}

	newCfg.Folders = make([]FolderConfiguration, len(cfg.Folders))
	for i := range cfg.Folders {
		newCfg.Folders[i] = cfg.Folders[i].Copy()
	}

	newCfg.Options = cfg.Options.Copy()

	return newCfg
}

// Prepare fills in nil slices and brings the devices and folders into
// canonical order.
func (cfg *Configuration) Prepare() {
	if cfg.Devices == nil {
		cfg.Devices = []DeviceConfiguration{}
	}
	if cfg.Folders == nil {
		cfg.Folders = []FolderConfiguration{}
	}
	for i := range cfg.Devices {
		cfg.Devices[i].prepare()
	}
	for i := range cfg.Folders {
		cfg.Folders[i].prepare()
	}
	cfg.Options.prepare()

	cfg.SortDevices()
	cfg.SortFolders()
}

// SortDevices orders the devices ascending by device ID.
func (cfg *Configuration) SortDevices() {
	ord := collate.New(language.Und)
	slices.SortFunc(cfg.Devices, func(a, b DeviceConfiguration) int {
		return ord.CompareString(a.DeviceID, b.DeviceID)
	})
}

// SortFolders orders the folders ascending by folder ID.
func (cfg *Configuration) SortFolders() {
	ord := collate.New(language.Und)
	slices.SortFunc(cfg.Folders, func(a, b FolderConfiguration) int {
		return ord.CompareString(a.ID, b.ID)
	})
}

type OptionsConfiguration struct {
	ListenAddress         []string `xml:"listenAddress" json:"listenAddress" default:"tcp://0.0.0.0:22000"`
	LocalAnnounceEnabled  bool     `xml:"localAnnounceEnabled" json:"localAnnounceEnabled" default:"true"`
	LocalAnnouncePort     int      `xml:"localAnnouncePort" json:"localAnnouncePort" default:"21027"`
	GlobalAnnounceEnabled bool     `xml:"globalAnnounceEnabled" json:"globalAnnounceEnabled" default:"true"`
	GlobalAnnounceServers []string `xml:"globalAnnounceServer" json:"globalAnnounceServers" default:"default"`
}

func (cfg OptionsConfiguration) Copy() OptionsConfiguration {
	c := cfg
	c.ListenAddress = slices.Clone(cfg.ListenAddress)
	c.GlobalAnnounceServers = slices.Clone(cfg.GlobalAnnounceServers)
	return c
}

func (cfg *OptionsConfiguration) prepare() {
	if cfg.ListenAddress == nil {
		cfg.ListenAddress = []string{}
	}
	if cfg.GlobalAnnounceServers == nil {
		cfg.GlobalAnnounceServers = []string{}
	}
}

func setDefaults(data interface{}) error {
	s := reflect.ValueOf(data).Elem()
	t := s.Type()

	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		tag := t.Field(i).Tag

		v := tag.Get("default")
		if len(v) > 0 {
			switch f.Interface().(type) {
			case string:
				f.SetString(v)

			case int:
				i, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return err
				}
				f.SetInt(i)

			case bool:
				f.SetBool(v == "true")

			case []string:
				f.Set(reflect.ValueOf([]string{v}))

			default:
				panic(f.Type())
			}
		}
	}
	return nil
}
