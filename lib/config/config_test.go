// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
)

func TestDefaultValues(t *testing.T) {
	expectedOptions := OptionsConfiguration{
		ListenAddress:         []string{"tcp://0.0.0.0:22000"},
		LocalAnnounceEnabled:  true,
		LocalAnnouncePort:     21027,
		GlobalAnnounceEnabled: true,
		GlobalAnnounceServers: []string{"default"},
	}
	expectedGUI := GUIConfiguration{
		Enabled:    true,
		RawAddress: "127.0.0.1:5833",
	}

	cfg := New("AIR6LPZ")

	if diff, equal := messagediff.PrettyDiff(expectedOptions, cfg.Options); !equal {
		t.Errorf("Default options differ. Diff:\n%s", diff)
	}
	if diff, equal := messagediff.PrettyDiff(expectedGUI, cfg.GUI); !equal {
		t.Errorf("Default GUI config differs. Diff:\n%s", diff)
	}
	if cfg.MyID != "AIR6LPZ" {
		t.Errorf("MyID == %q", cfg.MyID)
	}
}

func TestReadJSONSortsAndPrepares(t *testing.T) {
	doc := `{
		"myID": "B",
		"devices": [
			{"deviceID": "C"},
			{"deviceID": "A", "addresses": ["tcp://a:22000"]},
			{"deviceID": "B"}
		],
		"folders": [
			{"id": "zz"},
			{"id": "aa", "devices": [{"deviceID": "C"}]}
		]
	}`
	cfg, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	var deviceIDs []string
	for _, dev := range cfg.Devices {
		deviceIDs = append(deviceIDs, dev.DeviceID)
	}
	if diff, equal := messagediff.PrettyDiff([]string{"A", "B", "C"}, deviceIDs); !equal {
		t.Errorf("Devices not sorted:\n%s", diff)
	}

	if cfg.Folders[0].ID != "aa" || cfg.Folders[1].ID != "zz" {
		t.Errorf("Folders not sorted: %+v", cfg.Folders)
	}

	// prepare fills the usual defaults
	for _, dev := range cfg.Devices {
		if len(dev.Addresses) == 0 {
			t.Errorf("device %q without addresses", dev.DeviceID)
		}
		if dev.Compression == "" {
			t.Errorf("device %q without compression mode", dev.DeviceID)
		}
	}
	if cfg.Folders[0].CacheSize != DefaultCacheSize {
		t.Errorf("CacheSize == %q", cfg.Folders[0].CacheSize)
	}
	if cfg.Folders[1].Devices == nil {
		t.Error("folder member list should never be nil")
	}
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{nope")); err == nil {
		t.Error("expected decode error")
	}
}

func TestCopyIsDeep(t *testing.T) {
	cfg, err := ReadJSON(strings.NewReader(`{
		"myID": "A",
		"devices": [{"deviceID": "A", "addresses": ["tcp://a:22000"]}],
		"folders": [{"id": "f", "devices": [{"deviceID": "A"}]}]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	copied := cfg.Copy()
	copied.Devices[0].Addresses[0] = "mutated"
	copied.Folders[0].Devices[0].DeviceID = "mutated"
	copied.Options.ListenAddress = append(copied.Options.ListenAddress, "mutated")

	if cfg.Devices[0].Addresses[0] != "tcp://a:22000" {
		t.Error("device addresses are shared between copies")
	}
	if cfg.Folders[0].Devices[0].DeviceID != "A" {
		t.Error("folder members are shared between copies")
	}
}

func TestSharedWith(t *testing.T) {
	folder := FolderConfiguration{
		ID:      "f",
		Devices: []FolderDeviceConfiguration{{DeviceID: "A"}, {DeviceID: "B"}},
	}
	if !folder.SharedWith("A") || folder.SharedWith("C") {
		t.Error("SharedWith misreports membership")
	}
}

func TestGUIConfigurationNetwork(t *testing.T) {
	cases := []struct {
		address string
		network string
		dial    string
	}{
		{"127.0.0.1:5833", "tcp", "127.0.0.1:5833"},
		{"/var/run/stfuse.sock", "unix", "/var/run/stfuse.sock"},
		{"unix:///var/run/stfuse.sock", "unix", "/var/run/stfuse.sock"},
	}
	for _, tc := range cases {
		c := GUIConfiguration{RawAddress: tc.address}
		if c.Network() != tc.network {
			t.Errorf("Network(%q) == %q", tc.address, c.Network())
		}
		if c.Address() != tc.dial {
			t.Errorf("Address(%q) == %q", tc.address, c.Address())
		}
	}
}

func TestGUIConfigurationURL(t *testing.T) {
	cases := []struct {
		cfg  GUIConfiguration
		want string
	}{
		{GUIConfiguration{RawAddress: "127.0.0.1:5833"}, "http://127.0.0.1:5833/"},
		{GUIConfiguration{RawAddress: ":5833"}, "http://127.0.0.1:5833/"},
		{GUIConfiguration{RawAddress: "0.0.0.0:5833"}, "http://127.0.0.1:5833/"},
		{GUIConfiguration{RawAddress: "[::]:5833"}, "http://[::1]:5833/"},
		{GUIConfiguration{RawAddress: "127.0.0.1:5833", UseTLS: true}, "https://127.0.0.1:5833/"},
		{GUIConfiguration{RawAddress: "/var/run/stfuse.sock"}, "http://unix/"},
	}
	for _, tc := range cases {
		if got := tc.cfg.URL(); got != tc.want {
			t.Errorf("URL(%q) == %q, expected %q", tc.cfg.RawAddress, got, tc.want)
		}
	}
}
