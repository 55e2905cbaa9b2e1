// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"net/url"
	"strings"
)

type GUIConfiguration struct {
	Enabled    bool   `xml:"enabled,attr" json:"enabled" default:"true"`
	RawAddress string `xml:"address" json:"address" default:"127.0.0.1:5833"`
	UseTLS     bool   `xml:"tls,attr" json:"useTLS"`
	APIKey     string `xml:"apikey,omitempty" json:"apiKey"`
}

// Network returns the network type of the GUI listener, either "tcp" or
// "unix" for socket paths given as a plain path or a unix:// URL.
func (c GUIConfiguration) Network() string {
	if strings.HasPrefix(c.RawAddress, "/") || strings.HasPrefix(c.RawAddress, "unix://") {
		return "unix"
	}
	return "tcp"
}

// Address returns the dialable endpoint, a host:port pair or a socket
// path depending on Network.
func (c GUIConfiguration) Address() string {
	return strings.TrimPrefix(c.RawAddress, "unix://")
}

func (c GUIConfiguration) URL() string {
	if c.Network() == "unix" {
		return "http://unix/"
	}

	u := url.URL{
		Scheme: "http",
		Host:   c.RawAddress,
		Path:   "/",
	}

	if c.UseTLS {
		u.Scheme = "https"
	}

	if strings.HasPrefix(u.Host, ":") {
		// Empty host, i.e. ":port", use IPv4 localhost
		u.Host = "127.0.0.1" + u.Host
	} else if strings.HasPrefix(u.Host, "0.0.0.0:") {
		// IPv4 all zeroes host, convert to IPv4 localhost
		u.Host = "127.0.0.1" + u.Host[7:]
	} else if strings.HasPrefix(u.Host, "[::]:") {
		// IPv6 all zeroes host, convert to IPv6 localhost
		u.Host = "[::1]" + u.Host[4:]
	}

	return u.String()
}
