// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package validate checks candidate form field values against the
// agent's verification endpoints. Checks are asynchronous and a field
// may be checked many times while the user types; the accumulated
// state always reflects the most recently started check, never a late
// response to a superseded one.
package validate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/burkemw3/syncthingfuse/lib/config"
)

type State int

const (
	Unknown State = iota
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// APIClient is the part of the agent's REST API the validators use.
type APIClient interface {
	Get(url string) (*http.Response, error)
	Post(url, body string) (*http.Response, error)
}

// Field accumulates the validity of a single form field. Every check,
// synchronous or not, is numbered; a check may only set the field
// state while it is still the latest one.
type Field struct {
	mut   sync.Mutex
	gen   uint64
	state State
}

// State returns the current accumulated validity of the field. While a
// check is in flight the state is that of the previous settled check,
// or Unknown.
func (f *Field) State() State {
	f.mut.Lock()
	defer f.mut.Unlock()
	return f.state
}

// settle resolves a check synchronously, superseding any in-flight one.
func (f *Field) settle(st State) <-chan State {
	f.mut.Lock()
	f.gen++
	f.state = st
	f.mut.Unlock()

	done := make(chan State, 1)
	done <- st
	return done
}

// run starts an asynchronous check. The returned channel yields the
// outcome of this particular check once it settles; the field state is
// only updated if no newer check has been started meanwhile.
func (f *Field) run(check func() State) <-chan State {
	f.mut.Lock()
	f.gen++
	gen := f.gen
	f.mut.Unlock()

	done := make(chan State, 1)
	go func() {
		st := check()

		f.mut.Lock()
		if f.gen == gen {
			f.state = st
		}
		f.mut.Unlock()

		done <- st
	}()
	return done
}

// DeviceID validates candidate device IDs for the device form.
type DeviceID struct {
	Field
	client APIClient
}

func NewDeviceID(client APIClient) *DeviceID {
	return &DeviceID{client: client}
}

// Check starts validation of a candidate device ID. Editing an
// existing device never re-validates its identity. For new devices an
// empty candidate, or one whose upper-cased form collides with a
// device already in the document, is rejected without asking the
// agent; anything else is passed to the agent's verifier.
func (v *DeviceID) Check(cfg config.Configuration, candidate string, editingExisting bool) <-chan State {
	if editingExisting {
		return v.settle(Valid)
	}
	if candidate == "" {
		return v.settle(Invalid)
	}
	upper := strings.ToUpper(candidate)
	for _, dev := range cfg.Devices {
		if dev.DeviceID == upper {
			return v.settle(Invalid)
		}
	}

	return v.run(func() State {
		resp, err := v.client.Get("verify/deviceid?id=" + url.QueryEscape(candidate))
		if err != nil {
			return Invalid
		}
		bs, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return Invalid
		}
		var result struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(bs, &result); err != nil {
			return Invalid
		}
		if result.Error != "" {
			return Invalid
		}
		return Valid
	})
}

// HumanSize validates human readable size strings such as "512 MiB"
// against the agent's parser.
type HumanSize struct {
	Field
	client APIClient
}

func NewHumanSize(client APIClient) *HumanSize {
	return &HumanSize{client: client}
}

// Check starts validation of a candidate size string. The empty string
// means "unset" and is valid without a round trip.
func (v *HumanSize) Check(candidate string) <-chan State {
	if candidate == "" {
		return v.settle(Valid)
	}

	return v.run(func() State {
		resp, err := v.client.Post("verify/humansize", candidate)
		if err != nil {
			return Invalid
		}
		resp.Body.Close()
		return Valid
	})
}
