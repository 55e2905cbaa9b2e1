// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/burkemw3/syncthingfuse/lib/apiclient"
	"github.com/burkemw3/syncthingfuse/lib/config"
	"github.com/burkemw3/syncthingfuse/lib/draft"
)

func responseToBArray(response *http.Response) ([]byte, error) {
	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	return bytes, response.Body.Close()
}

func getConfig(c apiclient.APIClient) (config.Configuration, error) {
	response, err := c.Get("system/config")
	if err != nil {
		return config.Configuration{}, err
	}
	defer response.Body.Close()
	return config.ReadJSON(response.Body)
}

// loadDraft fetches the agent configuration into a fresh draft.
func loadDraft(ctx Context) (*draft.Draft, apiclient.APIClient, error) {
	client, err := ctx.clientFactory.getClient()
	if err != nil {
		return nil, nil, err
	}
	d := draft.New(client)
	if err := d.Load(); err != nil {
		return nil, nil, err
	}
	return d, client, nil
}

func dumpOutput(ctx Context, url string) error {
	client, err := ctx.clientFactory.getClient()
	if err != nil {
		return err
	}
	response, err := client.Get(url)
	if err != nil {
		return err
	}
	return prettyPrintResponse(response)
}

func prettyPrintResponse(response *http.Response) error {
	bytes, err := responseToBArray(response)
	if err != nil {
		return err
	}
	var data interface{}
	if err := json.Unmarshal(bytes, &data); err != nil {
		return err
	}
	// TODO: Check flag for pretty print format
	return prettyPrintJSON(data)
}

func prettyPrintJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
