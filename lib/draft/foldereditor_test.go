// Copyright (C) 2021 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package draft

import (
	"errors"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/burkemw3/syncthingfuse/lib/config"
)

func TestAddFolderCommit(t *testing.T) {
	api := &fakeAPI{}
	d := loadedDraft(t, api)

	ed := NewFolderEditor(d)
	cur, err := ed.BeginAdd()
	if err != nil {
		t.Fatal(err)
	}
	if cur.Folder.CacheSize != "512 MiB" {
		t.Errorf("CacheSize default == %q", cur.Folder.CacheSize)
	}

	cur.Folder.ID = "music"
	cur.SelectedDevices["ZULU"] = true
	cur.SelectedDevices["ALPHA"] = true

	if err := ed.Commit(); err != nil {
		t.Fatal(err)
	}

	cfg := d.Config()
	var ids []string
	for _, folder := range cfg.Folders {
		ids = append(ids, folder.ID)
	}
	if diff, equal := messagediff.PrettyDiff([]string{"default", "music", "photos"}, ids); !equal {
		t.Errorf("Folders not sorted after add. Diff:\n%s", diff)
	}

	// members follow document device order, not selection order
	music := folderByID(t, cfg, "music")
	want := []config.FolderDeviceConfiguration{{DeviceID: "ALPHA"}, {DeviceID: "ZULU"}}
	if diff, equal := messagediff.PrettyDiff(want, music.Devices); !equal {
		t.Errorf("Membership diff:\n%s", diff)
	}

	if len(api.posted) != 1 {
		t.Errorf("expected one save, got %d", len(api.posted))
	}
}

func TestFolderCommitRebuildsMembers(t *testing.T) {
	// The folder previously had member B only. Selecting A and
	// deselecting B rebuilds the member list from scratch; B's old
	// entry is dropped entirely.
	api := &fakeAPI{configJSON: `{
		"myID": "LOCAL",
		"devices": [{"deviceID": "A"}, {"deviceID": "B"}, {"deviceID": "LOCAL"}],
		"folders": [{"id": "docs", "devices": [{"deviceID": "B"}]}]
	}`}
	d := loadedDraft(t, api)

	ed := NewFolderEditor(d)
	cur, err := ed.BeginEdit("docs")
	if err != nil {
		t.Fatal(err)
	}
	if diff, equal := messagediff.PrettyDiff(map[string]bool{"B": true}, cur.SelectedDevices); !equal {
		t.Errorf("SelectedDevices diff:\n%s", diff)
	}

	cur.SelectedDevices["A"] = true
	cur.SelectedDevices["B"] = false

	if err := ed.Commit(); err != nil {
		t.Fatal(err)
	}

	docs := folderByID(t, d.Config(), "docs")
	if diff, equal := messagediff.PrettyDiff([]config.FolderDeviceConfiguration{{DeviceID: "A"}}, docs.Devices); !equal {
		t.Errorf("Membership diff:\n%s", diff)
	}
}

func TestEditFolderStagesACopy(t *testing.T) {
	d := loadedDraft(t, &fakeAPI{})

	ed := NewFolderEditor(d)
	cur, err := ed.BeginEdit("photos")
	if err != nil {
		t.Fatal(err)
	}
	cur.Folder.CacheSize = "2 GiB"

	photos := folderByID(t, d.Config(), "photos")
	if photos.CacheSize != "1 GiB" {
		t.Error("staged edit leaked into the document before commit")
	}
}

func TestEditFolderReplacesInPlace(t *testing.T) {
	d := loadedDraft(t, &fakeAPI{})

	ed := NewFolderEditor(d)
	cur, err := ed.BeginEdit("photos")
	if err != nil {
		t.Fatal(err)
	}
	cur.Folder.CacheSize = "2 GiB"

	if err := ed.Commit(); err != nil {
		t.Fatal(err)
	}

	cfg := d.Config()
	if len(cfg.Folders) != 2 {
		t.Fatalf("folder count changed: %d", len(cfg.Folders))
	}
	if got := folderByID(t, cfg, "photos").CacheSize; got != "2 GiB" {
		t.Errorf("CacheSize == %q", got)
	}
	// untouched folder keeps its members
	def := folderByID(t, cfg, "default")
	want := []config.FolderDeviceConfiguration{{DeviceID: "LOCAL"}, {DeviceID: "ALPHA"}}
	if diff, equal := messagediff.PrettyDiff(want, def.Devices); !equal {
		t.Errorf("unrelated folder changed:\n%s", diff)
	}
}

func TestFolderIDImmutableOnEdit(t *testing.T) {
	d := loadedDraft(t, &fakeAPI{})

	ed := NewFolderEditor(d)
	cur, err := ed.BeginEdit("photos")
	if err != nil {
		t.Fatal(err)
	}
	cur.Folder.ID = "renamed"
	cur.Folder.CacheSize = "4 GiB"

	if err := ed.Commit(); err != nil {
		t.Fatal(err)
	}

	cfg := d.Config()
	if got := folderByID(t, cfg, "photos").CacheSize; got != "4 GiB" {
		t.Errorf("edit did not apply to the original entity, CacheSize == %q", got)
	}
	for _, folder := range cfg.Folders {
		if folder.ID == "renamed" {
			t.Error("edit must not mint a new identity")
		}
	}
}

func TestDeleteFolder(t *testing.T) {
	api := &fakeAPI{}
	d := loadedDraft(t, api)

	ed := NewFolderEditor(d)
	if _, err := ed.BeginEdit("photos"); err != nil {
		t.Fatal(err)
	}
	if err := ed.Delete(); err != nil {
		t.Fatal(err)
	}

	cfg := d.Config()
	if len(cfg.Folders) != 1 || cfg.Folders[0].ID != "default" {
		t.Errorf("unexpected folders after delete: %+v", cfg.Folders)
	}
	if len(api.posted) != 1 {
		t.Errorf("expected one save, got %d", len(api.posted))
	}
}

func TestBeginEditMissingFolder(t *testing.T) {
	d := loadedDraft(t, &fakeAPI{})
	if _, err := NewFolderEditor(d).BeginEdit("nope"); !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("expected ErrFolderNotFound, got %v", err)
	}
}
