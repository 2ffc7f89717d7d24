// Package manifest manages the index file (manifest.json) that tracks every
// transcript saved under a data root.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sonnes/ytscribe/core"
	"github.com/sonnes/ytscribe/store"
)

// FileName is the manifest's name within the data root.
const FileName = "manifest.json"

// Manifest holds the list of saved transcript entries.
type Manifest struct {
	Entries []core.ManifestEntry `json:"entries"`
}

// Path returns the manifest path for a data root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// ReadFile reads a manifest from disk. Returns an empty Manifest if the file
// does not exist.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// Upsert adds or replaces an entry matched by VideoID. After upserting, the
// entries are sorted newest-first by FetchedAt.
func (m *Manifest) Upsert(entry core.ManifestEntry) {
	for i, e := range m.Entries {
		if e.VideoID == entry.VideoID {
			m.Entries[i] = entry
			m.sort()
			return
		}
	}
	m.Entries = append(m.Entries, entry)
	m.sort()
}

// Get returns the entry for videoID.
func (m *Manifest) Get(videoID string) (core.ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.VideoID == videoID {
			return e, true
		}
	}
	return core.ManifestEntry{}, false
}

func (m *Manifest) sort() {
	sort.SliceStable(m.Entries, func(i, j int) bool {
		return m.Entries[i].FetchedAt.After(m.Entries[j].FetchedAt)
	})
}

// WriteFile writes the manifest to disk atomically, which is safe against
// concurrent writers.
func (m *Manifest) WriteFile(path string) error {
	if m.Entries == nil {
		m.Entries = []core.ManifestEntry{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return store.WriteAtomic(path, data)
}

// Update reads the manifest under root, upserts entry and writes it back.
func Update(root string, entry core.ManifestEntry) error {
	path := Path(root)
	m, err := ReadFile(path)
	if err != nil {
		return err
	}
	m.Upsert(entry)
	return m.WriteFile(path)
}

// Repair rebuilds the manifest from the files present under root. Metadata
// from the existing manifest is kept for videos that still have files; other
// videos get what can be recovered from their JSON rendering and file times.
// Entries whose files are all gone are dropped.
func Repair(root string) (*Manifest, error) {
	prev, err := ReadFile(Path(root))
	if err != nil {
		return nil, err
	}

	found, err := scan(root)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Entries: []core.ManifestEntry{}}
	for id, files := range found {
		e, ok := prev.Get(id)
		if !ok {
			e = recoverEntry(root, id, files)
		}
		e.Files = files.rel
		if e.FetchedAt.IsZero() {
			e.FetchedAt = files.modTime
		}
		m.Entries = append(m.Entries, e)
	}
	sort.SliceStable(m.Entries, func(i, j int) bool {
		return m.Entries[i].VideoID < m.Entries[j].VideoID
	})
	m.sort()
	return m, nil
}

type videoFiles struct {
	rel     map[string]string
	modTime time.Time
}

// scan walks <root>/<format>/*.<format> and groups the files by video id.
func scan(root string) (map[string]*videoFiles, error) {
	dirs, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return map[string]*videoFiles{}, nil
	}
	if err != nil {
		return nil, err
	}

	found := make(map[string]*videoFiles)
	for _, d := range dirs {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		format := d.Name()
		files, err := os.ReadDir(filepath.Join(root, format))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, "."+format) {
				continue
			}
			id := strings.TrimSuffix(name, "."+format)
			if id == "" {
				continue
			}
			info, err := f.Info()
			if err != nil {
				return nil, err
			}

			vf, ok := found[id]
			if !ok {
				vf = &videoFiles{rel: map[string]string{}}
				found[id] = vf
			}
			vf.rel[format] = format + "/" + name
			if mt := info.ModTime().UTC(); mt.After(vf.modTime) {
				vf.modTime = mt
			}
		}
	}
	return found, nil
}

// recoverEntry builds an entry from json/<id>.json, which holds either a bare
// entry array or a transcript with metadata.
func recoverEntry(root, id string, files *videoFiles) core.ManifestEntry {
	e := core.ManifestEntry{VideoID: id}
	rel, ok := files.rel["json"]
	if !ok {
		return e
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return e
	}

	var t core.Transcript
	if err := json.Unmarshal(data, &t.Entries); err != nil {
		if err := json.Unmarshal(data, &t); err != nil {
			return e
		}
	}
	if t.VideoID == "" {
		t.VideoID = id
	}
	return core.NewManifestEntry(&t, nil)
}
