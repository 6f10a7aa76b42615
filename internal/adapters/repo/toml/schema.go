package toml

import "github.com/bnema/offline-cache/internal/adapters/repo/schema"

type collectionFile[S any] struct {
	Version int `toml:"version"`
	Records []S `toml:"records"`
}

func (f *collectionFile[S]) applyDefaults() {
	if f.Version == 0 {
		f.Version = schema.CurrentVersion
	}
}

type settingsFile struct {
	Version  int               `toml:"version"`
	Settings map[string]string `toml:"settings"`
}

func (f *settingsFile) applyDefaults() {
	if f.Version == 0 {
		f.Version = schema.CurrentVersion
	}
	if f.Settings == nil {
		f.Settings = map[string]string{}
	}
}
