package buildenv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ManifestFileName is the manifest's file name inside the base path.
const ManifestFileName = "versions.json"

// Manifest holds the versions required by the repository.
type Manifest struct {
	App   string `json:"app" yaml:"app"`
	Bazel string `json:"bazel" yaml:"bazel"`
	Xcode string `json:"xcode" yaml:"xcode"`
}

// ManifestPath returns the location of versions.json under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, ManifestFileName)
}

// LoadManifest reads versions.json from basePath. Keys are matched exactly.
// A field that is absent or null yields a *MissingFieldError and a field
// holding anything but a string yields an *InvalidFieldError. Empty strings
// are accepted.
func LoadManifest(basePath string) (*Manifest, error) {
	path := ManifestPath(basePath)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// viper folds key case, so exact key presence is checked on the raw object.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m := &Manifest{}
	fields := []struct {
		key string
		dst *string
	}{
		{"app", &m.App},
		{"bazel", &m.Bazel},
		{"xcode", &m.Xcode},
	}

	for _, f := range fields {
		if _, ok := keys[f.key]; !ok {
			return nil, &MissingFieldError{Field: f.key, Path: path}
		}
		raw := v.Get(f.key)
		if raw == nil {
			return nil, &MissingFieldError{Field: f.key, Path: path}
		}
		value, ok := raw.(string)
		if !ok {
			return nil, &InvalidFieldError{Field: f.key, Path: path, Value: raw}
		}
		*f.dst = value
	}

	return m, nil
}
