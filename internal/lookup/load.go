// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// ErrUnsupportedFormat is returned for override files whose extension is not
// .yaml, .yml, .toml or .json.
var ErrUnsupportedFormat = errors.New("unsupported lookup file format")

// LoadOverrides reads an override file, choosing the decoder by extension.
func LoadOverrides(fsys afero.Fs, path string) (Overrides, error) {
	var o Overrides

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return o, fmt.Errorf("reading lookup file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &o)
	case ".toml":
		err = toml.Unmarshal(data, &o)
	case ".json":
		err = json.Unmarshal(data, &o)
	default:
		return o, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return o, fmt.Errorf("parsing lookup file %s: %w", path, err)
	}
	return o, nil
}

// Load returns the default tables, merged with the override file at path
// when path is non-empty.
func Load(fsys afero.Fs, path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	o, err := LoadOverrides(fsys, path)
	if err != nil {
		return nil, err
	}
	return t.Merge(o), nil
}
