package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
)

// Project is the subset of project metadata chlog reads, usually from
// package.json.
type Project struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// ReadProject reads project metadata at p. A missing file returns nil and no
// error. Files ending in .json are decoded as JSON, anything else as YAML.
func ReadProject(fs afero.Fs, p string) (*Project, error) {
	if p == "" {
		return nil, nil
	}
	b, err := afero.ReadFile(fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	proj := &Project{}
	if filepath.Ext(p) == ".json" {
		err = json.Unmarshal(b, proj)
	} else {
		err = yaml.Unmarshal(b, proj)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse project file %s: %w", p, err)
	}
	return proj, nil
}
