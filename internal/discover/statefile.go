// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/voidmap/pkg/types"
)

// LoadState reads a state description from a JSON or YAML file. The format
// is chosen by extension (.yaml/.yml means YAML, everything else JSON).
// The top-level document must be a mapping.
func LoadState(path string) (types.State, error) {
	raw, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	state, err := types.StateFromAny(raw)
	if err != nil {
		return nil, fmt.Errorf("state file %s: %w", path, err)
	}
	return state, nil
}

// LoadContext reads the optional analysis context from a JSON or YAML
// file. Unknown fields are ignored.
func LoadContext(path string) (*types.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading context file %s: %w", path, err)
	}

	var ctx types.Context
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &ctx); err != nil {
			return nil, fmt.Errorf("parsing context file %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &ctx); err != nil {
			return nil, fmt.Errorf("parsing context file %s: %w", path, err)
		}
	}
	return &ctx, nil
}

func loadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	var raw any
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing state file %s: %w", path, err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing state file %s: %w", path, err)
		}
	}
	return raw, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
