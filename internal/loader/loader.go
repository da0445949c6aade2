// Package loader reads tool-definition files and the generic YAML/JSON
// shapes the surrounding tooling exchanges.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/June01/ToolUniverse/pkg/types"
)

// YAMLFile loads a YAML file into a generic mapping.
func YAMLFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse yaml file %s: %w", path, err)
	}
	return out, nil
}

// JSONList loads a JSON file holding a list of objects.
func JSONList(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse json file %s: %w", path, err)
	}
	return out, nil
}

// ToolFile loads tool definitions from a YAML or JSON file, picked by
// extension. A file may hold one definition or a list of them.
func ToolFile(path string) ([]types.ToolDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tool file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeTools(path, data, yaml.Unmarshal)
	case ".json":
		return decodeTools(path, data, json.Unmarshal)
	default:
		return nil, fmt.Errorf("unsupported tool file extension: %s", path)
	}
}

func decodeTools(path string, data []byte, unmarshal func([]byte, any) error) ([]types.ToolDefinition, error) {
	var list []types.ToolDefinition
	if err := unmarshal(data, &list); err == nil {
		return list, nil
	}
	var single types.ToolDefinition
	if err := unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("parse tool file %s: %w", path, err)
	}
	return []types.ToolDefinition{single}, nil
}
