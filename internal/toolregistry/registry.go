// Package toolregistry holds tool declarations loaded from definition
// files and resolves them by name for validation.
package toolregistry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/June01/ToolUniverse/internal/loader"
	"github.com/June01/ToolUniverse/internal/utils"
	"github.com/June01/ToolUniverse/pkg/types"
)

// Registry is a name-indexed store of tool declarations. Safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]types.ToolDefinition
	files  *fileCache
	logger *utils.Logger
}

// Config controls registry construction.
type Config struct {
	Cache CacheConfig
}

// NewRegistry builds an empty registry with a definition-file cache.
func NewRegistry(config Config) *Registry {
	return &Registry{
		tools:  make(map[string]types.ToolDefinition),
		files:  newFileCache(config.Cache, loader.ToolFile),
		logger: utils.NewComponentLogger("ToolRegistry"),
	}
}

// Register adds a declaration, rejecting duplicates.
func (r *Registry) Register(def types.ToolDefinition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("tool definition has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already exists: %s", name)
	}
	r.tools[name] = def
	return nil
}

// GetToolByName resolves a declaration. The boolean result makes the
// registry usable as an evaluate.ToolSource.
func (r *Registry) GetToolByName(name string) (types.ToolDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.tools[name]
	return def, ok
}

// List returns all declarations sorted by name.
func (r *Registry) List() []types.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]types.ToolDefinition, 0, len(r.tools))
	for _, def := range r.tools {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Len reports the number of registered declarations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// LoadFile loads a definition file and registers its tools, replacing
// any same-named entries so re-loading is idempotent. Returns the
// number of tools loaded.
func (r *Registry) LoadFile(path string) (int, error) {
	defs, err := r.files.get(path)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			r.logger.Warn("skipping unnamed tool in %s", path)
			continue
		}
		r.tools[name] = def
		count++
	}
	return count, nil
}

// LoadDir loads every .yaml/.yml/.json file directly inside dir.
func (r *Registry) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read tool directory: %w", err)
	}
	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		count, err := r.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return total, err
		}
		total += count
	}
	return total, nil
}
