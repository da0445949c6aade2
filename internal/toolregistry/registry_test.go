package toolregistry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/June01/ToolUniverse/pkg/types"
)

const weatherYAML = `- name: get_weather
  description: Current weather for a city
  parameter:
    type: object
    properties:
      city:
        type: string
        required: true
      days:
        type: integer
- name: get_forecast
  parameter:
    type: object
    properties:
      city:
        type: string
        required: true
`

func writeToolFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write tool file: %v", err)
	}
	return path
}

func newTestRegistry() *Registry {
	return NewRegistry(Config{Cache: DefaultCacheConfig()})
}

func TestRegisterAndGet(t *testing.T) {
	registry := newTestRegistry()
	def := types.ToolDefinition{Name: "echo"}

	if err := registry.Register(def); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Register(def); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	got, ok := registry.GetToolByName("echo")
	if !ok || got.Name != "echo" {
		t.Fatalf("lookup failed: %+v, %v", got, ok)
	}
	if _, ok := registry.GetToolByName("missing"); ok {
		t.Fatalf("unexpected hit for missing tool")
	}
}

func TestRegisterRejectsUnnamed(t *testing.T) {
	if err := newTestRegistry().Register(types.ToolDefinition{}); err == nil {
		t.Fatalf("expected error for unnamed tool")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeToolFile(t, dir, "weather.yaml", weatherYAML)

	registry := newTestRegistry()
	count, err := registry.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("loaded %d tools, want 2", count)
	}

	def, ok := registry.GetToolByName("get_weather")
	if !ok {
		t.Fatalf("get_weather not registered")
	}
	city, ok := def.Parameter.Properties["city"]
	if !ok || city.Type != "string" || !city.Required {
		t.Fatalf("city property mangled: %+v", city)
	}
	if days := def.Parameter.Properties["days"]; days.Required {
		t.Fatalf("days must be optional")
	}

	// Re-loading the same file must be idempotent.
	if _, err := registry.LoadFile(path); err != nil {
		t.Fatalf("re-load failed: %v", err)
	}
	if registry.Len() != 2 {
		t.Fatalf("re-load changed registry size: %d", registry.Len())
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeToolFile(t, dir, "weather.yaml", weatherYAML)
	writeToolFile(t, dir, "search.json", `[{"name": "web_search", "parameter": {"properties": {"query": {"type": "string", "required": true}}}}]`)
	writeToolFile(t, dir, "notes.txt", "not a tool file")

	registry := newTestRegistry()
	count, err := registry.LoadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("loaded %d tools, want 3", count)
	}

	names := registry.List()
	if len(names) != 3 || names[0].Name != "get_forecast" || names[1].Name != "get_weather" || names[2].Name != "web_search" {
		t.Fatalf("unexpected listing: %+v", names)
	}
}

func TestFileCacheServesRepeatLoads(t *testing.T) {
	loads := 0
	cache := newFileCache(CacheConfig{MaxSize: 4, TTL: time.Minute}, func(path string) ([]types.ToolDefinition, error) {
		loads++
		return []types.ToolDefinition{{Name: "t"}}, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := cache.get("/tools/a.yaml"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
}

func TestFileCacheExpires(t *testing.T) {
	loads := 0
	cache := newFileCache(CacheConfig{MaxSize: 4, TTL: time.Millisecond}, func(path string) ([]types.ToolDefinition, error) {
		loads++
		return nil, nil
	})

	if _, err := cache.get("/tools/a.yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := cache.get("/tools/a.yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loads != 2 {
		t.Fatalf("loader ran %d times, want 2 after expiry", loads)
	}
}
