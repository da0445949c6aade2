package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestYAMLFile(t *testing.T) {
	path := writeTemp(t, "config.yaml", "name: demo\nlimit: 3\nnested:\n  flag: true\n")

	out, err := YAMLFile(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", out["name"])
	assert.Equal(t, 3, out["limit"])
}

func TestYAMLFileEmpty(t *testing.T) {
	path := writeTemp(t, "empty.yaml", "   \n")

	out, err := YAMLFile(path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestYAMLFileMissing(t *testing.T) {
	_, err := YAMLFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestJSONList(t *testing.T) {
	path := writeTemp(t, "calls.json", `[{"name": "a"}, {"name": "b"}]`)

	out, err := JSONList(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[1]["name"])
}

func TestJSONListRejectsObject(t *testing.T) {
	path := writeTemp(t, "call.json", `{"name": "a"}`)

	_, err := JSONList(path)
	require.Error(t, err)
}

func TestToolFileYAMLList(t *testing.T) {
	path := writeTemp(t, "tools.yaml", `- name: get_weather
  parameter:
    properties:
      city:
        type: string
        required: true
- name: web_search
  parameter:
    properties:
      query:
        type: string
`)

	defs, err := ToolFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "get_weather", defs[0].Name)
	assert.True(t, defs[0].Parameter.Properties["city"].Required)
	assert.False(t, defs[1].Parameter.Properties["query"].Required)
}

func TestToolFileSingleDefinition(t *testing.T) {
	path := writeTemp(t, "tool.json", `{"name": "echo", "parameter": {"properties": {"text": {"type": "string", "required": true}}}}`)

	defs, err := ToolFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "echo", defs[0].Name)
}

func TestToolFileUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "tools.txt", "whatever")

	_, err := ToolFile(path)
	require.Error(t, err)
}

func TestToolFileEmpty(t *testing.T) {
	path := writeTemp(t, "tools.yaml", "")

	defs, err := ToolFile(path)
	require.NoError(t, err)
	assert.Empty(t, defs)
}
