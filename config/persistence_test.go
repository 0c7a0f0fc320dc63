package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapConversion(t *testing.T) {
	t.Parallel()

	jsonData := `{
  "a": "b",
  "c": {
    "d": "e",
    "f": "g",
    "h": {
      "i": "j",
      "k": "l",
      "m": {
        "n": "o"
      }
    }
  },
  "p": "q"
}`
	jsonBytes := []byte(jsonData)

	mapData := map[string]interface{}{
		"a":       "b",
		"p":       "q",
		"c/d":     "e",
		"c/f":     "g",
		"c/h/i":   "j",
		"c/h/k":   "l",
		"c/h/m/n": "o",
	}

	m, err := JSONToMap(jsonBytes)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, mapData, m)

	j, err := MapToJSON(mapData)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(jsonBytes, j) {
		t.Errorf("json does not match, got %s", j)
	}

	j2, err := MapToJSON(m)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(jsonBytes, j2) {
		t.Errorf("json does not match, got %s", j2)
	}

	_, err = JSONToMap([]byte("{"))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestYAMLPersistence(t *testing.T) {
	quickRegister(t, "persist/cipher", OptTypeString, "aes")
	quickRegister(t, "persist/workers", OptTypeInt, 4)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persist:\n  cipher: serpent\n  workers: 8\n"), 0o0600))

	SetConfigFile(path)
	defer SetConfigFile("")

	require.NoError(t, loadConfig())

	cipher := GetAsString("persist/cipher", "")
	workers := GetAsInt("persist/workers", 0)
	assert.Equal(t, "serpent", cipher())
	assert.Equal(t, int64(8), workers())

	// saving writes yaml back
	require.NoError(t, SetConfigOption("persist/workers", 2))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workers: 2")
	assert.Contains(t, string(data), "cipher: serpent")
}
