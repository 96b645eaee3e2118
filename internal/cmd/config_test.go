package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/padcan/padcan/gamepad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestFlagName(t *testing.T) {
	tests := map[string]string{
		"Device":   "device",
		"MotorID":  "motor-id",
		"RawFile":  "raw-file",
		"ID":       "id",
		"Interval": "interval",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, flagName(in))
		})
	}
}

func TestBuildMapFromDrive(t *testing.T) {
	got := buildMapFromStruct(reflect.TypeOf(Drive{}))
	assert.Equal(t, map[string]any{
		"device":    "/dev/input/js0",
		"interface": "can1",
		"mapping":   "",
		"motor-id":  uint64(44),
		"interval":  "0s",
	}, got)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		out := filepath.Join(dir, "send.json")
		require.NoError(t, (&ConfigInit{Command: "send", Format: "json", Output: out}).Run())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "can1", got["interface"])
		assert.Equal(t, float64(44), got["id"])
		assert.Contains(t, got, "data")
	})

	t.Run("yaml", func(t *testing.T) {
		out := filepath.Join(dir, "nested", "monitor.yml")
		require.NoError(t, (&ConfigInit{Command: "monitor", Format: "yml", Output: out}).Run())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, 44, got["motor-id"])
		assert.Equal(t, false, got["all"])
	})

	t.Run("toml", func(t *testing.T) {
		out := filepath.Join(dir, "drive.toml")
		require.NoError(t, (&ConfigInit{Command: "drive", Format: "toml", Output: out}).Run())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "/dev/input/js0")
	})

	t.Run("refuses overwrite", func(t *testing.T) {
		out := filepath.Join(dir, "events.yaml")
		require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))
		assert.Error(t, (&ConfigInit{Command: "events", Format: "yaml", Output: out}).Run())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))

		require.NoError(t, (&ConfigInit{Command: "events", Format: "yaml", Output: out, Force: true}).Run())
	})

	t.Run("unknown command", func(t *testing.T) {
		assert.Error(t, (&ConfigInit{Command: "fly", Format: "yaml", Output: filepath.Join(dir, "x.yaml")}).Run())
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, (&ConfigInit{Command: "drive", Format: "ini", Output: filepath.Join(dir, "x.ini")}).Run())
	})
}

func TestConfigMapping(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "mapping."+format)
			require.NoError(t, (&ConfigMapping{Format: format, Output: out}).Run())

			m, err := gamepad.LoadMapping(out)
			require.NoError(t, err)
			assert.Equal(t, gamepad.DefaultMapping(), m)
		})
	}
}
