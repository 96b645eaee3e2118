package gamepad_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/padcan/padcan/gamepad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	m := gamepad.DefaultMapping()
	require.NoError(t, m.Validate())
	assert.Equal(t, []string{"lx", "ly", "rx", "ry"}, m.Axes)
	assert.Equal(t, "select", m.Buttons[10])
	assert.Equal(t, "start", m.Buttons[11])
	assert.Equal(t, "rz", m.Buttons[14])
}

func TestMappingValidate(t *testing.T) {
	type testCase struct {
		name    string
		mapping gamepad.Mapping
	}

	cases := []testCase{
		{name: "no axes", mapping: gamepad.Mapping{Buttons: []string{"a"}}},
		{name: "no buttons", mapping: gamepad.Mapping{Axes: []string{"lx"}}},
		{name: "duplicate axis", mapping: gamepad.Mapping{Axes: []string{"lx", "lx"}, Buttons: []string{"a"}}},
		{name: "duplicate button", mapping: gamepad.Mapping{Axes: []string{"lx"}, Buttons: []string{"a", "b", "a"}}},
		{name: "empty name", mapping: gamepad.Mapping{Axes: []string{"lx"}, Buttons: []string{"a", ""}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.mapping.Validate(), gamepad.ErrInvalidMapping)
		})
	}
}

func TestLoadMapping(t *testing.T) {
	type testCase struct {
		file    string
		content string
	}

	cases := []testCase{
		{
			file:    "pad.json",
			content: `{"axes": ["rx", "ry", "lx", "ly"], "buttons": ["b", "a", "start", "select"]}`,
		},
		{
			file: "pad.yaml",
			content: `axes: [rx, ry, lx, ly]
buttons:
  - b
  - a
  - start
  - select
`,
		},
		{
			file: "pad.toml",
			content: `axes = ["rx", "ry", "lx", "ly"]
buttons = ["b", "a", "start", "select"]
`,
		},
	}

	expected := gamepad.Mapping{
		Axes:    []string{"rx", "ry", "lx", "ly"},
		Buttons: []string{"b", "a", "start", "select"},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			m, err := gamepad.LoadMapping(path)
			require.NoError(t, err)
			assert.Equal(t, expected, m)
		})
	}
}

func TestLoadMappingErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := gamepad.LoadMapping(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"axes": [`), 0o644))
	_, err = gamepad.LoadMapping(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yml")
	require.NoError(t, os.WriteFile(invalid, []byte("axes: [lx]\nbuttons: []\n"), 0o644))
	_, err = gamepad.LoadMapping(invalid)
	assert.ErrorIs(t, err, gamepad.ErrInvalidMapping)
}

func TestMappingMarshalRoundTrip(t *testing.T) {
	m := gamepad.DefaultMapping()
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			b, err := m.Marshal(format)
			require.NoError(t, err)

			out, err := gamepad.ParseMapping(b, format)
			require.NoError(t, err)
			assert.Equal(t, m, out)
		})
	}

	_, err := m.Marshal("ini")
	assert.Error(t, err)
}
