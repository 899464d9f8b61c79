package body

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalogue = `
[sun]
name = "SOL"
radius = 20
color_a = "#ffd700"
color_b = "#ff8800"

[[bodies]]
name = "INNER"
radius = 3
distance = 70
speed = 0.04
class = "rocky"
color_a = "#aaaaaa"
color_b = "#555555"
description = "Small and quick."

[[bodies]]
name = "HOME"
radius = 6
distance = 140
speed = 0.01
class = "earth"
color_a = "#0000ff"
color_b = "#00ff00"
ring = true

  [[bodies.satellites]]
  name = "Moon"
  radius = 1.5
  distance = 12
`

func TestParseCatalogue(t *testing.T) {
	reg, err := Parse([]byte(sampleCatalogue))
	require.NoError(t, err)

	assert.Equal(t, "SOL", reg.Sun.Name)
	assert.Equal(t, 20.0, reg.Sun.Radius)
	require.Len(t, reg.Bodies, 2)

	home := reg.Bodies[1]
	assert.Equal(t, WaterWorld, home.Class)
	assert.True(t, home.Ring)
	require.Len(t, home.Satellites, 1)
	assert.Equal(t, Satellite{Name: "Moon", Radius: 1.5, Distance: 12}, home.Satellites[0])
}

func TestParseCatalogueDefaultsSun(t *testing.T) {
	data := `
[[bodies]]
name = "ONLY"
radius = 1
distance = 10
speed = 0.1
class = "gas"
color_a = "#fff"
color_b = "#000"
`
	reg, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSun, reg.Sun)
}

func TestParseCatalogueErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[[bodies]\nname=", "parsing catalogue"},
		{"invalid body", `
[[bodies]]
name = "BAD"
radius = 0
distance = 10
class = "rocky"
color_a = "#fff"
color_b = "#000"
`, "radius must be > 0"},
		{"unknown class", `
[[bodies]]
name = "BAD"
radius = 1
distance = 10
class = "plasma"
color_a = "#fff"
color_b = "#000"
`, `unknown surface class "plasma"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, Default()))

	reg, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Default(), reg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, Default()))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	select {
	case r := <-w.Changes:
		require.NoError(t, r.Err)
		assert.Len(t, r.Registry.Bodies, 12)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsBadCatalogue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[[bodies]\n"), 0644))

	select {
	case r := <-w.Changes:
		assert.Error(t, r.Err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherStartFailureReleases(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "bodies.toml"))
	require.NoError(t, err)
	require.Error(t, w.Start())

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after a failed Start")
	}
	_, ok := <-w.Changes
	assert.False(t, ok, "Changes should be closed")
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "bodies.toml"))
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without Start")
	}
}
