package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/ui"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ORRERY_BELT_COUNT", "20")
	t.Setenv("ORRERY_STARS_COUNT", "50")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"simulate": false, "textures": false, "bodies": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q subcommand to be registered", name)
		}
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-file", "bodies", "seed"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q", name)
		}
	}
	for _, name := range []string{"fps", "watch", "no-audio", "track"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q", name)
		}
	}
}

func TestSimulateJSON(t *testing.T) {
	out, err := execute(t, "simulate", "--ticks", "10", "--time-scale", "2", "--json", "--every", "0", "--seed", "7")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	var got struct {
		TimeScale float64 `json:"time_scale"`
		Days      float64 `json:"days"`
		Date      string  `json:"date"`
		Scene     struct {
			Ticks  uint64 `json:"ticks"`
			Bodies []struct {
				Name string `json:"name"`
			} `json:"bodies"`
		} `json:"scene"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.TimeScale != 2 {
		t.Errorf("time_scale = %v, want 2", got.TimeScale)
	}
	if got.Scene.Ticks != 10 {
		t.Errorf("ticks = %d, want 10", got.Scene.Ticks)
	}
	if got.Days != 10 {
		t.Errorf("days = %v, want 10", got.Days)
	}
	if got.Date != "Year 1 | Day 10" {
		t.Errorf("date = %q", got.Date)
	}
	if n := len(got.Scene.Bodies); n != len(body.Default().Bodies) {
		t.Errorf("bodies = %d, want %d", n, len(body.Default().Bodies))
	}
}

func TestSimulateTable(t *testing.T) {
	out, err := execute(t, "simulate", "--ticks", "4", "--time-scale", "1", "--json=false", "--every", "2")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if n := strings.Count(out, "Orrery @"); n != 2 {
		t.Errorf("expected 2 tables, got %d:\n%s", n, out)
	}
	for _, want := range []string{"MERCURY", "EARTH", "Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSimulateRejectsNegativeTicks(t *testing.T) {
	_, err := execute(t, "simulate", "--ticks=-1")
	if err == nil {
		t.Fatal("expected an error for negative ticks")
	}
}

func TestBodiesTable(t *testing.T) {
	out, err := execute(t, "bodies", "--toml=false")
	if err != nil {
		t.Fatalf("bodies: %v", err)
	}
	reg := body.Default()
	for _, d := range reg.Bodies {
		if !strings.Contains(out, d.Name) {
			t.Errorf("table missing %s", d.Name)
		}
	}
	if !strings.Contains(out, body.NoMoons) {
		t.Errorf("table should mark moonless bodies")
	}
}

func TestBodiesTOMLRoundTrip(t *testing.T) {
	out, err := execute(t, "bodies", "--toml")
	if err != nil {
		t.Fatalf("bodies --toml: %v", err)
	}
	reg, err := body.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, out)
	}
	want := body.Default()
	if len(reg.Bodies) != len(want.Bodies) || reg.Sun.Name != want.Sun.Name {
		t.Errorf("round trip lost bodies: got %d, want %d", len(reg.Bodies), len(want.Bodies))
	}
}

func TestTexturesWritesPNGs(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "textures", "--out", dir, "--seed", "3")
	if err != nil {
		t.Fatalf("textures: %v", err)
	}
	for _, name := range []string{"sun.png", "earth.png", "saturn.png", "glow.png"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output should list %s", path)
		}
	}
}

func TestRunTUIRequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	if err := runTUI(rootCmd, nil); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("runTUI() = %v, want ErrNoTerminal", err)
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := loadRegistry("")
	if err != nil || len(reg.Bodies) != len(body.Default().Bodies) {
		t.Errorf("built-in catalogue: %d bodies, %v", len(reg.Bodies), err)
	}
	if _, err := loadRegistry(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing catalogue")
	}
}

type recorder struct{ msgs []tea.Msg }

func (r *recorder) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

func TestForwardReloads(t *testing.T) {
	cfg, err := config.LoadFrom(viper.New())
	if err != nil {
		t.Fatal(err)
	}
	cfg.Belt.Count = 10
	cfg.Stars.Count = 10
	cfg.Seed = 1

	reg := body.Default()
	reg.Bodies = reg.Bodies[:2]

	changes := make(chan body.Reload, 2)
	changes <- body.Reload{Path: "a.toml", Err: errors.New("bad toml")}
	changes <- body.Reload{Path: "a.toml", Registry: reg}
	close(changes)

	rec := &recorder{}
	forwardReloads(changes, rec, cfg, logging.Discard())

	if len(rec.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(rec.msgs))
	}
	first := rec.msgs[0].(ui.ReloadMsg)
	if first.Err == nil || first.Context != nil {
		t.Errorf("first reload = %+v, want an error", first)
	}
	second := rec.msgs[1].(ui.ReloadMsg)
	if second.Err != nil || second.Context == nil {
		t.Fatalf("second reload = %+v", second)
	}
	if n := len(second.Context.Bodies); n != 2 {
		t.Errorf("rebuilt scene has %d bodies, want 2", n)
	}
}
