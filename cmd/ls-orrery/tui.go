package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/body"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
)

// ErrNoTerminal is returned when the TUI is started without a terminal.
var ErrNoTerminal = errors.New("stdout is not a terminal; use 'ls-orrery simulate' for headless output")

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNoTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noAudio, _ := cmd.Flags().GetBool("no-audio"); noAudio {
		cfg.Audio.Enabled = false
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := newLogger(cfg, out)

	reg, err := loadRegistry(cfg.BodiesFile)
	if err != nil {
		return err
	}
	sceneCtx, err := buildScene(cfg, reg, log)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(cfg.AudioConfig(), log.With("audio"))
	defer player.Close()

	opts := ui.DefaultOptions()
	opts.FPS = cfg.FPS
	opts.Tour = cfg.TourOptions()
	opts.Audio = player
	opts.Log = log.With("ui")
	model := ui.New(sceneCtx, state.NewManager(cfg.StateConfig()), opts)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	if cfg.Watch && cfg.BodiesFile != "" {
		w, err := body.NewWatcher(cfg.BodiesFile)
		if err != nil {
			return fmt.Errorf("watch catalogue: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Stop()
			return fmt.Errorf("watch catalogue: %w", err)
		}
		defer w.Stop()
		go forwardReloads(w.Changes, p, cfg, log)
		log.Info("watching %s", w.Path)
	}

	log.Info("starting orrery: %d bodies at %d fps", len(reg.Bodies), cfg.FPS)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// sender is the part of tea.Program that receives reloads.
type sender interface {
	Send(msg tea.Msg)
}

// forwardReloads rebuilds the scene for every catalogue change and hands it
// to the program. It returns when changes is closed.
func forwardReloads(changes <-chan body.Reload, p sender, cfg config.Config, log *logging.Logger) {
	for r := range changes {
		if r.Err != nil {
			p.Send(ui.ReloadMsg{Path: r.Path, Err: r.Err})
			continue
		}
		ctx, err := buildScene(cfg, r.Registry, log)
		p.Send(ui.ReloadMsg{Path: r.Path, Context: ctx, Err: err})
	}
}
