// Package audio plays the optional ambient soundtrack. Playback is best
// effort: any failure silences the player for the rest of the session.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/litescript/ls-orrery/internal/logging"
)

const sampleRate = beep.SampleRate(44100)

// droneTones are the partials of the procedural drone, in Hz.
var droneTones = []float64{55, 82.5, 110}

// Config controls the soundtrack.
type Config struct {
	Enabled bool
	// Track is an MP3 file to loop. Empty uses the procedural drone.
	Track  string
	Volume float64
}

// DefaultConfig returns the stock audio settings.
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5}
}

// State is where the player is in its lifecycle.
type State int

const (
	Idle State = iota
	Playing
	Blocked
	Disabled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Blocked:
		return "blocked"
	case Disabled:
		return "disabled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Player starts the soundtrack at most once.
type Player struct {
	cfg Config
	log *logging.Logger

	// Output hooks, replaced in tests.
	initSpeaker func(sr beep.SampleRate, bufferSize int) error
	play        func(s ...beep.Streamer)
	open        func(name string) (io.ReadCloser, error)

	once   sync.Once
	mu     sync.Mutex
	state  State
	closer io.Closer
}

// NewPlayer creates a player. Nothing touches the audio device until Start.
func NewPlayer(cfg Config, log *logging.Logger) *Player {
	if log == nil {
		log = logging.Discard()
	}
	p := &Player{
		cfg:         cfg,
		log:         log,
		initSpeaker: speaker.Init,
		play:        speaker.Play,
		open:        func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
	if !cfg.Enabled {
		p.state = Disabled
	}
	return p
}

// State reports the player's lifecycle state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins playback. Only the first call does anything; later calls
// return immediately whether or not the first one succeeded.
func (p *Player) Start() {
	p.once.Do(p.start)
}

func (p *Player) start() {
	if !p.cfg.Enabled {
		return
	}
	s, format, err := p.source()
	if err == nil {
		err = p.initSpeaker(sampleRate, sampleRate.N(100*time.Millisecond))
	}
	if err != nil {
		p.log.Debug("audio play blocked: %v", err)
		p.mu.Lock()
		p.state = Blocked
		p.mu.Unlock()
		p.Close()
		return
	}
	if format.SampleRate != 0 && format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	p.play(withVolume(s, p.cfg.Volume))

	p.mu.Lock()
	p.state = Playing
	p.mu.Unlock()
	p.log.Info("soundtrack started")
}

// source opens the configured track, falling back to the drone when no track
// is set or it cannot be decoded.
func (p *Player) source() (beep.Streamer, beep.Format, error) {
	if p.cfg.Track != "" {
		s, format, err := p.decode(p.cfg.Track)
		if err == nil {
			return s, format, nil
		}
		p.log.Debug("soundtrack %s unusable, using drone: %v", p.cfg.Track, err)
	}
	s, err := Drone(sampleRate)
	return s, beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}, err
}

func (p *Player) decode(name string) (beep.Streamer, beep.Format, error) {
	f, err := p.open(name)
	if err != nil {
		return nil, beep.Format{}, err
	}
	dec, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}
	p.mu.Lock()
	p.closer = dec
	p.mu.Unlock()
	return beep.Loop(-1, dec), format, nil
}

// Close releases the decoded track, if any.
func (p *Player) Close() error {
	p.mu.Lock()
	c := p.closer
	p.closer = nil
	p.mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}

// Drone mixes a few low sine partials into an endless ambient tone.
func Drone(sr beep.SampleRate) (beep.Streamer, error) {
	var tones []beep.Streamer
	var errs []error
	for _, f := range droneTones {
		t, err := generators.SineTone(sr, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tones = append(tones, t)
	}
	if len(tones) == 0 {
		return nil, errors.Join(errs...)
	}
	// Scale the sum back into [-1, 1].
	return &effects.Gain{Streamer: beep.Mix(tones...), Gain: 1/float64(len(tones)) - 1}, nil
}

// withVolume applies a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}
