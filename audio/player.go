package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sound tied to an editor or run-state action
type Cue uint8

const (
	CueSelect Cue = iota
	CueSpawn
	CueDelete
	CueRun
	CuePause
	CueStep
	cueCount
)

var cueNames = [cueCount]string{"select", "spawn", "delete", "run", "pause", "step"}

func (c Cue) String() string {
	if c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// Player mixes cues onto the speaker
// Every method is safe before Initialize and after Close; cues are silently dropped
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64 // log2 gain applied to every cue
	initialized bool
	muted       bool
	played      [cueCount]int
}

// NewPlayer creates an uninitialized player; volume is a log2 gain, 0 is unity
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker; repeated calls are no-ops
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close drops queued cues; the speaker stays open for the process lifetime
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues c unless the player is muted or has no device
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || c >= cueCount {
		return
	}
	s := cueStreamer(c, sampleRate)
	if s == nil {
		return
	}
	p.played[c]++

	speaker.Lock()
	p.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: p.volume})
	speaker.Unlock()
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many times c reached the mixer
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c >= cueCount {
		return 0
	}
	return p.played[c]
}
