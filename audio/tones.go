package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// cueStreamer builds a finite streamer for c
func cueStreamer(c Cue, sr beep.SampleRate) beep.Streamer {
	switch c {
	case CueSelect:
		return pluck(sr, 880, 60*time.Millisecond)
	case CueSpawn:
		return NewSweep(sr, 520, 1040, 140*time.Millisecond)
	case CueDelete:
		return NewSweep(sr, 400, 160, 180*time.Millisecond)
	case CueRun:
		return beep.Seq(pluck(sr, 660, 50*time.Millisecond), pluck(sr, 990, 70*time.Millisecond))
	case CuePause:
		return beep.Seq(pluck(sr, 990, 50*time.Millisecond), pluck(sr, 660, 70*time.Millisecond))
	case CueStep:
		return pluck(sr, 440, 30*time.Millisecond)
	default:
		return nil
	}
}

// pluck is a sine tone of length d with an exponential decay
func pluck(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return &decay{
		Streamer: beep.Take(sr.N(d), tone),
		rate:     5 / float64(sr.N(d)),
		gain:     0.3,
	}
}

// decay scales a streamer by gain*exp(-rate*n)
type decay struct {
	beep.Streamer
	rate float64
	gain float64
	pos  int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := d.gain * math.Exp(-d.rate*float64(d.pos))
		samples[i][0] *= env
		samples[i][1] *= env
		d.pos++
	}
	return n, ok
}

// Sweep is a finite sine glide from one frequency to another with a short attack and linear release
type Sweep struct {
	sr       beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
}

// NewSweep creates a glide of length d
func NewSweep(sr beep.SampleRate, from, to float64, d time.Duration) *Sweep {
	return &Sweep{sr: sr, from: from, to: to, total: sr.N(d)}
}

func (s *Sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	attack := s.sr.N(5 * time.Millisecond)
	n := 0
	for i := range samples {
		if s.pos >= s.total {
			break
		}
		frac := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*frac
		s.phase += 2 * math.Pi * freq / float64(s.sr)

		env := 1 - frac
		if s.pos < attack {
			env *= float64(s.pos) / float64(attack)
		}
		v := 0.25 * env * math.Sin(s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *Sweep) Err() error {
	return nil
}
