package game

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/code-trail/internal/config"
)

const (
	toneOnFreq  = 880.0
	toneOffFreq = 440.0
)

// tone is a finite sine blip with a linear fade-out.
type tone struct {
	sampleRate beep.SampleRate
	freq       float64
	volume     float64
	pos        int
	length     int
}

func newTone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) *tone {
	return &tone{
		sampleRate: sr,
		freq:       freq,
		volume:     volume,
		length:     sr.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.length {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.length {
			break
		}
		env := 1 - float64(t.pos)/float64(t.length)
		v := math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.sampleRate)) * t.volume * env
		samples[i] = [2]float64{v, v}
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// toggleSound plays a blip on every toggle. The speaker is opened on
// first use; if that fails sound stays off for the session.
type toggleSound struct {
	enabled    bool
	initDone   bool
	sampleRate beep.SampleRate
	log        *slog.Logger
}

func newToggleSound(enabled bool, log *slog.Logger) *toggleSound {
	return &toggleSound{
		enabled:    enabled,
		sampleRate: beep.SampleRate(config.ToneSampleRate),
		log:        log,
	}
}

func (s *toggleSound) play(trailOn bool) error {
	if !s.enabled {
		return nil
	}
	if !s.initDone {
		if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/20)); err != nil {
			s.enabled = false
			return fmt.Errorf("init speaker: %w", err)
		}
		s.initDone = true
		s.log.Debug("speaker initialised", "sample_rate", int(s.sampleRate))
	}

	freq := toneOffFreq
	if trailOn {
		freq = toneOnFreq
	}
	speaker.Play(newTone(s.sampleRate, freq, config.ToneDuration, config.ToneVolume))
	return nil
}
