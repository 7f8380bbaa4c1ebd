// internal/audio/sounds.go
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a sound the simulation can trigger.
type Cue int

const (
	CueFire Cue = iota
	CueExplosion
	CueEnemyDeath
	CueBaseHit
	CueLevelReady
	CueDefeat
	cueCount
)

var cueNames = [...]string{"fire", "explosion", "enemy_death", "base_hit", "level_ready", "defeat"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// cueDurations bound every cue so the mixer drops finished voices.
var cueDurations = [cueCount]time.Duration{
	CueFire:       60 * time.Millisecond,
	CueExplosion:  350 * time.Millisecond,
	CueEnemyDeath: 120 * time.Millisecond,
	CueBaseHit:    200 * time.Millisecond,
	CueLevelReady: 240 * time.Millisecond,
	CueDefeat:     900 * time.Millisecond,
}

// Streamer builds a fresh streamer for cue at the given volume.
func Streamer(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	if cue < 0 || cue >= cueCount {
		return nil
	}
	d := cueDurations[cue]
	var s beep.Streamer
	switch cue {
	case CueFire:
		s = newDecay(newOscillator(1400, -9000, d, WaveSquare, rate), 2*time.Millisecond, 40, rate)
		volume *= 0.25
	case CueExplosion:
		s = newDecay(newOscillator(0, 0, d, WaveNoise, rate), 5*time.Millisecond, 10, rate)
		volume *= 0.6
	case CueEnemyDeath:
		s = newDecay(newOscillator(520, -2500, d, WaveSaw, rate), 3*time.Millisecond, 18, rate)
		volume *= 0.35
	case CueBaseHit:
		s = newDecay(newOscillator(90, 0, d, WaveSquare, rate), 5*time.Millisecond, 8, rate)
		volume *= 0.5
	case CueLevelReady:
		s = beep.Seq(tone(rate, 880, d/2), tone(rate, 1320, d/2))
		volume *= 0.3
	case CueDefeat:
		s = newDecay(newOscillator(220, -180, d, WaveSaw, rate), 10*time.Millisecond, 3, rate)
		volume *= 0.5
	}
	return withVolume(s, volume)
}
