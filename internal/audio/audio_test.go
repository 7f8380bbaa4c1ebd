package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"go-td-core/internal/event"
)

func TestCueStreamersAreFiniteAndBounded(t *testing.T) {
	rate := beep.SampleRate(8000)
	for cue := Cue(0); cue < cueCount; cue++ {
		t.Run(cue.String(), func(t *testing.T) {
			s := Streamer(cue, rate, 1)
			if s == nil {
				t.Fatal("nil streamer")
			}
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for i := 0; i < n; i++ {
					if math.IsNaN(buf[i][0]) || math.Abs(buf[i][0]) > 1.0001 {
						t.Fatalf("sample %d out of range: %v", total+i, buf[i][0])
					}
				}
				total += n
				if !ok || n == 0 {
					break
				}
				if total > rate.N(cueDurations[cue])*2 {
					t.Fatalf("stream did not end after %d samples", total)
				}
			}
			if total == 0 {
				t.Error("stream produced no samples")
			}
		})
	}
}

func TestOscillatorNoiseIsDeterministic(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := newOscillator(0, 0, cueDurations[CueExplosion], WaveNoise, rate)
	b := newOscillator(0, 0, cueDurations[CueExplosion], WaveNoise, rate)
	bufA, bufB := make([][2]float64, 64), make([][2]float64, 64)
	a.Stream(bufA)
	b.Stream(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("noise differs at %d", i)
		}
	}
}

type recordingPlayer struct {
	played []Cue
}

func (p *recordingPlayer) Play(c Cue) { p.played = append(p.played, c) }

func TestCuesFollowEvents(t *testing.T) {
	d := event.NewDispatcher()
	p := &recordingPlayer{}
	NewCues(p).Attach(d)

	d.Publish(event.Event{Type: event.TowerFired, Data: event.ShotData{Attack: "SINGLE"}})
	d.Publish(event.Event{Type: event.TowerFired, Data: event.ShotData{Attack: "AREA"}})
	d.Publish(event.Event{Type: event.Explosion})
	d.Publish(event.Event{Type: event.GoldEarned})
	d.Publish(event.Event{Type: event.PlayerDefeated})
	d.Flush()

	want := []Cue{CueFire, CueExplosion, CueDefeat}
	if len(p.played) != len(want) {
		t.Fatalf("played %v, want %v", p.played, want)
	}
	for i := range want {
		if p.played[i] != want[i] {
			t.Errorf("cue %d = %s, want %s", i, p.played[i], want[i])
		}
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager()
	sm.Play(CueFire)
	if sm.mixer.Len() != 0 {
		t.Error("uninitialized manager queued a voice")
	}
}
