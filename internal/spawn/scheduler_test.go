package spawn

import (
	"math"
	"testing"

	"go-td-core/internal/curve"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/utils"
)

type recorder struct {
	reqs    []Request
	elapsed []float64
	s       *Scheduler
}

func (r *recorder) Spawn(req Request) {
	r.reqs = append(r.reqs, req)
	if r.s != nil {
		r.elapsed = append(r.elapsed, r.s.Elapsed())
	}
}

func newScheduler(tl *defs.SpawnTimeline) (*Scheduler, *recorder, *event.Dispatcher) {
	rec := &recorder{}
	d := event.NewDispatcher()
	s := NewScheduler(tl, rec, utils.NewPRNGService(99), d)
	rec.s = s
	return s, rec, d
}

func run(s *Scheduler, dt float64, steps int) {
	for i := 0; i < steps; i++ {
		s.Tick(dt)
	}
}

func TestStaggeredEventSpacing(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		Name:          "t",
		TotalDuration: 100,
		Events: []defs.SpawnEvent{
			{Name: "w", TriggerTime: 2, EnemyID: "A", Count: 3, Pattern: defs.PatternStaggered, SpawnInterval: 1},
		},
	})
	s.Start()
	run(s, 0.5, 12)

	want := []float64{2, 3, 4}
	if len(rec.reqs) != len(want) {
		t.Fatalf("spawned %d, want %d", len(rec.reqs), len(want))
	}
	for i, w := range want {
		if rec.reqs[i].Time != w || rec.elapsed[i] != w {
			t.Errorf("spawn %d at %v (elapsed %v), want %v", i, rec.reqs[i].Time, rec.elapsed[i], w)
		}
		if rec.reqs[i].PathIndex != AnyPath || rec.reqs[i].EventName != "w" {
			t.Errorf("spawn %d request = %+v", i, rec.reqs[i])
		}
	}
}

func TestBurstAndInstantPatterns(t *testing.T) {
	lane := 1
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 100,
		Events: []defs.SpawnEvent{
			{Name: "burst", TriggerTime: 1, EnemyID: "B", Count: 4, Pattern: defs.PatternBurst, BurstDuration: 2, PathIndex: &lane},
			{Name: "instant", TriggerTime: 1, EnemyID: "I", Count: 3, Pattern: defs.PatternInstant},
		},
	})
	s.Start()
	s.Tick(1)

	// Burst's first spawn was scheduled first, then all three instant spawns.
	wantIDs := []string{"B", "I", "I", "I"}
	if len(rec.reqs) != len(wantIDs) {
		t.Fatalf("spawned %d at t=1, want %d", len(rec.reqs), len(wantIDs))
	}
	for i, id := range wantIDs {
		if rec.reqs[i].EnemyID != id {
			t.Errorf("spawn %d = %s, want %s", i, rec.reqs[i].EnemyID, id)
		}
	}
	if rec.reqs[0].PathIndex != 1 {
		t.Errorf("burst path index = %d", rec.reqs[0].PathIndex)
	}

	s.Tick(2)
	var times []float64
	for _, r := range rec.reqs {
		if r.EnemyID == "B" {
			times = append(times, r.Time)
		}
	}
	want := []float64{1, 1.5, 2, 2.5}
	if len(times) != len(want) {
		t.Fatalf("burst times = %v, want %v", times, want)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("burst times = %v, want %v", times, want)
		}
	}
}

func TestEventsFireOnceInArrayOrder(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 100,
		Events: []defs.SpawnEvent{
			{Name: "late", TriggerTime: 3, EnemyID: "L", Count: 1},
			{Name: "first", TriggerTime: 1, EnemyID: "F", Count: 1},
			{Name: "second", TriggerTime: 1, EnemyID: "S", Count: 1},
		},
	})
	s.Start()
	s.Tick(5)
	s.Tick(5)

	if len(rec.reqs) != 3 {
		t.Fatalf("spawned %d, want 3", len(rec.reqs))
	}
	got := rec.reqs[0].EnemyID + rec.reqs[1].EnemyID + rec.reqs[2].EnemyID
	if got != "FSL" {
		t.Errorf("order = %s, want FSL (due time, then array order)", got)
	}
}

func TestStopCancelsPendingSpawns(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 100,
		Events: []defs.SpawnEvent{
			{Name: "w", TriggerTime: 0, EnemyID: "A", Count: 5, Pattern: defs.PatternStaggered, SpawnInterval: 1},
		},
	})
	if !s.Start() || s.Start() {
		t.Fatal("Start should succeed once")
	}
	s.Tick(0.5)
	if len(rec.reqs) != 1 || s.PendingCount() != 4 {
		t.Fatalf("after first tick: spawned %d, pending %d", len(rec.reqs), s.PendingCount())
	}
	if !s.Stop() || s.State() != Idle || s.PendingCount() != 0 {
		t.Fatalf("Stop did not cancel: state %v pending %d", s.State(), s.PendingCount())
	}
	run(s, 1, 10)
	if len(rec.reqs) != 1 {
		t.Errorf("spawns after Stop: %d", len(rec.reqs))
	}

	s.Start()
	s.Tick(0.1)
	if len(rec.reqs) != 2 {
		t.Errorf("restart did not refire the event: %d", len(rec.reqs))
	}
}

func TestCompletion(t *testing.T) {
	d := event.NewDispatcher()
	completed := 0
	d.Subscribe(event.TimelineCompleted, event.ListenerFunc(func(event.Event) { completed++ }))

	finite := &defs.SpawnTimeline{TotalDuration: 5, Events: []defs.SpawnEvent{
		{Name: "end", TriggerTime: 5, EnemyID: "A", Count: 2, Pattern: defs.PatternStaggered, SpawnInterval: 1},
	}}
	rec := &recorder{}
	s := NewScheduler(finite, rec, nil, d)
	s.Start()
	run(s, 1, 5)
	d.Flush()
	if s.State() != Complete || completed != 1 {
		t.Fatalf("state %v, completed events %d", s.State(), completed)
	}
	if len(rec.reqs) != 1 {
		t.Errorf("spawns = %d, want 1 (event at end fires, tail is cancelled)", len(rec.reqs))
	}
	run(s, 1, 3)
	if len(rec.reqs) != 1 {
		t.Errorf("spawned after completion")
	}
	if s.Start() {
		t.Errorf("Start on a completed timeline should fail")
	}
	if !s.Restart() || s.State() != Running {
		t.Errorf("Restart on a completed timeline: state %v", s.State())
	}

	infinite := &defs.SpawnTimeline{TotalDuration: 5, Infinite: true}
	s2, _, _ := newScheduler(infinite)
	s2.Start()
	run(s2, 1, 20)
	if s2.State() != Running {
		t.Errorf("infinite timeline state = %v", s2.State())
	}
	if s2.Progress() != 1 {
		t.Errorf("Progress = %v, want clamped 1", s2.Progress())
	}
}

func TestPauseFreezesClock(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{TotalDuration: 10, Events: []defs.SpawnEvent{
		{Name: "a", TriggerTime: 1, EnemyID: "A", Count: 1},
	}})
	s.Start()
	s.Pause()
	run(s, 1, 5)
	if s.Elapsed() != 0 || len(rec.reqs) != 0 {
		t.Fatalf("paused scheduler advanced: elapsed %v", s.Elapsed())
	}
	s.Resume()
	s.Tick(1)
	if len(rec.reqs) != 1 {
		t.Errorf("resumed scheduler did not spawn")
	}
}

func TestWarningsPublishedOnceAhead(t *testing.T) {
	s, _, d := newScheduler(&defs.SpawnTimeline{TotalDuration: 20, Events: []defs.SpawnEvent{
		{Name: "boss", TriggerTime: 5, EnemyID: "B", Count: 1, ShowWarning: true, WarningTime: 2},
	}})
	var warnedAt []float64
	d.Subscribe(event.SpawnWarning, event.ListenerFunc(func(event.Event) { warnedAt = append(warnedAt, s.Elapsed()) }))
	s.Start()
	for i := 0; i < 8; i++ {
		s.Tick(1)
		d.Flush()
	}
	if len(warnedAt) != 1 || warnedAt[0] != 3 {
		t.Errorf("warnings at %v, want [3]", warnedAt)
	}
}

func TestNextEvent(t *testing.T) {
	s, _, _ := newScheduler(&defs.SpawnTimeline{TotalDuration: 20, Events: []defs.SpawnEvent{
		{Name: "b", TriggerTime: 8, EnemyID: "B", Count: 1},
		{Name: "a", TriggerTime: 4, EnemyID: "A", Count: 1},
	}})
	s.Start()
	s.Tick(1)
	ev, until, ok := s.NextEvent()
	if !ok || ev.Name != "a" || until != 3 {
		t.Fatalf("NextEvent = %v, %v, %v", ev, until, ok)
	}
	s.Tick(4)
	if ev, _, _ := s.NextEvent(); ev.Name != "b" {
		t.Errorf("NextEvent after a = %s", ev.Name)
	}
	s.Tick(5)
	if _, _, ok := s.NextEvent(); ok {
		t.Errorf("NextEvent after all fired")
	}
}

func TestContinuousInterval(t *testing.T) {
	c := &defs.ContinuousSpawnConfig{BaseInterval: 1, MinInterval: 0.1}
	tests := []struct {
		rate float64
		want float64
	}{
		{2, 0.5},
		{100, 0.1},
		{0, math.MaxFloat64},
		{-1, math.MaxFloat64},
	}
	for _, tt := range tests {
		c.SpawnRate = curve.Constant(tt.rate)
		if got := ContinuousInterval(c, 0.3); got != tt.want {
			t.Errorf("rate %v: interval %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestContinuousSpawningRespectsAvailability(t *testing.T) {
	lock := 1.0
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 10,
		Continuous: &defs.ContinuousSpawnConfig{
			Enabled:       true,
			TotalDuration: 10,
			BaseInterval:  1,
			MinInterval:   0.1,
			SpawnRate:     curve.Constant(2),
			Entries: []defs.ContinuousEntry{
				{EnemyID: "EARLY", BaseWeight: 1, LockTime: &lock},
				{EnemyID: "LATE", BaseWeight: 1, UnlockTime: 1},
			},
			HealthMultiplier: curve.Linear(1, 3),
		},
	})
	s.Start()
	run(s, 0.25, 8)

	want := []string{"EARLY", "LATE", "LATE", "LATE"}
	if len(rec.reqs) != len(want) {
		t.Fatalf("spawned %d, want %d", len(rec.reqs), len(want))
	}
	for i, id := range want {
		if rec.reqs[i].EnemyID != id || rec.reqs[i].Source != SourceContinuous {
			t.Errorf("spawn %d = %+v, want %s", i, rec.reqs[i], id)
		}
	}
	if got := rec.reqs[3].HealthMultiplier; math.Abs(got-1.4) > 1e-9 {
		t.Errorf("health multiplier at t=2 = %v, want 1.4", got)
	}
	if got := rec.reqs[0].DifficultyMultiplier; got != 1 {
		t.Errorf("default difficulty multiplier = %v", got)
	}
}

func TestContinuousZeroWeightsFallBackToFirst(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 10,
		Continuous: &defs.ContinuousSpawnConfig{
			Enabled:      true,
			BaseInterval: 1,
			SpawnRate:    curve.Constant(1),
			Entries: []defs.ContinuousEntry{
				{EnemyID: "LOCKED", BaseWeight: 5, UnlockTime: 50},
				{EnemyID: "FIRST", BaseWeight: 0},
				{EnemyID: "SECOND", BaseWeight: 1, WeightCurve: curve.Constant(0)},
			},
		},
	})
	s.Start()
	run(s, 0.5, 6)
	if len(rec.reqs) != 3 {
		t.Fatalf("spawned %d, want 3", len(rec.reqs))
	}
	for _, r := range rec.reqs {
		if r.EnemyID != "FIRST" {
			t.Errorf("picked %s, want FIRST", r.EnemyID)
		}
	}
}

func TestContinuousZeroRateNeverSpawns(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 10,
		Continuous: &defs.ContinuousSpawnConfig{
			Enabled:      true,
			BaseInterval: 1,
			SpawnRate:    curve.Constant(0),
			Entries:      []defs.ContinuousEntry{{EnemyID: "A", BaseWeight: 1}},
		},
	})
	s.Start()
	run(s, 0.5, 19)
	if len(rec.reqs) != 0 {
		t.Errorf("zero rate spawned %d", len(rec.reqs))
	}
}

func TestRandomDelayStaysBounded(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 100,
		Continuous: &defs.ContinuousSpawnConfig{
			Enabled:        true,
			BaseInterval:   1,
			SpawnRate:      curve.Constant(1),
			UseRandomDelay: true,
			MinDelay:       0.2,
			MaxDelay:       5,
			Entries:        []defs.ContinuousEntry{{EnemyID: "A", BaseWeight: 1}},
		},
	})
	s.Start()
	run(s, 0.05, 400)
	prev := 0.0
	for _, r := range rec.reqs {
		gap := r.Time - prev
		if gap < 1.2-1e-9 || gap > 1.5+1e-9 {
			t.Fatalf("gap %v outside [1.2, 1.5]", gap)
		}
		prev = r.Time
	}
	if len(rec.reqs) < 10 {
		t.Errorf("only %d spawns in 20s", len(rec.reqs))
	}
}

func TestBackgroundSpawning(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{
		TotalDuration: 100,
		Background:    &defs.BackgroundSpawn{Enabled: true, EnemyID: "BG", Interval: 2, Count: 2},
		Difficulty:    &defs.DifficultyScaling{Enabled: true, RateMultiplier: curve.Constant(2)},
	})
	s.Start()
	run(s, 0.5, 6)

	if len(rec.reqs) != 6 {
		t.Fatalf("background spawned %d, want 6 (pairs at 1, 2, 3)", len(rec.reqs))
	}
	for i, r := range rec.reqs {
		if r.Source != SourceBackground || r.Time != float64(i/2+1) {
			t.Errorf("spawn %d = %+v", i, r)
		}
	}
}

func TestChangeTimeline(t *testing.T) {
	s, rec, _ := newScheduler(&defs.SpawnTimeline{TotalDuration: 10, Events: []defs.SpawnEvent{
		{Name: "old", TriggerTime: 1, EnemyID: "OLD", Count: 1},
	}})
	s.Start()
	s.ChangeTimeline(&defs.SpawnTimeline{TotalDuration: 10, Events: []defs.SpawnEvent{
		{Name: "new", TriggerTime: 1, EnemyID: "NEW", Count: 1},
	}})
	if s.State() != Idle {
		t.Fatalf("state after change = %v", s.State())
	}
	s.Start()
	s.Tick(1)
	if len(rec.reqs) != 1 || rec.reqs[0].EnemyID != "NEW" {
		t.Errorf("spawned %+v", rec.reqs)
	}
}
