// internal/spawn/scheduler.go
package spawn

import (
	"container/heap"
	"log"
	"math"

	"go-td-core/internal/config"
	"go-td-core/internal/defs"
	"go-td-core/internal/event"
	"go-td-core/internal/utils"
	"go-td-core/pkg/geom"
)

// State of a scheduler run.
type State int

const (
	Idle State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Complete:
		return "Complete"
	}
	return "Unknown"
}

// Source tells which part of the timeline produced a request.
type Source string

const (
	SourceEvent      Source = "event"
	SourceContinuous Source = "continuous"
	SourceBackground Source = "background"
)

// AnyPath lets the receiver pick a path.
const AnyPath = -1

// Request asks the game to create one enemy.
type Request struct {
	EnemyID              string
	PathIndex            int
	HealthMultiplier     float64
	DifficultyMultiplier float64
	Offset               geom.Vec3
	Source               Source
	EventName            string
	Time                 float64
}

// Spawner creates enemies for requests.
type Spawner interface {
	Spawn(req Request)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(req Request)

func (f SpawnerFunc) Spawn(req Request) { f(req) }

// Scheduler walks a spawn timeline. It has no goroutines: all waiting is
// expressed as due times checked from Tick.
type Scheduler struct {
	timeline *defs.SpawnTimeline
	spawner  Spawner
	rng      *utils.PRNGService
	pub      event.Publisher

	state   State
	paused  bool
	elapsed float64
	fired   []bool
	warned  []bool
	pending spawnQueue
	seq     int

	lastContinuous  float64
	continuousDelay float64
	nextBackground  float64
}

// NewScheduler creates an idle scheduler.
func NewScheduler(tl *defs.SpawnTimeline, spawner Spawner, rng *utils.PRNGService, pub event.Publisher) *Scheduler {
	if pub == nil {
		pub = event.Nop
	}
	if rng == nil {
		rng = utils.NewPRNGService(1)
	}
	return &Scheduler{timeline: tl, spawner: spawner, rng: rng, pub: pub}
}

func (s *Scheduler) State() State                  { return s.state }
func (s *Scheduler) Paused() bool                  { return s.paused }
func (s *Scheduler) Elapsed() float64              { return s.elapsed }
func (s *Scheduler) Timeline() *defs.SpawnTimeline { return s.timeline }
func (s *Scheduler) PendingCount() int             { return len(s.pending) }

// Progress is elapsed over total duration, clamped to [0, 1].
func (s *Scheduler) Progress() float64 {
	if s.timeline == nil || s.timeline.TotalDuration <= 0 {
		return 0
	}
	return geom.Clamp01(s.elapsed / s.timeline.TotalDuration)
}

// Start begins a fresh run from time zero. Only an Idle scheduler with a
// timeline can start; a completed run goes through Restart.
func (s *Scheduler) Start() bool {
	if s.timeline == nil || s.state != Idle {
		return false
	}
	s.reset()
	s.state = Running
	log.Printf("SpawnScheduler: timeline %q started", s.timeline.Name)
	s.publishStatus(event.TimelineStarted)
	return true
}

// Stop cancels every pending spawn and returns to Idle.
func (s *Scheduler) Stop() bool {
	if s.state != Running {
		return false
	}
	s.pending = s.pending[:0]
	s.state = Idle
	s.paused = false
	log.Printf("SpawnScheduler: timeline %q stopped at %.2fs", s.timeline.Name, s.elapsed)
	s.publishStatus(event.TimelineStopped)
	return true
}

// Pause freezes the clock without dropping pending spawns.
func (s *Scheduler) Pause() bool {
	if s.state != Running || s.paused {
		return false
	}
	s.paused = true
	s.publishStatus(event.TimelinePaused)
	return true
}

func (s *Scheduler) Resume() bool {
	if s.state != Running || !s.paused {
		return false
	}
	s.paused = false
	s.publishStatus(event.TimelineResumed)
	return true
}

// Restart stops a running or completed timeline and starts it again from
// zero.
func (s *Scheduler) Restart() bool {
	s.Stop()
	if s.state == Complete {
		s.state = Idle
	}
	return s.Start()
}

// ChangeTimeline stops the current run and swaps the timeline. The
// scheduler is left Idle.
func (s *Scheduler) ChangeTimeline(tl *defs.SpawnTimeline) {
	s.Stop()
	s.timeline = tl
	s.state = Idle
	s.elapsed = 0
}

// NextEvent returns the earliest event that has not fired yet and the time
// until it triggers.
func (s *Scheduler) NextEvent() (*defs.SpawnEvent, float64, bool) {
	if s.timeline == nil {
		return nil, 0, false
	}
	var next *defs.SpawnEvent
	for i := range s.timeline.Events {
		ev := &s.timeline.Events[i]
		if s.state != Idle && i < len(s.fired) && s.fired[i] {
			continue
		}
		if next == nil || ev.TriggerTime < next.TriggerTime {
			next = ev
		}
	}
	if next == nil {
		return nil, 0, false
	}
	return next, math.Max(0, next.TriggerTime-s.elapsed), true
}

// Tick advances the timeline by dt seconds.
func (s *Scheduler) Tick(dt float64) {
	if s.state != Running || s.paused || dt < 0 {
		return
	}
	s.elapsed += dt

	s.publishWarnings()
	s.fireDueEvents()
	s.drainPending()
	s.tickBackground()
	s.tickContinuous()

	if s.state == Running && !s.timeline.Infinite && s.elapsed >= s.timeline.TotalDuration {
		s.complete()
	}
}

func (s *Scheduler) reset() {
	n := len(s.timeline.Events)
	s.elapsed = 0
	s.paused = false
	s.fired = make([]bool, n)
	s.warned = make([]bool, n)
	s.pending = s.pending[:0]
	s.seq = 0
	s.lastContinuous = 0
	s.continuousDelay = 0
	if c := s.timeline.Continuous; c != nil {
		s.continuousDelay = s.drawDelay(c)
	}
	if b := s.timeline.Background; b != nil && b.Enabled && b.Interval > 0 {
		s.nextBackground = b.Interval / s.rateMultiplier(0)
	}
}

func (s *Scheduler) complete() {
	s.pending = s.pending[:0]
	s.state = Complete
	log.Printf("SpawnScheduler: timeline %q complete", s.timeline.Name)
	s.publishStatus(event.TimelineCompleted)
}

func (s *Scheduler) publishWarnings() {
	for i := range s.timeline.Events {
		ev := &s.timeline.Events[i]
		if !ev.ShowWarning || s.warned[i] || s.fired[i] {
			continue
		}
		if s.elapsed >= ev.TriggerTime-ev.WarningTime {
			s.warned[i] = true
			s.pub.Publish(event.Event{Type: event.SpawnWarning, Data: noticeData(ev)})
		}
	}
}

func (s *Scheduler) fireDueEvents() {
	for i := range s.timeline.Events {
		ev := &s.timeline.Events[i]
		if s.fired[i] || ev.TriggerTime > s.elapsed {
			continue
		}
		s.fired[i] = true
		if ev.Count <= 0 {
			log.Printf("SpawnScheduler: event %q has no enemies to spawn", ev.Name)
			continue
		}
		s.pub.Publish(event.Event{Type: event.SpawnEventTriggered, Data: noticeData(ev)})

		pathIndex := AnyPath
		if ev.PathIndex != nil {
			pathIndex = *ev.PathIndex
		}
		interval := ev.Interval()
		for k := 0; k < ev.Count; k++ {
			s.seq++
			heap.Push(&s.pending, pendingSpawn{
				due: ev.TriggerTime + float64(k)*interval,
				seq: s.seq,
				req: Request{
					EnemyID:              ev.EnemyID,
					PathIndex:            pathIndex,
					HealthMultiplier:     1,
					DifficultyMultiplier: 1,
					Source:               SourceEvent,
					EventName:            ev.Name,
				},
			})
		}
	}
}

func (s *Scheduler) drainPending() {
	for s.state == Running && len(s.pending) > 0 && s.pending[0].due <= s.elapsed {
		p := heap.Pop(&s.pending).(pendingSpawn)
		p.req.Time = p.due
		s.spawner.Spawn(p.req)
	}
}

func (s *Scheduler) tickBackground() {
	b := s.timeline.Background
	if b == nil || !b.Enabled || b.Interval <= 0 || b.Count <= 0 {
		return
	}
	for n := 0; n < config.MaxContinuousSpawnsPerTick && s.elapsed >= s.nextBackground; n++ {
		at := s.nextBackground
		for k := 0; k < b.Count; k++ {
			s.spawner.Spawn(Request{
				EnemyID:              b.EnemyID,
				PathIndex:            AnyPath,
				HealthMultiplier:     1,
				DifficultyMultiplier: 1,
				Source:               SourceBackground,
				Time:                 at,
			})
		}
		s.nextBackground = at + b.Interval/s.rateMultiplier(at)
	}
}

// rateMultiplier speeds up background spawning when difficulty scaling is on.
func (s *Scheduler) rateMultiplier(at float64) float64 {
	d := s.timeline.Difficulty
	if d == nil || !d.Enabled {
		return 1
	}
	m := d.RateMultiplier.Evaluate(s.normalized(s.timeline.TotalDuration, at), 1)
	if m <= 0 {
		return 1
	}
	return m
}

func (s *Scheduler) normalized(total, at float64) float64 {
	if total <= 0 {
		total = s.timeline.TotalDuration
	}
	if total <= 0 {
		return 0
	}
	return geom.Clamp01(at / total)
}

func (s *Scheduler) publishStatus(t event.EventType) {
	name := ""
	if s.timeline != nil {
		name = s.timeline.Name
	}
	s.pub.Publish(event.Event{Type: t, Data: event.TimelineData{Name: name, Elapsed: s.elapsed}})
}

func noticeData(ev *defs.SpawnEvent) event.SpawnNoticeData {
	return event.SpawnNoticeData{
		EventName:   ev.Name,
		EnemyID:     ev.EnemyID,
		Count:       ev.Count,
		TriggerTime: ev.TriggerTime,
	}
}
