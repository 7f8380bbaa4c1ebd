package event

import "testing"

type recorder struct {
	got []EventType
}

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e.Type) }

func TestDispatchIsImmediate(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(GoldEarned, r)
	d.Dispatch(Event{Type: GoldEarned})
	d.Dispatch(Event{Type: GoldSpent})
	if len(r.got) != 1 || r.got[0] != GoldEarned {
		t.Fatalf("got %v, want [GoldEarned]", r.got)
	}
}

func TestPublishDefersUntilFlush(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.SubscribeAll(r)
	d.Publish(Event{Type: GoldSpent})
	d.Publish(Event{Type: BalanceChanged})
	if len(r.got) != 0 {
		t.Fatalf("listener called before flush: %v", r.got)
	}
	d.Flush()
	if len(r.got) != 2 || r.got[0] != GoldSpent || r.got[1] != BalanceChanged {
		t.Fatalf("got %v, want publish order", r.got)
	}
	if d.Pending() != 0 {
		t.Errorf("queue not drained")
	}
}

func TestFlushDeliversEventsPublishedByListeners(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(EnemyKilled, ListenerFunc(func(Event) {
		d.Publish(Event{Type: GoldEarned})
	}))
	d.Subscribe(GoldEarned, r)
	d.Publish(Event{Type: EnemyKilled})
	d.Flush()
	if len(r.got) != 1 {
		t.Fatalf("chained event not delivered: %v", r.got)
	}
}

func TestFlushStopsRunawayChains(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.Subscribe(GoldEarned, ListenerFunc(func(e Event) {
		calls++
		d.Publish(e)
	}))
	d.Publish(Event{Type: GoldEarned})
	d.Flush()
	if calls != maxFlushRounds {
		t.Errorf("calls = %d, want %d", calls, maxFlushRounds)
	}
	if d.Pending() != 0 {
		t.Errorf("queue not cleared")
	}
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	r := &recorder{}
	d.Subscribe(TowerPlaced, r)
	d.Unsubscribe(TowerPlaced, r)
	d.Dispatch(Event{Type: TowerPlaced})
	if len(r.got) != 0 {
		t.Errorf("unsubscribed listener called")
	}
}
