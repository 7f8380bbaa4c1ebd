package economy

import (
	"testing"

	"go-td-core/internal/event"
)

type recordingPublisher struct {
	events []event.Event
}

func (r *recordingPublisher) Publish(e event.Event) { r.events = append(r.events, e) }

func TestTrySpend(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewLedger(100, pub)

	if !l.TrySpend(40) {
		t.Fatal("TrySpend(40) failed with balance 100")
	}
	if l.Balance() != 60 {
		t.Errorf("Balance = %d, want 60", l.Balance())
	}
	if len(pub.events) != 2 || pub.events[0].Type != event.GoldSpent || pub.events[1].Type != event.BalanceChanged {
		t.Fatalf("events = %+v", pub.events)
	}
	if d := pub.events[0].Data.(event.GoldChangeData); d.Amount != 40 || d.Balance != 60 {
		t.Errorf("GoldSpent payload = %+v", d)
	}
}

func TestTrySpendFailuresDoNotMutate(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewLedger(30, pub)
	for _, amount := range []int{31, -5} {
		if l.TrySpend(amount) {
			t.Errorf("TrySpend(%d) succeeded", amount)
		}
	}
	if l.Balance() != 30 || len(pub.events) != 0 {
		t.Errorf("failed spends changed state: balance %d, events %d", l.Balance(), len(pub.events))
	}
	if !l.TrySpend(30) || l.Balance() != 0 {
		t.Errorf("exact spend should empty the ledger")
	}
}

func TestEarn(t *testing.T) {
	pub := &recordingPublisher{}
	l := NewLedger(0, pub)
	if l.Earn(-1) {
		t.Error("Earn(-1) succeeded")
	}
	if len(pub.events) != 0 {
		t.Errorf("negative earn emitted %d events", len(pub.events))
	}
	if !l.Earn(25) || l.Balance() != 25 {
		t.Errorf("Earn(25): balance %d", l.Balance())
	}
	if pub.events[0].Type != event.GoldEarned {
		t.Errorf("first event = %s", pub.events[0].Type)
	}
}

func TestSetBalanceClamps(t *testing.T) {
	l := NewLedger(-10, nil)
	if l.Balance() != 0 {
		t.Errorf("starting balance not clamped: %d", l.Balance())
	}
	l.SetBalance(-3)
	if l.Balance() != 0 {
		t.Errorf("SetBalance(-3) = %d", l.Balance())
	}
	l.SetBalance(12)
	if !l.HasEnough(12) || l.HasEnough(13) {
		t.Errorf("HasEnough mismatch at balance %d", l.Balance())
	}
}
