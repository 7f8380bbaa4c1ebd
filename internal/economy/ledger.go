// internal/economy/ledger.go
package economy

import (
	"log"

	"go-td-core/internal/event"
)

// Ledger owns the gold balance. The balance never goes negative.
type Ledger struct {
	balance int
	pub     event.Publisher
}

// NewLedger creates a ledger with a starting balance.
func NewLedger(starting int, pub event.Publisher) *Ledger {
	if pub == nil {
		pub = event.Nop
	}
	if starting < 0 {
		starting = 0
	}
	return &Ledger{balance: starting, pub: pub}
}

func (l *Ledger) Balance() int {
	return l.balance
}

func (l *Ledger) HasEnough(cost int) bool {
	return cost >= 0 && l.balance >= cost
}

// TrySpend debits amount. A negative amount or a short balance leaves the
// ledger untouched and returns false.
func (l *Ledger) TrySpend(amount int) bool {
	if amount < 0 {
		log.Printf("Economy: refusing to spend negative amount %d", amount)
		return false
	}
	if l.balance < amount {
		return false
	}
	l.balance -= amount
	l.pub.Publish(event.Event{Type: event.GoldSpent, Data: event.GoldChangeData{Amount: amount, Balance: l.balance}})
	l.publishBalance()
	return true
}

// Earn credits amount. Negative amounts are logged and ignored.
func (l *Ledger) Earn(amount int) bool {
	if amount < 0 {
		log.Printf("Economy: refusing to earn negative amount %d", amount)
		return false
	}
	l.balance += amount
	l.pub.Publish(event.Event{Type: event.GoldEarned, Data: event.GoldChangeData{Amount: amount, Balance: l.balance}})
	l.publishBalance()
	return true
}

// SetBalance overwrites the balance, clamping at zero.
func (l *Ledger) SetBalance(amount int) {
	if amount < 0 {
		amount = 0
	}
	l.balance = amount
	l.publishBalance()
}

func (l *Ledger) publishBalance() {
	l.pub.Publish(event.Event{Type: event.BalanceChanged, Data: event.BalanceData{Balance: l.balance}})
}
