// Package player keeps the bankroll and the bet being built from chips.
package player

import (
	"errors"
	"slices"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidChip         = errors.New("invalid chip value")
)

// Chips is the rack of denominations a bet can be built from.
var Chips = []int{1, 5, 10, 25, 50, 100}

const DefaultBalance = 1000

type Ledger struct {
	Balance int
	Wins    int
	Losses  int
	Pushes  int
	Games   int

	// Stake is the wager escrowed for the round in play.
	Stake int

	wager int
	chips []int
}

func NewLedger(balance int) *Ledger {
	if balance < 0 {
		balance = 0
	}
	return &Ledger{Balance: balance}
}

func (l *Ledger) Wager() int {
	return l.wager
}

// PlacedChips returns the chips stacked on the bet, oldest first.
func (l *Ledger) PlacedChips() []int {
	return slices.Clone(l.chips)
}

func (l *Ledger) PlaceChip(value int) error {
	if !slices.Contains(Chips, value) {
		return ErrInvalidChip
	}
	if l.wager+value > l.Balance {
		return ErrInsufficientBalance
	}

	l.wager += value
	l.chips = append(l.chips, value)
	return nil
}

// RemoveLastChip takes back the most recently placed chip and returns its
// value, or 0 when the bet is empty.
func (l *Ledger) RemoveLastChip() int {
	if len(l.chips) == 0 {
		return 0
	}

	last := l.chips[len(l.chips)-1]
	l.chips = l.chips[:len(l.chips)-1]
	l.wager -= last
	return last
}

func (l *Ledger) ClearBet() {
	l.wager = 0
	l.chips = nil
}

// AllIn bets the whole balance as a single stack.
func (l *Ledger) AllIn() {
	l.ClearBet()
	if l.Balance > 0 {
		l.wager = l.Balance
		l.chips = []int{l.Balance}
	}
}

// SetBet replaces the bet with a single stack of amount.
func (l *Ledger) SetBet(amount int) error {
	if amount > l.Balance {
		return ErrInsufficientBalance
	}

	l.ClearBet()
	if amount > 0 {
		l.wager = amount
		l.chips = []int{amount}
	}
	return nil
}

// Escrow moves the bet off the balance into the round's stake.
func (l *Ledger) Escrow() error {
	if l.wager > l.Balance {
		return ErrInsufficientBalance
	}

	l.Balance -= l.wager
	l.Stake = l.wager
	l.ClearBet()
	return nil
}

// AddWin credits the payout of a won round.
func (l *Ledger) AddWin(payout int) {
	l.Balance += payout
	l.Wins++
	l.finish()
}

func (l *Ledger) AddLoss() {
	l.Losses++
	l.finish()
}

// AddPush returns the stake.
func (l *Ledger) AddPush(refund int) {
	l.Balance += refund
	l.Pushes++
	l.finish()
}

func (l *Ledger) finish() {
	l.Games++
	l.Stake = 0
}

// CanPlay reports whether the balance still covers the minimum bet.
func (l *Ledger) CanPlay(minBet int) bool {
	return l.Balance >= minBet
}

func (l *Ledger) WinRate() float64 {
	if l.Games == 0 {
		return 0
	}
	return float64(l.Wins) / float64(l.Games) * 100
}
