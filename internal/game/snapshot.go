package game

import (
	"strings"

	"github.com/google/uuid"
)

type RoundState int

const (
	StateIdle RoundState = iota
	StateActive
	StateDealerResolving
	StateSettled
)

func (s RoundState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateDealerResolving:
		return "dealer-resolving"
	case StateSettled:
		return "settled"
	}
	return "unknown"
}

// MessageTag classifies the table message for the presentation layer.
type MessageTag string

const (
	TagWin     MessageTag = "win"
	TagLose    MessageTag = "lose"
	TagTie     MessageTag = "tie"
	TagPlaying MessageTag = "playing"
	TagWaiting MessageTag = "waiting"
)

// CardView is a card as the table shows it.
type CardView struct {
	Card   Card
	Hidden bool
}

func (v CardView) String() string {
	if v.Hidden {
		return "🂠"
	}
	return v.Card.String()
}

type RoundSnapshot struct {
	SessionID uuid.UUID
	RoundID   uuid.UUID
	Round     int
	State     RoundState

	Player      []Card
	Dealer      []CardView
	PlayerScore int
	// DealerScore counts only face-up cards while the hole card is hidden.
	DealerScore int

	Tag     MessageTag
	Message string

	Outcome Outcome
	Payout  int

	Stake   int
	Bet     BetSnapshot
	Balance int
	Wins    int
	Losses  int
	Pushes  int

	// GameOver is set once the balance can no longer cover the minimum bet.
	GameOver bool
}

// DealerHand renders the dealer's cards with the hole card masked.
func (s RoundSnapshot) DealerHand() string {
	parts := make([]string, len(s.Dealer))
	for i, v := range s.Dealer {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

type BetSnapshot struct {
	Wager   int
	Chips   []int
	Balance int
}

// StepResult reports one dealer step.
type StepResult struct {
	// Drew is set when the step drew Card into the dealer's hand.
	Drew bool
	Card Card
	// Done is set once the round has settled.
	Done     bool
	Snapshot RoundSnapshot
}
