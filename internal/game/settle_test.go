package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name    string
		player  []Card
		dealer  []Card
		outcome Outcome
		payout  int
		message string
	}{
		{"double blackjack", hand(Ace, King), hand(Ace, Queen), OutcomePush, 100, "Both have blackjack! Push!"},
		{"player blackjack", hand(Ace, King), hand(Seven, Nine), OutcomeBlackjack, 250, "Blackjack! You win!"},
		{"player blackjack beats dealer 21", hand(Ace, King), hand(Seven, Seven, Seven), OutcomeBlackjack, 250, "Blackjack! You win!"},
		{"dealer blackjack", hand(Ten, Nine), hand(Ace, Jack), OutcomeLoss, 0, "Dealer has blackjack! You lose."},
		{"dealer blackjack beats player 21", hand(Seven, Seven, Seven), hand(Ace, Jack), OutcomeLoss, 0, "Dealer has blackjack! You lose."},
		{"player bust", hand(Ten, Nine, Five), hand(Ten, Six), OutcomeLoss, 0, "Bust! You lose."},
		{"player bust with dealer bust", hand(Ten, Nine, Five), hand(Ten, Six, Nine), OutcomeLoss, 0, "Bust! You lose."},
		{"dealer bust", hand(Ten, Two), hand(Ten, Six, Nine), OutcomeWin, 200, "Dealer busts! You win!"},
		{"player higher", hand(Ten, Nine), hand(Ten, Seven), OutcomeWin, 200, "You win!"},
		{"dealer higher", hand(Ten, Seven), hand(Ten, Nine), OutcomeLoss, 0, "Dealer wins!"},
		{"equal", hand(Ten, Eight), hand(Nine, Nine), OutcomePush, 100, "Push! It's a tie."},
		{"three card 21 ties", hand(Seven, Seven, Seven), hand(Ten, Five, Six), OutcomePush, 100, "Push! It's a tie."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.player, tt.dealer, 100)
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, tt.payout, got.Payout)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestBlackjackPayoutRoundsDown(t *testing.T) {
	assert.Equal(t, 125, BlackjackPayout(50))
	assert.Equal(t, 37, BlackjackPayout(15))
	assert.Equal(t, 27, BlackjackPayout(11))
}

func TestSettleForcedDealerBust(t *testing.T) {
	got := settle(hand(Ten, Two), hand(Ten, Nine), 40, true)
	assert.Equal(t, OutcomeWin, got.Outcome)
	assert.Equal(t, 80, got.Payout)

	// a busted player still loses
	got = settle(hand(Ten, Nine, Five), hand(Ten, Five), 40, true)
	assert.Equal(t, OutcomeLoss, got.Outcome)
}

func TestOutcomeTag(t *testing.T) {
	assert.Equal(t, TagWin, OutcomeWin.Tag())
	assert.Equal(t, TagWin, OutcomeBlackjack.Tag())
	assert.Equal(t, TagLose, OutcomeLoss.Tag())
	assert.Equal(t, TagTie, OutcomePush.Tag())
	assert.Equal(t, "blackjack", OutcomeBlackjack.String())
}
