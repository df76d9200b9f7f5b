package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hand(ranks ...Rank) []Card {
	cards := make([]Card, len(ranks))
	for i, r := range ranks {
		cards[i] = Card{Suit: Suits[i%len(Suits)], Rank: r}
	}
	return cards
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected int
	}{
		{"empty", hand(), 0},
		{"numerals", hand(Two, Nine), 11},
		{"face cards", hand(King, Queen), 20},
		{"ace as 11", hand(Ace, Nine), 20},
		{"ace as 1", hand(Ace, Nine, Two), 12},
		{"two aces", hand(Ace, Ace), 12},
		{"four aces", hand(Ace, Ace, Ace, Ace), 14},
		{"aces and nine", hand(Ace, Ace, Nine), 21},
		{"blackjack", hand(Ten, Ace), 21},
		{"bust without aces", hand(Nine, Nine, Nine), 27},
		{"bust after softening", hand(Ace, King, Queen, Five), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.cards))
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack(hand(Ten, Ace)))
	assert.True(t, IsBlackjack(hand(Ace, Jack)))
	assert.False(t, IsBlackjack(hand(Ace, Nine)))
	assert.False(t, IsBlackjack(hand(Seven, Seven, Seven)), "three card 21 is not a natural")
}

func TestIsBust(t *testing.T) {
	assert.True(t, IsBust(hand(Nine, Nine, Nine)))
	assert.False(t, IsBust(hand(Ace, Ace, Nine)))
	assert.False(t, IsBust(hand(King, Ace, Queen)))
}

func TestIsSoft17(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected bool
	}{
		{"ace six", hand(Ace, Six), true},
		{"two aces five", hand(Ace, Ace, Five), true},
		{"ace three three", hand(Ace, Three, Three), true},
		{"hard seventeen", hand(Ten, Seven), false},
		{"ace counted low", hand(Ace, Six, Ten), false},
		{"soft eighteen", hand(Ace, Seven), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSoft17(tt.cards))
		})
	}
}

func TestIsSoft(t *testing.T) {
	assert.True(t, IsSoft(hand(Ace, Two)))
	assert.False(t, IsSoft(hand(Ace, Two, Ten)))
	assert.False(t, IsSoft(hand(Ten, Two)))
}

func TestVisibleScore(t *testing.T) {
	assert.Equal(t, 10, VisibleScore(hand(Ace, King)))
	assert.Equal(t, 11, VisibleScore(hand(Five, Ace)))
	assert.Equal(t, 0, VisibleScore(hand(Five)))
}

func TestDealerShouldHit(t *testing.T) {
	tests := []struct {
		name     string
		cards    []Card
		expected bool
	}{
		{"sixteen", hand(Ten, Six), true},
		{"soft seventeen", hand(Ace, Six), true},
		{"hard seventeen", hand(Ten, Seven), false},
		{"hard seventeen with ace", hand(Ace, Six, Ten), false},
		{"soft eighteen", hand(Ace, Seven), false},
		{"twenty", hand(King, Queen), false},
		{"bust", hand(King, Queen, Five), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DealerShouldHit(tt.cards))
		})
	}
}
