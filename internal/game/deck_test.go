package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	d := NewDeck(NewSeededShuffler(7))
	require.Equal(t, DeckSize, d.Remaining())

	seen := make(map[Card]bool)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s drawn twice", c)
		seen[c] = true
		assert.Equal(t, DeckSize-i-1, d.Remaining())
	}
	assert.Len(t, seen, DeckSize)

	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 0, d.Remaining())
}

func TestSeededShufflerIsReproducible(t *testing.T) {
	a := NewDeck(NewSeededShuffler(42))
	b := NewDeck(NewSeededShuffler(42))
	assert.Equal(t, a.cards, b.cards)

	c := NewDeck(NewSeededShuffler(43))
	assert.NotEqual(t, a.cards, c.cards)
}

func TestShuffleSwapsFromTheEnd(t *testing.T) {
	var bounds []int
	s := randShuffler{intN: func(n int) int {
		bounds = append(bounds, n)
		return 0
	}}

	cards := []Card{{Spades, Ace}, {Spades, Two}, {Spades, Three}, {Spades, Four}}
	s.Shuffle(cards)

	// each index i is swapped with a pick from [0, i]
	assert.Equal(t, []int{4, 3, 2}, bounds)
	assert.Equal(t, []Card{{Spades, Two}, {Spades, Three}, {Spades, Four}, {Spades, Ace}}, cards)
}

func TestStackedDeckDealsInOrder(t *testing.T) {
	d := NewStackedDeck(Card{Hearts, Ace}, Card{Clubs, King})

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, Card{Hearts, Ace}, c)

	c, err = d.Draw()
	require.NoError(t, err)
	assert.Equal(t, Card{Clubs, King}, c)

	_, err = d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Spades, Ace}.String())
	assert.Equal(t, "10♥", Card{Hearts, Ten}.String())
	assert.Equal(t, "Q♦ 7♣", FormatHand([]Card{{Diamonds, Queen}, {Clubs, Seven}}))
	assert.True(t, Hearts.Red())
	assert.False(t, Clubs.Red())
}
