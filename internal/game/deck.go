package game

import (
	"errors"
	"math/rand/v2"
)

const DeckSize = 52

var ErrEmptyDeck = errors.New("deck is empty")

// Shuffler permutes cards in place.
type Shuffler interface {
	Shuffle(cards []Card)
}

type randShuffler struct {
	intN func(n int) int
}

// NewRandomShuffler shuffles with the runtime's global generator.
func NewRandomShuffler() Shuffler {
	return randShuffler{intN: rand.IntN}
}

// NewSeededShuffler returns a reproducible shuffler. Two shufflers with the
// same seed produce the same sequence of permutations.
func NewSeededShuffler(seed uint64) Shuffler {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return randShuffler{intN: rng.IntN}
}

// Shuffle is a Fisher-Yates pass from the last index down to 1.
func (s randShuffler) Shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deck is consumed from its end.
type Deck struct {
	cards []Card
}

// NewDeck builds one of each suit and rank and shuffles it.
func NewDeck(shuffler Shuffler) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}

	if shuffler == nil {
		shuffler = NewRandomShuffler()
	}
	shuffler.Shuffle(d.cards)
	return d
}

// NewStackedDeck returns a deck that deals the given cards in order.
func NewStackedDeck(dealOrder ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(dealOrder))}
	for i, c := range dealOrder {
		d.cards[len(dealOrder)-1-i] = c
	}
	return d
}

func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}
