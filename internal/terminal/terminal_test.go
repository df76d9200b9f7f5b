package terminal

import (
	"testing"

	"chipjack/internal/game"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, balance int, deal ...game.Rank) *game.Session {
	t.Helper()

	logger, _ := test.NewNullLogger()
	cards := make([]game.Card, len(deal))
	for i, r := range deal {
		cards[i] = game.Card{Suit: game.Hearts, Rank: r}
	}
	return game.NewSession(
		game.WithBalance(balance),
		game.WithLogger(logger),
		game.WithDeckSource(func() *game.Deck { return game.NewStackedDeck(cards...) }),
	)
}

func TestChoicesFollowState(t *testing.T) {
	s := newSession(t, 30, game.Ten, game.Ten, game.Nine, game.Seven)

	choices := Choices(s.Snapshot())
	assert.Equal(t, []string{"Chip +1", "Chip +5", "Chip +10", "Chip +25", choiceAllIn, choiceDeal, choiceQuit}, choices)

	require.NoError(t, Apply(s, "Chip +25"))
	choices = Choices(s.Snapshot())
	assert.Contains(t, choices, "Chip +5")
	assert.NotContains(t, choices, "Chip +10")
	assert.Contains(t, choices, choiceUndo)

	require.NoError(t, Apply(s, choiceDeal))
	assert.Equal(t, []string{choiceHit, choiceStand}, Choices(s.Snapshot()))

	require.NoError(t, Apply(s, choiceStand))
	assert.Nil(t, Choices(s.Snapshot()))

	_, err := s.ResolveDealer()
	require.NoError(t, err)
	assert.Equal(t, []string{choiceNewRound, choiceHistory, choiceQuit}, Choices(s.Snapshot()))

	require.NoError(t, Apply(s, choiceNewRound))
	assert.Equal(t, game.StateIdle, s.State())
}

func TestApplyErrors(t *testing.T) {
	s := newSession(t, 1000)

	assert.ErrorIs(t, Apply(s, choiceHit), game.ErrNotActive)
	assert.ErrorIs(t, Apply(s, choiceDeal), game.ErrNoBet)
	assert.ErrorIs(t, Apply(s, choiceQuit), errQuit)
	assert.Error(t, Apply(s, "Dance"))
	assert.Error(t, Apply(s, "Chip +x"))

	require.NoError(t, Apply(s, choiceAllIn))
	assert.Equal(t, 1000, s.BetSnapshot().Wager)
	require.NoError(t, Apply(s, choiceClear))
	assert.Equal(t, 0, s.BetSnapshot().Wager)
}
