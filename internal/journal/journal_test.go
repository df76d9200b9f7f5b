package journal

import (
	"context"
	"testing"
	"time"

	"chipjack/internal/database"
	"chipjack/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *SQLRepository {
	t.Helper()

	db, err := database.New("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, _ := test.NewNullLogger()
	return NewRepository(db.DB, logger)
}

func summary(session uuid.UUID, round int, outcome game.Outcome, wager, payout int) game.RoundSummary {
	return game.RoundSummary{
		SessionID:   session,
		RoundID:     uuid.New(),
		Round:       round,
		Player:      []game.Card{{Suit: game.Spades, Rank: game.Ten}, {Suit: game.Hearts, Rank: game.Nine}},
		Dealer:      []game.Card{{Suit: game.Clubs, Rank: game.Ten}, {Suit: game.Diamonds, Rank: game.Seven}},
		PlayerScore: 19,
		DealerScore: 17,
		Wager:       wager,
		Outcome:     outcome,
		Payout:      payout,
		Balance:     1000,
		SettledAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRecordAndRecent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	session := uuid.New()
	other := uuid.New()

	require.NoError(t, repo.Record(ctx, summary(session, 1, game.OutcomeWin, 50, 100)))
	require.NoError(t, repo.Record(ctx, summary(session, 2, game.OutcomeLoss, 20, 0)))
	require.NoError(t, repo.Record(ctx, summary(session, 3, game.OutcomePush, 10, 10)))
	require.NoError(t, repo.Record(ctx, summary(other, 1, game.OutcomeLoss, 500, 0)))

	entries, err := repo.Recent(ctx, session, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 3, entries[0].Round)
	assert.Equal(t, "push", entries[0].Outcome)
	assert.Equal(t, 0, entries[0].Net())
	assert.Equal(t, 2, entries[1].Round)
	assert.Equal(t, -20, entries[1].Net())
	assert.Equal(t, "10♠ 9♥", entries[1].PlayerCards)
	assert.Equal(t, "10♣ 7♦", entries[1].DealerCards)
	assert.True(t, entries[1].SettledAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestStats(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	session := uuid.New()

	stats, err := repo.Stats(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	require.NoError(t, repo.Record(ctx, summary(session, 1, game.OutcomeBlackjack, 50, 125)))
	require.NoError(t, repo.Record(ctx, summary(session, 2, game.OutcomeWin, 50, 100)))
	require.NoError(t, repo.Record(ctx, summary(session, 3, game.OutcomeLoss, 100, 0)))
	require.NoError(t, repo.Record(ctx, summary(session, 4, game.OutcomePush, 10, 10)))

	stats, err = repo.Stats(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, Stats{Rounds: 4, Wins: 2, Losses: 1, Pushes: 1, Net: 75 + 50 - 100}, stats)
	assert.InDelta(t, 50.0, stats.WinRate(), 0.001)
}

func TestRepositoryObservesSession(t *testing.T) {
	repo := newRepo(t)
	logger, _ := test.NewNullLogger()

	s := game.NewSession(
		game.WithLogger(logger),
		game.WithObserver(repo),
		game.WithDeckSource(func() *game.Deck {
			return game.NewStackedDeck(
				game.Card{Suit: game.Spades, Rank: game.Ace},
				game.Card{Suit: game.Hearts, Rank: game.Seven},
				game.Card{Suit: game.Spades, Rank: game.King},
				game.Card{Suit: game.Hearts, Rank: game.Nine},
			)
		}),
	)

	_, err := s.StartRound(40)
	require.NoError(t, err)

	entries, err := repo.Recent(context.Background(), s.ID(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "blackjack", entries[0].Outcome)
	assert.Equal(t, 100, entries[0].Payout)
	assert.Equal(t, 60, entries[0].Net())
	assert.Equal(t, 1060, entries[0].Balance)
}
