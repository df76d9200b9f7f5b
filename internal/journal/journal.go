// Package journal records settled rounds for the running process. It is a
// history, not a bankroll store: nothing is read back into a ledger.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"chipjack/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Entry struct {
	RoundID     uuid.UUID
	Round       int
	Wager       int
	Outcome     string
	Payout      int
	PlayerCards string
	DealerCards string
	PlayerScore int
	DealerScore int
	Balance     int
	SettledAt   time.Time
}

// Net is the balance change the round produced.
func (e Entry) Net() int {
	return e.Payout - e.Wager
}

type Stats struct {
	Rounds int
	Wins   int
	Losses int
	Pushes int
	Net    int
}

func (s Stats) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds) * 100
}

type Repository interface {
	Record(ctx context.Context, summary game.RoundSummary) error
	Recent(ctx context.Context, sessionID uuid.UUID, limit int) ([]Entry, error)
	Stats(ctx context.Context, sessionID uuid.UUID) (Stats, error)
}

type SQLRepository struct {
	db  *sql.DB
	log logrus.FieldLogger
}

func NewRepository(db *sql.DB, log logrus.FieldLogger) *SQLRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SQLRepository{db: db, log: log}
}

func (r *SQLRepository) Record(ctx context.Context, s game.RoundSummary) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rounds (
			round_id, session_id, round_no, wager, outcome, payout,
			player_cards, dealer_cards, player_score, dealer_score,
			balance, settled_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, s.RoundID.String(), s.SessionID.String(), s.Round, s.Wager, s.Outcome.String(), s.Payout,
		game.FormatHand(s.Player), game.FormatHand(s.Dealer), s.PlayerScore, s.DealerScore,
		s.Balance, s.SettledAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}
	return nil
}

// RoundSettled lets the repository observe a session directly.
func (r *SQLRepository) RoundSettled(s game.RoundSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.Record(ctx, s); err != nil {
		r.log.WithError(err).WithField("round", s.RoundID.String()).Error("Failed to journal round")
	}
}

func (r *SQLRepository) Recent(ctx context.Context, sessionID uuid.UUID, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT round_id, round_no, wager, outcome, payout,
			player_cards, dealer_cards, player_score, dealer_score,
			balance, settled_at
		FROM rounds
		WHERE session_id = $1
		ORDER BY round_no DESC
		LIMIT $2
	`, sessionID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			roundID string
		)
		if err := rows.Scan(&roundID, &e.Round, &e.Wager, &e.Outcome, &e.Payout,
			&e.PlayerCards, &e.DealerCards, &e.PlayerScore, &e.DealerScore,
			&e.Balance, &e.SettledAt); err != nil {
			return nil, err
		}
		if e.RoundID, err = uuid.Parse(roundID); err != nil {
			return nil, fmt.Errorf("bad round id %q: %w", roundID, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *SQLRepository) Stats(ctx context.Context, sessionID uuid.UUID) (Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome IN ('win', 'blackjack') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'loss' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'push' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(payout - wager), 0)
		FROM rounds
		WHERE session_id = $1
	`, sessionID.String()).Scan(&s.Rounds, &s.Wins, &s.Losses, &s.Pushes, &s.Net)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}
	return s, nil
}
