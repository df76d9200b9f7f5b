package game

import (
	"errors"
	"slices"
	"time"

	"chipjack/internal/player"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRoundInProgress     = errors.New("round in progress")
	ErrNoBet               = errors.New("no bet placed")
	ErrBelowMinimum        = errors.New("bet below minimum")
	ErrInsufficientBalance = player.ErrInsufficientBalance
	ErrInvalidChip         = player.ErrInvalidChip
	ErrNotActive           = errors.New("no hand in play")
	ErrNotResolving        = errors.New("dealer is not playing")
	ErrNotReady            = errors.New("round not finished")
)

const (
	msgWaiting   = `Place your bet and click "Deal" to start!`
	msgPlaying   = "Game in progress! Hit or Stand?"
	msgTwentyOne = "21! You must stand."
	msgDealer    = "Dealer is playing..."
	msgNoCards   = "No more cards in deck! "
	msgGameOver  = "Game over! You're out of money."
)

// Observer is told about every settled round.
type Observer interface {
	RoundSettled(summary RoundSummary)
}

type RoundSummary struct {
	SessionID   uuid.UUID
	RoundID     uuid.UUID
	Round       int
	Player      []Card
	Dealer      []Card
	PlayerScore int
	DealerScore int
	Wager       int
	Outcome     Outcome
	Payout      int
	Balance     int
	SettledAt   time.Time
}

type Option func(*Session)

func WithBalance(balance int) Option {
	return func(s *Session) {
		s.ledger = player.NewLedger(balance)
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

func WithShuffler(shuffler Shuffler) Option {
	return func(s *Session) {
		s.shuffler = shuffler
	}
}

// WithDeckSource replaces the fresh shuffled deck built for every round.
func WithDeckSource(newDeck func() *Deck) Option {
	return func(s *Session) {
		s.newDeck = newDeck
	}
}

func WithObserver(observer Observer) Option {
	return func(s *Session) {
		s.observer = observer
	}
}

// Session is one player's table: the round state machine plus the ledger
// that carries over between rounds. A Session is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	log      logrus.FieldLogger
	shuffler Shuffler
	newDeck  func() *Deck
	observer Observer
	ledger   *player.Ledger

	state   RoundState
	round   int
	roundID uuid.UUID
	wager   int
	deck    *Deck
	player  []Card
	dealer  []Card
	result  Settlement
	tag     MessageTag
	message string
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		ledger:  player.NewLedger(player.DefaultBalance),
		state:   StateIdle,
		tag:     TagWaiting,
		message: msgWaiting,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	s.log = s.log.WithField("session", s.id.String())

	if s.newDeck == nil {
		shuffler := s.shuffler
		s.newDeck = func() *Deck { return NewDeck(shuffler) }
	}
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) State() RoundState {
	return s.state
}

// ============== BETTING ==============

func (s *Session) PlaceChip(value int) (BetSnapshot, error) {
	if s.state != StateIdle {
		return s.BetSnapshot(), s.reject("place chip", ErrRoundInProgress)
	}
	if err := s.ledger.PlaceChip(value); err != nil {
		return s.BetSnapshot(), s.reject("place chip", err)
	}
	return s.BetSnapshot(), nil
}

func (s *Session) RemoveLastChip() (BetSnapshot, error) {
	if s.state != StateIdle {
		return s.BetSnapshot(), s.reject("remove chip", ErrRoundInProgress)
	}
	s.ledger.RemoveLastChip()
	return s.BetSnapshot(), nil
}

func (s *Session) ClearBet() (BetSnapshot, error) {
	if s.state != StateIdle {
		return s.BetSnapshot(), s.reject("clear bet", ErrRoundInProgress)
	}
	s.ledger.ClearBet()
	return s.BetSnapshot(), nil
}

func (s *Session) AllIn() (BetSnapshot, error) {
	if s.state != StateIdle {
		return s.BetSnapshot(), s.reject("all in", ErrRoundInProgress)
	}
	s.ledger.AllIn()
	return s.BetSnapshot(), nil
}

func (s *Session) BetSnapshot() BetSnapshot {
	return BetSnapshot{
		Wager:   s.ledger.Wager(),
		Chips:   s.ledger.PlacedChips(),
		Balance: s.ledger.Balance,
	}
}

func (s *Session) validateWager(wager int) error {
	switch {
	case wager <= 0:
		return ErrNoBet
	case wager > s.ledger.Balance:
		return ErrInsufficientBalance
	case wager < MinimumBet:
		return ErrBelowMinimum
	}
	return nil
}

// ============== ROUND ==============

// StartRound replaces the bet with wager and deals.
func (s *Session) StartRound(wager int) (RoundSnapshot, error) {
	if s.state != StateIdle {
		return s.Snapshot(), s.reject("start round", ErrRoundInProgress)
	}
	if err := s.validateWager(wager); err != nil {
		return s.Snapshot(), s.reject("start round", err)
	}
	if err := s.ledger.SetBet(wager); err != nil {
		return s.Snapshot(), s.reject("start round", err)
	}
	return s.Deal()
}

// Deal starts a round with the bet built from chips.
func (s *Session) Deal() (RoundSnapshot, error) {
	if s.state != StateIdle {
		return s.Snapshot(), s.reject("deal", ErrRoundInProgress)
	}
	wager := s.ledger.Wager()
	if err := s.validateWager(wager); err != nil {
		return s.Snapshot(), s.reject("deal", err)
	}
	if err := s.ledger.Escrow(); err != nil {
		return s.Snapshot(), s.reject("deal", err)
	}

	s.round++
	s.roundID = uuid.New()
	s.wager = wager
	s.deck = s.newDeck()
	s.player = make([]Card, 0, 8)
	s.dealer = make([]Card, 0, 8)
	s.result = Settlement{}

	s.log.WithFields(logrus.Fields{
		"round": s.round,
		"wager": wager,
	}).Info("Round dealt")

	for i := 0; i < 2; i++ {
		for _, hand := range []*[]Card{&s.player, &s.dealer} {
			card, err := s.deck.Draw()
			if err != nil {
				s.log.WithError(err).Warn("Deck ran out during the deal")
				s.transition(StateActive)
				s.finish(settle(s.player, s.dealer, s.wager, false), msgNoCards)
				return s.Snapshot(), nil
			}
			*hand = append(*hand, card)
		}
	}

	if IsBlackjack(s.player) || IsBlackjack(s.dealer) {
		s.finish(Settle(s.player, s.dealer, s.wager), "")
		return s.Snapshot(), nil
	}

	s.transition(StateActive)
	s.tag = TagPlaying
	s.message = msgPlaying
	return s.Snapshot(), nil
}

// Hit draws a card for the player. Going over 21 settles the round; reaching
// exactly 21 leaves the player to stand.
func (s *Session) Hit() (RoundSnapshot, error) {
	if s.state != StateActive {
		return s.Snapshot(), s.reject("hit", ErrNotActive)
	}

	card, err := s.deck.Draw()
	if err != nil {
		s.log.WithError(err).Warn("Deck ran out on hit")
		s.finish(settle(s.player, s.dealer, s.wager, false), msgNoCards)
		return s.Snapshot(), nil
	}
	s.player = append(s.player, card)

	switch score := Score(s.player); {
	case score > Blackjack:
		s.finish(Settle(s.player, s.dealer, s.wager), "")
	case score == Blackjack:
		s.message = msgTwentyOne
	default:
		s.message = msgPlaying
	}
	return s.Snapshot(), nil
}

// Stand hands play to the dealer. The caller drives the dealer with
// DealerStep or ResolveDealer.
func (s *Session) Stand() (RoundSnapshot, error) {
	if s.state != StateActive {
		return s.Snapshot(), s.reject("stand", ErrNotActive)
	}

	s.transition(StateDealerResolving)
	s.message = msgDealer
	return s.Snapshot(), nil
}

// DealerStep performs one move of the dealer: draw a card if the policy says
// so, otherwise settle the round.
func (s *Session) DealerStep() (StepResult, error) {
	if s.state != StateDealerResolving {
		return StepResult{Snapshot: s.Snapshot()}, s.reject("dealer step", ErrNotResolving)
	}

	if !DealerShouldHit(s.dealer) {
		s.finish(Settle(s.player, s.dealer, s.wager), "")
		return StepResult{Done: true, Snapshot: s.Snapshot()}, nil
	}

	card, err := s.deck.Draw()
	if err != nil {
		s.log.WithError(err).Warn("Deck ran out during dealer play")
		s.finish(settle(s.player, s.dealer, s.wager, true), msgNoCards)
		return StepResult{Done: true, Snapshot: s.Snapshot()}, nil
	}
	s.dealer = append(s.dealer, card)

	s.log.WithFields(logrus.Fields{
		"round": s.round,
		"card":  card.String(),
		"score": Score(s.dealer),
	}).Debug("Dealer draws")

	return StepResult{Drew: true, Card: card, Snapshot: s.Snapshot()}, nil
}

// ResolveDealer runs the dealer's turn to completion.
func (s *Session) ResolveDealer() (RoundSnapshot, error) {
	for {
		step, err := s.DealerStep()
		if err != nil {
			return step.Snapshot, err
		}
		if step.Done {
			return step.Snapshot, nil
		}
	}
}

// NewRound clears the table after a settled round.
func (s *Session) NewRound() (RoundSnapshot, error) {
	if s.state != StateSettled {
		return s.Snapshot(), s.reject("new round", ErrNotReady)
	}

	s.transition(StateIdle)
	s.deck = nil
	s.player = nil
	s.dealer = nil
	s.wager = 0
	s.result = Settlement{}
	s.ledger.ClearBet()

	s.tag = TagWaiting
	s.message = msgWaiting
	if !s.ledger.CanPlay(MinimumBet) {
		s.tag = TagLose
		s.message = msgGameOver
		s.log.WithField("balance", s.ledger.Balance).Info("Balance below minimum bet")
	}
	return s.Snapshot(), nil
}

func (s *Session) finish(result Settlement, prefix string) {
	switch {
	case result.Outcome.IsWin():
		s.ledger.AddWin(result.Payout)
	case result.Outcome == OutcomePush:
		s.ledger.AddPush(result.Payout)
	default:
		s.ledger.AddLoss()
	}

	result.Message = prefix + result.Message
	s.result = result
	s.transition(StateSettled)
	s.tag = result.Outcome.Tag()
	s.message = result.Message

	s.log.WithFields(logrus.Fields{
		"round":   s.round,
		"outcome": result.Outcome.String(),
		"payout":  result.Payout,
		"balance": s.ledger.Balance,
	}).Info("Round settled")

	if s.observer != nil {
		s.observer.RoundSettled(s.summary())
	}
}

func (s *Session) transition(next RoundState) {
	s.log.WithFields(logrus.Fields{
		"round": s.round,
		"from":  s.state.String(),
		"to":    next.String(),
	}).Debug("State transition")
	s.state = next
}

func (s *Session) reject(action string, err error) error {
	s.log.WithFields(logrus.Fields{
		"action": action,
		"state":  s.state.String(),
	}).WithError(err).Debug("Action rejected")
	return err
}

func (s *Session) summary() RoundSummary {
	return RoundSummary{
		SessionID:   s.id,
		RoundID:     s.roundID,
		Round:       s.round,
		Player:      slices.Clone(s.player),
		Dealer:      slices.Clone(s.dealer),
		PlayerScore: Score(s.player),
		DealerScore: Score(s.dealer),
		Wager:       s.wager,
		Outcome:     s.result.Outcome,
		Payout:      s.result.Payout,
		Balance:     s.ledger.Balance,
		SettledAt:   time.Now(),
	}
}

// Snapshot is the read-only view handed to the presentation layer.
func (s *Session) Snapshot() RoundSnapshot {
	hidden := s.state == StateActive

	dealer := make([]CardView, len(s.dealer))
	for i, c := range s.dealer {
		dealer[i] = CardView{Card: c, Hidden: hidden && i == 0}
	}

	dealerScore := Score(s.dealer)
	if hidden {
		dealerScore = VisibleScore(s.dealer)
	}

	return RoundSnapshot{
		SessionID:   s.id,
		RoundID:     s.roundID,
		Round:       s.round,
		State:       s.state,
		Player:      slices.Clone(s.player),
		Dealer:      dealer,
		PlayerScore: Score(s.player),
		DealerScore: dealerScore,
		Tag:         s.tag,
		Message:     s.message,
		Outcome:     s.result.Outcome,
		Payout:      s.result.Payout,
		Stake:       s.wager,
		Bet:         s.BetSnapshot(),
		Balance:     s.ledger.Balance,
		Wins:        s.ledger.Wins,
		Losses:      s.ledger.Losses,
		Pushes:      s.ledger.Pushes,
		GameOver:    s.state != StateActive && s.state != StateDealerResolving && !s.ledger.CanPlay(MinimumBet),
	}
}
