package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chipjack/internal/config"
	"chipjack/internal/game"
	"chipjack/internal/journal"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Sender is the part of the Telegram API the handler talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot     Sender
	cfg     *config.Config
	log     logrus.FieldLogger
	journal journal.Repository
	tables  *game.Manager

	// extra options applied to every new session
	extra []game.Option
}

func NewHandler(bot Sender, cfg *config.Config, repo journal.Repository, log logrus.FieldLogger) *Handler {
	h := &Handler{
		bot:     bot,
		cfg:     cfg,
		log:     log,
		journal: repo,
	}
	h.tables = game.NewManager(h.newSession)
	return h
}

func (h *Handler) newSession(chatID int64) *game.Session {
	opts := []game.Option{
		game.WithBalance(h.cfg.StartBalance),
		game.WithLogger(h.log.WithField("chat", chatID)),
	}
	if h.cfg.DeckSeed != 0 {
		opts = append(opts, game.WithShuffler(game.NewSeededShuffler(h.cfg.DeckSeed+uint64(chatID))))
	}
	if observer, ok := h.journal.(game.Observer); ok {
		opts = append(opts, game.WithObserver(observer))
	}
	return game.NewSession(append(opts, h.extra...)...)
}

// ============== HELPERS ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.log.WithError(err).Warn("Failed to send message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.log.WithError(err).Warn("Failed to send message")
	}
}

func (h *Handler) sendSnapshot(chatID int64, snap game.RoundSnapshot) {
	text := formatRound(snap)
	if kb, ok := keyboardFor(snap); ok {
		h.sendWithKeyboard(chatID, text, kb)
		return
	}
	h.send(chatID, text)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.WithError(err).Debug("Failed to answer callback")
	}
}

// ============== FORMATTING ==============

func formatTable(snap game.RoundSnapshot) string {
	return fmt.Sprintf("🎴 You: %s (%d)\n🃏 Dealer: %s (%d)",
		game.FormatHand(snap.Player), snap.PlayerScore, snap.DealerHand(), snap.DealerScore)
}

func formatBet(bet game.BetSnapshot) string {
	chips := "—"
	if len(bet.Chips) > 0 {
		parts := make([]string, len(bet.Chips))
		for i, c := range bet.Chips {
			parts[i] = strconv.Itoa(c)
		}
		chips = strings.Join(parts, " + ")
	}
	return fmt.Sprintf("💰 Bet: %d (%s)\n💵 Balance: %d", bet.Wager, chips, bet.Balance)
}

func formatRound(snap game.RoundSnapshot) string {
	switch snap.State {
	case game.StateIdle:
		return fmt.Sprintf("%s\n\n%s", snap.Message, formatBet(snap.Bet))
	case game.StateSettled:
		msg := fmt.Sprintf("%s\n\n%s", formatTable(snap), snap.Message)
		if snap.Payout > 0 {
			msg += fmt.Sprintf("\n💰 Payout: +%d", snap.Payout)
		}
		return msg + fmt.Sprintf("\n💵 Balance: %d", snap.Balance)
	default:
		return fmt.Sprintf("💰 Stake: %d | Balance: %d\n\n%s\n\n%s",
			snap.Stake, snap.Balance, formatTable(snap), snap.Message)
	}
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, game.ErrNoBet):
		return "Please place a bet first!"
	case errors.Is(err, game.ErrInsufficientBalance):
		return "Insufficient balance!"
	case errors.Is(err, game.ErrBelowMinimum):
		return fmt.Sprintf("Minimum bet is %d!", game.MinimumBet)
	case errors.Is(err, game.ErrInvalidChip):
		return "Unknown chip."
	case errors.Is(err, game.ErrRoundInProgress):
		return "Cannot bet during a round!"
	case errors.Is(err, game.ErrNotActive):
		return "Cannot do that right now!"
	case errors.Is(err, game.ErrNotReady), errors.Is(err, game.ErrNotResolving):
		return "Finish the current round first!"
	}
	return "Something went wrong."
}

// ============== COMMANDS ==============

func (h *Handler) HandleStart(chatID int64) {
	s, release := h.tables.Acquire(chatID)
	defer release()

	snap := s.Snapshot()
	text := fmt.Sprintf(
		"🎰 Welcome to Blackjack!\n\n"+
			"💵 Balance: %d\n\n"+
			"/play <bet> — deal with a bet\n"+
			"/balance — stats\n"+
			"/history — recent rounds\n"+
			"/help — rules",
		snap.Balance)
	if kb, ok := keyboardFor(snap); ok && snap.State == game.StateIdle {
		h.sendWithKeyboard(chatID, text, kb)
		return
	}
	h.send(chatID, text)
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID, fmt.Sprintf(
		"📖 Blackjack rules:\n\n"+
			"🎯 Beat the dealer without going over 21\n\n"+
			"📊 Points:\n"+
			"• 2-10 — face value\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 or 1\n\n"+
			"🎮 Actions:\n"+
			"• Hit — take a card\n"+
			"• Stand — let the dealer play\n\n"+
			"🏦 Dealer hits soft 17\n"+
			"🎰 Blackjack pays x2.5\n"+
			"🪙 Minimum bet %d", game.MinimumBet))
}

func (h *Handler) HandleBalance(chatID int64) {
	s, release := h.tables.Acquire(chatID)
	snap := s.Snapshot()
	id := s.ID()
	release()

	text := fmt.Sprintf(
		"💰 Balance: %d\n\n"+
			"📊 Stats:\n"+
			"✅ Wins: %d\n"+
			"❌ Losses: %d\n"+
			"🤝 Pushes: %d",
		snap.Balance, snap.Wins, snap.Losses, snap.Pushes)

	if h.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stats, err := h.journal.Stats(ctx, id)
		if err != nil {
			h.log.WithError(err).Warn("Failed to read journal stats")
		} else if stats.Rounds > 0 {
			text += fmt.Sprintf("\n🎮 Rounds: %d (%.1f%% won)\n📈 Net: %+d",
				stats.Rounds, stats.WinRate(), stats.Net)
		}
	}

	h.send(chatID, text)
}

func (h *Handler) HandleHistory(chatID int64) {
	if h.journal == nil {
		h.send(chatID, "📜 History is not available.")
		return
	}

	s, release := h.tables.Acquire(chatID)
	id := s.ID()
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := h.journal.Recent(ctx, id, 5)
	if err != nil {
		h.log.WithError(err).Warn("Failed to read journal")
		h.send(chatID, "❌ Error")
		return
	}
	if len(entries) == 0 {
		h.send(chatID, "📜 No rounds played yet!")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Recent rounds:\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("#%d %s %+d | %s (%d) vs %s (%d)\n",
			e.Round, e.Outcome, e.Net(), e.PlayerCards, e.PlayerScore, e.DealerCards, e.DealerScore))
	}
	h.send(chatID, sb.String())
}

func (h *Handler) HandlePlay(chatID int64, args []string) {
	s, release := h.tables.Acquire(chatID)
	defer release()

	var (
		snap game.RoundSnapshot
		err  error
	)
	if len(args) > 0 {
		bet, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			h.send(chatID, fmt.Sprintf("❌ Invalid bet. Example: /play %d", game.MinimumBet*5))
			return
		}
		snap, err = s.StartRound(bet)
	} else {
		snap, err = s.Deal()
	}

	if err != nil {
		h.send(chatID, "❌ "+rejectionText(err))
		return
	}
	h.sendSnapshot(chatID, snap)
}

// ============== CALLBACKS ==============

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		h.answerCallback(callback.ID, "")
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	s, release := h.tables.Acquire(chatID)
	defer release()

	if v, ok := chipValue(data); ok {
		bet, err := s.PlaceChip(v)
		h.answerBet(callback.ID, bet, err)
		return
	}

	switch data {
	case CallbackUndo:
		bet, err := s.RemoveLastChip()
		h.answerBet(callback.ID, bet, err)
		return
	case CallbackClear:
		bet, err := s.ClearBet()
		h.answerBet(callback.ID, bet, err)
		return
	case CallbackAllIn:
		bet, err := s.AllIn()
		h.answerBet(callback.ID, bet, err)
		return
	case CallbackBalance:
		h.answerCallback(callback.ID, fmt.Sprintf("💵 %d", s.Snapshot().Balance))
		return
	}

	var (
		snap game.RoundSnapshot
		err  error
	)
	switch data {
	case CallbackDeal:
		snap, err = s.Deal()
	case CallbackHit:
		snap, err = s.Hit()
	case CallbackStand:
		snap, err = s.Stand()
	case CallbackNewRound:
		snap, err = s.NewRound()
	default:
		h.answerCallback(callback.ID, "")
		return
	}

	if err != nil {
		h.answerCallback(callback.ID, rejectionText(err))
		return
	}
	h.answerCallback(callback.ID, "")
	h.sendSnapshot(chatID, snap)

	if snap.State == game.StateDealerResolving {
		h.playDealer(chatID, s)
	}
}

func (h *Handler) answerBet(callbackID string, bet game.BetSnapshot, err error) {
	if err != nil {
		h.answerCallback(callbackID, rejectionText(err))
		return
	}
	h.answerCallback(callbackID, fmt.Sprintf("💰 Bet: %d | 💵 %d", bet.Wager, bet.Balance))
}

// playDealer paces the dealer's turn, one card per tick.
func (h *Handler) playDealer(chatID int64, s *game.Session) {
	if h.cfg.DealerDelay <= 0 {
		snap, err := s.ResolveDealer()
		if err != nil {
			h.log.WithError(err).Error("Dealer resolution failed")
			return
		}
		h.sendSnapshot(chatID, snap)
		return
	}

	ticker := time.NewTicker(h.cfg.DealerDelay)
	defer ticker.Stop()

	for {
		<-ticker.C
		step, err := s.DealerStep()
		if err != nil {
			h.log.WithError(err).Error("Dealer step failed")
			return
		}
		if step.Done {
			h.sendSnapshot(chatID, step.Snapshot)
			return
		}
		h.send(chatID, fmt.Sprintf("🃏 Dealer draws %s — %s (%d)",
			step.Card, step.Snapshot.DealerHand(), step.Snapshot.DealerScore))
	}
}

// ============== MESSAGES ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play":
		h.HandlePlay(chatID, args)
	case "/balance":
		h.HandleBalance(chatID)
	case "/history":
		h.HandleHistory(chatID)
	}
}
