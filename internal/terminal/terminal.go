// Package terminal plays a session interactively in the terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"chipjack/internal/game"
	"chipjack/internal/journal"
	"chipjack/internal/player"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

const (
	choiceUndo     = "Undo last chip"
	choiceClear    = "Clear bet"
	choiceAllIn    = "All in"
	choiceDeal     = "Deal"
	choiceHit      = "Hit"
	choiceStand    = "Stand"
	choiceNewRound = "New round"
	choiceHistory  = "History"
	choiceQuit     = "Quit"
	chipPrefix     = "Chip +"
)

var errQuit = errors.New("quit")

type UI struct {
	session *game.Session
	journal journal.Repository
	delay   time.Duration
	log     logrus.FieldLogger
}

func New(session *game.Session, repo journal.Repository, delay time.Duration, log logrus.FieldLogger) *UI {
	return &UI{
		session: session,
		journal: repo,
		delay:   delay,
		log:     log,
	}
}

func (u *UI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap := u.session.Snapshot()
		render(snap)

		if snap.State == game.StateIdle && snap.GameOver {
			pterm.Error.Println(snap.Message)
			return nil
		}

		if snap.State == game.StateDealerResolving {
			if err := u.playDealer(ctx); err != nil {
				return err
			}
			continue
		}

		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions(Choices(snap)).
			WithDefaultText(prompt(snap.State)).
			Show()
		if err != nil {
			return fmt.Errorf("failed to read choice: %w", err)
		}

		if choice == choiceHistory {
			u.printHistory(ctx)
			continue
		}

		err = Apply(u.session, choice)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			pterm.Warning.Println(err.Error())
		}
	}
}

// Choices lists the menu entries legal in the snapshot's state.
func Choices(snap game.RoundSnapshot) []string {
	switch snap.State {
	case game.StateIdle:
		var opts []string
		for _, chip := range player.Chips {
			if snap.Bet.Wager+chip <= snap.Bet.Balance {
				opts = append(opts, chipPrefix+strconv.Itoa(chip))
			}
		}
		if len(snap.Bet.Chips) > 0 {
			opts = append(opts, choiceUndo, choiceClear)
		}
		return append(opts, choiceAllIn, choiceDeal, choiceQuit)
	case game.StateActive:
		return []string{choiceHit, choiceStand}
	case game.StateSettled:
		return []string{choiceNewRound, choiceHistory, choiceQuit}
	}
	return nil
}

// Apply performs a menu choice on the session.
func Apply(s *game.Session, choice string) error {
	if raw, ok := strings.CutPrefix(choice, chipPrefix); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("bad chip %q", raw)
		}
		_, err = s.PlaceChip(v)
		return err
	}

	var err error
	switch choice {
	case choiceUndo:
		_, err = s.RemoveLastChip()
	case choiceClear:
		_, err = s.ClearBet()
	case choiceAllIn:
		_, err = s.AllIn()
	case choiceDeal:
		_, err = s.Deal()
	case choiceHit:
		_, err = s.Hit()
	case choiceStand:
		_, err = s.Stand()
	case choiceNewRound:
		_, err = s.NewRound()
	case choiceQuit:
		return errQuit
	default:
		return fmt.Errorf("unknown choice %q", choice)
	}
	return err
}

func (u *UI) playDealer(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start("Dealer is playing...")
	defer func() {
		if spinner != nil {
			spinner.Stop()
		}
	}()

	for {
		step, err := u.session.DealerStep()
		if err != nil {
			return err
		}
		if step.Done {
			return nil
		}
		if spinner != nil {
			spinner.UpdateText(fmt.Sprintf("Dealer draws %s (%d)", step.Card, step.Snapshot.DealerScore))
		}

		if u.delay <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(u.delay):
		}
	}
}

func (u *UI) printHistory(ctx context.Context) {
	if u.journal == nil {
		pterm.Warning.Println("History is not available.")
		return
	}

	entries, err := u.journal.Recent(ctx, u.session.ID(), 10)
	if err != nil {
		u.log.WithError(err).Warn("Failed to read journal")
		pterm.Error.Println("Could not read history.")
		return
	}

	data := pterm.TableData{{"Round", "Outcome", "Net", "You", "Dealer"}}
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Round),
			e.Outcome,
			fmt.Sprintf("%+d", e.Net()),
			fmt.Sprintf("%s (%d)", e.PlayerCards, e.PlayerScore),
			fmt.Sprintf("%s (%d)", e.DealerCards, e.DealerScore),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		u.log.WithError(err).Warn("Failed to render history")
	}
}

func prompt(state game.RoundState) string {
	switch state {
	case game.StateIdle:
		return "Place your bet"
	case game.StateActive:
		return "Hit or Stand?"
	}
	return "What next?"
}

func tagPrinter(tag game.MessageTag) pterm.PrefixPrinter {
	switch tag {
	case game.TagWin:
		return pterm.Success
	case game.TagLose:
		return pterm.Error
	case game.TagTie:
		return pterm.Warning
	}
	return pterm.Info
}

func render(snap game.RoundSnapshot) {
	pterm.DefaultSection.Printfln("Round %d: %s", snap.Round, snap.State)

	if snap.State != game.StateIdle {
		data := pterm.TableData{
			{"", "Cards", "Score"},
			{"Dealer", snap.DealerHand(), strconv.Itoa(snap.DealerScore)},
			{"You", game.FormatHand(snap.Player), strconv.Itoa(snap.PlayerScore)},
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	printer := tagPrinter(snap.Tag)
	printer.Println(snap.Message)
	pterm.Info.Printfln("Balance %d | Bet %d | Stake %d | W %d / L %d / P %d",
		snap.Balance, snap.Bet.Wager, snap.Stake, snap.Wins, snap.Losses, snap.Pushes)
}
