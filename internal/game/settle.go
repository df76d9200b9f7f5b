package game

// MinimumBet is the smallest wager a round can start with.
const MinimumBet = 10

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePush
	OutcomeBlackjack
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	}
	return "none"
}

// Tag maps the outcome to its message tag.
func (o Outcome) Tag() MessageTag {
	switch o {
	case OutcomePush:
		return TagTie
	case OutcomeBlackjack, OutcomeWin:
		return TagWin
	case OutcomeLoss:
		return TagLose
	}
	return TagPlaying
}

func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// Settlement is the result of comparing the final hands. Payout is the
// amount credited back to the balance; the stake was deducted at deal time.
type Settlement struct {
	Outcome Outcome
	Payout  int
	Message string
}

// BlackjackPayout returns floor(wager * 2.5).
func BlackjackPayout(wager int) int {
	return wager * 5 / 2
}

func Settle(player, dealer []Card, wager int) Settlement {
	return settle(player, dealer, wager, false)
}

// settle applies the outcome precedence. dealerBust forces the dealer side to
// count as bust, used when the deck runs out during the dealer's turn.
func settle(player, dealer []Card, wager int, dealerBust bool) Settlement {
	playerBJ := IsBlackjack(player)
	dealerBJ := IsBlackjack(dealer)
	playerScore := Score(player)
	dealerScore := Score(dealer)

	switch {
	case playerBJ && dealerBJ:
		return Settlement{OutcomePush, wager, "Both have blackjack! Push!"}
	case playerBJ:
		return Settlement{OutcomeBlackjack, BlackjackPayout(wager), "Blackjack! You win!"}
	case dealerBJ:
		return Settlement{OutcomeLoss, 0, "Dealer has blackjack! You lose."}
	case playerScore > Blackjack:
		return Settlement{OutcomeLoss, 0, "Bust! You lose."}
	case dealerBust || dealerScore > Blackjack:
		return Settlement{OutcomeWin, wager * 2, "Dealer busts! You win!"}
	case playerScore > dealerScore:
		return Settlement{OutcomeWin, wager * 2, "You win!"}
	case dealerScore > playerScore:
		return Settlement{OutcomeLoss, 0, "Dealer wins!"}
	default:
		return Settlement{OutcomePush, wager, "Push! It's a tie."}
	}
}
