package game

const (
	Blackjack   = 21
	DealerStand = 17
)

// evaluate returns the best total and how many aces are still counted as 11.
func evaluate(hand []Card) (score, softAces int) {
	for _, card := range hand {
		score += card.Rank.Value()
		if card.Rank == Ace {
			softAces++
		}
	}

	for score > Blackjack && softAces > 0 {
		score -= 10
		softAces--
	}

	return score, softAces
}

func Score(hand []Card) int {
	score, _ := evaluate(hand)
	return score
}

// IsSoft reports whether an ace is still counted as 11 in the hand's score.
func IsSoft(hand []Card) bool {
	_, soft := evaluate(hand)
	return soft > 0
}

func IsSoft17(hand []Card) bool {
	score, soft := evaluate(hand)
	return score == DealerStand && soft > 0
}

func IsBlackjack(hand []Card) bool {
	return len(hand) == 2 && Score(hand) == Blackjack
}

func IsBust(hand []Card) bool {
	return Score(hand) > Blackjack
}

// VisibleScore scores the dealer's hand without its face-down first card.
func VisibleScore(dealer []Card) int {
	if len(dealer) < 2 {
		return 0
	}
	return Score(dealer[1:])
}
