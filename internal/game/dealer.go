package game

// DealerShouldHit is the house policy: draw below 17 and on a soft 17.
func DealerShouldHit(hand []Card) bool {
	score := Score(hand)
	return score < DealerStand || IsSoft17(hand)
}
