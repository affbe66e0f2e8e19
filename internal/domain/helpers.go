package domain

// RemoveCardAt returns a copy of hand without the card at idx.
func RemoveCardAt(hand []Card, idx int) []Card {
	if idx < 0 || idx >= len(hand) {
		return hand
	}
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:idx]...)
	return append(out, hand[idx+1:]...)
}

// InsertCardAt returns a copy of hand with c inserted at idx. Out-of-range indices append.
func InsertCardAt(hand []Card, idx int, c Card) []Card {
	if idx < 0 || idx > len(hand) {
		idx = len(hand)
	}
	out := make([]Card, 0, len(hand)+1)
	out = append(out, hand[:idx]...)
	out = append(out, c)
	return append(out, hand[idx:]...)
}

// RemoveCards removes the cards at the given indices and returns the remaining hand and the removed cards
// in ascending index order. Indices must be unique and in range.
func RemoveCards(hand []Card, indices []int) (remaining, removed []Card) {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	remaining = make([]Card, 0, len(hand))
	for i, c := range hand {
		if drop[i] {
			removed = append(removed, c)
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, removed
}

// FirstInvalidIndex returns the hand index of the first invalidate card, or -1.
func FirstInvalidIndex(hand []Card) int {
	for i, c := range hand {
		if c.IsInvalid() {
			return i
		}
	}
	return -1
}
