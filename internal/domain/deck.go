package domain

import "fmt"

// NewDeck expands card definitions into individually identified instances in table order.
func NewDeck(defs []CardDef) []Card {
	total := 0
	for _, def := range defs {
		total += def.Count
	}
	deck := make([]Card, 0, total)
	for _, def := range defs {
		for n := 1; n <= def.Count; n++ {
			deck = append(deck, Card{
				ID:     fmt.Sprintf("%s-%d", def.ID, n),
				DefID:  def.ID,
				Name:   def.Name,
				Type:   def.Type,
				Cost:   def.Cost,
				Effect: def.Effect,
			})
		}
	}
	return deck
}

// ShuffleDeck returns a Fisher-Yates shuffled copy of the given cards.
func ShuffleDeck(cards []Card, rng Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DrawFromDeck takes up to n cards from the top of the deck.
func DrawFromDeck(deck []Card, n int) (drawn, rest []Card) {
	n = min(max(n, 0), len(deck))
	return append([]Card{}, deck[:n]...), append([]Card{}, deck[n:]...)
}
