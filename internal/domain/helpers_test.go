package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scriptedRand replays fixed values; once exhausted it returns zero.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func card(id string, typ CardType, eff Effect) Card {
	return Card{ID: id, DefID: id, Name: id, Type: typ, Effect: eff}
}

func invalidCard(id string) Card {
	return card(id, CardFunction, Special{Handler: HandlerInvalid})
}

func ids(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func testJob() Job {
	return Job{
		ID:       "programmer",
		Name:     "Programmer",
		Category: StatIntelligence,
		Skill:    StatIntelligence,
		Levels: []JobLevel{
			{Name: "Junior", RequiredStats: Requirements{StatIntelligence: 3}, Salary: []int{3000, 3500, 4000}},
			{Name: "Senior", RequiredStats: Requirements{StatIntelligence: 6}, Salary: []int{5000, 5500, 6000}},
			{Name: "Lead", RequiredStats: Requirements{StatIntelligence: 9, StatCharisma: 4}, Salary: []int{8000, 9000, 10000}},
		},
	}
}

func TestRemoveCardAt(t *testing.T) {
	hand := []Card{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		name string
		idx  int
		want []string
	}{
		{name: "first", idx: 0, want: []string{"b", "c"}},
		{name: "middle", idx: 1, want: []string{"a", "c"}},
		{name: "last", idx: 2, want: []string{"a", "b"}},
		{name: "out of range", idx: 3, want: []string{"a", "b", "c"}},
		{name: "negative", idx: -1, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(RemoveCardAt(hand, tt.idx)))
		})
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(hand), "input must not be modified")
}

func TestInsertCardAt(t *testing.T) {
	hand := []Card{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, []string{"x", "a", "b"}, ids(InsertCardAt(hand, 0, Card{ID: "x"})))
	assert.Equal(t, []string{"a", "x", "b"}, ids(InsertCardAt(hand, 1, Card{ID: "x"})))
	assert.Equal(t, []string{"a", "b", "x"}, ids(InsertCardAt(hand, 2, Card{ID: "x"})))
	assert.Equal(t, []string{"a", "b", "x"}, ids(InsertCardAt(hand, 9, Card{ID: "x"})))
	assert.Equal(t, []string{"a", "b"}, ids(hand))
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	remaining, removed := RemoveCards(hand, []int{3, 1})
	assert.Equal(t, []string{"a", "c"}, ids(remaining))
	assert.Equal(t, []string{"b", "d"}, ids(removed))
}

func TestFirstInvalidIndex(t *testing.T) {
	assert.Equal(t, -1, FirstInvalidIndex(nil))
	hand := []Card{card("s", CardStudy, StatChange{Stat: StatStamina, Value: 1}), invalidCard("i1"), invalidCard("i2")}
	assert.Equal(t, 1, FirstInvalidIndex(hand))
}
