package deck

import (
	"testing"

	utils "github.com/minaorangina/kabo/internal"
	"github.com/stretchr/testify/assert"
)

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		card     Card
		expected string
	}{
		{"Lowest value card", NewCard(Zero), "0"},
		{"Specific card", NewCard(Seven), "7"},
		{"Highest value card", NewCard(Thirteen), "13"},
	}

	for _, c := range cases {
		utils.AssertEqual(t, c.card.String(), c.expected)
	}

	t.Run("Out of range (should panic)", func(t *testing.T) {
		assert.Panics(t, func() { NewCard(14) })
		assert.Panics(t, func() { NewCard(-1) })
	})

	t.Run("get rank", func(t *testing.T) {
		utils.AssertEqual(t, NewCard(Twelve).Rank, Twelve)
	})
}
