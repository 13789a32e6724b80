package game

import "github.com/minaorangina/kabo/deck"

func canPeek(c deck.Card) bool {
	return c.Rank == deck.Seven || c.Rank == deck.Eight
}

func canSpy(c deck.Card) bool {
	return c.Rank == deck.Nine || c.Rank == deck.Ten
}

func canSwap(c deck.Card) bool {
	return c.Rank == deck.Eleven || c.Rank == deck.Twelve
}

func allOfRank(cards []deck.Card, r deck.Rank) bool {
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func intSliceToSet(s []int) map[int]struct{} {
	set := map[int]struct{}{}
	for _, v := range s {
		set[v] = struct{}{}
	}
	return set
}
