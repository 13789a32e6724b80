package game

import (
	"errors"
	"fmt"
)

var (
	ErrWrongPhase    = errors.New("action not allowed in this phase")
	ErrAlreadyKabo   = errors.New("kabo has already been called")
	ErrWrongCard     = errors.New("held card cannot be used for this action")
	ErrInvalidIndex  = errors.New("index does not address a card")
	ErrNoPeeksLeft   = errors.New("no peeks left")
	ErrTooFewIndices = errors.New("must name at least two cards")
	ErrInvalidRank   = errors.New("no such card rank")
	ErrGameOver      = errors.New("game is already over")
)

// AlreadyKaboError is returned when a second player tries to call kabo.
// It matches ErrAlreadyKabo with errors.Is.
type AlreadyKaboError struct {
	PlayerIndex int
}

func (e AlreadyKaboError) Error() string {
	return fmt.Sprintf("player %d has already called kabo", e.PlayerIndex)
}

func (e AlreadyKaboError) Is(target error) bool {
	return target == ErrAlreadyKabo
}
