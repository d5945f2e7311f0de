package game

import "errors"

// Sentinel errors returned by Board operations. Callers should test with errors.Is.
var (
	// ErrLogic marks a broken invariant, e.g. food on a snake cell or a head
	// without a successor. It is never expected in a correct run.
	ErrLogic = errors.New("game: logic error")

	// ErrTrapped means the head has no passable neighbour. The run is lost.
	ErrTrapped = errors.New("game: snake head trapped")

	// ErrBoardFull means no cell is left for food. The run is won.
	ErrBoardFull = errors.New("game: board full")

	// ErrNoCandidate means a random selection had nothing to choose from.
	ErrNoCandidate = errors.New("game: no cell matches selection")

	// ErrInvalidGraph is returned by NewBoard for malformed adjacency.
	ErrInvalidGraph = errors.New("game: invalid graph")
)
