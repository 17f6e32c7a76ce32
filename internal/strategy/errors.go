package strategy

import "errors"

var (
	// ErrInvalidName is returned when a region name is empty.
	ErrInvalidName = errors.New("invalid region name")

	// ErrUnknownRegion is returned when an operation names a region that does not exist.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrInvalidPlayer is returned for a player index outside 0..NumPlayers-1.
	ErrInvalidPlayer = errors.New("invalid player index")
)
