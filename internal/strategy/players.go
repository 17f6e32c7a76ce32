package strategy

import "fmt"

// NumPlayers is the size of a team. Player indexes run 0..10 and map to
// uniform numbers 1..11.
const NumPlayers = 11

// PlayerLabel returns the one-character label used in file headers:
// '1'..'9' for indexes 0..8, 'A' for 9 and 'B' for 10.
func PlayerLabel(index int) (rune, error) {
	switch {
	case index >= 0 && index <= 8:
		return rune('1' + index), nil
	case index == 9:
		return 'A', nil
	case index == 10:
		return 'B', nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidPlayer, index)
}

// ParsePlayerLabel is the inverse of PlayerLabel.
func ParsePlayerLabel(label rune) (int, bool) {
	switch {
	case label >= '1' && label <= '9':
		return int(label - '1'), true
	case label == 'A':
		return 9, true
	case label == 'B':
		return 10, true
	}
	return -1, false
}

// UniformNumber returns the shirt number (1..11) of a player index.
func UniformNumber(index int) int {
	return index + 1
}

func validPlayer(index int) error {
	if index < 0 || index >= NumPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, index)
	}
	return nil
}
