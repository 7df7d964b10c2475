package models

import (
	"fmt"
	"strings"
)

// Direction selects which moves count as notable.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionEither Direction = "either"
)

// ParseDirection accepts up, down or either (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidParameter, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionEither:
		return true
	}
	return false
}

// Sign returns +1 for up, -1 for down and 0 for either.
// Either must be evaluated on the absolute return, never as 0 × r.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionUp:
		return 1
	case DirectionDown:
		return -1
	}
	return 0
}

// Basis selects which series drives the highlight regions.
type Basis string

const (
	BasisWeekly Basis = "weekly"
	BasisDaily  Basis = "daily"
)

// ParseBasis accepts weekly or daily; empty means weekly.
func ParseBasis(s string) (Basis, error) {
	switch b := Basis(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BasisWeekly, nil
	case BasisWeekly, BasisDaily:
		return b, nil
	}
	return "", fmt.Errorf("%w: unknown highlight basis %q", ErrInvalidParameter, s)
}
