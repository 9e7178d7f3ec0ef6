package cards

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrIncompleteDeck      = errors.New("incomplete deck")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// IncompleteDeckError lists the deck codes that the catalog could not resolve.
type IncompleteDeckError struct {
	DeckID string
	Codes  []string
}

func (e *IncompleteDeckError) Error() string {
	return fmt.Sprintf("deck %s references unknown cards: %s", e.DeckID, strings.Join(e.Codes, ", "))
}

func (e *IncompleteDeckError) Is(target error) bool {
	return target == ErrIncompleteDeck
}
