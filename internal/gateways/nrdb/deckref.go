package nrdb

import (
	"regexp"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

var (
	deckURLPattern = regexp.MustCompile(`netrunnerdb\.com/\w\w/(decklist|deck/view)/(\d+)`)
	deckIDPattern  = regexp.MustCompile(`^\s*#?(\d+)\s*$`)
)

// ParseDeckRef pulls a deck id out of a NetrunnerDB link or a bare number.
// Links decide the visibility; bare ids are looked up with VisibilityAuto.
func ParseDeckRef(text string) (string, cards.Visibility, bool) {
	if m := deckURLPattern.FindStringSubmatch(text); m != nil {
		if m[1] == "decklist" {
			return m[2], cards.VisibilityPublic, true
		}
		return m[2], cards.VisibilityPrivate, true
	}
	if m := deckIDPattern.FindStringSubmatch(text); m != nil {
		return m[1], cards.VisibilityAuto, true
	}
	return "", cards.VisibilityAuto, false
}
