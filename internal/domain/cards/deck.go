package cards

// Visibility selects which deck listing a deck identifier refers to.
type Visibility int

const (
	// VisibilityAuto tries the published decklist first and falls back to
	// a shared private deck with the same identifier.
	VisibilityAuto Visibility = iota
	VisibilityPublic
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	default:
		return "auto"
	}
}

// CardQuantity is one line of a raw deck definition.
type CardQuantity struct {
	Code     string
	Quantity int
}

// DeckSource is a deck as returned by the deck provider, before assembly.
type DeckSource struct {
	ID      string
	Name    string
	Creator string
	URL     string
	Private bool
	Cards   []CardQuantity
}
