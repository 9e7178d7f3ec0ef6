package decklists

// DiscountFunc returns the influence multiplier for a card given the rest
// of the deck: 1 pays full influence, 0 makes the card free.
type DiscountFunc func(d *Decklist) float64

// AllianceRules looks up the conditional influence discount of a card.
type AllianceRules interface {
	Discount(code string) (DiscountFunc, bool)
}

// RuleSet maps card codes to their discount.
type RuleSet map[string]DiscountFunc

func (r RuleSet) Discount(code string) (DiscountFunc, bool) {
	f, ok := r[code]
	return f, ok && f != nil
}

const allianceKeyword = "Alliance"

// FactionCardsRule makes a card free when the deck holds at least minCards
// non-alliance cards of faction.
func FactionCardsRule(faction string, minCards int) DiscountFunc {
	return func(d *Decklist) float64 {
		count := 0
		for _, entries := range d.Cards {
			for _, e := range entries {
				if e.Card.Faction == faction && !e.Card.HasSubtype(allianceKeyword) {
					count += e.Quantity
				}
			}
		}
		if count >= minCards {
			return 0
		}
		return 1
	}
}

// ICELimitRule makes a card free when the deck holds at most maxICE ICE.
func ICELimitRule(maxICE int) DiscountFunc {
	return func(d *Decklist) float64 {
		if d.Count(ICECategories...) <= maxICE {
			return 0
		}
		return 1
	}
}

// DefaultAllianceRules covers the alliance cards of the Data and Destiny
// expansion.
func DefaultAllianceRules() RuleSet {
	return RuleSet{
		"10013": FactionCardsRule("Jinteki", 6),
		"10018": ICELimitRule(15),
		"10029": FactionCardsRule("Haas-Bioroid", 6),
		"10067": FactionCardsRule("Haas-Bioroid", 6),
		"10068": FactionCardsRule("Jinteki", 6),
		"10071": FactionCardsRule("NBN", 6),
		"10072": FactionCardsRule("Weyland Consortium", 6),
		"10109": FactionCardsRule("NBN", 6),
	}
}

// noRules is used when an assembler is built without alliance rules.
type noRules struct{}

func (noRules) Discount(string) (DiscountFunc, bool) { return nil, false }

var _ AllianceRules = RuleSet(nil)
var _ AllianceRules = noRules{}
