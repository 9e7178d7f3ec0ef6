package decklists

import "github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"

// Category is the heading a card is listed under in a decklist. It follows
// the card type except for ICE, split by its subtypes, and icebreakers.
type Category string

const (
	CategoryIdentity   Category = "Identity"
	CategoryEvent      Category = "Event"
	CategoryHardware   Category = "Hardware"
	CategoryResource   Category = "Resource"
	CategoryAgenda     Category = "Agenda"
	CategoryAsset      Category = "Asset"
	CategoryUpgrade    Category = "Upgrade"
	CategoryOperation  Category = "Operation"
	CategoryIcebreaker Category = "Icebreaker"
	CategoryProgram    Category = "Program"
	CategoryBarrier    Category = "Barrier"
	CategoryCodeGate   Category = "Code Gate"
	CategorySentry     Category = "Sentry"
	CategoryMulti      Category = "Multi"
	CategoryOther      Category = "Other"
)

// DisplayOrder is the order sections are listed in.
var DisplayOrder = []Category{
	CategoryIdentity,
	CategoryEvent,
	CategoryHardware,
	CategoryResource,
	CategoryAgenda,
	CategoryAsset,
	CategoryUpgrade,
	CategoryOperation,
	CategoryIcebreaker,
	CategoryProgram,
	CategoryBarrier,
	CategoryCodeGate,
	CategorySentry,
	CategoryMulti,
	CategoryOther,
}

// ICECategories are the headings ICE can end up under.
var ICECategories = []Category{
	CategoryBarrier,
	CategoryCodeGate,
	CategorySentry,
	CategoryMulti,
	CategoryOther,
}

var iceKeywords = []Category{CategoryBarrier, CategoryCodeGate, CategorySentry}

const icebreakerKeyword = "Icebreaker"

// Categorize picks the decklist heading for a card.
func Categorize(card *cards.CardRecord) Category {
	t := cards.CanonicalType(string(card.Type))
	switch t {
	case cards.TypeICE:
		var matched []Category
		for _, kw := range iceKeywords {
			if card.HasSubtype(string(kw)) {
				matched = append(matched, kw)
			}
		}
		switch len(matched) {
		case 0:
			return CategoryOther
		case 1:
			return matched[0]
		default:
			return CategoryMulti
		}
	case cards.TypeProgram:
		if card.HasSubtype(icebreakerKeyword) {
			return CategoryIcebreaker
		}
		return CategoryProgram
	default:
		return Category(t)
	}
}

// IsICE reports whether the category holds ICE.
func (c Category) IsICE() bool {
	for _, ice := range ICECategories {
		if c == ice {
			return true
		}
	}
	return false
}
