package cmd

import (
	"bytes"
	"testing"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/decklists"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestRenderCard(t *testing.T) {
	var buf bytes.Buffer
	renderCard(&buf, &cards.CardRecord{
		Code:        "01088",
		Title:       "Data Raven",
		Type:        cards.TypeICE,
		Subtypes:    []string{"Sentry", "Tracer", "Observer"},
		Faction:     "NBN",
		FactionCost: cards.Int(2),
		Cost:        cards.Int(4),
		Strength:    cards.Int(4),
		URL:         "https://netrunnerdb.com/en/card/01088",
	})

	assert.Equal(t, "Data Raven\n"+
		"ICE: Sentry - Tracer - Observer - NBN ••\n"+
		"4 credit - 4 str\n"+
		"https://netrunnerdb.com/en/card/01088\n", buf.String())
}

func TestRenderCard_Identity(t *testing.T) {
	var buf bytes.Buffer
	renderCard(&buf, &cards.CardRecord{
		Code:            "01017",
		Title:           "Gabriel Santiago: Consummate Professional",
		Type:            cards.TypeIdentity,
		Subtypes:        []string{"Cyborg"},
		Faction:         "Criminal",
		Uniqueness:      true,
		MinimumDeckSize: cards.Int(45),
		InfluenceLimit:  cards.Int(15),
		BaseLink:        cards.Int(0),
	})

	assert.Equal(t, "◆ Gabriel Santiago: Consummate Professional\n"+
		"Identity: Cyborg - Criminal\n"+
		"45/15 - 0 link\n", buf.String())
}

func TestRenderDecklist(t *testing.T) {
	id := &cards.CardRecord{Code: "01054", Title: "Engineering the Future", Type: cards.TypeIdentity, Faction: "Haas-Bioroid", Side: cards.SideCorp}
	wall := &cards.CardRecord{Code: "01103", Title: "Ice Wall", Type: cards.TypeICE, Faction: "Weyland Consortium", FactionCost: cards.Int(1)}
	idEntry := decklists.Entry{Card: id, Quantity: 1, Category: decklists.CategoryIdentity}

	d := &decklists.Decklist{
		Name:     "Test deck",
		Creator:  "someone",
		Identity: &idEntry,
		Cards: map[decklists.Category][]decklists.Entry{
			decklists.CategoryIdentity: {idEntry},
			decklists.CategoryBarrier:  {{Card: wall, Quantity: 2, Category: decklists.CategoryBarrier, Influence: 2}},
		},
		Stats: decklists.Stats{
			CardCount:       2,
			Influence:       2,
			InfluenceLimit:  cards.Int(15),
			MinimumDeckSize: cards.Int(45),
			NewestCode:      "01103",
			Faction:         "Haas-Bioroid",
			Side:            cards.SideCorp,
		},
	}

	var buf bytes.Buffer
	renderDecklist(&buf, d)
	assert.Equal(t, "Test deck - someone\n"+
		"Engineering the Future\n"+
		"2 cards (min 45) - 2/15• - 0 agenda points\n"+
		"Cards up to 01103\n"+
		"\nBarrier (2)\n"+
		"2 × Ice Wall ••\n", buf.String())
}

func TestRenderDecklist_RunnerHidesAgendaPoints(t *testing.T) {
	d := &decklists.Decklist{Name: "Runner", Stats: decklists.Stats{Side: cards.SideRunner}}

	var buf bytes.Buffer
	renderDecklist(&buf, d)
	assert.Equal(t, "Runner\n0 cards - 0/∞•\n", buf.String())
}

func TestNoHitsMessage(t *testing.T) {
	assert.Equal(t, "", noHitsMessage(nil))
	assert.Equal(t, "The run was successful but you didn't access sneakdoor.", noHitsMessage([]string{"sneakdoor"}))
	assert.Equal(t, "The run was successful but you didn't access a, b or c.", noHitsMessage([]string{"a", "b", "c"}))
}
