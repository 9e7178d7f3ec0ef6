package nrdb

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
)

// cardJSON is a card as served by the public card API.
type cardJSON struct {
	Code            string `json:"code"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Subtype         string `json:"subtype"`
	Side            string `json:"side"`
	Faction         string `json:"faction"`
	Uniqueness      bool   `json:"uniqueness"`
	URL             string `json:"url"`
	Cost            *int   `json:"cost"`
	FactionCost     *int   `json:"factioncost"`
	Strength        *int   `json:"strength"`
	MemoryUnits     *int   `json:"memoryunits"`
	Trash           *int   `json:"trash"`
	AdvancementCost *int   `json:"advancementcost"`
	MinimumDeckSize *int   `json:"minimumdecksize"`
	InfluenceLimit  *int   `json:"influencelimit"`
	AgendaPoints    *int   `json:"agendapoints"`
	BaseLink        *int   `json:"baselink"`
}

func (c cardJSON) toRecord() *cards.CardRecord {
	return &cards.CardRecord{
		Code:            c.Code,
		Title:           c.Title,
		Type:            cards.CanonicalType(c.Type),
		Subtypes:        cards.ParseSubtypes(c.Subtype),
		Side:            c.Side,
		Faction:         c.Faction,
		Uniqueness:      c.Uniqueness,
		URL:             c.URL,
		Cost:            c.Cost,
		FactionCost:     c.FactionCost,
		Strength:        c.Strength,
		MemoryUnits:     c.MemoryUnits,
		Trash:           c.Trash,
		AdvancementCost: c.AdvancementCost,
		MinimumDeckSize: c.MinimumDeckSize,
		InfluenceLimit:  c.InfluenceLimit,
		AgendaPoints:    c.AgendaPoints,
		BaseLink:        c.BaseLink,
	}
}

// decodeCards accepts either a bare array or a {"data": [...]} envelope.
func decodeCards(body []byte) ([]*cards.CardRecord, error) {
	var raw []cardJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		var env struct {
			Data []cardJSON `json:"data"`
		}
		if envErr := json.Unmarshal(body, &env); envErr != nil {
			return nil, fmt.Errorf("decode cards: %w", err)
		}
		raw = env.Data
	}

	records := make([]*cards.CardRecord, 0, len(raw))
	for _, c := range raw {
		records = append(records, c.toRecord())
	}
	return records, nil
}

type deckJSON struct {
	ID       json.Number    `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username"`
	UserName string         `json:"user_name"`
	Cards    map[string]int `json:"cards"`
}

func (d deckJSON) creator() string {
	if d.Username != "" {
		return d.Username
	}
	return d.UserName
}

// decodeDeck accepts a bare deck object or a {"data": [deck]} envelope.
func decodeDeck(body []byte) (*deckJSON, error) {
	var env struct {
		Data []deckJSON `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return &env.Data[0], nil
	}

	var d deckJSON
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if d.Cards == nil {
		return nil, fmt.Errorf("decode deck: no cards in response")
	}
	return &d, nil
}

// quantities flattens the card map, ordered by code.
func quantities(m map[string]int) []cards.CardQuantity {
	out := make([]cards.CardQuantity, 0, len(m))
	for code, qty := range m {
		out = append(out, cards.CardQuantity{Code: code, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
