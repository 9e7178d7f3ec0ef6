package models

import (
	"time"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/uptrace/bun"
)

// Card is the mirrored copy of a catalog record.
type Card struct {
	bun.BaseModel `bun:"table:nrdb_cards,alias:nc"`

	Code       string   `bun:"code,pk"`
	Title      string   `bun:"title,notnull"`
	Type       string   `bun:"type,notnull"`
	Subtypes   []string `bun:"subtypes,type:jsonb"`
	Side       string   `bun:"side,notnull"`
	Faction    string   `bun:"faction,notnull"`
	Uniqueness bool     `bun:"uniqueness,notnull"`
	URL        string   `bun:"url"`

	Cost            *int `bun:"cost"`
	FactionCost     *int `bun:"faction_cost"`
	Strength        *int `bun:"strength"`
	MemoryUnits     *int `bun:"memory_units"`
	Trash           *int `bun:"trash"`
	AdvancementCost *int `bun:"advancement_cost"`
	MinimumDeckSize *int `bun:"minimum_deck_size"`
	InfluenceLimit  *int `bun:"influence_limit"`
	AgendaPoints    *int `bun:"agenda_points"`
	BaseLink        *int `bun:"base_link"`

	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func FromRecord(r *cards.CardRecord, now time.Time) *Card {
	return &Card{
		Code:            r.Code,
		Title:           r.Title,
		Type:            string(r.Type),
		Subtypes:        r.Subtypes,
		Side:            r.Side,
		Faction:         r.Faction,
		Uniqueness:      r.Uniqueness,
		URL:             r.URL,
		Cost:            r.Cost,
		FactionCost:     r.FactionCost,
		Strength:        r.Strength,
		MemoryUnits:     r.MemoryUnits,
		Trash:           r.Trash,
		AdvancementCost: r.AdvancementCost,
		MinimumDeckSize: r.MinimumDeckSize,
		InfluenceLimit:  r.InfluenceLimit,
		AgendaPoints:    r.AgendaPoints,
		BaseLink:        r.BaseLink,
		UpdatedAt:       now,
	}
}

func (c *Card) ToRecord() *cards.CardRecord {
	return &cards.CardRecord{
		Code:            c.Code,
		Title:           c.Title,
		Type:            cards.CanonicalType(c.Type),
		Subtypes:        c.Subtypes,
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
