package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/decklists"
	"github.com/fatih/color"
)

var factionColors = map[string]*color.Color{
	"Anarch":             color.New(color.FgRed),
	"Criminal":           color.New(color.FgBlue),
	"Shaper":             color.New(color.FgGreen),
	"Haas-Bioroid":       color.New(color.FgMagenta),
	"Jinteki":            color.New(color.FgHiRed),
	"NBN":                color.New(color.FgYellow),
	"Weyland Consortium": color.New(color.FgHiGreen),
	"Apex":               color.New(color.FgHiRed),
	"Adam":               color.New(color.FgHiYellow),
	"Sunny Lebeau":       color.New(color.FgHiBlack),
}

var (
	titleColor   = color.New(color.Bold)
	headingColor = color.New(color.Bold, color.Underline)
	faintColor   = color.New(color.Faint)
)

func factionColor(faction string) *color.Color {
	if c, ok := factionColors[faction]; ok {
		return c
	}
	return color.New(color.Reset)
}

func influenceDots(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("•", n)
}

func renderCard(w io.Writer, c *cards.CardRecord) {
	title := c.Title
	if c.Uniqueness {
		title = "◆ " + title
	}
	fmt.Fprintln(w, titleColor.Sprint(title))

	line := string(c.Type)
	if sub := c.SubtypeLine(); sub != "" {
		line += ": " + sub
	}
	line += " - " + factionColor(c.Faction).Sprint(c.Faction)
	if dots := influenceDots(cards.IntValue(c.FactionCost)); dots != "" {
		line += " " + dots
	}
	fmt.Fprintln(w, line)

	if s := cardStats(c); s != "" {
		fmt.Fprintln(w, s)
	}
	if c.URL != "" {
		fmt.Fprintln(w, faintColor.Sprint(c.URL))
	}
}

func cardStats(c *cards.CardRecord) string {
	if c.Type == cards.TypeIdentity {
		limit := "∞"
		if c.InfluenceLimit != nil {
			limit = strconv.Itoa(*c.InfluenceLimit)
		}
		s := fmt.Sprintf("%d/%s", cards.IntValue(c.MinimumDeckSize), limit)
		if c.BaseLink != nil {
			s += fmt.Sprintf(" - %d link", *c.BaseLink)
		}
		return s
	}

	stats := []struct {
		value *int
		label string
	}{
		{c.Cost, " credit"},
		{c.MemoryUnits, " MU"},
		{c.Strength, " str"},
		{c.Trash, " trash"},
		{c.AdvancementCost, " adv"},
		{c.AgendaPoints, " points"},
	}

	var parts []string
	for _, st := range stats {
		if st.value != nil {
			parts = append(parts, strconv.Itoa(*st.value)+st.label)
		}
	}
	return strings.Join(parts, " - ")
}

func renderDecklist(w io.Writer, d *decklists.Decklist) {
	header := titleColor.Sprint(d.Name)
	if d.Creator != "" {
		header += " - " + d.Creator
	}
	fmt.Fprintln(w, header)
	if d.URL != "" {
		fmt.Fprintln(w, faintColor.Sprint(d.URL))
	}

	st := d.Stats
	if d.Identity != nil {
		fmt.Fprintln(w, factionColor(st.Faction).Sprint(d.Identity.Card.Title))
	}

	summary := fmt.Sprintf("%d cards", st.CardCount)
	if st.MinimumDeckSize != nil {
		summary += fmt.Sprintf(" (min %d)", *st.MinimumDeckSize)
	}
	limit := "∞"
	if st.InfluenceLimit != nil {
		limit = strconv.Itoa(*st.InfluenceLimit)
	}
	summary += fmt.Sprintf(" - %d/%s•", st.Influence, limit)
	if st.Side != cards.SideRunner {
		summary += fmt.Sprintf(" - %d agenda points", st.AgendaPoints)
	}
	fmt.Fprintln(w, summary)
	if st.NewestCode != "" {
		fmt.Fprintf(w, "Cards up to %s\n", st.NewestCode)
	}

	for _, sec := range d.Sections() {
		if sec.Category == decklists.CategoryIdentity {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", headingColor.Sprint(string(sec.Category)), d.Count(sec.Category))
		for _, e := range sec.Entries {
			line := fmt.Sprintf("%d × %s", e.Quantity, e.Card.Title)
			if dots := influenceDots(roundInfluence(e.Influence)); dots != "" {
				line += " " + factionColor(e.Card.Faction).Sprint(dots)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func roundInfluence(v float64) int {
	return int(v + 0.5)
}

// noHitsMessage joins the missing queries as "a, b or c".
func noHitsMessage(missing []string) string {
	var text string
	switch len(missing) {
	case 0:
		return ""
	case 1:
		text = missing[0]
	default:
		text = strings.Join(missing[:len(missing)-1], ", ") + " or " + missing[len(missing)-1]
	}
	return fmt.Sprintf("The run was successful but you didn't access %s.", text)
}
