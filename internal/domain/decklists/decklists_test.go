package decklists

import (
	"context"
	"errors"
	"testing"

	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/cards/mock"
	"github.com/ellavondegurechaff/nrdb-bot/internal/domain/catalog"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testCards() []*cards.CardRecord {
	return []*cards.CardRecord{
		{Code: "01007", Title: "Corroder", Type: cards.TypeProgram, Subtypes: []string{"Icebreaker", "Fracter"}, Faction: "Anarch", Side: cards.SideRunner, FactionCost: cards.Int(2)},
		{Code: "01008", Title: "Datasucker", Type: cards.TypeProgram, Subtypes: []string{"Virus"}, Faction: "Anarch", Side: cards.SideRunner, FactionCost: cards.Int(1)},
		{Code: "01017", Title: "Gabriel Santiago: Consummate Professional", Type: cards.TypeIdentity, Faction: "Criminal", Side: cards.SideRunner, InfluenceLimit: cards.Int(15), MinimumDeckSize: cards.Int(45)},
		{Code: "01054", Title: "Engineering the Future", Type: cards.TypeIdentity, Subtypes: []string{"Megacorp"}, Faction: "Haas-Bioroid", Side: cards.SideCorp, InfluenceLimit: cards.Int(15), MinimumDeckSize: cards.Int(45)},
		{Code: "01077", Title: "Neural Katana", Type: cards.TypeICE, Subtypes: []string{"Sentry", "AP"}, Faction: "Jinteki", Side: cards.SideCorp, FactionCost: cards.Int(2)},
		{Code: "01088", Title: "Data Raven", Type: cards.TypeICE, Subtypes: []string{"Sentry", "Tracer", "Observer"}, Faction: "NBN", Side: cards.SideCorp, FactionCost: cards.Int(2)},
		{Code: "01103", Title: "Ice Wall", Type: cards.TypeICE, Subtypes: []string{"Barrier"}, Faction: "Weyland Consortium", Side: cards.SideCorp, FactionCost: cards.Int(1)},
		{Code: "01106", Title: "Priority Requisition", Type: cards.TypeAgenda, Subtypes: []string{"Security"}, Faction: "Weyland Consortium", Side: cards.SideCorp, AgendaPoints: cards.Int(3)},
		{Code: "01110", Title: "Hedge Fund", Type: cards.TypeOperation, Subtypes: []string{"Transaction"}, Faction: "Neutral", Side: cards.SideCorp, FactionCost: cards.Int(0)},
		{Code: "01113", Title: "Wall of Static", Type: cards.TypeICE, Subtypes: []string{"Barrier"}, Faction: "Neutral", Side: cards.SideCorp, FactionCost: cards.Int(0)},
		{Code: "02110", Title: "eli 1.0", Type: cards.TypeICE, Subtypes: []string{"Barrier", "Bioroid"}, Faction: "Haas-Bioroid", Side: cards.SideCorp, FactionCost: cards.Int(1)},
		{Code: "02120", Title: "Orion", Type: cards.TypeICE, Subtypes: []string{"Barrier", "Code Gate", "Sentry"}, Faction: "Neutral", Side: cards.SideCorp},
		{Code: "06061", Title: "Chiyashi", Type: cards.TypeICE, Subtypes: []string{"Mythic", "AP"}, Faction: "Haas-Bioroid", Side: cards.SideCorp, FactionCost: cards.Int(3)},
		{Code: "10013", Title: "Heritage Committee", Type: cards.TypeOperation, Subtypes: []string{"Alliance"}, Faction: "Jinteki", Side: cards.SideCorp, FactionCost: cards.Int(1)},
		{Code: "10018", Title: "Mumba Temple", Type: cards.TypeAsset, Subtypes: []string{"Alliance"}, Faction: "Jinteki", Side: cards.SideCorp, FactionCost: cards.Int(2)},
		{Code: "10020", Title: "Wall of Static", Type: cards.TypeICE, Subtypes: []string{"Barrier"}, Faction: "Neutral", Side: cards.SideCorp},
	}
}

func newTestAssembler(t *testing.T, decks cards.DeckProvider, rules AllianceRules) *Assembler {
	t.Helper()
	st := catalog.NewStore(nil, catalog.DefaultOptions())
	t.Cleanup(st.Stop)
	require.NoError(t, st.Load(testCards()))
	return NewAssembler(st, decks, rules)
}

func deck(lines ...cards.CardQuantity) *cards.DeckSource {
	return &cards.DeckSource{ID: "1234", Name: "Test deck", Cards: lines}
}

func q(code string, n int) cards.CardQuantity {
	return cards.CardQuantity{Code: code, Quantity: n}
}

func codesOf(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Card.Code
	}
	return out
}

func entryFor(t *testing.T, d *Decklist, code string) Entry {
	t.Helper()
	for _, entries := range d.Cards {
		for _, e := range entries {
			if e.Card.Code == code {
				return e
			}
		}
	}
	t.Fatalf("no entry for %s", code)
	return Entry{}
}

func TestCategorize(t *testing.T) {
	byCode := map[string]*cards.CardRecord{}
	for _, c := range testCards() {
		byCode[c.Code] = c
	}

	tests := []struct {
		code string
		want Category
	}{
		{"01017", CategoryIdentity},
		{"01007", CategoryIcebreaker},
		{"01008", CategoryProgram},
		{"01088", CategorySentry},
		{"01103", CategoryBarrier},
		{"02120", CategoryMulti},
		{"06061", CategoryOther},
		{"01106", CategoryAgenda},
		{"01110", CategoryOperation},
		{"10018", CategoryAsset},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(byCode[tt.code]))
		})
	}

	codeGate := &cards.CardRecord{Code: "x", Title: "Enigma", Type: cards.TypeICE, Subtypes: []string{"Code Gate"}}
	assert.Equal(t, CategoryCodeGate, Categorize(codeGate))
	twoTypes := &cards.CardRecord{Code: "y", Title: "Fenris", Type: cards.TypeICE, Subtypes: []string{"Barrier", "Code Gate"}}
	assert.Equal(t, CategoryMulti, Categorize(twoTypes))

	lowerICE := &cards.CardRecord{Code: "z", Title: "Data Raven", Type: "ice", Subtypes: []string{"Sentry"}}
	assert.Equal(t, CategorySentry, Categorize(lowerICE))
	assert.True(t, Categorize(lowerICE).IsICE())
	lowerBreaker := &cards.CardRecord{Code: "w", Title: "Corroder", Type: "program", Subtypes: []string{"Icebreaker", "Fracter"}}
	assert.Equal(t, CategoryIcebreaker, Categorize(lowerBreaker))
	assert.Equal(t, CategoryHardware, Categorize(&cards.CardRecord{Code: "v", Title: "Desperado", Type: "HARDWARE"}))
}

func TestCategory_IsICE(t *testing.T) {
	assert.True(t, CategorySentry.IsICE())
	assert.True(t, CategoryMulti.IsICE())
	assert.True(t, CategoryOther.IsICE())
	assert.False(t, CategoryIcebreaker.IsICE())
	assert.False(t, CategoryAgenda.IsICE())
}

func TestAssembler_Assemble(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(q("01088", 3), q("01017", 1)))
	require.NoError(t, err)

	require.Len(t, d.Cards, 2)
	require.Len(t, d.Cards[CategorySentry], 1)
	require.Len(t, d.Cards[CategoryIdentity], 1)
	assert.Equal(t, 3, d.Cards[CategorySentry][0].Quantity)
	assert.Equal(t, "01088", d.Cards[CategorySentry][0].Card.Code)
	assert.Equal(t, 1, d.Cards[CategoryIdentity][0].Quantity)

	require.NotNil(t, d.Identity)
	assert.Equal(t, "01017", d.Identity.Card.Code)
	assert.Equal(t, "1234", d.ID)
	assert.Equal(t, "Test deck", d.Name)
	assert.Equal(t, 3, d.Stats.CardCount)
	assert.Equal(t, "Criminal", d.Stats.Faction)
	assert.Equal(t, cards.SideRunner, d.Stats.Side)
}

func TestAssembler_IncompleteDeck(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(q("01054", 1), q("99999", 2), q("01103", 3), q("99998", 1)))
	assert.Nil(t, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cards.ErrIncompleteDeck))

	var incomplete *cards.IncompleteDeckError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, "1234", incomplete.DeckID)
	assert.Equal(t, []string{"99998", "99999"}, incomplete.Codes)
}

func TestAssembler_CatalogUnavailable(t *testing.T) {
	st := catalog.NewStore(nil, catalog.DefaultOptions())
	a := NewAssembler(st, nil, nil)

	_, err := a.Assemble(context.Background(), deck(q("01103", 1)))
	assert.ErrorIs(t, err, cards.ErrProviderUnavailable)
}

func TestAssembler_SortsByTitle(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(
		q("01054", 1),
		q("01113", 1),
		q("01103", 2),
		q("02110", 2),
		q("10020", 1),
	))
	require.NoError(t, err)

	// Case-insensitive order; equal titles keep input order.
	assert.Equal(t, []string{"02110", "01103", "01113", "10020"}, codesOf(d.Cards[CategoryBarrier]))
}

func TestAssembler_SectionsInDisplayOrder(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(
		q("06061", 1),
		q("01110", 3),
		q("01088", 1),
		q("01054", 1),
		q("01106", 2),
		q("01103", 1),
	))
	require.NoError(t, err)

	var got []Category
	for _, s := range d.Sections() {
		got = append(got, s.Category)
	}
	assert.Equal(t, []Category{
		CategoryIdentity,
		CategoryAgenda,
		CategoryOperation,
		CategoryBarrier,
		CategorySentry,
		CategoryOther,
	}, got)
	assert.Equal(t, 3, d.Count(ICECategories...))
}

func TestAssembler_Stats(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(
		q("01054", 1),
		q("01103", 3),
		q("01106", 3),
		q("01110", 3),
		q("01077", 2),
		q("02110", 2),
	))
	require.NoError(t, err)

	st := d.Stats
	assert.Equal(t, 13, st.CardCount)
	assert.Equal(t, 7, st.Influence)
	assert.Equal(t, 9, st.AgendaPoints)
	assert.Equal(t, "02110", st.NewestCode)
	assert.Equal(t, "Haas-Bioroid", st.Faction)
	assert.Equal(t, cards.SideCorp, st.Side)
	require.NotNil(t, st.InfluenceLimit)
	assert.Equal(t, 15, *st.InfluenceLimit)
	require.NotNil(t, st.MinimumDeckSize)
	assert.Equal(t, 45, *st.MinimumDeckSize)

	assert.Equal(t, 3.0, entryFor(t, d, "01103").Influence)
	assert.Equal(t, 4.0, entryFor(t, d, "01077").Influence)
	assert.Zero(t, entryFor(t, d, "02110").Influence)
}

func TestAssembler_NewestCodeFallsBackToIdentity(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(q("01054", 1), q("01103", 3)))
	require.NoError(t, err)
	assert.Equal(t, "01103", d.Stats.NewestCode)

	d, err = a.Assemble(context.Background(), deck(q("01054", 1), q("01007", 3)))
	require.NoError(t, err)
	assert.Equal(t, "01054", d.Stats.NewestCode)
}

func TestAssembler_MergesAndDropsLines(t *testing.T) {
	a := newTestAssembler(t, nil, nil)

	d, err := a.Assemble(context.Background(), deck(
		q("01054", 1),
		q("01103", 2),
		q("01110", 0),
		q("01103", 1),
		q("99999", -1),
	))
	require.NoError(t, err)

	assert.Equal(t, 3, entryFor(t, d, "01103").Quantity)
	assert.Empty(t, d.Cards[CategoryOperation])
	assert.Equal(t, 3, d.Stats.CardCount)
}

func TestAssembler_AllianceRules(t *testing.T) {
	tests := []struct {
		name      string
		lines     []cards.CardQuantity
		code      string
		wantEntry float64
		wantTotal int
	}{
		{
			name:      "too few faction cards pays full",
			lines:     []cards.CardQuantity{q("01054", 1), q("10013", 2), q("01077", 3)},
			code:      "10013",
			wantEntry: 2,
			wantTotal: 8,
		},
		{
			name:      "enough faction cards is free",
			lines:     []cards.CardQuantity{q("01054", 1), q("10013", 2), q("01077", 6)},
			code:      "10013",
			wantEntry: 0,
			wantTotal: 12,
		},
		{
			name:      "alliance cards do not count themselves",
			lines:     []cards.CardQuantity{q("01054", 1), q("10013", 3), q("10018", 1), q("01077", 5), q("01103", 16)},
			code:      "10013",
			wantEntry: 3,
			wantTotal: 31,
		},
		{
			name:      "small ICE count is free",
			lines:     []cards.CardQuantity{q("01054", 1), q("10018", 2), q("01113", 15)},
			code:      "10018",
			wantEntry: 0,
			wantTotal: 0,
		},
		{
			name:      "large ICE count pays full",
			lines:     []cards.CardQuantity{q("01054", 1), q("10018", 2), q("01113", 16)},
			code:      "10018",
			wantEntry: 4,
			wantTotal: 4,
		},
	}

	a := newTestAssembler(t, nil, DefaultAllianceRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := a.Assemble(context.Background(), deck(tt.lines...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntry, entryFor(t, d, tt.code).Influence)
			assert.Equal(t, tt.wantTotal, d.Stats.Influence)
		})
	}
}

func TestAssembler_FractionalDiscountRounds(t *testing.T) {
	rules := RuleSet{"01077": func(*Decklist) float64 { return 0.5 }}
	a := newTestAssembler(t, nil, rules)

	d, err := a.Assemble(context.Background(), deck(q("01054", 1), q("01077", 1), q("01103", 2)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, entryFor(t, d, "01077").Influence)
	assert.Equal(t, 3, d.Stats.Influence)

	rules["01103"] = func(*Decklist) float64 { return 0.5 }
	d, err = a.Assemble(context.Background(), deck(q("01054", 1), q("01103", 1)))
	require.NoError(t, err)
	assert.Equal(t, 0.5, entryFor(t, d, "01103").Influence)
	assert.Equal(t, 1, d.Stats.Influence)
}

func TestAssembler_ConcurrencyIsDeterministic(t *testing.T) {
	src := deck(
		q("01054", 1),
		q("01113", 1),
		q("10020", 1),
		q("01103", 2),
		q("02110", 2),
		q("01088", 2),
		q("01077", 2),
		q("01110", 3),
		q("01106", 3),
	)

	serial := newTestAssembler(t, nil, nil)
	serial.SetConcurrency(1)
	want, err := serial.Assemble(context.Background(), src)
	require.NoError(t, err)

	parallel := newTestAssembler(t, nil, nil)
	parallel.SetConcurrency(16)
	for i := 0; i < 20; i++ {
		got, err := parallel.Assemble(context.Background(), src)
		require.NoError(t, err)
		for _, s := range want.Sections() {
			if diff := cmp.Diff(codesOf(s.Entries), codesOf(got.Cards[s.Category])); diff != "" {
				t.Fatalf("%s order mismatch (-want +got):\n%s", s.Category, diff)
			}
		}
		if diff := cmp.Diff(want.Stats, got.Stats); diff != "" {
			t.Fatalf("stats mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestAssembler_AssembleByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := mock.NewMockDeckProvider(ctrl)
	a := newTestAssembler(t, decks, nil)
	ctx := context.Background()

	decks.EXPECT().FetchDeck(gomock.Any(), "1234", cards.VisibilityAuto).
		Return(deck(q("01017", 1), q("01007", 3)), nil)
	d, err := a.AssembleByID(ctx, "1234", cards.VisibilityAuto)
	require.NoError(t, err)
	assert.Equal(t, []string{"01007"}, codesOf(d.Cards[CategoryIcebreaker]))
	assert.Equal(t, 6, d.Stats.Influence)

	decks.EXPECT().FetchDeck(gomock.Any(), "404", cards.VisibilityPublic).
		Return(nil, cards.ErrNotFound)
	_, err = a.AssembleByID(ctx, "404", cards.VisibilityPublic)
	assert.ErrorIs(t, err, cards.ErrNotFound)

	decks.EXPECT().FetchDeck(gomock.Any(), "77", cards.VisibilityPrivate).
		Return(nil, cards.ErrForbidden)
	_, err = a.AssembleByID(ctx, "77", cards.VisibilityPrivate)
	assert.ErrorIs(t, err, cards.ErrForbidden)
}

func TestAssembler_AssembleByIDWithoutProvider(t *testing.T) {
	a := newTestAssembler(t, nil, nil)
	_, err := a.AssembleByID(context.Background(), "1234", cards.VisibilityAuto)
	assert.ErrorIs(t, err, cards.ErrProviderUnavailable)
}
