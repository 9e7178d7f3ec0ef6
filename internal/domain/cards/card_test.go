package cards

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		raw     string
		want    Type
		wantErr bool
	}{
		{raw: "ICE", want: TypeICE},
		{raw: "ice", want: TypeICE},
		{raw: " Identity ", want: TypeIdentity},
		{raw: "operation", want: TypeOperation},
		{raw: "Fragment", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseType(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSubtypes(t *testing.T) {
	assert.Equal(t, []string{"Sentry", "Tracer", "Observer"}, ParseSubtypes("Sentry - Tracer - Observer"))
	assert.Equal(t, []string{"Code Gate"}, ParseSubtypes("Code Gate"))
	assert.Nil(t, ParseSubtypes("   "))
}

func TestCardRecord_HasSubtype(t *testing.T) {
	card := &CardRecord{Code: "01088", Subtypes: []string{"Sentry", "Tracer"}}

	assert.True(t, card.HasSubtype("sentry"))
	assert.False(t, card.HasSubtype("Barrier"))
	assert.Equal(t, "Sentry - Tracer", card.SubtypeLine())
}

func TestCardRecord_Validate(t *testing.T) {
	valid := &CardRecord{Code: "01088", Title: "Data Raven", Type: TypeICE}
	require.NoError(t, valid.Validate())

	assert.Error(t, (&CardRecord{Title: "No Code", Type: TypeICE}).Validate())
	assert.Error(t, (&CardRecord{Code: "1", Type: TypeICE}).Validate())
	assert.Error(t, (&CardRecord{Code: "1", Title: "x", Type: "Fragment"}).Validate())
}

func TestNumericCode(t *testing.T) {
	assert.Equal(t, 1088, (&CardRecord{Code: "01088"}).NumericCode())
	assert.Equal(t, -1, (&CardRecord{Code: "draft-1"}).NumericCode())
}

func TestIncompleteDeckError(t *testing.T) {
	err := fmt.Errorf("assemble: %w", &IncompleteDeckError{DeckID: "42", Codes: []string{"99999"}})

	assert.True(t, errors.Is(err, ErrIncompleteDeck))
	assert.False(t, errors.Is(err, ErrNotFound))

	var incomplete *IncompleteDeckError
	require.True(t, errors.As(err, &incomplete))
	assert.Equal(t, []string{"99999"}, incomplete.Codes)
	assert.Contains(t, err.Error(), "99999")
}

func TestCardRecord_Canonical(t *testing.T) {
	lower := &CardRecord{Code: "01088", Title: "Data Raven", Type: "ice"}
	require.NoError(t, lower.Validate())

	fixed := lower.Canonical()
	assert.Equal(t, TypeICE, fixed.Type)
	assert.NotSame(t, lower, fixed)
	assert.Equal(t, Type("ice"), lower.Type)

	already := &CardRecord{Code: "01007", Title: "Corroder", Type: TypeProgram}
	assert.Same(t, already, already.Canonical())

	assert.Equal(t, TypeProgram, CanonicalType(" program "))
	assert.Equal(t, Type("Fragment"), CanonicalType("Fragment"))
}
