package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		want    string
		wantErr error
	}{
		{"morning", Slot{Kind: Morning}, "11:59:59", nil},
		{"afternoon", Slot{Kind: Afternoon}, "16:29:59", nil},
		{"unspecified", Slot{Kind: Unspecified}, "00:00:00", nil},
		{"custom", Slot{Kind: Custom, Clock: "09:30"}, "09:30", nil},
		{"custom missing clock", Slot{Kind: Custom}, "", ErrMissingClock},
		{"custom bad clock", Slot{Kind: Custom, Clock: "25:99"}, "", ErrInvalidClock},
		{"custom free text", Slot{Kind: Custom, Clock: "soonish"}, "", ErrInvalidClock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.slot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, kind := range []Kind{Morning, Afternoon, Unspecified} {
		stored, err := Encode(Slot{Kind: kind})
		require.NoError(t, err)

		slot := DecodeSlot(stored)
		assert.Equal(t, kind, slot.Kind)
	}

	// Scenario: encode(afternoon) stores the sentinel and decodes to its label.
	stored, err := Encode(Slot{Kind: Afternoon})
	require.NoError(t, err)
	assert.Equal(t, "16:29:59", stored)
	assert.Equal(t, "Afternoon", Decode("16:29:59"))
}

func TestDecodeLabels(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"11:59:59", "Morning"},
		{"11:59", "Morning"},
		{"16:29:59", "Afternoon"},
		{"00:00:00", "Not specified"},
		{"00:00", "Not specified"},
		{"09:30", "09:30"},
		{"09:30:00", "09:30"},
		{"14:45:12", "14:45"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.stored), "stored %q", tt.stored)
	}
}

func TestDecodeIsTotal(t *testing.T) {
	// Arbitrary garbage still yields some label, truncated to five characters.
	assert.Equal(t, "", Decode(""))
	assert.Equal(t, "x", Decode("x"))
	assert.Equal(t, "garba", Decode("garbage value"))
	assert.Equal(t, "99:99", Decode("99:99:99"))
	assert.Equal(t, "11:5", Decode("11:5"))
}

func TestKindFromChoice(t *testing.T) {
	for choice, want := range map[string]Kind{
		"morning":     Morning,
		"afternoon":   Afternoon,
		"unspecified": Unspecified,
		"custom":      Custom,
	} {
		got, err := KindFromChoice(choice)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := KindFromChoice("evening")
	assert.Error(t, err)
}

func TestValidStored(t *testing.T) {
	assert.True(t, ValidStored("11:59:59"))
	assert.True(t, ValidStored("16:29:59"))
	assert.True(t, ValidStored("00:00:00"))
	assert.True(t, ValidStored("09:30"))
	assert.False(t, ValidStored("soonish"))
	assert.False(t, ValidStored("11:59:58"))
	assert.False(t, ValidStored(""))
}
