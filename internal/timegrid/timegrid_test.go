package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:00", 0, true},
		{"09-00", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestToTime(t *testing.T) {
	assert.Equal(t, "00:00", ToTime(0))
	assert.Equal(t, "09:05", ToTime(545))
	assert.Equal(t, "23:59", ToTime(1439))
}

func TestOverlaps(t *testing.T) {
	// Half-open intervals: touching endpoints do not overlap.
	assert.False(t, Overlaps(540, 570, 570, 600))
	assert.False(t, Overlaps(570, 600, 540, 570))

	assert.True(t, Overlaps(540, 600, 570, 630))
	assert.True(t, Overlaps(570, 630, 540, 600))

	// Containment.
	assert.True(t, Overlaps(540, 660, 570, 600))
	assert.True(t, Overlaps(570, 600, 540, 660))

	// Identical.
	assert.True(t, Overlaps(540, 570, 540, 570))
}

func TestOverlapsHM(t *testing.T) {
	ok, err := OverlapsHM("09:45", "10:45", "10:00", "10:30")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = OverlapsHM("09:45", "10:45", "09:00", "09:30")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = OverlapsHM("9:45", "10:45", "09:00", "09:30")
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("09:00", 45)
	assert.NoError(t, err)
	assert.Equal(t, "09:45", got)
}
