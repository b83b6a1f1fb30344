package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/decision-cli/internal/model"
)

func TestApplyWeightEdits(t *testing.T) {
	criteria := []model.Criterion{
		{ID: "c1", Name: "Price", Weight: 7},
		{ID: "c2", Name: "Battery life", Weight: 5},
	}

	edited, err := applyWeightEdits(criteria, []string{"Price=3", "Battery life=10"})
	require.NoError(t, err)
	assert.Equal(t, 3, edited[0].Weight)
	assert.Equal(t, 10, edited[1].Weight)

	// Originals untouched.
	assert.Equal(t, 7, criteria[0].Weight)
	assert.Equal(t, 5, criteria[1].Weight)
}

func TestApplyWeightEdits_NoEdits(t *testing.T) {
	criteria := []model.Criterion{{Name: "Price", Weight: 7}}

	edited, err := applyWeightEdits(criteria, nil)
	require.NoError(t, err)
	assert.Equal(t, criteria, edited)
}

func TestApplyWeightEdits_Errors(t *testing.T) {
	criteria := []model.Criterion{{Name: "Price", Weight: 7}}

	tests := []struct {
		name string
		edit string
		want string
	}{
		{"missing equals", "Price", "expected Name=N"},
		{"not a number", "Price=high", "must be an integer in 1-10"},
		{"below range", "Price=0", "must be an integer in 1-10"},
		{"above range", "Price=11", "must be an integer in 1-10"},
		{"unknown criterion", "Speed=5", `no criterion named "Speed"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyWeightEdits(criteria, []string{tt.edit})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyWeightEdits_TrimsWhitespace(t *testing.T) {
	criteria := []model.Criterion{{Name: "Price", Weight: 7}}

	edited, err := applyWeightEdits(criteria, []string{" Price = 4 "})
	require.NoError(t, err)
	assert.Equal(t, 4, edited[0].Weight)
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "up 2", formatDelta(2))
	assert.Equal(t, "down 1", formatDelta(-1))
	assert.Equal(t, "-", formatDelta(0))
}
