package reconcile

import (
	"testing"

	"github.com/agenthands/naics/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileEmpty(t *testing.T) {
	results, err := Reconcile(nil, model.RemapTable{"1": "2"}, model.DescriptionTable{"2": "x"})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestReconcileDistinctCodesKeepOrder(t *testing.T) {
	guesses := []model.RawGuess{
		{Code: "334610", Description: "media"},
		{Code: "511210", Description: "software"},
		{Code: "541511", Description: "programming"},
	}

	results, err := Reconcile(guesses, model.RemapTable{}, model.DescriptionTable{})

	require.NoError(t, err)
	require.Len(t, results, len(guesses))
	for i, g := range guesses {
		assert.Equal(t, g.Code, results[i].Code)
		assert.Equal(t, g.Description, results[i].Description)
	}
}

func TestReconcileRemapAndDescription(t *testing.T) {
	guesses := []model.RawGuess{
		{Code: "1234", Description: "old desc"},
		{Code: "5678", Description: "d2"},
	}

	results, err := Reconcile(guesses, model.RemapTable{"1234": "9999"}, model.DescriptionTable{"9999": "new desc"})

	require.NoError(t, err)
	assert.Equal(t, []model.Result{
		{Code: "9999", Description: "new desc"},
		{Code: "5678", Description: "d2"},
	}, results)
}

func TestReconcileDuplicateAfterRemap(t *testing.T) {
	guesses := []model.RawGuess{
		{Code: "1111", Description: "a"},
		{Code: "2222", Description: "b"},
	}

	results, err := Reconcile(guesses, model.RemapTable{"2222": "1111"}, model.DescriptionTable{})

	require.NoError(t, err)
	assert.Equal(t, []model.Result{{Code: "1111", Description: "a"}}, results)
}

func TestReconcileTwoOldCodesSameTarget(t *testing.T) {
	guesses := []model.RawGuess{
		{Code: "3000", Description: "x"},
		{Code: "1000", Description: "first"},
		{Code: "2000", Description: "second"},
	}
	remap := model.RemapTable{"1000": "9000", "2000": "9000"}

	results, err := Reconcile(guesses, remap, model.DescriptionTable{})

	require.NoError(t, err)
	assert.Equal(t, []model.Result{
		{Code: "3000", Description: "x"},
		{Code: "9000", Description: "first"},
	}, results)
}

func TestReconcileDescriptionTableWins(t *testing.T) {
	guesses := []model.RawGuess{{Code: "334610", Description: "whatever the model said"}}

	results, err := Reconcile(guesses, nil, model.DescriptionTable{"334610": "Manufacturing and Reproducing Magnetic and Optical Media"})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Manufacturing and Reproducing Magnetic and Optical Media", results[0].Description)
}

func TestReconcileSingleLevelRemap(t *testing.T) {
	guesses := []model.RawGuess{{Code: "a", Description: "d"}}

	results, err := Reconcile(guesses, model.RemapTable{"a": "b", "b": "c"}, nil)

	require.NoError(t, err)
	assert.Equal(t, []model.Result{{Code: "b", Description: "d"}}, results)
}

func TestReconcileMalformed(t *testing.T) {
	tests := []struct {
		name    string
		guesses []model.RawGuess
		desc    model.DescriptionTable
	}{
		{
			name:    "missing code",
			guesses: []model.RawGuess{{Code: "1111", Description: "ok"}, {Description: "no code"}},
		},
		{
			name:    "missing description without table entry",
			guesses: []model.RawGuess{{Code: "1111"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Reconcile(tt.guesses, nil, tt.desc)

			assert.ErrorIs(t, err, ErrMalformedGuess)
			assert.Nil(t, results)
		})
	}
}

func TestReconcileMissingDescriptionResolvedByTable(t *testing.T) {
	results, err := Reconcile([]model.RawGuess{{Code: "1111"}}, nil, model.DescriptionTable{"1111": "table"})

	require.NoError(t, err)
	assert.Equal(t, []model.Result{{Code: "1111", Description: "table"}}, results)
}
