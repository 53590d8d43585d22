// Package reconcile collapses the guesses of repeated completions into one
// canonical list of NAICS codes.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/agenthands/naics/internal/core/model"
)

// ErrMalformedGuess is returned when a guess cannot produce a result entry.
var ErrMalformedGuess = errors.New("malformed guess")

// Reconcile remaps every guess to its current code, drops later duplicates and
// resolves the description from descriptions, falling back to the guess's own.
//
// Remapping is a single lookup; chains in remap are not followed.
// On error no partial output is returned.
func Reconcile(guesses []model.RawGuess, remap model.RemapTable, descriptions model.DescriptionTable) ([]model.Result, error) {
	seen := make(map[string]struct{}, len(guesses))
	results := make([]model.Result, 0, len(guesses))

	for i, g := range guesses {
		if g.Code == "" {
			return nil, fmt.Errorf("%w: guess %d has no code", ErrMalformedGuess, i)
		}

		code := g.Code
		if mapped, ok := remap[code]; ok {
			code = mapped
		}

		if _, dup := seen[code]; dup {
			continue
		}

		description, ok := descriptions[code]
		if !ok {
			if g.Description == "" {
				return nil, fmt.Errorf("%w: guess %d (code %s) has no description", ErrMalformedGuess, i, code)
			}
			description = g.Description
		}

		results = append(results, model.Result{Code: code, Description: description})
		seen[code] = struct{}{}
	}

	return results, nil
}
