package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/repositories"
)

// RatingValidator checks a nameplate table against the rows an engine needs
type RatingValidator struct{}

// NewRatingValidator creates a new rating validator
func NewRatingValidator() *RatingValidator {
	return &RatingValidator{}
}

// ValidationResult contains the results of rating table validation
type ValidationResult struct {
	Missing []entities.RatingKey
	Unused  []entities.RatingKey
	Errors  []string
}

// Valid reports whether every required row is present
func (r *ValidationResult) Valid() bool {
	return len(r.Missing) == 0 && len(r.Errors) == 0
}

// Err returns every missing row as a single error, nil when the table is complete
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(r.Missing)+len(r.Errors))
	for _, key := range r.Missing {
		msgs = append(msgs, key.String())
	}
	msgs = append(msgs, r.Errors...)
	return fmt.Errorf("%w: %s", entities.ErrRatingNotFound, strings.Join(msgs, "; "))
}

// ValidateCoverage looks up every required key and reports all that are missing
func (v *RatingValidator) ValidateCoverage(ratings repositories.RatingRepository, required []entities.RatingKey) *ValidationResult {
	result := &ValidationResult{
		Missing: make([]entities.RatingKey, 0),
		Unused:  make([]entities.RatingKey, 0),
		Errors:  make([]string, 0),
	}

	requiredSet := make(map[entities.RatingKey]bool, len(required))
	for _, key := range required {
		requiredSet[key] = true
		if _, err := ratings.GetRating(key.Category, key.Appliance); err != nil {
			if errors.Is(err, entities.ErrRatingNotFound) {
				result.Missing = append(result.Missing, key)
				continue
			}
			result.Errors = append(result.Errors, err.Error())
		}
	}

	all, err := ratings.GetAllRatings()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	for _, rating := range all {
		if !requiredSet[rating.Key()] {
			result.Unused = append(result.Unused, rating.Key())
		}
	}

	return result
}
