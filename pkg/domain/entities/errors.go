package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrRatingNotFound is returned when the nameplate table has no row for a
	// (load category, appliance) pair. The table and the building vocabulary
	// have drifted apart, so callers treat it as fatal.
	ErrRatingNotFound = errors.New("nameplate rating not found")

	// ErrUnsupportedMethod is returned for an NEC method other than 220.83 or 220.87.
	ErrUnsupportedMethod = errors.New("unsupported NEC method")

	// ErrUnsupportedCodeYear is returned for an unknown code edition.
	ErrUnsupportedCodeYear = errors.New("unsupported NEC code year")

	// ErrUnsupportedEquipment is returned for equipment the engine declines to model
	// (ground-source heat pumps, evaporative coolers).
	ErrUnsupportedEquipment = errors.New("unsupported equipment")

	// ErrCircuitFloor is returned when fewer branch circuits are requested than NEC requires.
	ErrCircuitFloor = errors.New("branch circuit count below NEC minimum")

	// ErrMissingPeakColumn is returned when the maximum-demand method is
	// requested on a dataset without a recognized peak electricity column.
	ErrMissingPeakColumn = errors.New("no recognized peak electricity column")

	// ErrMissingColumn is returned when a required input column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrNoLoadChange is returned when an applicable upgrade that is expected
	// to change electrical loads produced identical pre and post load vectors.
	ErrNoLoadChange = errors.New("no difference detected between existing and post-upgrade loads")
)

// VocabularyError reports a categorical value the engine does not recognize.
type VocabularyError struct {
	Field string
	Value string
}

func (e *VocabularyError) Error() string {
	return fmt.Sprintf("unrecognized value %q for %s", e.Value, e.Field)
}

func vocabularyError(field, value string) error {
	return &VocabularyError{Field: field, Value: value}
}
