package repositories

import "github.com/buildstock/panelload/pkg/domain/entities"

// RatingRepository provides access to the nameplate rating table
type RatingRepository interface {
	// GetRating returns the rating of an appliance; a missing row wraps entities.ErrRatingNotFound
	GetRating(category entities.LoadCategory, appliance string) (*entities.NameplateRating, error)
	GetAllRatings() ([]*entities.NameplateRating, error)
	LoadRatings(ratings []*entities.NameplateRating) error
}
