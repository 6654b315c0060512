package memory

import (
	"fmt"

	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/repositories"
)

// RatingRepository provides in-memory nameplate rating storage
type RatingRepository struct {
	ratings    []entities.NameplateRating
	ratingsMap map[entities.RatingKey]int
}

// NewRatingRepository creates a new in-memory rating repository
func NewRatingRepository(expectedRatings int) *RatingRepository {
	return &RatingRepository{
		ratings:    make([]entities.NameplateRating, 0, expectedRatings),
		ratingsMap: make(map[entities.RatingKey]int, expectedRatings),
	}
}

// Verify interface compliance
var _ repositories.RatingRepository = (*RatingRepository)(nil)

// LoadRatings loads ratings into the repository. Duplicate keys are rejected
// so a table cannot silently shadow one of its own rows.
func (r *RatingRepository) LoadRatings(ratings []*entities.NameplateRating) error {
	for _, rating := range ratings {
		if err := r.AddRating(*rating); err != nil {
			return err
		}
	}
	return nil
}

// AddRating adds a rating to the repository
func (r *RatingRepository) AddRating(rating entities.NameplateRating) error {
	key := rating.Key()
	if _, exists := r.ratingsMap[key]; exists {
		return fmt.Errorf("duplicate nameplate rating: %s", key)
	}
	r.ratingsMap[key] = len(r.ratings)
	r.ratings = append(r.ratings, rating)
	return nil
}

// GetRating returns the rating of an appliance
func (r *RatingRepository) GetRating(category entities.LoadCategory, appliance string) (*entities.NameplateRating, error) {
	key := entities.RatingKey{Category: category, Appliance: appliance}
	index, exists := r.ratingsMap[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrRatingNotFound, key)
	}
	return &r.ratings[index], nil
}

// GetAllRatings returns all ratings in load order
func (r *RatingRepository) GetAllRatings() ([]*entities.NameplateRating, error) {
	ratings := make([]*entities.NameplateRating, 0, len(r.ratings))
	for i := range r.ratings {
		ratings = append(ratings, &r.ratings[i])
	}
	return ratings, nil
}
