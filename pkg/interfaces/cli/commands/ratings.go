package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/buildstock/panelload/pkg/application/services/nec"
	"github.com/buildstock/panelload/pkg/domain/entities"
	"github.com/buildstock/panelload/pkg/domain/services"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/csv"
	"github.com/buildstock/panelload/pkg/infrastructure/repositories/memory"
)

// loadRatings reads the nameplate table at path, or the bundled table when
// path is empty, and checks that it covers every row the calculator uses
func loadRatings(path string, log logrus.FieldLogger) (*memory.RatingRepository, error) {
	source := path
	var (
		ratings []*entities.NameplateRating
		err     error
	)
	if path == "" {
		source = "bundled"
		ratings, err = csv.DefaultRatings()
	} else {
		ratings, err = csv.NewLoader().LoadRatings(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading rating table: %w", err)
	}

	repo := memory.NewRatingRepository(len(ratings))
	if err := repo.LoadRatings(ratings); err != nil {
		return nil, fmt.Errorf("failed to load ratings into repository: %w", err)
	}

	validation := services.NewRatingValidator().ValidateCoverage(repo, nec.RequiredRatings())
	if err := validation.Err(); err != nil {
		return nil, fmt.Errorf("rating table %s is incomplete: %w", source, err)
	}
	for _, key := range validation.Unused {
		log.WithField("rating", key.String()).Debug("rating table row is never used")
	}
	log.WithFields(logrus.Fields{"source": source, "ratings": len(ratings)}).Debug("rating table loaded")
	return repo, nil
}
