package memory

import (
	"errors"
	"strings"
	"testing"

	"github.com/buildstock/panelload/pkg/domain/entities"
)

func mustRating(t *testing.T, category entities.LoadCategory, appliance string, voltage float64, regression *entities.AmperageRegression, va float64) *entities.NameplateRating {
	t.Helper()
	r, err := entities.NewNameplateRating(category, appliance, voltage, regression, va)
	if err != nil {
		t.Fatalf("Failed to create rating: %v", err)
	}
	return r
}

func TestRatingRepository_GetRating(t *testing.T) {
	repo := NewRatingRepository(4)

	ratings := []*entities.NameplateRating{
		mustRating(t, entities.CategoryEVSE, "level 2", 240, nil, 7680),
		mustRating(t, entities.CategoryCentralAC, "central ac", 240, &entities.AmperageRegression{Slope: 0.5, Intercept: 2, Minimum: 10}, 0),
	}
	if err := repo.LoadRatings(ratings); err != nil {
		t.Fatalf("Failed to load ratings: %v", err)
	}

	evse, err := repo.GetRating(entities.CategoryEVSE, "level 2")
	if err != nil {
		t.Fatalf("Failed to get rating: %v", err)
	}
	if evse.VA(0) != 7680 {
		t.Errorf("Expected 7680 VA, got %v", evse.VA(0))
	}

	ac, err := repo.GetRating(entities.CategoryCentralAC, "central ac")
	if err != nil {
		t.Fatalf("Failed to get rating: %v", err)
	}
	// 0.5*36 + 2 = 20 A at 240 V
	if ac.VA(36) != 4800 {
		t.Errorf("Expected 4800 VA, got %v", ac.VA(36))
	}
}

func TestRatingRepository_GetRating_NotFound(t *testing.T) {
	repo := NewRatingRepository(1)

	_, err := repo.GetRating(entities.CategoryDryer, "heat pump, 120V")
	if err == nil {
		t.Fatal("Expected error for missing rating")
	}
	if !errors.Is(err, entities.ErrRatingNotFound) {
		t.Errorf("Expected ErrRatingNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "dryer/heat pump, 120V") {
		t.Errorf("Expected error to name the missing key, got %v", err)
	}
}

func TestRatingRepository_Duplicate(t *testing.T) {
	repo := NewRatingRepository(2)

	r := mustRating(t, entities.CategoryDishwasher, "dishwasher", 120, nil, 1200)
	if err := repo.AddRating(*r); err != nil {
		t.Fatalf("Failed to add rating first time: %v", err)
	}
	if err := repo.AddRating(*r); err == nil {
		t.Error("Expected error when adding duplicate rating")
	}
}

func TestRatingRepository_GetAllRatings_PreservesOrder(t *testing.T) {
	repo := NewRatingRepository(3)
	names := []string{"exhaust", "supply", "balanced"}
	for _, n := range names {
		if err := repo.AddRating(*mustRating(t, entities.CategoryVentilation, n, 120, nil, 60)); err != nil {
			t.Fatalf("Failed to add rating: %v", err)
		}
	}

	all, err := repo.GetAllRatings()
	if err != nil {
		t.Fatalf("Failed to get all ratings: %v", err)
	}
	if len(all) != len(names) {
		t.Fatalf("Expected %d ratings, got %d", len(names), len(all))
	}
	for i, n := range names {
		if all[i].Appliance != n {
			t.Errorf("Expected rating %d to be %s, got %s", i, n, all[i].Appliance)
		}
	}
}
