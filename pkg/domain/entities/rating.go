package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// LoadCategory groups nameplate ratings by end use
type LoadCategory string

const (
	CategoryKitchen         LoadCategory = "kitchen"
	CategoryLaundry         LoadCategory = "laundry"
	CategoryWaterHeater     LoadCategory = "water_heater"
	CategoryDishwasher      LoadCategory = "dishwasher"
	CategoryDryer           LoadCategory = "dryer"
	CategoryRangeOven       LoadCategory = "range_oven"
	CategoryHotTubSpa       LoadCategory = "hot_tub_spa"
	CategoryPoolHeater      LoadCategory = "pool_heater"
	CategoryPoolPump        LoadCategory = "pool_pump"
	CategoryWellPump        LoadCategory = "well_pump"
	CategoryGarbageDisposal LoadCategory = "garbage_disposal"
	CategoryGarageDoor      LoadCategory = "garage_door"
	CategoryVentilation     LoadCategory = "ventilation"
	CategoryEVSE            LoadCategory = "evse"
	CategoryHeatPump        LoadCategory = "heat_pump"
	CategoryCentralAC       LoadCategory = "central_ac"
	CategoryRoomAC          LoadCategory = "room_ac"
	CategoryAirHandler      LoadCategory = "air_handler"
)

// RatingKey identifies one row of the nameplate table
type RatingKey struct {
	Category  LoadCategory
	Appliance string
}

func (k RatingKey) String() string {
	return fmt.Sprintf("%s/%s", k.Category, k.Appliance)
}

// AmperageRegression estimates running amperage from nominal capacity (kBtu/h)
type AmperageRegression struct {
	Slope     float64
	Intercept float64
	Minimum   float64
}

// ParseAmperageRegression parses the "slope,intercept,minimum" form used in
// the nameplate table
func ParseAmperageRegression(s string) (*AmperageRegression, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("amperage regression must be \"slope,intercept,minimum\", got %q", s)
	}
	values := make([]float64, 3)
	for i, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid amperage regression term %q: %w", p, err)
		}
		values[i] = d.InexactFloat64()
	}
	return &AmperageRegression{Slope: values[0], Intercept: values[1], Minimum: values[2]}, nil
}

// Amperage returns slope × capacity + intercept, never below the minimum.
// The terms are combined in decimal so table values stay exact.
func (r AmperageRegression) Amperage(capacityKBtuh float64) float64 {
	if math.IsNaN(capacityKBtuh) || math.IsInf(capacityKBtuh, 0) {
		return math.NaN()
	}
	amps := decimal.NewFromFloat(r.Slope).
		Mul(decimal.NewFromFloat(capacityKBtuh)).
		Add(decimal.NewFromFloat(r.Intercept))
	return math.Max(amps.InexactFloat64(), r.Minimum)
}

// NameplateRating is one row of the nameplate table: either a fixed volt-amp
// rating or an amperage regression applied at Voltage
type NameplateRating struct {
	Category   LoadCategory
	Appliance  string
	Voltage    float64
	Regression *AmperageRegression
	VoltAmps   float64
}

// NewNameplateRating creates a validated NameplateRating
func NewNameplateRating(category LoadCategory, appliance string, voltage float64, regression *AmperageRegression, voltAmps float64) (*NameplateRating, error) {
	if category == "" {
		return nil, fmt.Errorf("load category cannot be empty")
	}
	if appliance == "" {
		return nil, fmt.Errorf("appliance cannot be empty")
	}
	if voltage != 120 && voltage != 240 {
		return nil, fmt.Errorf("voltage must be 120 or 240, got %v", voltage)
	}
	if regression == nil && (math.IsNaN(voltAmps) || voltAmps < 0) {
		return nil, fmt.Errorf("%s/%s needs either an amperage regression or a non-negative volt-amps rating", category, appliance)
	}
	if regression != nil && regression.Minimum < 0 {
		return nil, fmt.Errorf("%s/%s amperage minimum cannot be negative, got %v", category, appliance, regression.Minimum)
	}

	return &NameplateRating{
		Category:   category,
		Appliance:  appliance,
		Voltage:    voltage,
		Regression: regression,
		VoltAmps:   voltAmps,
	}, nil
}

// Key returns the table key of the rating
func (r *NameplateRating) Key() RatingKey {
	return RatingKey{Category: r.Category, Appliance: r.Appliance}
}

// IsRegression reports whether the rating scales with equipment capacity
func (r *NameplateRating) IsRegression() bool {
	return r.Regression != nil
}

// VA returns the rating's apparent power. Capacity is ignored for fixed ratings.
func (r *NameplateRating) VA(capacityKBtuh float64) float64 {
	if r.Regression == nil {
		return r.VoltAmps
	}
	amps := r.Regression.Amperage(capacityKBtuh)
	if math.IsNaN(amps) {
		return amps
	}
	return decimal.NewFromFloat(amps).Mul(decimal.NewFromFloat(r.Voltage)).InexactFloat64()
}
