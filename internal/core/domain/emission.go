package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCategory  = errors.New("unknown activity category")
	ErrNegativeQuantity = errors.New("quantities cannot be negative")
)

type Category string

const (
	CategoryTravel    Category = "travel"
	CategoryFood      Category = "food"
	CategoryHousehold Category = "household"
	CategoryWaste     Category = "waste"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryTravel, CategoryFood, CategoryHousehold, CategoryWaste:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

const (
	FuelPetrol = "petrol"
	FuelDiesel = "diesel"
	FuelEV     = "ev"
	FuelTrain  = "train"
	FuelFlight = "flight"

	CookingLPG         = "lpg"
	CookingElectricity = "electricity"

	ApplianceElectricity = "electricity"

	// AverageMealEmission is the flat kg CO2e charged for every food activity.
	AverageMealEmission = 2.5
)

// Emission factors in kg CO2e per unit (km, hour, kWh or kg).
var (
	roadFactors = map[string]map[string]float64{
		FuelPetrol: {"car": 0.192, "bike": 0.113, "scooter": 0.08, "auto": 0.1, "truck": 0.3},
		FuelDiesel: {"car": 0.171, "bus": 0.027, "truck": 0.25},
		FuelEV:     {"car": 0.05, "bike": 0.01, "bus": 0.015, "scooter": 0.008, "auto": 0.012, "truck": 0.08},
	}

	modeFactors = map[string]float64{
		FuelTrain:  0.041,
		FuelFlight: 0.255,
	}

	cookingFactors = map[string]float64{
		CookingLPG:         0.22,
		CookingElectricity: 0.82,
	}

	householdFactors = map[string]float64{
		ApplianceElectricity: 0.82,
		"ac":                 1.5,
		"washing-machine":    0.6,
		"cooler":             0.2,
		"heater":             2.0,
	}
)

const (
	WasteGeneratedFactor = 0.5
	WasteRecycledFactor  = -0.3
)

// TravelFactor returns the per-km factor for a fuel/vehicle pair. Train and
// flight ignore the vehicle. Unknown combinations yield 0.
func TravelFactor(fuel, vehicle string) float64 {
	if f, ok := modeFactors[fuel]; ok {
		return f
	}
	return roadFactors[fuel][vehicle]
}

func CookingFactor(fuel string) float64 {
	return cookingFactors[fuel]
}

func HouseholdFactor(appliance string) float64 {
	return householdFactors[appliance]
}

// IsFixedMode reports whether the fuel type is a mode of transport whose
// factor does not depend on the vehicle.
func IsFixedMode(fuel string) bool {
	_, ok := modeFactors[fuel]
	return ok
}

type Estimate struct {
	Description string  `json:"description"`
	CO2e        float64 `json:"co2e"`
}

// ActivityInput is the structured form input for one of the four categories.
// The set of implementations is closed to this package.
type ActivityInput interface {
	Category() Category
	Validate() error
	estimate() Estimate
}

type TravelInput struct {
	FuelType    string
	VehicleType string
	DistanceKm  float64
}

type FoodInput struct {
	CookingFuel  string
	CookingHours float64
}

type HouseholdInput struct {
	Appliance string
	// Usage is kWh for general electricity and hours for every other appliance.
	Usage float64
}

type WasteInput struct {
	GeneratedKg float64
	RecycledKg  float64
}

func (TravelInput) Category() Category    { return CategoryTravel }
func (FoodInput) Category() Category      { return CategoryFood }
func (HouseholdInput) Category() Category { return CategoryHousehold }
func (WasteInput) Category() Category     { return CategoryWaste }

func (in TravelInput) Validate() error    { return nonNegative(in.DistanceKm) }
func (in FoodInput) Validate() error      { return nonNegative(in.CookingHours) }
func (in HouseholdInput) Validate() error { return nonNegative(in.Usage) }
func (in WasteInput) Validate() error     { return nonNegative(in.GeneratedKg, in.RecycledKg) }

func nonNegative(values ...float64) error {
	for _, v := range values {
		if v < 0 {
			return ErrNegativeQuantity
		}
	}
	return nil
}

func (in TravelInput) estimate() Estimate {
	label := in.VehicleType
	if IsFixedMode(in.FuelType) {
		label = in.FuelType
	}
	if label == "" {
		label = "vehicle"
	}
	return Estimate{
		Description: fmt.Sprintf("Travel by %s for %s km", label, formatQuantity(in.DistanceKm)),
		CO2e:        in.DistanceKm * TravelFactor(in.FuelType, in.VehicleType),
	}
}

func (in FoodInput) estimate() Estimate {
	est := Estimate{Description: "Logged a food activity", CO2e: AverageMealEmission}
	if in.CookingFuel != "" && in.CookingHours > 0 {
		est.Description = fmt.Sprintf("Cooked for %sh using %s", formatQuantity(in.CookingHours), in.CookingFuel)
		est.CO2e += in.CookingHours * CookingFactor(in.CookingFuel)
	}
	return est
}

func (in HouseholdInput) estimate() Estimate {
	if in.Appliance == ApplianceElectricity {
		return Estimate{
			Description: fmt.Sprintf("Used electricity for %s kWh", formatQuantity(in.Usage)),
			CO2e:        in.Usage * HouseholdFactor(ApplianceElectricity),
		}
	}
	label := in.Appliance
	if label == "" {
		label = "appliance"
	}
	return Estimate{
		Description: fmt.Sprintf("Used %s for %s hours", label, formatQuantity(in.Usage)),
		CO2e:        in.Usage * HouseholdFactor(in.Appliance),
	}
}

func (in WasteInput) estimate() Estimate {
	return Estimate{
		Description: fmt.Sprintf("Generated %skg of waste, recycled %skg", formatQuantity(in.GeneratedKg), formatQuantity(in.RecycledKg)),
		CO2e:        in.GeneratedKg*WasteGeneratedFactor + in.RecycledKg*WasteRecycledFactor,
	}
}

// EstimateEmission maps a validated input to its description and CO2e in kg.
// Unknown sub-types contribute zero instead of failing.
func EstimateEmission(in ActivityInput) Estimate {
	return in.estimate()
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
