package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

func f(v float64) *float64 { return &v }

func estimate(t *testing.T, c domain.Category, d domain.ActivityDetails) domain.Estimate {
	t.Helper()
	in, err := d.Input(c)
	require.NoError(t, err)
	return domain.EstimateEmission(in)
}

func TestEstimate_Travel(t *testing.T) {
	t.Run("Petrol car for 50 km", func(t *testing.T) {
		est := estimate(t, domain.CategoryTravel, domain.ActivityDetails{
			FuelType: "petrol", VehicleType: "car", DistanceKm: f(50),
		})

		assert.InDelta(t, 9.6, est.CO2e, 1e-9)
		assert.Equal(t, "Travel by car for 50 km", est.Description)
	})

	t.Run("Train and flight ignore the vehicle type", func(t *testing.T) {
		for fuel, factor := range map[string]float64{"train": 0.041, "flight": 0.255} {
			for _, vehicle := range []string{"", "car", "truck", "spaceship"} {
				est := estimate(t, domain.CategoryTravel, domain.ActivityDetails{
					FuelType: fuel, VehicleType: vehicle, DistanceKm: f(120),
				})
				assert.InDelta(t, 120*factor, est.CO2e, 1e-9, "fuel=%s vehicle=%s", fuel, vehicle)
				assert.Equal(t, "Travel by "+fuel+" for 120 km", est.Description)
			}
		}
	})

	t.Run("Unsupported vehicle for fuel contributes zero", func(t *testing.T) {
		est := estimate(t, domain.CategoryTravel, domain.ActivityDetails{
			FuelType: "diesel", VehicleType: "bike", DistanceKm: f(10),
		})
		assert.Equal(t, 0.0, est.CO2e)
		assert.Equal(t, "Travel by bike for 10 km", est.Description)
	})

	t.Run("Missing distance defaults to zero", func(t *testing.T) {
		est := estimate(t, domain.CategoryTravel, domain.ActivityDetails{FuelType: "ev", VehicleType: "car"})
		assert.Equal(t, 0.0, est.CO2e)
	})

	t.Run("Input is normalized", func(t *testing.T) {
		est := estimate(t, domain.CategoryTravel, domain.ActivityDetails{
			FuelType: " EV ", VehicleType: "Bus", DistanceKm: f(100),
		})
		assert.InDelta(t, 1.5, est.CO2e, 1e-9)
	})
}

func TestEstimate_Food(t *testing.T) {
	t.Run("Flat meal emission without cooking", func(t *testing.T) {
		est := estimate(t, domain.CategoryFood, domain.ActivityDetails{})
		assert.Equal(t, domain.AverageMealEmission, est.CO2e)
		assert.Equal(t, "Logged a food activity", est.Description)
	})

	t.Run("Cooking with LPG adds per-hour factor", func(t *testing.T) {
		est := estimate(t, domain.CategoryFood, domain.ActivityDetails{CookingFuel: "lpg", CookingHours: f(1.5)})
		assert.InDelta(t, 2.5+1.5*0.22, est.CO2e, 1e-9)
		assert.Equal(t, "Cooked for 1.5h using lpg", est.Description)
	})

	t.Run("Unknown cooking fuel keeps only the meal", func(t *testing.T) {
		est := estimate(t, domain.CategoryFood, domain.ActivityDetails{CookingFuel: "wood", CookingHours: f(2)})
		assert.Equal(t, 2.5, est.CO2e)
	})
}

func TestEstimate_Household(t *testing.T) {
	t.Run("General electricity is per kWh", func(t *testing.T) {
		est := estimate(t, domain.CategoryHousehold, domain.ActivityDetails{Appliance: "electricity", Usage: f(10)})
		assert.InDelta(t, 8.2, est.CO2e, 1e-9)
		assert.Equal(t, "Used electricity for 10 kWh", est.Description)
	})

	tests := []struct {
		appliance string
		factor    float64
	}{
		{"ac", 1.5},
		{"washing-machine", 0.6},
		{"cooler", 0.2},
		{"heater", 2.0},
		{"jacuzzi", 0},
	}
	for _, tt := range tests {
		t.Run("Appliance "+tt.appliance, func(t *testing.T) {
			est := estimate(t, domain.CategoryHousehold, domain.ActivityDetails{Appliance: tt.appliance, Usage: f(3)})
			assert.InDelta(t, 3*tt.factor, est.CO2e, 1e-9)
			assert.Equal(t, "Used "+tt.appliance+" for 3 hours", est.Description)
		})
	}
}

func TestEstimate_Waste(t *testing.T) {
	t.Run("Recycling credit", func(t *testing.T) {
		est := estimate(t, domain.CategoryWaste, domain.ActivityDetails{
			WasteGeneratedKg: f(2), WasteRecycledKg: f(1),
		})
		assert.InDelta(t, 0.7, est.CO2e, 1e-9)
		assert.Equal(t, "Generated 2kg of waste, recycled 1kg", est.Description)
	})

	t.Run("Recycling more than generated goes negative", func(t *testing.T) {
		est := estimate(t, domain.CategoryWaste, domain.ActivityDetails{
			WasteGeneratedKg: f(1), WasteRecycledKg: f(3),
		})
		assert.InDelta(t, 0.5-0.9, est.CO2e, 1e-9)
	})
}

func TestActivityDetails_Input_Validation(t *testing.T) {
	t.Run("Negative quantities are rejected", func(t *testing.T) {
		_, err := domain.ActivityDetails{DistanceKm: f(-1)}.Input(domain.CategoryTravel)
		assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

		_, err = domain.ActivityDetails{WasteRecycledKg: f(-0.1)}.Input(domain.CategoryWaste)
		assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
	})

	t.Run("Unknown category is rejected", func(t *testing.T) {
		_, err := domain.ActivityDetails{}.Input(domain.Category("shopping"))
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	})
}

func TestParseCategory(t *testing.T) {
	c, err := domain.ParseCategory(" Travel ")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryTravel, c)

	_, err = domain.ParseCategory("electricity")
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}
