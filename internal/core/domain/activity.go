package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrGuestLimitReached = errors.New("guest activity limit reached")
	ErrInvalidActivity   = errors.New("invalid activity data")
)

// ActivityDetails holds the category-specific attributes as submitted by the
// client. Fields that do not belong to the activity's category are ignored.
type ActivityDetails struct {
	FuelType    string   `json:"fuel_type,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`

	CookingFuel  string   `json:"cooking_fuel,omitempty"`
	CookingHours *float64 `json:"cooking_hours,omitempty"`

	Appliance string   `json:"appliance,omitempty"`
	Usage     *float64 `json:"usage,omitempty"`

	WasteGeneratedKg *float64 `json:"waste_generated_kg,omitempty"`
	WasteRecycledKg  *float64 `json:"waste_recycled_kg,omitempty"`
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Input builds the typed input for the given category, defaulting missing
// quantities to zero, and validates it.
func (d ActivityDetails) Input(c Category) (ActivityInput, error) {
	var in ActivityInput
	switch c {
	case CategoryTravel:
		in = TravelInput{
			FuelType:    strings.ToLower(strings.TrimSpace(d.FuelType)),
			VehicleType: strings.ToLower(strings.TrimSpace(d.VehicleType)),
			DistanceKm:  orZero(d.DistanceKm),
		}
	case CategoryFood:
		in = FoodInput{
			CookingFuel:  strings.ToLower(strings.TrimSpace(d.CookingFuel)),
			CookingHours: orZero(d.CookingHours),
		}
	case CategoryHousehold:
		in = HouseholdInput{
			Appliance: strings.ToLower(strings.TrimSpace(d.Appliance)),
			Usage:     orZero(d.Usage),
		}
	case CategoryWaste:
		in = WasteInput{
			GeneratedKg: orZero(d.WasteGeneratedKg),
			RecycledKg:  orZero(d.WasteRecycledKg),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// Value stores details as JSON text so both jsonb and text columns accept it.
func (d ActivityDetails) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *ActivityDetails) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ActivityDetails{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("activity details: unsupported scan type %T", src)
	}
}

// Activity is an immutable logged activity with its estimated emission.
type Activity struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Date        time.Time       `json:"date" db:"date"`
	Category    Category        `json:"category" db:"category"`
	Details     ActivityDetails `json:"details" db:"details"`
	Description string          `json:"description" db:"description"`
	CO2e        float64         `json:"co2e" db:"co2e"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// NewActivity validates the details, runs the estimator and stamps identity.
// A zero date falls back to now.
func NewActivity(userID string, category Category, details ActivityDetails, date, now time.Time) (*Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidActivity)
	}

	in, err := details.Input(category)
	if err != nil {
		return nil, err
	}
	est := EstimateEmission(in)

	if date.IsZero() {
		date = now
	}

	return &Activity{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date.UTC(),
		Category:    category,
		Details:     details,
		Description: est.Description,
		CO2e:        est.CO2e,
		CreatedAt:   now.UTC(),
	}, nil
}

// ParseActivityDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
// Empty or unparsable values resolve to now.
func ParseActivityDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(DateLayout, raw, now.Location()); err == nil {
		return t
	}
	return now
}

const DateLayout = "2006-01-02"
