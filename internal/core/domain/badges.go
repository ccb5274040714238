package domain

import (
	"sort"
	"time"
)

const (
	greenCommuterTrips   = 5
	energySaverLimitKg   = 5.0
	streakBadgeDays      = 7
	lowCarbonMealLimitKg = 3.0
	lowCarbonDietDays    = 3
	footprintHeroRatio   = 0.8
)

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type Gamification struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	Badges        []Badge `json:"badges"`
}

// EvaluateBadges derives streaks and badge state from the full activity
// history of a user, relative to now.
func EvaluateBadges(activities []*Activity, now time.Time) Gamification {
	loc := now.Location()
	current, longest := CalculateStreaks(activities, now)
	rollup := Aggregate(activities, now)

	greenTrips := 0
	householdLastWeek := 0
	foodByDay := make(map[time.Time]float64)
	for _, a := range activities {
		if a == nil {
			continue
		}
		switch a.Category {
		case CategoryTravel:
			if isGreenTrip(a.Details) {
				greenTrips++
			}
		case CategoryHousehold:
			if LastWeek(now).Contains(a.Date.In(loc)) {
				householdLastWeek++
			}
		case CategoryFood:
			foodByDay[StartOfDay(a.Date.In(loc))] += a.CO2e
		}
	}

	energyLastWeek := rollup.CategoryTotals.LastWeek.Energy

	return Gamification{
		CurrentStreak: current,
		LongestStreak: longest,
		Badges: []Badge{
			{ID: "eco-starter", Name: "Eco Starter", Description: "Logged your first activity.",
				Unlocked: len(activities) > 0},
			{ID: "green-commuter", Name: "Green Commuter", Description: "Used a green transport option 5 times.",
				Unlocked: greenTrips >= greenCommuterTrips},
			{ID: "energy-saver", Name: "Energy Saver", Description: "Kept energy usage below 5kg CO2e for a week.",
				Unlocked: householdLastWeek > 0 && energyLastWeek < energySaverLimitKg},
			{ID: "activity-streak", Name: "Activity Streak", Description: "Logged an activity for 7 days in a row.",
				Unlocked: longest >= streakBadgeDays},
			{ID: "low-carbon-diet", Name: "Low Carbon Diet", Description: "Ate low-carbon meals for 3 consecutive days.",
				Unlocked: lowCarbonRun(foodByDay) >= lowCarbonDietDays},
			{ID: "footprint-hero", Name: "Footprint Hero", Description: "Reduced your weekly footprint by 20%.",
				Unlocked: rollup.LastWeekly > 0 && rollup.Weekly <= rollup.LastWeekly*footprintHeroRatio},
		},
	}
}

func isGreenTrip(d ActivityDetails) bool {
	return d.FuelType == FuelEV || d.FuelType == FuelTrain || d.VehicleType == "bus"
}

func lowCarbonRun(foodByDay map[time.Time]float64) int {
	days := make([]time.Time, 0, len(foodByDay))
	for day, total := range foodByDay {
		if total <= lowCarbonMealLimitKg {
			days = append(days, day)
		}
	}
	return longestRun(sortDescending(days))
}

// CalculateStreaks returns the current and longest run of consecutive
// calendar days with at least one logged activity. The current streak only
// counts if the latest day is today or yesterday.
func CalculateStreaks(activities []*Activity, now time.Time) (int, int) {
	if len(activities) == 0 {
		return 0, 0
	}

	loc := now.Location()
	uniqueDays := make(map[time.Time]bool)
	var days []time.Time
	for _, a := range activities {
		if a == nil {
			continue
		}
		day := StartOfDay(a.Date.In(loc))
		if !uniqueDays[day] {
			uniqueDays[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0, 0
	}
	days = sortDescending(days)

	current := 0
	today := StartOfDay(now)
	if days[0].Equal(today) || days[0].Equal(today.AddDate(0, 0, -1)) {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if !consecutive(days[i+1], days[i]) {
				break
			}
			current++
		}
	}

	return current, longestRun(days)
}

func longestRun(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 0; i < len(days)-1; i++ {
		if consecutive(days[i+1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func consecutive(earlier, later time.Time) bool {
	return earlier.AddDate(0, 0, 1).Equal(later)
}

func sortDescending(days []time.Time) []time.Time {
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	return days
}
