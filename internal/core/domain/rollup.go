package domain

import (
	"math"
	"time"
)

// ChartCategory is the coarse breakdown shown on the dashboard chart.
type ChartCategory string

const (
	ChartTransport ChartCategory = "transport"
	ChartEnergy    ChartCategory = "energy"
	ChartFood      ChartCategory = "food"
)

// ChartCategoryOf maps an activity category to its chart series. Waste has
// no chart series.
func ChartCategoryOf(c Category) (ChartCategory, bool) {
	switch c {
	case CategoryTravel:
		return ChartTransport, true
	case CategoryHousehold:
		return ChartEnergy, true
	case CategoryFood:
		return ChartFood, true
	default:
		return "", false
	}
}

type CategoryTotals struct {
	Transport float64 `json:"transport"`
	Energy    float64 `json:"energy"`
	Food      float64 `json:"food"`
}

func (t *CategoryTotals) add(c ChartCategory, v float64) {
	switch c {
	case ChartTransport:
		t.Transport += v
	case ChartEnergy:
		t.Energy += v
	case ChartFood:
		t.Food += v
	}
}

type Rollup struct {
	Daily       float64 `json:"daily"`
	PreviousDay float64 `json:"previous_day"`
	Weekly      float64 `json:"weekly"`
	LastWeekly  float64 `json:"last_weekly"`

	CategoryTotals struct {
		ThisWeek CategoryTotals `json:"this_week"`
		LastWeek CategoryTotals `json:"last_week"`
	} `json:"category_totals"`
}

// Aggregate folds activities into the yesterday / this week / last week
// totals relative to now. Bucket totals are floored at zero so recycling
// credits cannot report a negative footprint.
func Aggregate(activities []*Activity, now time.Time) Rollup {
	var r Rollup
	dayBefore := now.AddDate(0, 0, -2)

	for _, a := range activities {
		if a == nil {
			continue
		}
		ts := a.Date.In(now.Location())
		b := Classify(ts, now)

		if b.Has(BucketYesterday) {
			r.Daily += a.CO2e
		}
		if SameDay(ts, dayBefore) {
			r.PreviousDay += a.CO2e
		}

		chart, charted := ChartCategoryOf(a.Category)
		if b.Has(BucketThisWeek) {
			r.Weekly += a.CO2e
			if charted {
				r.CategoryTotals.ThisWeek.add(chart, a.CO2e)
			}
		}
		if b.Has(BucketLastWeek) {
			r.LastWeekly += a.CO2e
			if charted {
				r.CategoryTotals.LastWeek.add(chart, a.CO2e)
			}
		}
	}

	r.Daily = floorZero(r.Daily)
	r.PreviousDay = floorZero(r.PreviousDay)
	r.Weekly = floorZero(r.Weekly)
	r.LastWeekly = floorZero(r.LastWeekly)
	return r
}

// TotalInWindow sums CO2e of activities falling inside w, floored at zero.
func TotalInWindow(activities []*Activity, w Window) float64 {
	total := 0.0
	for _, a := range activities {
		if a != nil && w.Contains(a.Date) {
			total += a.CO2e
		}
	}
	return floorZero(total)
}

func floorZero(v float64) float64 {
	return math.Max(0, v)
}

// ChangePercent is the relative change of current against previous. With no
// previous value any positive current counts as a 100% increase.
func ChangePercent(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

type ChartPoint struct {
	Name string `json:"name"`
	CategoryTotals
}

func (r Rollup) ChartData() []ChartPoint {
	return []ChartPoint{
		{Name: "Last Wk", CategoryTotals: r.CategoryTotals.LastWeek},
		{Name: "This Wk", CategoryTotals: r.CategoryTotals.ThisWeek},
	}
}
