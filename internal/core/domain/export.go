package domain

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

const csvHeader = "id,date,description,category,co2e"

// WriteActivitiesCSV writes one row per activity as
// id,date(yyyy-MM-dd),"description",category,co2e(2 decimals).
// Dates are rendered in loc, or in the stored location when loc is nil.
func WriteActivitiesCSV(w io.Writer, activities []*Activity, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader + "\n"); err != nil {
		return err
	}

	for _, a := range activities {
		row := []string{
			a.ID,
			localDate(a.Date, loc),
			quoteCSV(a.Description),
			string(a.Category),
			strconv.FormatFloat(a.CO2e, 'f', 2, 64),
		}
		if _, err := bw.WriteString(strings.Join(row, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func localDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
