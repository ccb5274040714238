package domain

import "time"

// Bucket is a set of reporting windows. A timestamp can belong to several
// windows at once, e.g. yesterday is usually also part of this week.
type Bucket uint8

const BucketNone Bucket = 0

const (
	BucketYesterday Bucket = 1 << iota
	BucketThisWeek
	BucketLastWeek
)

func (b Bucket) Has(other Bucket) bool {
	return other != BucketNone && b&other == other
}

func (b Bucket) String() string {
	if b == BucketNone {
		return "none"
	}
	s := ""
	for _, n := range []struct {
		bit  Bucket
		name string
	}{{BucketYesterday, "yesterday"}, {BucketThisWeek, "this-week"}, {BucketLastWeek, "last-week"}} {
		if b.Has(n.bit) {
			if s != "" {
				s += ","
			}
			s += n.name
		}
	}
	return s
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// EndOfWeek returns the last instant of Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func ThisWeek(now time.Time) Window {
	return Window{Start: StartOfWeek(now), End: EndOfWeek(now)}
}

func LastWeek(now time.Time) Window {
	return ThisWeek(now.AddDate(0, 0, -7))
}

// Classify places ts into the reporting windows relative to now. Calendar
// boundaries are evaluated in now's location.
func Classify(ts, now time.Time) Bucket {
	ts = ts.In(now.Location())

	b := BucketNone
	if SameDay(ts, now.AddDate(0, 0, -1)) {
		b |= BucketYesterday
	}
	if ThisWeek(now).Contains(ts) {
		b |= BucketThisWeek
	}
	if LastWeek(now).Contains(ts) {
		b |= BucketLastWeek
	}
	return b
}
