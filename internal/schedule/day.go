package schedule

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Window returns the day boundary [midnight of d, midnight of d+1) in loc.
// On DST transition days the window is shorter or longer than 24h.
func (d Date) Window(loc *time.Location) Window {
	next := d.AddDays(1)
	return Window{
		Start: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc),
		End:   time.Date(next.Year, next.Month, next.Day, 0, 0, 0, 0, loc),
	}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaySchedule is the timeline of a single date. Items are kept sorted by
// start after every mutation.
type DaySchedule struct {
	Date  Date
	Items []Item
}

func newDaySchedule(date Date) *DaySchedule {
	return &DaySchedule{Date: date, Items: make([]Item, 0)}
}

// clone returns a copy whose item slice can be mutated independently.
func (d *DaySchedule) clone() *DaySchedule {
	items := make([]Item, len(d.Items))
	copy(items, d.Items)
	return &DaySchedule{Date: d.Date, Items: items}
}

// indexOf returns the position of id in the day, or -1.
func (d *DaySchedule) indexOf(id ItemID) int {
	for i, it := range d.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// remove drops every item with the given id and reports whether one existed.
func (d *DaySchedule) remove(id ItemID) bool {
	kept := d.Items[:0]
	removed := false
	for _, it := range d.Items {
		if it.ID == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	d.Items = kept
	return removed
}

// sortItems orders items by start, then end, then id so the order is total.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.ID < b.ID
	})
}

func sortDates(dates []Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}
