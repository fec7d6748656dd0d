package schedule

import "time"

// DefaultFillerTitle is the title given to automatically generated filler.
const DefaultFillerTitle = "Auto Music"

// findGaps returns every maximal sub-range of day not covered by items.
// items must be sorted by start.
func findGaps(items []Item, day Window) []Window {
	var gaps []Window
	cursor := day.Start
	for _, it := range items {
		w := it.Window().Clamp(day)
		if w.Empty() {
			continue
		}
		if w.Start.After(cursor) {
			gaps = append(gaps, Window{Start: cursor, End: w.Start})
		}
		if w.End.After(cursor) {
			cursor = w.End
		}
	}
	if day.End.After(cursor) {
		gaps = append(gaps, Window{Start: cursor, End: day.End})
	}
	return gaps
}

// fillGaps appends one filler item per gap and returns the sorted result
// along with the items it created. It never resolves overlaps.
func fillGaps(items []Item, day Window, title, playlistTag string, newID func() ItemID) ([]Item, []Item) {
	gaps := findGaps(items, day)
	if len(gaps) == 0 {
		return items, nil
	}

	loc := day.Start.Location()
	created := make([]Item, 0, len(gaps))
	for _, g := range gaps {
		f := NewMusic(title, g.Start.In(loc), g.End.In(loc), playlistTag)
		f.ID = newID()
		created = append(created, f)
	}

	out := make([]Item, 0, len(items)+len(created))
	out = append(out, items...)
	out = append(out, created...)
	sortItems(out)
	return out, created
}

// covered returns the total time within day occupied by items, counting
// overlapping ranges once.
func covered(items []Item, day Window) time.Duration {
	var total time.Duration
	for _, g := range findGaps(items, day) {
		total += g.End.Sub(g.Start)
	}
	return day.End.Sub(day.Start) - total
}
