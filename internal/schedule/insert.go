package schedule

import (
	"strings"
	"time"
)

// insertItem reconciles candidate against items, which must be the sorted,
// non-overlapping content of the day bounded by day. It returns the new item
// list and the candidate as stored.
//
// The candidate is clamped to day. Overlapped filler is split around it, with
// each fragment keeping the filler's title and playlist tag. Any overlapped
// non-filler item aborts the insertion with a *ConflictError before anything
// is changed, so items is never modified.
func insertItem(items []Item, day Window, candidate Item, newID func() ItemID) ([]Item, Item, error) {
	loc := day.Start.Location()

	w := candidate.Window().Clamp(day)
	candidate.Start = w.Start.In(loc)
	candidate.End = w.End.In(loc)
	if w.Empty() {
		return nil, Item{}, validationError("duration", "item must have positive duration within the day")
	}

	for _, existing := range items {
		if existing.Window().Overlaps(w) && !existing.IsFiller() {
			return nil, Item{}, &ConflictError{Existing: existing, Candidate: candidate}
		}
	}

	out := make([]Item, 0, len(items)+2)
	for _, existing := range items {
		if !existing.Window().Overlaps(w) {
			out = append(out, existing)
			continue
		}
		if existing.Start.Before(w.Start) {
			out = append(out, fragment(existing, existing.Start, w.Start, newID))
		}
		if w.End.Before(existing.End) {
			out = append(out, fragment(existing, w.End, existing.End, newID))
		}
	}
	out = append(out, candidate)
	sortItems(out)

	return out, candidate, nil
}

// fragment returns the part [start, end) of filler under a new identity.
func fragment(filler Item, start, end time.Time, newID func() ItemID) Item {
	f := NewMusic(filler.Title, start, end, filler.Music.PlaylistTag)
	f.ID = newID()
	return f
}

// validateItem checks the fields that do not depend on the day's content.
func validateItem(it Item, requireTitle bool) *ValidationError {
	vErr := &ValidationError{}
	if !it.Kind.Valid() {
		vErr.add("kind", "unknown content kind")
	}
	if requireTitle && strings.TrimSpace(it.Title) == "" {
		vErr.add("title", "title is required")
	}
	if it.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if it.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if !it.Start.IsZero() && !it.End.IsZero() && !it.End.After(it.Start) {
		vErr.add("duration", "end must be after start")
	}
	if it.Kind == KindLiveSession && it.Live.HostCount < 1 {
		vErr.add("host_count", "live session needs at least one host")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
