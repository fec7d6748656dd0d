package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func withID(it Item, id ItemID) Item {
	it.ID = id
	return it
}

func assertNoOverlap(t *testing.T, items []Item) {
	t.Helper()
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].Window().Overlaps(items[j].Window()) {
				t.Errorf("items %q [%v,%v) and %q [%v,%v) overlap",
					items[i].Title, items[i].Start, items[i].End,
					items[j].Title, items[j].Start, items[j].End)
			}
		}
	}
}

func assertSorted(t *testing.T, items []Item) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		if items[i].Start.Before(items[i-1].Start) {
			t.Errorf("items out of order at %d: %v before %v", i, items[i].Start, items[i-1].Start)
		}
	}
}

func TestInsertItem_splits_filler(t *testing.T) {
	day := testDate.Window(testLoc)
	music := withID(NewMusic("Morning Mix", at(9, 0), at(12, 0), "chill"), "m")
	show := withID(NewGeneric("Show", at(10, 0), at(11, 0)), "show")

	items, stored, err := insertItem([]Item{music}, day, show, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if stored.ID != "show" {
		t.Errorf("stored candidate id: got %q", stored.ID)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %v", len(items), items)
	}

	want := []struct {
		kind       Kind
		start, end time.Time
	}{
		{KindMusic, at(9, 0), at(10, 0)},
		{KindGeneric, at(10, 0), at(11, 0)},
		{KindMusic, at(11, 0), at(12, 0)},
	}
	for i, w := range want {
		got := items[i]
		if got.Kind != w.kind || !got.Start.Equal(w.start) || !got.End.Equal(w.end) {
			t.Errorf("item %d: got %s [%v,%v), want %s [%v,%v)", i, got.Kind, got.Start, got.End, w.kind, w.start, w.end)
		}
	}
	for _, i := range []int{0, 2} {
		if items[i].Title != "Morning Mix" || items[i].Music.PlaylistTag != "chill" {
			t.Errorf("fragment %d should inherit title and tag, got %q/%q", i, items[i].Title, items[i].Music.PlaylistTag)
		}
		if items[i].ID == "m" || items[i].ID == "" {
			t.Errorf("fragment %d should have a fresh identity, got %q", i, items[i].ID)
		}
	}
	if items[0].ID == items[2].ID {
		t.Error("fragments must not share an identity")
	}
}

func TestInsertItem_filler_fully_covered_is_removed(t *testing.T) {
	day := testDate.Window(testLoc)
	music := withID(NewMusic("Mix", at(10, 0), at(11, 0), ""), "m")
	show := withID(NewGeneric("Show", at(9, 0), at(12, 0)), "show")

	items, _, err := insertItem([]Item{music}, day, show, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if len(items) != 1 || items[0].ID != "show" {
		t.Errorf("expected only the show, got %v", items)
	}
}

func TestInsertItem_filler_aligned_start_leaves_one_fragment(t *testing.T) {
	day := testDate.Window(testLoc)
	music := withID(NewMusic("Mix", at(9, 0), at(12, 0), ""), "m")
	show := withID(NewGeneric("Show", at(9, 0), at(10, 0)), "show")

	items, _, err := insertItem([]Item{music}, day, show, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Kind != KindMusic || !items[1].Start.Equal(at(10, 0)) || !items[1].End.Equal(at(12, 0)) {
		t.Errorf("unexpected trailing fragment: %+v", items[1])
	}
}

func TestInsertItem_spans_several_fillers(t *testing.T) {
	day := testDate.Window(testLoc)
	existing := []Item{
		withID(NewMusic("A", at(8, 0), at(10, 0), "a"), "a"),
		withID(NewMusic("B", at(10, 0), at(12, 0), "b"), "b"),
	}
	show := withID(NewGeneric("Show", at(9, 0), at(11, 0)), "show")

	items, _, err := insertItem(existing, day, show, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Title != "A" || !items[0].End.Equal(at(9, 0)) {
		t.Errorf("first fragment: %+v", items[0])
	}
	if items[2].Title != "B" || !items[2].Start.Equal(at(11, 0)) || items[2].Music.PlaylistTag != "b" {
		t.Errorf("last fragment: %+v", items[2])
	}
	assertNoOverlap(t, items)
	assertSorted(t, items)
}

func TestInsertItem_conflict_with_non_filler(t *testing.T) {
	day := testDate.Window(testLoc)
	rep := withID(NewReportage("Morning Reportage", at(9, 0), at(10, 0), "Alice"), "rep")
	candidate := withID(NewGeneric("Overrun", at(9, 30), at(10, 30)), "c")

	before := []Item{rep}
	_, _, err := insertItem(before, day, candidate, sequentialIDs())

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if cErr.Existing.ID != "rep" || cErr.Candidate.ID != "c" {
		t.Errorf("conflict should name both items, got %q and %q", cErr.Existing.ID, cErr.Candidate.ID)
	}
	if len(before) != 1 || before[0].ID != "rep" {
		t.Error("input items must be left unchanged")
	}
}

func TestInsertItem_conflict_after_filler_is_atomic(t *testing.T) {
	day := testDate.Window(testLoc)
	existing := []Item{
		withID(NewMusic("Mix", at(8, 0), at(10, 0), ""), "m"),
		withID(NewReportage("Rep", at(10, 0), at(11, 0), ""), "rep"),
	}
	snapshot := append([]Item(nil), existing...)
	candidate := withID(NewGeneric("Long", at(9, 0), at(10, 30)), "c")

	_, _, err := insertItem(existing, day, candidate, sequentialIDs())
	if ErrorKind(err) != ErrorKindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !reflect.DeepEqual(existing, snapshot) {
		t.Error("filler must not be split when the insertion is rejected")
	}
}

func TestInsertItem_adjacent_items_do_not_conflict(t *testing.T) {
	day := testDate.Window(testLoc)
	rep := withID(NewReportage("Rep", at(9, 0), at(10, 0), ""), "rep")
	next := withID(NewGeneric("Next", at(10, 0), at(11, 0)), "next")

	items, _, err := insertItem([]Item{rep}, day, next, sequentialIDs())
	if err != nil {
		t.Fatalf("adjacent insert should succeed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestInsertItem_clamps_to_day_boundary(t *testing.T) {
	day := testDate.Window(testLoc)
	overnight := withID(NewGeneric("Marathon", at(0, 0).Add(-3*time.Hour), at(0, 0).Add(27*time.Hour)), "x")

	items, stored, err := insertItem(nil, day, overnight, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if !stored.Start.Equal(day.Start) || !stored.End.Equal(day.End) {
		t.Errorf("expected [%v,%v), got [%v,%v)", day.Start, day.End, stored.Start, stored.End)
	}
	if len(items) != 1 || !items[0].End.Equal(day.End) {
		t.Errorf("stored item not clamped: %v", items)
	}
}

func TestInsertItem_normalizes_to_day_location(t *testing.T) {
	day := testDate.Window(testLoc)
	utcStart := at(10, 0).UTC()
	it := withID(NewGeneric("Show", utcStart, utcStart.Add(time.Hour)), "x")

	_, stored, err := insertItem(nil, day, it, sequentialIDs())
	if err != nil {
		t.Fatalf("insertItem: %v", err)
	}
	if stored.Start.Location() != testLoc || stored.Start.Hour() != 10 {
		t.Errorf("expected 10:00 local, got %v", stored.Start)
	}
}

func TestInsertItem_rejects_item_outside_day(t *testing.T) {
	day := testDate.Window(testLoc)
	tomorrow := at(0, 0).Add(30 * time.Hour)
	it := withID(NewGeneric("Tomorrow", tomorrow, tomorrow.Add(time.Hour)), "x")

	_, _, err := insertItem(nil, day, it, sequentialIDs())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["duration"]; !ok {
		t.Errorf("expected duration field error, got %v", vErr.FieldErrors)
	}
}

func TestInsertItem_music_over_music(t *testing.T) {
	day := testDate.Window(testLoc)
	base := withID(NewMusic("Base", at(0, 0), day.End, ""), "base")
	jazz := withID(NewMusic("Jazz Hour", at(20, 0), at(21, 0), "jazz"), "jazz")

	items, _, err := insertItem([]Item{base}, day, jazz, sequentialIDs())
	if err != nil {
		t.Fatalf("filler over filler should succeed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	assertNoOverlap(t, items)
}

func TestValidateItem(t *testing.T) {
	cases := []struct {
		name         string
		item         Item
		requireTitle bool
		field        string
	}{
		{"unknown_kind", Item{Kind: "podcast", Title: "x", Start: at(1, 0), End: at(2, 0)}, false, "kind"},
		{"empty_title", NewGeneric("  ", at(1, 0), at(2, 0)), true, "title"},
		{"missing_start", NewGeneric("x", time.Time{}, at(2, 0)), false, "start"},
		{"reversed", NewGeneric("x", at(2, 0), at(1, 0)), false, "duration"},
		{"zero_length", NewGeneric("x", at(2, 0), at(2, 0)), false, "duration"},
		{"no_hosts", NewLiveSession("x", at(1, 0), at(2, 0), 0, false), false, "host_count"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vErr := validateItem(c.item, c.requireTitle)
			if vErr == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := vErr.FieldErrors[c.field]; !ok {
				t.Errorf("expected %q field error, got %v", c.field, vErr.FieldErrors)
			}
		})
	}

	t.Run("empty_title_allowed_without_requirement", func(t *testing.T) {
		if vErr := validateItem(NewGeneric("", at(1, 0), at(2, 0)), false); vErr != nil {
			t.Errorf("unexpected error: %v", vErr)
		}
	})
}
