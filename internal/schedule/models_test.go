package schedule

import (
	"strconv"
	"testing"
	"time"
)

var testLoc = time.FixedZone("CET", 60*60)

var testDate = Date{Year: 2026, Month: time.October, Day: 14}

// at returns hh:mm on testDate in testLoc.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.October, 14, hour, minute, 0, 0, testLoc)
}

// sequentialIDs returns a generator yielding id-1, id-2, ...
func sequentialIDs() func() ItemID {
	n := 0
	return func() ItemID {
		n++
		return ItemID("id-" + strconv.Itoa(n))
	}
}

func TestItem_Duration(t *testing.T) {
	it := NewGeneric("News", at(9, 0), at(9, 45))
	if it.Duration() != 45*time.Minute {
		t.Errorf("expected 45m, got %v", it.Duration())
	}
}

func TestItem_IsFiller(t *testing.T) {
	cases := []struct {
		item Item
		want bool
	}{
		{NewMusic("m", at(1, 0), at(2, 0), ""), true},
		{NewGeneric("g", at(1, 0), at(2, 0)), false},
		{NewReportage("r", at(1, 0), at(2, 0), "Alice"), false},
		{NewLiveSession("l", at(1, 0), at(2, 0), 1, false), false},
	}
	for _, c := range cases {
		if got := c.item.IsFiller(); got != c.want {
			t.Errorf("%s: IsFiller=%v, want %v", c.item.Kind, got, c.want)
		}
	}
}

func TestItem_Studio_derived_from_host_count(t *testing.T) {
	live := NewLiveSession("Lunch Live", at(12, 0), at(14, 0), 1, false)

	studio, ok := live.Studio()
	if !ok || studio != StudioA {
		t.Errorf("1 host: got %q ok=%v, want Studio A", studio, ok)
	}

	live.Live.HostCount = 2
	if studio, _ := live.Studio(); studio != StudioB {
		t.Errorf("2 hosts: got %q, want Studio B", studio)
	}

	live.Live.HostCount = 5
	if studio, _ := live.Studio(); studio != StudioB {
		t.Errorf("5 hosts: got %q, want Studio B", studio)
	}
}

func TestItem_Studio_only_for_live_sessions(t *testing.T) {
	if _, ok := NewReportage("r", at(1, 0), at(2, 0), "").Studio(); ok {
		t.Error("reportage should not report a studio")
	}
}

func TestKind_Valid(t *testing.T) {
	for _, k := range []Kind{KindGeneric, KindLiveSession, KindReportage, KindMusic} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("podcast").Valid() || Kind("").Valid() {
		t.Error("unknown kinds should be invalid")
	}
}

func TestWindow_Overlaps_half_open(t *testing.T) {
	a := Window{Start: at(9, 0), End: at(10, 0)}

	t.Run("touching_does_not_overlap", func(t *testing.T) {
		b := Window{Start: at(10, 0), End: at(11, 0)}
		if a.Overlaps(b) || b.Overlaps(a) {
			t.Error("adjacent windows must not overlap")
		}
	})

	t.Run("partial_overlap", func(t *testing.T) {
		b := Window{Start: at(9, 30), End: at(10, 30)}
		if !a.Overlaps(b) || !b.Overlaps(a) {
			t.Error("expected overlap")
		}
	})

	t.Run("containment", func(t *testing.T) {
		b := Window{Start: at(9, 15), End: at(9, 45)}
		if !a.Overlaps(b) || !b.Overlaps(a) {
			t.Error("contained window should overlap")
		}
	})
}

func TestWindow_Contains(t *testing.T) {
	w := Window{Start: at(9, 0), End: at(10, 0)}
	if !w.Contains(at(9, 0)) {
		t.Error("start should be inside")
	}
	if w.Contains(at(10, 0)) {
		t.Error("end should be outside")
	}
	if w.Contains(at(8, 59)) {
		t.Error("instant before start should be outside")
	}
}

func TestWindow_Clamp(t *testing.T) {
	day := testDate.Window(testLoc)
	w := Window{Start: at(0, 0).Add(-2 * time.Hour), End: at(0, 0).Add(26 * time.Hour)}.Clamp(day)
	if !w.Start.Equal(day.Start) || !w.End.Equal(day.End) {
		t.Errorf("clamp: got %v, want %v", w, day)
	}
}
