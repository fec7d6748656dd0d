package schedule

import (
	"fmt"
	"strings"
)

const clockLayout = "15:04"

// BuildDayReport renders a day as plain text, one line per item in start
// order. Live sessions get an extra line with their studio and guest flag.
// An empty day renders only the header.
func BuildDayReport(day DaySchedule) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Schedule for %s ===\n", day.Date))

	for _, it := range day.Items {
		b.WriteString(fmt.Sprintf("%s-%s  %s  [%s]\n",
			it.Start.Format(clockLayout), endLabel(day, it), it.Title, kindLabel(it.Kind)))

		if studio, ok := it.Studio(); ok {
			b.WriteString(fmt.Sprintf("   Studio: %s, Guest: %s\n", studio, yesNo(it.Live.HasGuest)))
		}
	}

	return b.String()
}

// endLabel prints an item ending at the following midnight as 24:00 so the
// last line of a filled day doesn't read as 00:00.
func endLabel(day DaySchedule, it Item) string {
	next := day.Date.AddDays(1)
	if DateOf(it.End) == next && it.End.Hour() == 0 && it.End.Minute() == 0 {
		return "24:00"
	}
	return it.End.Format(clockLayout)
}

func kindLabel(k Kind) string {
	switch k {
	case KindLiveSession:
		return "LiveSession"
	case KindReportage:
		return "Reportage"
	case KindMusic:
		return "Music"
	default:
		return "Generic"
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
