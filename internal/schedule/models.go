package schedule

import "time"

// ItemID uniquely identifies a content item across every day in the store.
type ItemID string

// Kind is the closed set of content variants the scheduler understands.
type Kind string

const (
	KindGeneric     Kind = "generic"
	KindLiveSession Kind = "live_session"
	KindReportage   Kind = "reportage"
	KindMusic       Kind = "music"
)

// Valid reports whether k is one of the known variants.
func (k Kind) Valid() bool {
	switch k {
	case KindGeneric, KindLiveSession, KindReportage, KindMusic:
		return true
	}
	return false
}

// Studio is the studio a live session is produced in.
type Studio string

const (
	StudioA Studio = "Studio A"
	StudioB Studio = "Studio B"
)

// LiveDetails holds the live session payload.
type LiveDetails struct {
	HostCount int
	HasGuest  bool
	Notes     string
}

// Studio derives the studio from the host count. It is never stored.
func (l LiveDetails) Studio() Studio {
	if l.HostCount >= 2 {
		return StudioB
	}
	return StudioA
}

// ReportageDetails holds the reportage payload.
type ReportageDetails struct {
	Producer string
}

// MusicDetails holds the filler payload. PlaylistTag is carried over to
// fragments when filler is split.
type MusicDetails struct {
	PlaylistTag string
}

// Item is a single scheduled entry on a day's timeline. Only the payload
// matching Kind is meaningful.
type Item struct {
	ID    ItemID
	Kind  Kind
	Title string
	Start time.Time
	End   time.Time

	Live      LiveDetails
	Reportage ReportageDetails
	Music     MusicDetails
}

// Duration returns End - Start.
func (it Item) Duration() time.Duration {
	return it.End.Sub(it.Start)
}

// IsFiller reports whether the item may be split or displaced by other content.
func (it Item) IsFiller() bool {
	return it.Kind == KindMusic
}

// Studio returns the derived studio for live sessions; ok is false for
// every other kind.
func (it Item) Studio() (studio Studio, ok bool) {
	if it.Kind != KindLiveSession {
		return "", false
	}
	return it.Live.Studio(), true
}

// Window returns the item's half-open time range.
func (it Item) Window() Window {
	return Window{Start: it.Start, End: it.End}
}

// NewGeneric returns a generic item.
func NewGeneric(title string, start, end time.Time) Item {
	return Item{Kind: KindGeneric, Title: title, Start: start, End: end}
}

// NewLiveSession returns a live session. hosts below 1 is left as-is so that
// validation can reject it.
func NewLiveSession(title string, start, end time.Time, hosts int, guest bool) Item {
	return Item{
		Kind:  KindLiveSession,
		Title: title,
		Start: start,
		End:   end,
		Live:  LiveDetails{HostCount: hosts, HasGuest: guest},
	}
}

// NewReportage returns a reportage segment.
func NewReportage(title string, start, end time.Time, producer string) Item {
	return Item{
		Kind:      KindReportage,
		Title:     title,
		Start:     start,
		End:       end,
		Reportage: ReportageDetails{Producer: producer},
	}
}

// NewMusic returns a filler item.
func NewMusic(title string, start, end time.Time, playlistTag string) Item {
	return Item{
		Kind:  KindMusic,
		Title: title,
		Start: start,
		End:   end,
		Music: MusicDetails{PlaylistTag: playlistTag},
	}
}

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether w and o share any instant. Ranges that only touch
// at an endpoint do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether t falls inside the half-open window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Empty reports whether the window has no positive length.
func (w Window) Empty() bool {
	return !w.End.After(w.Start)
}

// Clamp trims w to the bounds of o.
func (w Window) Clamp(o Window) Window {
	if w.Start.Before(o.Start) {
		w.Start = o.Start
	}
	if w.End.After(o.End) {
		w.End = o.End
	}
	return w
}
