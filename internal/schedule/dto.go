package schedule

import (
	"fmt"
	"time"
)

// Zone-less layouts accepted for instants; values in these forms are taken
// as already local.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseInstant parses an RFC 3339 instant and converts it to loc, or a
// zone-less one and interprets it in loc. An empty string yields the zero time.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid instant %q", s)
}

// itemRequest is the JSON payload accepted for new content.
type itemRequest struct {
	ID          string `json:"id,omitempty"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	HostCount   *int   `json:"host_count,omitempty"`
	HasGuest    bool   `json:"has_guest,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Producer    string `json:"producer,omitempty"`
	PlaylistTag string `json:"playlist_tag,omitempty"`
}

// toItem converts the payload, defaulting the kind to generic and a live
// session's host count to 1.
func (r itemRequest) toItem(loc *time.Location) (Item, error) {
	start, err := parseInstant(r.Start, loc)
	if err != nil {
		return Item{}, err
	}
	end, err := parseInstant(r.End, loc)
	if err != nil {
		return Item{}, err
	}

	kind := r.Kind
	if kind == "" {
		kind = KindGeneric
	}
	it := Item{ID: ItemID(r.ID), Kind: kind, Title: r.Title, Start: start, End: end}
	switch kind {
	case KindLiveSession:
		hosts := 1
		if r.HostCount != nil {
			hosts = *r.HostCount
		}
		it.Live = LiveDetails{HostCount: hosts, HasGuest: r.HasGuest, Notes: r.Notes}
	case KindReportage:
		it.Reportage = ReportageDetails{Producer: r.Producer}
	case KindMusic:
		it.Music = MusicDetails{PlaylistTag: r.PlaylistTag}
	}
	return it, nil
}

type rescheduleRequest struct {
	Start string `json:"start"`
}

type itemResponse struct {
	ID              ItemID `json:"id"`
	Kind            Kind   `json:"kind"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds int64  `json:"duration_seconds"`
	Filler          bool   `json:"filler"`
	HostCount       int    `json:"host_count,omitempty"`
	Studio          Studio `json:"studio,omitempty"`
	HasGuest        *bool  `json:"has_guest,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Producer        string `json:"producer,omitempty"`
	PlaylistTag     string `json:"playlist_tag,omitempty"`
}

func newItemResponse(it Item) itemResponse {
	resp := itemResponse{
		ID:              it.ID,
		Kind:            it.Kind,
		Title:           it.Title,
		Start:           it.Start.Format(time.RFC3339),
		End:             it.End.Format(time.RFC3339),
		DurationSeconds: int64(it.Duration() / time.Second),
		Filler:          it.IsFiller(),
	}
	switch it.Kind {
	case KindLiveSession:
		studio, _ := it.Studio()
		guest := it.Live.HasGuest
		resp.HostCount = it.Live.HostCount
		resp.Studio = studio
		resp.HasGuest = &guest
		resp.Notes = it.Live.Notes
	case KindReportage:
		resp.Producer = it.Reportage.Producer
	case KindMusic:
		resp.PlaylistTag = it.Music.PlaylistTag
	}
	return resp
}

func newItemResponses(items []Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newItemResponse(it))
	}
	return out
}

type dayResponse struct {
	Date           string         `json:"date"`
	Items          []itemResponse `json:"items"`
	CoveredSeconds int64          `json:"covered_seconds"`
	LengthSeconds  int64          `json:"length_seconds"`
}

type eventResponse struct {
	Date string       `json:"date"`
	Item itemResponse `json:"item"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}
