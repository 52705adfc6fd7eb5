package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// NoValue is shown in place of a time of day that was never recorded.
const NoValue = "-"

const (
	DefaultWorkStartHour   = 9
	DefaultWorkStartMinute = 0
	DefaultGraceMinutes    = 5
)

// Workday is the lateness threshold. Location is always explicit; a nil
// Location is read as UTC, never as the host's local zone.
type Workday struct {
	StartHour    int
	StartMinute  int
	GraceMinutes int
	Location     *time.Location
}

// NewWorkday returns the 09:00 start with a 5 minute grace period in loc.
func NewWorkday(loc *time.Location) Workday {
	return Workday{
		StartHour:    DefaultWorkStartHour,
		StartMinute:  DefaultWorkStartMinute,
		GraceMinutes: DefaultGraceMinutes,
		Location:     loc,
	}
}

func (w Workday) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// StartMinuteOfDay is the threshold as minutes since local midnight.
func (w Workday) StartMinuteOfDay() int {
	return w.StartHour*60 + w.StartMinute
}

// Lateness is the result of ClassifyLateness.
type Lateness struct {
	IsLate      bool `json:"is_late"`
	LateMinutes int  `json:"late_minutes"`
}

// View is the derived attendance view. It is recomputed on every read and
// never stored.
type View struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	Status      Status `json:"status"`
	EntryTime   string `json:"entry_time"`
	ExitTime    string `json:"exit_time"`
	Comment     string `json:"comment"`
	IsLate      bool   `json:"is_late"`
	LateMinutes int    `json:"late_minutes"`
}

func missing(t *time.Time) bool {
	return t == nil || t.IsZero()
}

// ClassifyLateness compares the local time of day of checkIn with the workday
// start. The grace period only decides the flag: a check-in 6 minutes after
// start is reported as 6 minutes late, not 1.
func ClassifyLateness(checkIn *time.Time, w Workday) Lateness {
	if missing(checkIn) {
		return Lateness{}
	}

	local := checkIn.In(w.location())
	delta := local.Hour()*60 + local.Minute() - w.StartMinuteOfDay()

	if delta > w.GraceMinutes {
		return Lateness{IsLate: true, LateMinutes: delta}
	}
	return Lateness{}
}

// FormatTimeOfDay renders t as zero-padded 24h "HH:MM" in loc, or NoValue.
func FormatTimeOfDay(t *time.Time, loc *time.Location) string {
	if missing(t) {
		return NoValue
	}
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return fmt.Sprintf("%02d:%02d", local.Hour(), local.Minute())
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// ParseInstant parses an ISO-8601 timestamp. Empty or malformed input yields
// nil so callers treat it as "no value".
func ParseInstant(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeStatus maps a stored status onto the three steady states. Anything
// unrecognized, including the empty string, becomes StatusAbsent; ok is false
// when raw was non-empty but not a known state.
func NormalizeStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusWorking, StatusOutside, StatusAbsent:
		return s, true
	case "":
		return StatusAbsent, true
	default:
		return StatusAbsent, false
	}
}

// DeriveView builds the view of rec as seen at ref.
func DeriveView(rec Record, ref time.Time, w Workday) View {
	loc := w.location()
	status, _ := NormalizeStatus(rec.Status)
	lateness := ClassifyLateness(rec.FirstCheckInTime, w)

	comment := NoValue
	if rec.LastComment != nil && *rec.LastComment != "" {
		comment = *rec.LastComment
	}

	return View{
		EmployeeID:  rec.EmployeeID,
		Date:        ref.In(loc).Format("2006-01-02"),
		Status:      status,
		EntryTime:   FormatTimeOfDay(rec.LastCheckInTime, loc),
		ExitTime:    FormatTimeOfDay(rec.LastCheckOutTime, loc),
		Comment:     comment,
		IsLate:      lateness.IsLate,
		LateMinutes: lateness.LateMinutes,
	}
}

// CategoryStat is a count and its rounded share of the total.
type CategoryStat struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// StatsSummary counts a day of views. Late overlays the three statuses.
type StatsSummary struct {
	Total   int          `json:"total"`
	Working CategoryStat `json:"ishda"`
	Outside CategoryStat `json:"tashqarida"`
	Absent  CategoryStat `json:"kelmagan"`
	Late    CategoryStat `json:"kechikkan"`
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// AggregateStats counts views per status plus the late overlay.
func AggregateStats(views []View) StatsSummary {
	var working, outside, absent, late int
	for _, v := range views {
		switch v.Status {
		case StatusWorking:
			working++
		case StatusOutside:
			outside++
		default:
			absent++
		}
		if v.IsLate {
			late++
		}
	}

	total := len(views)
	return StatsSummary{
		Total:   total,
		Working: CategoryStat{Count: working, Percentage: percentage(working, total)},
		Outside: CategoryStat{Count: outside, Percentage: percentage(outside, total)},
		Absent:  CategoryStat{Count: absent, Percentage: percentage(absent, total)},
		Late:    CategoryStat{Count: late, Percentage: percentage(late, total)},
	}
}
