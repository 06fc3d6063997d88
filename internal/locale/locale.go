// Package locale formats timestamps and display strings for one language and
// time zone. The same Formatter produces bucket labels for the status strip
// and the strings shown in tooltips, so both paths always agree.
package locale

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/beacon/internal/status"
	"golang.org/x/text/language"
)

// NoDataLabel is shown for items without data in every language.
const NoDataLabel = "No Data"

var (
	supported = []language.Tag{language.English, language.German, language.French, language.Spanish}
	tables    = []*table{&english, &german, &french, &spanish}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the base language codes with translations.
func Supported() []string {
	codes := make([]string, len(supported))
	for i, tag := range supported {
		base, _ := tag.Base()
		codes[i] = base.String()
	}
	return codes
}

// Formatter formats strings for one language and location.
type Formatter struct {
	tag   language.Tag
	table *table
	loc   *time.Location
}

// New creates a formatter for the BCP 47 tag (e.g. "de-AT", "fr") and loc.
// Unknown or malformed tags fall back to English; a nil loc means time.Local.
func New(tag string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	idx := 0
	if parsed, err := language.Parse(tag); err == nil {
		if _, i, conf := matcher.Match(parsed); conf != language.No {
			idx = i
		}
	}
	return &Formatter{tag: supported[idx], table: tables[idx], loc: loc}
}

// LoadLocation resolves a zone name; "" and "local" mean the system zone.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// Tag returns the matched language tag.
func (f *Formatter) Tag() string {
	return f.tag.String()
}

// Location returns the zone timestamps are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Label returns the translation for key, or key itself when untranslated.
func (f *Formatter) Label(key string) string {
	if s, ok := f.table.labels[key]; ok {
		return s
	}
	if s, ok := english.labels[key]; ok {
		return s
	}
	return key
}

// StatusLabel returns the localized label for s. StatusNone always renders as
// NoDataLabel.
func (f *Formatter) StatusLabel(s status.Status) string {
	switch s {
	case status.StatusUp:
		return f.Label(LabelUp)
	case status.StatusDegraded:
		return f.Label(LabelDegr)
	case status.StatusDown:
		return f.Label(LabelOutage)
	default:
		return NoDataLabel
	}
}

// AllTimeLabel is the type label for raw samples.
func (f *Formatter) AllTimeLabel() string {
	return f.Label(LabelAllTime)
}

// TimezoneAbbrev returns the zone abbreviation in effect at t, such as "CET".
// Zones without a letter abbreviation are written as a GMT offset.
func (f *Formatter) TimezoneAbbrev(t time.Time) string {
	name, offset := t.In(f.loc).Zone()
	if name != "" && !strings.ContainsAny(name[:1], "+-0123456789") {
		return name
	}
	return gmtOffset(offset)
}

func gmtOffset(seconds int) string {
	if seconds == 0 {
		return "GMT"
	}
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	hours, minutes := seconds/3600, (seconds%3600)/60
	if minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, hours)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
}

func (f *Formatter) date(t time.Time) string {
	return f.table.date(t.Day(), f.table.months[t.Month()-1], t.Year())
}

func (f *Formatter) dayMonth(t time.Time) string {
	return f.table.dayMonth(t.Day(), f.table.months[t.Month()-1])
}

// FormatTimestamp renders a full timestamp with seconds and zone.
func (f *Formatter) FormatTimestamp(t time.Time) string {
	local := t.In(f.loc)
	return fmt.Sprintf("%s, %s %s", f.date(local), local.Format("15:04:05"), f.TimezoneAbbrev(t))
}

// BucketLabel renders the label for a bucket starting at t:
// hour buckets show date and minute, day buckets the date, week buckets the
// range from t to six days later.
func (f *Formatter) BucketLabel(t time.Time, interval status.Interval) string {
	local := t.In(f.loc)
	tz := f.TimezoneAbbrev(t)

	switch interval {
	case status.IntervalHour:
		return fmt.Sprintf("%s, %s %s", f.dayMonth(local), local.Format("15:04"), tz)
	case status.IntervalDay:
		return fmt.Sprintf("%s %s", f.date(local), tz)
	case status.IntervalWeek:
		end := local.AddDate(0, 0, 6)
		return fmt.Sprintf("%s – %s %s", f.dayMonth(local), f.date(end), tz)
	default:
		return f.FormatTimestamp(t)
	}
}

// Milliseconds renders a duration given in seconds as rounded milliseconds.
func Milliseconds(seconds float64) string {
	return fmt.Sprintf("%dms", int64(roundHalfAway(seconds*1000)))
}

func roundHalfAway(v float64) float64 {
	if v < 0 {
		return -float64(int64(-v + 0.5))
	}
	return float64(int64(v + 0.5))
}
