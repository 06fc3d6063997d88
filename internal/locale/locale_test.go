package locale

import (
	"testing"
	"time"

	"github.com/rileyhilliard/beacon/internal/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2024, 3, 10, 14, 5, 9, 0, time.UTC)

func TestNew_MatchesLanguage(t *testing.T) {
	tests := []struct {
		tag    string
		expect string
	}{
		{tag: "en", expect: "en"},
		{tag: "de-AT", expect: "de"},
		{tag: "fr-CA", expect: "fr"},
		{tag: "es-MX", expect: "es"},
		{tag: "ja", expect: "en"},
		{tag: "not a tag!", expect: "en"},
		{tag: "", expect: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			f := New(tt.tag, time.UTC)
			assert.Equal(t, tt.expect, f.Tag())
		})
	}
}

func TestNew_NilLocationIsLocal(t *testing.T) {
	assert.Equal(t, time.Local, New("en", nil).Location())
}

func TestSupported(t *testing.T) {
	assert.Equal(t, []string{"en", "de", "fr", "es"}, Supported())
}

func TestStatusLabel(t *testing.T) {
	en := New("en", time.UTC)
	de := New("de", time.UTC)

	assert.Equal(t, "Up", en.StatusLabel(status.StatusUp))
	assert.Equal(t, "Degraded", en.StatusLabel(status.StatusDegraded))
	assert.Equal(t, "Down", en.StatusLabel(status.StatusDown))
	assert.Equal(t, "Ausgefallen", de.StatusLabel(status.StatusDown))

	for _, f := range []*Formatter{en, de, New("fr", nil), New("es", nil)} {
		assert.Equal(t, NoDataLabel, f.StatusLabel(status.StatusNone))
	}
}

func TestLabel_FallsBack(t *testing.T) {
	f := New("fr", time.UTC)
	assert.Equal(t, "ping moyen", f.Label(LabelAvgPing))
	assert.Equal(t, "unknown_key", f.Label("unknown_key"))
	assert.Equal(t, "Depuis le début", f.AllTimeLabel())
}

func TestTimezoneAbbrev(t *testing.T) {
	tests := []struct {
		name   string
		loc    *time.Location
		expect string
	}{
		{name: "utc", loc: time.UTC, expect: "UTC"},
		{name: "named zone", loc: time.FixedZone("CET", 3600), expect: "CET"},
		{name: "unnamed positive", loc: time.FixedZone("", 3*3600), expect: "GMT+3"},
		{name: "unnamed half hour", loc: time.FixedZone("", 5*3600+30*60), expect: "GMT+5:30"},
		{name: "numeric name negative", loc: time.FixedZone("-04", -4*3600), expect: "GMT-4"},
		{name: "unnamed zero", loc: time.FixedZone("", 0), expect: "GMT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, New("en", tt.loc).TimezoneAbbrev(ts))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Mar 10, 2024, 14:05:09 UTC", New("en", time.UTC).FormatTimestamp(ts))
	assert.Equal(t, "10. März 2024, 15:05:09 CET", New("de", time.FixedZone("CET", 3600)).FormatTimestamp(ts))
}

func TestBucketLabel(t *testing.T) {
	en := New("en", time.UTC)
	tests := []struct {
		interval status.Interval
		expect   string
	}{
		{interval: status.IntervalHour, expect: "Mar 10, 14:05 UTC"},
		{interval: status.IntervalDay, expect: "Mar 10, 2024 UTC"},
		{interval: status.IntervalWeek, expect: "Mar 10 – Mar 16, 2024 UTC"},
		{interval: status.IntervalAll, expect: "Mar 10, 2024, 14:05:09 UTC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			assert.Equal(t, tt.expect, en.BucketLabel(ts, tt.interval))
		})
	}
}

func TestBucketLabel_WeekCrossesYear(t *testing.T) {
	f := New("es", time.UTC)
	start := time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "28 dic – 3 ene 2024 UTC", f.BucketLabel(start, status.IntervalWeek))
}

func TestBucketLabel_UsesLocation(t *testing.T) {
	f := New("fr", time.FixedZone("", 9*3600))
	assert.Equal(t, "10 mars, 23:05 GMT+9", f.BucketLabel(ts, status.IntervalHour))
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadLocation("Not/AZone")
	assert.Error(t, err)
}

func TestMilliseconds(t *testing.T) {
	assert.Equal(t, "250ms", Milliseconds(0.25))
	assert.Equal(t, "1235ms", Milliseconds(1.2346))
	assert.Equal(t, "0ms", Milliseconds(0))
}
