package mockapi

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rileyhilliard/beacon/internal/api"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/status"
	"gopkg.in/yaml.v3"
)

// Fixture is the data served by the mock server.
type Fixture struct {
	Config     api.ConfigResponse                     `yaml:"config"`
	Monitors   []api.MonitorJSON                      `yaml:"monitors"`
	Heartbeats map[string]map[string][]api.BucketJSON `yaml:"heartbeats"`
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't read fixture %s", path),
			"Check the --fixture path")
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Fixture is not valid YAML",
			"Check the fixture against internal/mockapi/testdata/basic.yaml")
	}
	if f.Heartbeats == nil {
		f.Heartbeats = make(map[string]map[string][]api.BucketJSON)
	}
	return &f, nil
}

func (f *Fixture) monitor(name string) *api.MonitorJSON {
	for i := range f.Monitors {
		if f.Monitors[i].Name == name {
			return &f.Monitors[i]
		}
	}
	return nil
}

// demo monitors and the share of failing checks for each.
var demoMonitors = []struct {
	name     string
	url      string
	downRate float64
	slowRate float64
}{
	{name: "api", url: "https://api.example.com/health", downRate: 0.01, slowRate: 0.05},
	{name: "web", url: "https://www.example.com", downRate: 0.03, slowRate: 0.15},
	{name: "db-proxy", url: "tcp://db.example.com:5432", downRate: 0.08, slowRate: 0.02},
}

// bucketPlan is how many demo buckets are generated per interval.
var bucketPlan = map[status.Interval]struct {
	count int
	step  time.Duration
}{
	status.IntervalHour: {count: 96, step: time.Hour},
	status.IntervalDay:  {count: 60, step: 24 * time.Hour},
	status.IntervalWeek: {count: 40, step: 7 * 24 * time.Hour},
}

// DemoFixture generates a fixture with a few monitors, a minute-spaced raw
// history ending at now and buckets for the hour, day and week intervals.
func DemoFixture(now time.Time, rng *rand.Rand) *Fixture {
	threshold := 1000.0
	percentage := 10.0
	f := &Fixture{
		Config: api.ConfigResponse{
			DegradedThresholdMs:         &threshold,
			DegradedPercentageThreshold: &percentage,
			FooterText:                  "beacon mock server",
		},
		Heartbeats: make(map[string]map[string][]api.BucketJSON),
	}

	for _, dm := range demoMonitors {
		m := api.MonitorJSON{Name: dm.name, URL: dm.url}
		for i := 119; i >= 0; i-- {
			m.History = append(m.History, randomSample(now.Add(-time.Duration(i)*time.Minute), dm.downRate, dm.slowRate, rng))
		}
		last := m.History[len(m.History)-1]
		m.CurrentStatus = &last
		f.Monitors = append(f.Monitors, m)

		byInterval := make(map[string][]api.BucketJSON)
		for _, interval := range []status.Interval{status.IntervalHour, status.IntervalDay, status.IntervalWeek} {
			plan := bucketPlan[interval]
			start := now.Truncate(plan.step).Add(-time.Duration(plan.count-1) * plan.step)
			for i := 0; i < plan.count; i++ {
				byInterval[string(interval)] = append(byInterval[string(interval)],
					randomBucket(start.Add(time.Duration(i)*plan.step), plan.step, dm.downRate, dm.slowRate, rng))
			}
		}
		f.Heartbeats[dm.name] = byInterval
	}
	return f
}

func randomSample(ts time.Time, downRate, slowRate float64, rng *rand.Rand) api.SampleJSON {
	up := rng.Float64() >= downRate
	code := 200
	rt := 0.05 + rng.Float64()*0.4
	if !up {
		code = 503
	} else if rng.Float64() < slowRate {
		rt = 1.0 + rng.Float64()*1.5
	}
	return api.SampleJSON{
		Timestamp:    ts.UTC().Format(time.RFC3339),
		IsUp:         &up,
		StatusCode:   &code,
		ResponseTime: &rt,
	}
}

func randomBucket(ts time.Time, step time.Duration, downRate, slowRate float64, rng *rand.Rand) api.BucketJSON {
	count := int(step / time.Minute)
	if count > 2000 {
		count = 2000
	}
	down, degraded := 0, 0
	for i := 0; i < count; i++ {
		switch r := rng.Float64(); {
		case r < downRate/10:
			down++
		case r < (downRate+slowRate)/4:
			degraded++
		}
	}
	avg := 0.1 + rng.Float64()*0.3
	return api.BucketJSON{
		Timestamp:       ts.UTC().Format(time.RFC3339),
		Count:           count,
		AvgResponseTime: &avg,
		DegradedCount:   degraded,
		DownCount:       down,
		IssuePercentage: float64(degraded+down) / float64(count) * 100,
	}
}
