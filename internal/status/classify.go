package status

// ClassifySample maps a raw sample to a display status. A nil sample means
// nothing was recorded. Down always wins; a sample without a response time is
// never degraded.
func ClassifySample(s *Sample, degradedThresholdMs float64) Status {
	if s == nil {
		return StatusNone
	}
	if !s.IsUp {
		return StatusDown
	}
	if s.ResponseTime != nil && *s.ResponseTime*1000 > degradedThresholdMs {
		return StatusDegraded
	}
	return StatusUp
}

// ClassifyBucket maps an aggregated bucket to a display status.
//
// The degraded test depends on the resolution: at IntervalAll every bucket
// stands for individual samples, so any degraded sample marks it degraded. The
// coarser intervals no longer carry per-sample response times and compare the
// bucket's issue percentage against th.DegradedPercentage instead.
func ClassifyBucket(b *Bucket, interval Interval, th Thresholds) Status {
	if b == nil || b.Count <= 0 {
		return StatusNone
	}
	if b.DownCount > 0 {
		return StatusDown
	}
	switch interval {
	case IntervalHour, IntervalDay, IntervalWeek:
		if b.IssuePercentage > th.DegradedPercentage {
			return StatusDegraded
		}
	default:
		if b.DegradedCount > 0 {
			return StatusDegraded
		}
	}
	return StatusUp
}
