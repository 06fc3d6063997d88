// Package status classifies monitor history for display.
//
// Raw samples and pre-aggregated buckets are reduced to one of four statuses
// (up, degraded, down, none). The resolution Cache keeps the latest bucket
// sequence per (monitor, interval) and derives the display series the status
// strip renders, falling back to raw history until buckets arrive.
package status
