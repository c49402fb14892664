// Package syncer reconciles media catalogs reported by external sources into
// the local store. Each sync pass fetches fresh book/track projections per
// source, synthesizes books where a source reports none, recomputes aggregate
// fields, and upserts the result with stable canonical identifiers.
package syncer

import "time"

// ShouldRun decides whether a sync pass is due.
//
// Returns true when force is set, or when at least minInterval has elapsed
// since lastRefreshedAt. A zero lastRefreshedAt means "never refreshed" and
// is always due. Pure and total.
func ShouldRun(force bool, lastRefreshedAt time.Time, minInterval time.Duration, now time.Time) bool {
	if force {
		return true
	}
	if lastRefreshedAt.IsZero() {
		return true
	}
	return !now.Before(lastRefreshedAt.Add(minInterval))
}
