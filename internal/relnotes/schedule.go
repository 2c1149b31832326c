package relnotes

import "time"

// ReleaseCadence is the time between two stable releases.
const ReleaseCadence = 6 * 7 * 24 * time.Hour

// knownRelease is the date of a past stable release (1.42.0).
var knownRelease = time.Date(2020, time.March, 12, 0, 0, 0, 0, time.UTC)

// NextReleaseDate returns the date of the release following the most recent one
// as of today, on the six-week train anchored at a known release.
func NextReleaseDate(today time.Time) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	end := knownRelease
	for today.Sub(end) > ReleaseCadence {
		end = end.Add(ReleaseCadence)
	}
	return end.Add(ReleaseCadence)
}
