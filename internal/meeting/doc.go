// Package meeting provides the domain types for scraped and imported swim meets.
//
// A LiveMeeting is a meet listing scraped from a federation website; a Meeting
// is a canonical record imported from official qualifying-standard documents.
// The two datasets are joined through license codes (meet numbers), which may
// appear as a structured field or embedded in free-text names. The package
// also carries the static Swim England region/county reference tables and
// snapshot diffing used to detect newly listed meets between scrape runs.
package meeting
