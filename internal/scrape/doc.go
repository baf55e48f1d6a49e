// Package scrape turns fetched listing pages into persisted live meetings.
//
// The Extractor walks listing rows under a configured CSS selector and
// normalizes each into a LiveMeeting, isolating per-row failures. The Scraper
// drives the fetch/extract/upsert loop over a date range with a fixed pause
// between days. Both sides degrade by skipping: a bad row never aborts its
// page and a bad date never aborts the range.
package scrape
