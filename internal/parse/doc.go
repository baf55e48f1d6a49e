// Package parse provides text-to-value parsing for scraped meet listings.
//
// Listing pages carry loosely structured text: dates with ordinal suffixes
// ("18thNov 2025"), course types in several spellings, and detail blobs that
// run region, course, level, and event type together ("North East RegionShort
// CourseLevel 4Club"). Every parser here signals failure with an absent value
// rather than an error; callers treat absence as "field unknown" and never
// abort a batch over it.
package parse
