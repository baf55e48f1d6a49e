// Package cli implements the swim-meets command-line interface.
//
// The cli package provides the Cobra-based CLI with subcommands for scraping
// meeting listings, refreshing the upcoming window, listing and filtering
// stored meetings, matching license codes, converting race times between
// course types, and exporting meetings as calendar files. Configuration is
// resolved through viper from flags, SWIMMEETS_* environment variables, and
// an optional config file.
package cli
