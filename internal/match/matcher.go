// Package match links canonical imported meetings to scraped live meetings.
//
// License codes are the only reliable join key between the two datasets, but
// they show up in several representations: as a structured license_number
// field, embedded in a free-text meeting name, or both. The matcher tries all
// of them before giving up.
package match

import (
	"regexp"

	"github.com/openswim/swim-meets/internal/meeting"
)

// licensePattern is the fixed shape of a federation license code: one digit
// (level), 2-4 uppercase letters (region code), 6 digits (year/sequence).
// Example: 4NE252206.
var licensePattern = regexp.MustCompile(`\b(\d[A-Z]{2,4}\d{6})\b`)

// Finder is the store capability the matcher needs. Satisfied by store.Store.
type Finder interface {
	FindByMeetNumber(number string) (*meeting.LiveMeeting, bool)
	FindByNameContaining(substr string) (*meeting.LiveMeeting, bool)
}

// ExtractLicenseFromName returns the first license code embedded in a
// free-text name, or "" when the name is blank or carries none.
func ExtractLicenseFromName(name string) string {
	if name == "" {
		return ""
	}
	if m := licensePattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

// FindLiveMeeting locates the live meeting a canonical meeting refers to.
// An explicit license number is tried first, then a code extracted from the
// meeting name; each candidate code is looked up by exact meet number before
// falling back to a substring search over live-meeting names. Returns nil
// when no representation matches.
func FindLiveMeeting(finder Finder, m meeting.Meeting) *meeting.LiveMeeting {
	if m.LicenseNumber != "" {
		if found := lookupCode(finder, m.LicenseNumber); found != nil {
			return found
		}
	}
	if code := ExtractLicenseFromName(m.Name); code != "" && code != m.LicenseNumber {
		if found := lookupCode(finder, code); found != nil {
			return found
		}
	}
	return nil
}

// lookupCode is the two-stage lookup for one candidate code.
func lookupCode(finder Finder, code string) *meeting.LiveMeeting {
	if lm, ok := finder.FindByMeetNumber(code); ok {
		return lm
	}
	if lm, ok := finder.FindByNameContaining(code); ok {
		return lm
	}
	return nil
}
