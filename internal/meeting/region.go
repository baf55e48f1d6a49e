package meeting

import (
	"sort"
	"strings"
)

// Region is a Swim England region. Regions are static reference data: the
// scraping pipeline resolves names against this table and never creates new
// entries. A name that does not resolve leaves the meeting's region unset.
type Region struct {
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Counties []string `json:"counties"`
}

// Swim England regions and counties, 2024-2025 season.
var regions = []Region{
	{
		Name:     "East",
		Code:     "EAST",
		Counties: []string{"Bedfordshire", "Cambridgeshire", "Essex", "Hertfordshire", "Norfolk", "Suffolk"},
	},
	{
		Name:     "East Midlands",
		Code:     "EMID",
		Counties: []string{"Derbyshire", "Leicestershire", "Lincolnshire", "Northamptonshire", "Nottinghamshire"},
	},
	{
		Name:     "London",
		Code:     "LOND",
		Counties: []string{"Greater London"},
	},
	{
		Name:     "North East",
		Code:     "NE",
		Counties: []string{"County Durham", "North Yorkshire", "North & North East Lincolnshire", "Northumberland", "Teesside", "Yorkshire"},
	},
	{
		Name:     "North West",
		Code:     "NW",
		Counties: []string{"Cheshire", "Cumbria", "Lancashire"},
	},
	{
		Name:     "South East",
		Code:     "SE",
		Counties: []string{"Berkshire", "Buckinghamshire", "Channel Islands", "East Sussex", "Hampshire", "Isle of Wight", "Kent", "Oxfordshire", "Surrey", "West Sussex"},
	},
	{
		Name:     "South West",
		Code:     "SW",
		Counties: []string{"Cornwall", "Devon", "Dorset", "Gloucestershire", "Somerset", "Wiltshire"},
	},
	{
		Name:     "West Midlands",
		Code:     "WMID",
		Counties: []string{"Shropshire", "Staffordshire", "Warwickshire", "Worcestershire"},
	},
}

// FindRegionByName looks up a region by exact name, case-insensitively.
func FindRegionByName(name string) (Region, bool) {
	for _, r := range regions {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Region{}, false
}

// FindRegionByCode looks up a region by its short code, case-insensitively.
func FindRegionByCode(code string) (Region, bool) {
	for _, r := range regions {
		if strings.EqualFold(r.Code, strings.TrimSpace(code)) {
			return r, true
		}
	}
	return Region{}, false
}

// FindCounty looks up a county by name within a region, case-insensitively.
func FindCounty(r Region, name string) (string, bool) {
	for _, c := range r.Counties {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

// RegionNames returns all region names, longest first. The ordering matters
// to callers building alternation patterns: "East Midlands" must be tried
// before "East".
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// Regions returns the full reference table.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}
