package classify

import "strings"

var nycAliases = []string{
	"new york", "brooklyn", "queens", "bronx", "manhattan",
	"staten island", "jersey city", "hoboken", "newark",
	"yonkers", "white plains", "stamford", "new rochelle",
}

var sfAliases = []string{
	"san francisco", "san jose", "oakland", "berkeley",
	"palo alto", "mountain view", "sunnyvale", "santa clara",
	"redwood city", "menlo park", "cupertino", "fremont",
	"san mateo", "daly city", "south san francisco",
	"hayward", "milpitas", "campbell", "san ramon",
}

// NormalizeLocation maps a raw location string to "NYC" or "SF" via the
// alias lists, otherwise returns the city part before the first comma.
// "Brooklyn, New York, United States" → "NYC".
func NormalizeLocation(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))

	for _, alias := range nycAliases {
		if strings.Contains(lower, alias) {
			return "NYC"
		}
	}
	for _, alias := range sfAliases {
		if strings.Contains(lower, alias) {
			return "SF"
		}
	}

	city, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(city)
}
