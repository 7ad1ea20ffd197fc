package fixture

import (
	"sort"
	"strings"
)

var knownVenues = []string{
	"MCG",
	"Marvel Stadium",
	"Adelaide Oval",
	"Optus Stadium",
	"Gabba",
	"SCG",
	"GMHBA Stadium",
	"People First Stadium",
	"ENGIE Stadium",
	"UTAS Stadium",
	"Blundstone Arena",
	"Manuka Oval",
	"TIO Stadium",
	"Mars Stadium",
	"Norwood Oval",
	"Barossa Park",
	"Traeger Park",
	"Ninja Stadium",
}

var venuesByLengthDesc = func() []string {
	out := append([]string(nil), knownVenues...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// FindVenue returns the first known venue mentioned in text. Longer names
// are tried first so "Adelaide Oval" is not shadowed by a shorter entry.
func FindVenue(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, venue := range venuesByLengthDesc {
		if containsWord(lowered, strings.ToLower(venue)) {
			return venue, true
		}
	}
	return "", false
}

// containsWord is strings.Contains restricted to matches that are not glued
// to surrounding letters, so "SCG" does not match inside "MSCGX".
func containsWord(haystack, needle string) bool {
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if (start == 0 || !isLetter(haystack[start-1])) && (end == len(haystack) || !isLetter(haystack[end])) {
			return true
		}
		from = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
