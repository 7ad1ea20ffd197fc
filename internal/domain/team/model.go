package team

import (
	"sort"
	"strings"
	"unicode"
)

// Team is one club of the competition with its official spelling and the
// nickname supporters and fixture pages commonly use instead.
type Team struct {
	Name     string
	Nickname string
}

var canonical = []Team{
	{Name: "Adelaide", Nickname: "crows"},
	{Name: "Brisbane", Nickname: "lions"},
	{Name: "Carlton", Nickname: "blues"},
	{Name: "Collingwood", Nickname: "pies"},
	{Name: "Essendon", Nickname: "bombers"},
	{Name: "Fremantle", Nickname: "freo"},
	{Name: "Geelong", Nickname: "cats"},
	{Name: "Gold Coast", Nickname: "suns"},
	{Name: "GWS Giants", Nickname: "giants"},
	{Name: "Hawthorn", Nickname: "hawks"},
	{Name: "Melbourne", Nickname: "dees"},
	{Name: "North Melbourne", Nickname: "roos"},
	{Name: "Port Adelaide", Nickname: "power"},
	{Name: "Richmond", Nickname: "tigers"},
	{Name: "St Kilda", Nickname: "saints"},
	{Name: "Sydney", Nickname: "swans"},
	{Name: "West Coast", Nickname: "eagles"},
	{Name: "Western Bulldogs", Nickname: "dogs"},
}

var byNickname = func() map[string]string {
	out := make(map[string]string, len(canonical))
	for _, item := range canonical {
		out[item.Nickname] = item.Name
	}
	return out
}()

// aliases are longer spellings that would otherwise phrase-match the wrong
// club, e.g. "Greater Western Sydney" containing "Sydney".
var aliases = []struct {
	phrase string
	name   string
}{
	{phrase: "greater western sydney", name: "GWS Giants"},
	{phrase: "kangaroos", name: "North Melbourne"},
	{phrase: "footscray", name: "Western Bulldogs"},
}

// byLengthDesc holds canonical names longest first so "Port Adelaide" wins
// over "Adelaide" when a free-text candidate contains both.
var byLengthDesc = func() []string {
	out := make([]string, 0, len(canonical))
	for _, item := range canonical {
		out = append(out, item.Name)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// Resolve maps a free-text candidate onto a canonical team name.
//
// Matching is attempted in order: exact (case-insensitive), known aliases,
// substring in either direction against official names, then the nickname
// table. It returns false when nothing matches.
func Resolve(candidate string) (string, bool) {
	value := fold(candidate)
	if value == "" {
		return "", false
	}

	for _, item := range canonical {
		if fold(item.Name) == value {
			return item.Name, true
		}
	}

	for _, alias := range aliases {
		if containsPhrase(value, alias.phrase) {
			return alias.name, true
		}
	}

	for _, name := range byLengthDesc {
		if containsPhrase(value, fold(name)) {
			return name, true
		}
	}
	if len(value) >= 2 {
		for _, item := range canonical {
			if hasWordPrefix(fold(item.Name), value) {
				return item.Name, true
			}
		}
	}

	if name, ok := byNickname[value]; ok {
		return name, true
	}
	for _, word := range strings.Fields(value) {
		if name, ok := byNickname[word]; ok {
			return name, true
		}
	}
	return "", false
}

// fold lowercases text and turns punctuation into single spaces.
func fold(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	words := strings.Fields(text)
	target := strings.Fields(phrase)
	for i := 0; i+len(target) <= len(words); i++ {
		matched := true
		for j := range target {
			if words[i+j] != target[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether candidate starts one of the words of name,
// e.g. "port" for "port adelaide" or "bull" for "western bulldogs".
func hasWordPrefix(name, candidate string) bool {
	if strings.HasPrefix(name, candidate) {
		return true
	}
	for _, word := range strings.Fields(name) {
		if strings.HasPrefix(word, candidate) {
			return true
		}
	}
	return false
}
