package fixture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/team"
)

// ParseText extracts fixtures from the plain text of a fixture web page.
//
// This is a best-effort pattern matcher over unstructured prose, not a
// grammar: it recognises "Home v Away" style lines and picks up round, date,
// venue and kickoff hints from nearby lines. Fixtures it cannot identify
// with two distinct known teams are skipped, so the result may be
// incomplete. At most MaxScrapedFixtures are returned.
func (n *Normalizer) ParseText(text string) []Fixture {
	lines := classifyLines(tokenizeLines(text))
	return extractFixtures(lines, n.now())
}

type lineClass int

const (
	lineNoise lineClass = iota
	lineRoundMarker
	lineDateMarker
	lineMatchup
)

type scannedLine struct {
	text  string
	class lineClass
	round string
	date  string
	home  string
	away  string
}

var (
	roundPattern     = regexp.MustCompile(`(?i)\bround\s+(\d{1,2})\b`)
	finalsPattern    = regexp.MustCompile(`(?i)\b(elimination|qualifying|semi|preliminary|grand)\s+finals?\b`)
	datePattern      = regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2}|\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`)
	separatorPattern = regexp.MustCompile(`(?i)\s+(?:vs|v|@)\s+`)
	clockPattern     = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
)

// dateLayouts are tried in order; the first that parses wins, so an
// ambiguous 03/04/2025 reads as 3 April.
var dateLayouts = []string{
	"2/1/2006",
	"1/2/2006",
	"2006-1-2",
	"2-1-2006",
}

var finalsLabels = map[string]string{
	"elimination": "Elimination Finals",
	"qualifying":  "Qualifying Finals",
	"semi":        "Semi Finals",
	"preliminary": "Preliminary Finals",
	"grand":       "Grand Final",
}

// windowOffsets is the search order around a matchup line, nearest first.
var windowOffsets = []int{0, 1, -1, 2, -2}

func tokenizeLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func classifyLines(lines []string) []scannedLine {
	out := make([]scannedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, classifyLine(line))
	}
	return out
}

// classifyLine gives round and date markers priority over matchups.
func classifyLine(line string) scannedLine {
	scanned := scannedLine{text: line, class: lineNoise}

	if label, ok := roundLabel(line); ok {
		scanned.class = lineRoundMarker
		scanned.round = label
	}
	if date, ok := markerDate(line); ok {
		if scanned.class == lineNoise {
			scanned.class = lineDateMarker
		}
		scanned.date = date
	}
	if scanned.class != lineNoise {
		return scanned
	}

	if home, away, ok := splitMatchup(line); ok {
		scanned.class = lineMatchup
		scanned.home = home
		scanned.away = away
	}
	return scanned
}

func roundLabel(line string) (string, bool) {
	if match := roundPattern.FindStringSubmatch(line); match != nil {
		number, err := strconv.Atoi(match[1])
		if err == nil && number > 0 {
			return fmt.Sprintf("Round %d", number), true
		}
	}
	if match := finalsPattern.FindStringSubmatch(line); match != nil {
		return finalsLabels[strings.ToLower(match[1])], true
	}
	return "", false
}

func markerDate(line string) (string, bool) {
	match := datePattern.FindString(line)
	if match == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, match)
		if err == nil {
			return parsed.Format(DateLayout), true
		}
	}
	return "", false
}

// splitMatchup requires the line to split into exactly two parts. The home
// candidate is the whole left part, the away candidate the first word of the
// right part; both must resolve to different canonical teams.
func splitMatchup(line string) (string, string, bool) {
	parts := separatorPattern.Split(line, -1)
	if len(parts) != 2 {
		return "", "", false
	}
	awayWords := strings.Fields(parts[1])
	if len(awayWords) == 0 {
		return "", "", false
	}

	home, ok := team.Resolve(parts[0])
	if !ok {
		return "", "", false
	}
	away, ok := resolveAway(awayWords)
	if !ok || home == away {
		return "", "", false
	}
	return home, away, true
}

// resolveAway resolves the first word of the right-hand side. When that word
// is only the start of a longer name ("Port", "North") and the following
// words complete it, the longer canonical name is kept.
func resolveAway(words []string) (string, bool) {
	first, ok := team.Resolve(words[0])
	if !ok {
		return "", false
	}
	if len(words) > 1 {
		if longer, ok := team.Resolve(words[0] + " " + words[1]); ok && strings.HasPrefix(strings.ToLower(longer), strings.ToLower(words[0])) {
			return longer, true
		}
	}
	return first, true
}

func extractFixtures(lines []scannedLine, now time.Time) []Fixture {
	currentRound := ""
	currentDate := ""
	out := make([]Fixture, 0, MaxScrapedFixtures)

	for i, line := range lines {
		if line.round != "" {
			currentRound = line.round
		}
		if line.date != "" {
			currentDate = line.date
		}
		if line.class != lineMatchup {
			continue
		}

		out = append(out, Fixture{
			ID:       len(out) + 1,
			HomeTeam: line.home,
			AwayTeam: line.away,
			Venue:    nearbyVenue(lines, i),
			Date:     firstNonEmpty(currentDate, NextWeekendDate(now)),
			Time:     nearbyKickoff(lines, i),
			Round:    firstNonEmpty(currentRound, CurrentRoundLabel),
		})
		if len(out) == MaxScrapedFixtures {
			break
		}
	}
	return out
}

func nearbyVenue(lines []scannedLine, at int) string {
	for _, offset := range windowOffsets {
		idx := at + offset
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if venue, ok := FindVenue(lines[idx].text); ok {
			return venue
		}
	}
	return VenueTBA
}

func nearbyKickoff(lines []scannedLine, at int) string {
	for _, offset := range windowOffsets {
		idx := at + offset
		if idx < 0 || idx >= len(lines) {
			continue
		}
		if kickoff, ok := parseClock(lines[idx].text); ok {
			return kickoff
		}
	}
	return DefaultKickoffTime
}

// parseClock finds an HH:MM time with optional am/pm suffix and returns it
// in 24-hour form.
func parseClock(text string) (string, bool) {
	for _, match := range clockPattern.FindAllStringSubmatch(text, -1) {
		hour, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		minute, err := strconv.Atoi(match[2])
		if err != nil || minute > 59 {
			continue
		}

		switch strings.ToLower(match[3]) {
		case "am":
			if hour < 1 || hour > 12 {
				continue
			}
			if hour == 12 {
				hour = 0
			}
		case "pm":
			if hour < 1 || hour > 12 {
				continue
			}
			if hour != 12 {
				hour += 12
			}
		default:
			if hour > 23 {
				continue
			}
		}
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}
	return "", false
}
