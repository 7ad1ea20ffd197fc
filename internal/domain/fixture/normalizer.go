package fixture

import (
	"strings"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/domain/team"
)

// Normalizer turns raw upstream results into canonical fixtures. It holds no
// state between calls apart from the clock used for date defaults.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize never fails; an unusable RawResult yields an empty slice.
func (n *Normalizer) Normalize(raw RawResult) []Fixture {
	switch raw.Kind {
	case RawKindGames:
		return n.NormalizeGames(raw.Games)
	case RawKindText:
		return n.ParseText(raw.Text)
	case RawKindFile:
		return n.NormalizeFixtures(raw.Fixtures)
	default:
		return []Fixture{}
	}
}

// NormalizeGames maps results API games one to one, preserving order. Team
// names from the API are trusted as canonical; games missing a team, or
// listing the same team twice, are dropped.
func (n *Normalizer) NormalizeGames(games []RawGame) []Fixture {
	now := n.now()
	out := make([]Fixture, 0, len(games))
	for _, game := range games {
		home := strings.TrimSpace(game.HomeTeam)
		away := strings.TrimSpace(game.AwayTeam)
		if home == "" || away == "" || home == away {
			continue
		}

		roundNumber := 1
		if game.Round != nil {
			roundNumber = *game.Round
		}

		out = append(out, Fixture{
			ID:       game.ID,
			HomeTeam: home,
			AwayTeam: away,
			Venue:    firstNonEmpty(game.Venue, VenueTBA),
			Date:     gameDate(game.Date, now),
			Time:     gameTime(game.Date),
			Round:    RoundName(roundNumber),
		})
	}
	return assignIDs(out)
}

// NormalizeFixtures validates fixtures that already have the canonical shape,
// as read from a local definition file. Team names are canonicalized and
// malformed dates or times are replaced with the usual defaults.
func (n *Normalizer) NormalizeFixtures(items []Fixture) []Fixture {
	now := n.now()
	out := make([]Fixture, 0, len(items))
	for _, item := range items {
		home, okHome := team.Resolve(item.HomeTeam)
		away, okAway := team.Resolve(item.AwayTeam)
		if !okHome || !okAway || home == away {
			continue
		}

		date := strings.TrimSpace(item.Date)
		if _, err := time.Parse(DateLayout, date); err != nil {
			date = NextWeekendDate(now)
		}
		clock := strings.TrimSpace(item.Time)
		if _, err := time.Parse(TimeLayout, clock); err != nil {
			clock = DefaultKickoffTime
		}

		out = append(out, Fixture{
			ID:       item.ID,
			HomeTeam: home,
			AwayTeam: away,
			Venue:    firstNonEmpty(item.Venue, VenueTBA),
			Date:     date,
			Time:     clock,
			Round:    strings.TrimSpace(item.Round),
		})
	}
	return assignIDs(out)
}

// assignIDs keeps the first use of each positive ID and gives records with a
// missing or repeated ID the smallest positive integer not used by any other
// record in the batch.
func assignIDs(items []Fixture) []Fixture {
	reserved := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.ID > 0 {
			reserved[item.ID] = struct{}{}
		}
	}

	taken := make(map[int]struct{}, len(items))
	next := 1
	for i := range items {
		if id := items[i].ID; id > 0 {
			if _, dup := taken[id]; !dup {
				taken[id] = struct{}{}
				continue
			}
		}
		for {
			_, isReserved := reserved[next]
			_, isTaken := taken[next]
			if !isReserved && !isTaken {
				break
			}
			next++
		}
		items[i].ID = next
		taken[next] = struct{}{}
		next++
	}
	return items
}

// gameDate extracts YYYY-MM-DD from a "YYYY-MM-DD HH:MM:SS" timestamp.
func gameDate(raw string, now time.Time) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return NextWeekendDate(now)
	}
	datePart, _, _ := strings.Cut(value, " ")
	if _, err := time.Parse(DateLayout, datePart); err != nil {
		return NextWeekendDate(now)
	}
	return datePart
}

// gameTime extracts HH:MM from a "YYYY-MM-DD HH:MM:SS" timestamp.
func gameTime(raw string) string {
	_, timePart, found := strings.Cut(strings.TrimSpace(raw), " ")
	timePart = strings.TrimSpace(timePart)
	if !found || len(timePart) < 5 {
		return DefaultKickoffTime
	}
	candidate := timePart[:5]
	if _, err := time.Parse(TimeLayout, candidate); err != nil {
		return DefaultKickoffTime
	}
	return candidate
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
