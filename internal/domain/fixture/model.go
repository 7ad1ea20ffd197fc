package fixture

import "time"

const (
	VenueTBA            = "TBA"
	DefaultKickoffTime  = "15:00"
	CurrentRoundLabel   = "Current Round"
	MaxScrapedFixtures  = 8
	DateLayout          = "2006-01-02"
	TimeLayout          = "15:04"
	RegularSeasonRounds = 23
)

// Fixture represents one scheduled match.
type Fixture struct {
	ID       int    `json:"id" yaml:"id"`
	HomeTeam string `json:"home_team" yaml:"home_team"`
	AwayTeam string `json:"away_team" yaml:"away_team"`
	Venue    string `json:"venue" yaml:"venue"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Round    string `json:"round,omitempty" yaml:"round,omitempty"`
}

// Round is a named grouping of fixtures within a season.
type Round struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

// Snapshot is the cached result of one successful fetch. Fixture snapshots
// leave Rounds empty and round listings leave Fixtures empty.
type Snapshot struct {
	Fixtures  []Fixture `json:"fixtures,omitempty"`
	Rounds    []Round   `json:"rounds,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FreshAt reports whether the snapshot is younger than ttl at now.
func (s Snapshot) FreshAt(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(s.FetchedAt) < ttl
}

// RawKind identifies which normalization path a RawResult needs.
type RawKind string

const (
	RawKindGames RawKind = "games"
	RawKindText  RawKind = "text"
	RawKindFile  RawKind = "file"
)

// RawGame is one upstream game record as delivered by the results API.
// Round is nil when the record carries no round number.
type RawGame struct {
	ID       int    `json:"id"`
	HomeTeam string `json:"hteam"`
	AwayTeam string `json:"ateam"`
	Venue    string `json:"venue"`
	Date     string `json:"date"`
	Round    *int   `json:"round"`
}

// RawResult is whatever a source managed to pull from upstream, before
// normalization. Exactly one of Games, Text or Fixtures is meaningful,
// depending on Kind.
type RawResult struct {
	Kind     RawKind
	Source   string
	Games    []RawGame
	Text     string
	Fixtures []Fixture
}

func (r RawResult) Empty() bool {
	switch r.Kind {
	case RawKindGames:
		return len(r.Games) == 0
	case RawKindText:
		return len(r.Text) == 0
	case RawKindFile:
		return len(r.Fixtures) == 0
	default:
		return true
	}
}
