package fixture

import (
	"strings"
	"testing"
	"time"
)

var scanNow = time.Date(2025, time.August, 20, 10, 0, 0, 0, time.UTC)

func TestParseText_MatchupWithNearbyVenueAndTime(t *testing.T) {
	text := strings.Join([]string{
		"Round 5",
		"Adelaide v Port Adelaide",
		"Adelaide Oval",
		"7:40pm",
	}, "\n")

	got := NewNormalizer(func() time.Time { return scanNow }).ParseText(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 fixture, got %d: %+v", len(got), got)
	}

	want := Fixture{
		ID:       1,
		HomeTeam: "Adelaide",
		AwayTeam: "Port Adelaide",
		Venue:    "Adelaide Oval",
		Date:     "2025-08-23",
		Time:     "19:40",
		Round:    "Round 5",
	}
	if got[0] != want {
		t.Fatalf("unexpected fixture:\nwant: %+v\ngot:  %+v", want, got[0])
	}
}

func TestParseText_CarriesRoundAndDate(t *testing.T) {
	text := `
Grand Final
Saturday 27/09/2025
Brisbane vs Geelong  MCG  2:30 PM
Tickets on sale now
`
	got := NewNormalizer(func() time.Time { return scanNow }).ParseText(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 fixture, got %d: %+v", len(got), got)
	}
	if got[0].Round != "Grand Final" || got[0].Date != "2025-09-27" {
		t.Fatalf("expected carried round and date, got %+v", got[0])
	}
	if got[0].Venue != "MCG" || got[0].Time != "14:30" {
		t.Fatalf("expected same-line venue and time, got %+v", got[0])
	}
}

func TestParseText_DefaultsWhenNothingNearby(t *testing.T) {
	got := NewNormalizer(func() time.Time { return scanNow }).ParseText("Crows v Power")
	if len(got) != 1 {
		t.Fatalf("expected 1 fixture, got %d", len(got))
	}

	item := got[0]
	if item.HomeTeam != "Adelaide" || item.AwayTeam != "Port Adelaide" {
		t.Fatalf("expected nicknames resolved, got %+v", item)
	}
	if item.Venue != VenueTBA || item.Time != DefaultKickoffTime {
		t.Fatalf("expected TBA venue and default time, got %+v", item)
	}
	if item.Round != CurrentRoundLabel || item.Date != "2025-08-23" {
		t.Fatalf("expected current round on next Saturday, got %+v", item)
	}
}

func TestParseText_FullGWSName(t *testing.T) {
	text := "Greater Western Sydney vs Sydney Swans\nGreater Western Sydney v Carlton"
	got := NewNormalizer(func() time.Time { return scanNow }).ParseText(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 fixtures, got %d: %+v", len(got), got)
	}
	if got[0].HomeTeam != "GWS Giants" || got[0].AwayTeam != "Sydney" {
		t.Fatalf("unexpected derby fixture: %+v", got[0])
	}
	if got[1].HomeTeam != "GWS Giants" || got[1].AwayTeam != "Carlton" {
		t.Fatalf("unexpected second fixture: %+v", got[1])
	}
}

func TestParseText_SkipsUnusableLines(t *testing.T) {
	text := strings.Join([]string{
		"Richmond v Tigers",
		"Foo v Bar",
		"Carlton v Collingwood v Essendon",
		"Latest news",
		"West Coast @ Fremantle",
	}, "\n")

	got := NewNormalizer(func() time.Time { return scanNow }).ParseText(text)
	if len(got) != 1 {
		t.Fatalf("expected 1 fixture, got %d: %+v", len(got), got)
	}
	if got[0].HomeTeam != "West Coast" || got[0].AwayTeam != "Fremantle" {
		t.Fatalf("unexpected fixture: %+v", got[0])
	}
}

func TestParseText_TruncatesToOneRound(t *testing.T) {
	lines := []string{
		"Adelaide v Brisbane",
		"Carlton v Collingwood",
		"Essendon v Fremantle",
		"Geelong v Hawthorn",
		"Melbourne v Richmond",
		"Sydney v Carlton",
		"Geelong v Essendon",
		"Hawthorn v Adelaide",
		"Richmond v Sydney",
		"Brisbane v Melbourne",
	}

	got := NewNormalizer(func() time.Time { return scanNow }).ParseText(strings.Join(lines, "\n"))
	if len(got) != MaxScrapedFixtures {
		t.Fatalf("expected %d fixtures, got %d", MaxScrapedFixtures, len(got))
	}
	for i, item := range got {
		if item.ID != i+1 {
			t.Fatalf("expected sequential ids, got %d at %d", item.ID, i)
		}
	}
	if got[7].HomeTeam != "Hawthorn" {
		t.Fatalf("expected input order kept, got %+v", got[7])
	}
}

func TestParseText_Empty(t *testing.T) {
	if got := NewNormalizer(nil).ParseText(""); len(got) != 0 {
		t.Fatalf("expected no fixtures, got %+v", got)
	}
}

func TestMarkerDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "Thursday 21/08/2025", want: "2025-08-21", ok: true},
		{in: "03/04/2025", want: "2025-04-03", ok: true},
		{in: "08/21/2025", want: "2025-08-21", ok: true},
		{in: "2025-8-30", want: "2025-08-30", ok: true},
		{in: "30-08-2025", want: "2025-08-30", ok: true},
		{in: "no date here", ok: false},
	}

	for _, tt := range tests {
		got, ok := markerDate(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("markerDate(%q)=%q,%v want=%q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "7:40pm", want: "19:40", ok: true},
		{in: "12:10 PM", want: "12:10", ok: true},
		{in: "12:05am", want: "00:05", ok: true},
		{in: "Bounce 19:25", want: "19:25", ok: true},
		{in: "13:00 pm", ok: false},
		{in: "25:00", ok: false},
		{in: "TBC", ok: false},
	}

	for _, tt := range tests {
		got, ok := parseClock(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("parseClock(%q)=%q,%v want=%q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassifyLine(t *testing.T) {
	if got := classifyLine("Round 12"); got.class != lineRoundMarker || got.round != "Round 12" {
		t.Fatalf("unexpected round marker: %+v", got)
	}
	if got := classifyLine("Qualifying Final"); got.class != lineRoundMarker || got.round != "Qualifying Finals" {
		t.Fatalf("unexpected finals marker: %+v", got)
	}
	if got := classifyLine("Friday 22/08/2025"); got.class != lineDateMarker || got.date != "2025-08-22" {
		t.Fatalf("unexpected date marker: %+v", got)
	}
	if got := classifyLine("Sydney v GWS"); got.class != lineMatchup || got.away != "GWS Giants" {
		t.Fatalf("unexpected matchup: %+v", got)
	}
	if got := classifyLine("Member news"); got.class != lineNoise {
		t.Fatalf("expected noise, got %+v", got)
	}
}
