package fixture

import "time"

type fallbackSlot struct {
	home    string
	away    string
	venue   string
	kickoff string
	sunday  bool
}

var fallbackSchedule = []fallbackSlot{
	{home: "Richmond", away: "Collingwood", venue: "MCG", kickoff: "19:50"},
	{home: "Adelaide", away: "Port Adelaide", venue: "Adelaide Oval", kickoff: "13:45"},
	{home: "Brisbane", away: "Gold Coast", venue: "Gabba", kickoff: "16:35"},
	{home: "Geelong", away: "Carlton", venue: "GMHBA Stadium", kickoff: "19:25"},
	{home: "Western Bulldogs", away: "Melbourne", venue: "Marvel Stadium", kickoff: "13:20", sunday: true},
	{home: "Sydney", away: "GWS Giants", venue: "SCG", kickoff: "15:20", sunday: true},
	{home: "West Coast", away: "Fremantle", venue: "Optus Stadium", kickoff: "18:10", sunday: true},
	{home: "St Kilda", away: "Essendon", venue: "Marvel Stadium", kickoff: "20:10", sunday: true},
}

// FallbackFixtures returns the fixed reference round, dated on the upcoming
// Saturday and the Sunday after it. It never returns an empty list.
func FallbackFixtures(now time.Time) []Fixture {
	saturday := NextSaturday(now)
	sunday := saturday.AddDate(0, 0, 1)

	out := make([]Fixture, 0, len(fallbackSchedule))
	for i, slot := range fallbackSchedule {
		day := saturday
		if slot.sunday {
			day = sunday
		}
		out = append(out, Fixture{
			ID:       i + 1,
			HomeTeam: slot.home,
			AwayTeam: slot.away,
			Venue:    slot.venue,
			Date:     day.Format(DateLayout),
			Time:     slot.kickoff,
		})
	}
	return out
}

// FallbackRounds returns the regular season rounds 1..23.
func FallbackRounds() []Round {
	out := make([]Round, 0, RegularSeasonRounds)
	for n := 1; n <= RegularSeasonRounds; n++ {
		out = append(out, Round{Number: n, Name: RoundName(n)})
	}
	return out
}
