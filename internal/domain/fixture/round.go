package fixture

import (
	"fmt"
	"sort"
)

var finalsNames = map[int]string{
	24: "Elimination Finals",
	25: "Qualifying Finals",
	26: "Semi Finals",
	27: "Preliminary Finals",
	28: "Grand Final",
}

// RoundName returns the display name of a round number.
func RoundName(number int) string {
	if number <= RegularSeasonRounds {
		return fmt.Sprintf("Round %d", number)
	}
	if name, ok := finalsNames[number]; ok {
		return name
	}
	return fmt.Sprintf("Finals Week %d", number-RegularSeasonRounds)
}

// RoundsFromNumbers builds a sorted, de-duplicated round list. Non-positive
// numbers are ignored.
func RoundsFromNumbers(numbers []int) []Round {
	seen := make(map[int]struct{}, len(numbers))
	unique := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if n <= 0 {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	sort.Ints(unique)

	out := make([]Round, 0, len(unique))
	for _, n := range unique {
		out = append(out, Round{Number: n, Name: RoundName(n)})
	}
	return out
}
