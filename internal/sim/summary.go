package sim

import (
	"cmp"
	"maps"
	"slices"
)

// Summary aggregates simulated runs.
type Summary struct {
	Runs          int
	Wins          int
	WinRate       float64
	AvgFloor      float64
	MaxFloor      int
	AvgExperience float64
	AvgLevel      float64
	AvgWinHP      float64 // average HP fraction left in won runs
	AvgActions    float64
	Fled          int
	Loot          map[string]int
	Deaths        map[string]int // enemy ID → lost runs
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{
		Runs:   len(results),
		Loot:   make(map[string]int),
		Deaths: make(map[string]int),
	}
	if len(results) == 0 {
		return s
	}

	var floors, exp, levels, actions int
	var winHP float64
	for _, r := range results {
		if r.Won {
			s.Wins++
			winHP += r.HPLeft
		}
		if r.KilledBy != "" {
			s.Deaths[r.KilledBy]++
		}
		floors += r.Floor
		exp += r.Experience
		levels += r.Level
		actions += r.Actions
		s.Fled += r.Fled
		s.MaxFloor = max(s.MaxFloor, r.Floor)
		for item, n := range r.Loot {
			s.Loot[item] += n
		}
	}

	n := float64(len(results))
	s.WinRate = float64(s.Wins) / n
	s.AvgFloor = float64(floors) / n
	s.AvgExperience = float64(exp) / n
	s.AvgLevel = float64(levels) / n
	s.AvgActions = float64(actions) / n
	if s.Wins > 0 {
		s.AvgWinHP = winHP / float64(s.Wins)
	}
	return s
}

// DeadliestEnemies returns enemy IDs ordered by how many runs they ended.
func (s Summary) DeadliestEnemies() []string {
	ids := slices.Collect(maps.Keys(s.Deaths))
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(s.Deaths[b], s.Deaths[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}
