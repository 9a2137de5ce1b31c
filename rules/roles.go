package rules

import (
	"sort"

	"github.com/nstehr/elerium/elerium-core/model"
)

// Rank is self's 0-based position among the living team ordered by drone
// ID. Every teammate reading the same living set derives the same ranks,
// which is how drones split slots and targets without talking.
func Rank(self model.Drone, teammates []model.Drone) int {
	ids := make([]int, 0, len(teammates)+1)
	ids = append(ids, self.ID)
	for _, tm := range teammates {
		ids = append(ids, tm.ID)
	}
	sort.Ints(ids)
	return sort.SearchInts(ids, self.ID)
}

// MinID is the smallest drone ID among the living team.
func MinID(self model.Drone, teammates []model.Drone) int {
	min := self.ID
	for _, tm := range teammates {
		if tm.ID < min {
			min = tm.ID
		}
	}
	return min
}
