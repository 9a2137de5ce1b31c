package rules

import (
	"testing"

	"github.com/nstehr/elerium/elerium-core/model"
)

func TestRankIsBijection(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
	}{
		{"ascending", []int{1, 2, 3, 4, 5}},
		{"descending", []int{50, 40, 30, 20, 10}},
		{"sparse", []int{7, 103, 12, 9999, 56}},
		{"solo", []int{42}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			team := make([]model.Drone, len(tc.ids))
			for i, id := range tc.ids {
				team[i] = model.Drone{ID: id, Team: "red", Alive: true}
			}
			seen := make(map[int]bool)
			for i, self := range team {
				var mates []model.Drone
				mates = append(mates, team[:i]...)
				mates = append(mates, team[i+1:]...)
				r := Rank(self, mates)
				if r < 0 || r >= len(team) {
					t.Fatalf("rank %d out of range for team of %d", r, len(team))
				}
				if seen[r] {
					t.Fatalf("rank %d assigned twice", r)
				}
				seen[r] = true
			}
			if len(seen) != len(team) {
				t.Errorf("got %d distinct ranks, want %d", len(seen), len(team))
			}
		})
	}
}

func TestRankOrdersByID(t *testing.T) {
	mates := []model.Drone{{ID: 9}, {ID: 2}, {ID: 30}}
	if r := Rank(model.Drone{ID: 10}, mates); r != 2 {
		t.Errorf("Rank = %d, want 2", r)
	}
	if m := MinID(model.Drone{ID: 10}, mates); m != 2 {
		t.Errorf("MinID = %d, want 2", m)
	}
	if m := MinID(model.Drone{ID: 1}, mates); m != 1 {
		t.Errorf("MinID = %d, want 1 (self)", m)
	}
}
