package agent

import "testing"

func TestTeamOwnAndGet(t *testing.T) {
	team := NewTeam("red")
	if _, ok := team.Get(1); ok {
		t.Fatal("unexpected record before first write")
	}
	team.own(1).DefenseSteps = 3
	r, ok := team.Get(1)
	if !ok || r.DefenseSteps != 3 {
		t.Fatalf("Get(1) = %+v, %v", r, ok)
	}

	// Get hands out a copy.
	r.DefenseSteps = 99
	if got, _ := team.Get(1); got.DefenseSteps != 3 {
		t.Errorf("copy leaked back into registry: %d", got.DefenseSteps)
	}
}

func TestTeamResetDefense(t *testing.T) {
	team := NewTeam("red")
	team.own(1).DefenseSteps = 10
	team.own(2).DefenseSteps = 20
	team.own(3).DefenseSteps = 30

	team.ResetDefense(1, 2, 42)
	for id, want := range map[int]int{1: 0, 2: 0, 3: 30} {
		if r, _ := team.Get(id); r.DefenseSteps != want {
			t.Errorf("drone %d DefenseSteps = %d, want %d", id, r.DefenseSteps, want)
		}
	}
	if _, ok := team.Get(42); ok {
		t.Error("ResetDefense must not create records")
	}
}

func TestTeamAnyPrinted(t *testing.T) {
	team := NewTeam("red")
	team.own(1)
	team.own(2).Printed = true

	if !team.AnyPrinted(1, 2) {
		t.Error("expected printed")
	}
	if team.AnyPrinted(1, 3) {
		t.Error("unexpected printed")
	}
	if ids := team.ids(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("IDs = %v", ids)
	}
}
