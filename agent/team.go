package agent

import "sort"

// Record holds the counters a drone exposes to its teammates.
type Record struct {
	DefenseSteps int // heartbeats spent standing on the defense point
	StalledSteps int // heartbeats without moving while off the defense point
	Printed      bool
	Stats        Stats
}

// Team is the shared registry of per-drone records for one team. Each pilot
// writes only its own record; teammates read copies. A Team belongs to a
// single connection whose callbacks run one at a time, so it is not locked.
type Team struct {
	Name    string
	records map[int]*Record
}

func NewTeam(name string) *Team {
	return &Team{Name: name, records: make(map[int]*Record)}
}

// own returns the writable record for id, creating it on first use.
func (t *Team) own(id int) *Record {
	r, ok := t.records[id]
	if !ok {
		r = &Record{}
		t.records[id] = r
	}
	return r
}

// Get returns a copy of the record for id.
func (t *Team) Get(id int) (Record, bool) {
	r, ok := t.records[id]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// ResetDefense zeroes the time-in-defense counter of every listed drone.
// It is the one write a pilot makes to records other than its own.
func (t *Team) ResetDefense(ids ...int) {
	for _, id := range ids {
		if r, ok := t.records[id]; ok {
			r.DefenseSteps = 0
		}
	}
}

// AnyPrinted reports whether any of the listed drones already emitted the
// statistics report.
func (t *Team) AnyPrinted(ids ...int) bool {
	for _, id := range ids {
		if r, ok := t.records[id]; ok && r.Printed {
			return true
		}
	}
	return false
}

// ids returns the drone IDs with a record, ascending.
func (t *Team) ids() []int {
	ids := make([]int, 0, len(t.records))
	for id := range t.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
