package rules

import (
	"sort"

	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// DefenseRing returns teamSize standing points in front of the base,
// most forward (closest to the arena center) first. Index i belongs to
// the drone of rank i.
//
// Samples pair the configured offsets and angles; when the team outgrows
// the pairs, further samples wrap onto an outer ring.
func DefenseRing(base, center geom.Point, teamSize int, t tuning.Tuning) []geom.Point {
	pairs := len(t.DefenseRingOffsets)
	if pairs == 0 || teamSize <= 0 {
		return nil
	}
	n := max(teamSize, pairs)
	points := make([]geom.Point, 0, n)
	for i := range n {
		radius := t.DefenseRingRadius + t.DefenseRingOffsets[i%pairs] + float64(i/pairs)*t.DefenseRingSpacing
		v := geom.FromPoints(base, center, radius).Rotate(t.DefenseRingAngles[i%pairs])
		points = append(points, base.Add(v))
	}
	sort.SliceStable(points, func(i, j int) bool {
		return geom.Distance(center, points[i]) < geom.Distance(center, points[j])
	})
	return points[:teamSize]
}

// AttackFan returns standing points just outside weapon range of the
// enemy, on the side facing our base, nearest to the base first. Points
// off the field or crowding the base are dropped, so the fan may be
// shorter than the team or empty.
func AttackFan(enemy, base geom.Point, fieldWidth, fieldHeight int, t tuning.Tuning) []geom.Point {
	reach := t.WeaponRange + t.AttackFanMargin
	angle := t.AttackFanStartAngle
	var points []geom.Point
	for _, off := range t.AttackFanOffsets {
		p := enemy.Add(geom.FromPoints(enemy, base, reach+off).Rotate(angle))
		angle += t.AttackFanAngleStep
		if !inField(p, fieldWidth, fieldHeight, t.FieldEdgeMargin) {
			continue
		}
		if geom.Distance(base, p) < t.AttackFanBaseClearance {
			continue
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return geom.Distance(base, points[i]) < geom.Distance(base, points[j])
	})
	return points
}

func inField(p geom.Point, w, h int, margin float64) bool {
	return p.X >= margin && p.X < float64(w)-margin &&
		p.Y >= margin && p.Y < float64(h)-margin
}

// SlotAt picks the rank's point, or fallback when the list is too short.
func SlotAt(points []geom.Point, rank int, fallback geom.Point) geom.Point {
	if rank >= 0 && rank < len(points) {
		return points[rank]
	}
	return fallback
}
