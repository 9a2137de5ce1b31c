package rules

import (
	"github.com/nstehr/elerium/elerium-core/geom"
	"github.com/nstehr/elerium/elerium-core/model"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

// Protected reports whether an enemy sits where its mothership's guns
// cover it. A drone is covered inside (ProtectMin, DroneProtectMax] of its
// own living base; a base is covered while at least one of its drones is
// inside (ProtectMin, BaseProtectMax].
func Protected(e Entity, snap Snapshot, g tuning.Guard) bool {
	switch e.Ref.Kind {
	case model.KindDrone:
		for _, m := range snap.EnemyBases {
			if m.Team != e.Team {
				continue
			}
			d := geom.Distance(e.Pos, m.Pos())
			if d > g.ProtectMin && d <= g.DroneProtectMax {
				return true
			}
		}
	case model.KindMothership:
		for _, d := range snap.EnemyDrones {
			if d.Team != e.Team {
				continue
			}
			dist := geom.Distance(e.Pos, d.Pos())
			if dist > g.ProtectMin && dist <= g.BaseProtectMax {
				return true
			}
		}
	}
	return false
}

// OnFire reports whether p is within weapon range of any living enemy drone.
func OnFire(p geom.Point, snap Snapshot, weaponRange float64) bool {
	for _, d := range snap.EnemyDrones {
		if geom.Distance(d.Pos(), p) <= weaponRange {
			return true
		}
	}
	return false
}

// SafeToFire checks a shot from position at enemy against every teammate.
// A teammate blocks the shot when it is close to the firing line, inside
// a narrow cone near the shooter, hugging the shooter, or hugging the
// target.
func SafeToFire(position, enemy geom.Point, teammates []model.Drone, g tuning.Guard) bool {
	for _, tm := range teammates {
		p := tm.Pos()
		line := geom.DistanceToLine(p, position, enemy)
		toShooter := geom.Distance(p, position)
		switch {
		case line < g.LineClearance:
			return false
		case geom.AngleAt(position, p, enemy) < g.ConeAngle && toShooter < g.ConeDistance:
			return false
		case toShooter < g.ShooterClearance:
			return false
		case geom.Distance(p, enemy) < g.TargetClearance:
			return false
		}
	}
	return true
}
