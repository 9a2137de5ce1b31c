// Package tuning holds the policy parameters of the drone pilot. Every
// distance, angle and threshold the rules use lives here so a match can
// be replayed with different numbers without a rebuild.
package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	WeaponRange   float64 `yaml:"weapon_range"`
	ArrivalRadius float64 `yaml:"arrival_radius"`

	DefenseRingRadius  float64   `yaml:"defense_ring_radius"`
	DefenseRingOffsets []float64 `yaml:"defense_ring_offsets"`
	DefenseRingAngles  []float64 `yaml:"defense_ring_angles"`
	DefenseRingSpacing float64   `yaml:"defense_ring_spacing"`

	AttackFanMargin        float64   `yaml:"attack_fan_margin"`
	AttackFanOffsets       []float64 `yaml:"attack_fan_offsets"`
	AttackFanStartAngle    float64   `yaml:"attack_fan_start_angle"`
	AttackFanAngleStep     float64   `yaml:"attack_fan_angle_step"`
	AttackFanBaseClearance float64   `yaml:"attack_fan_base_clearance"`
	FieldEdgeMargin        float64   `yaml:"field_edge_margin"`

	Resources Resources `yaml:"resources"`
	Guard     Guard     `yaml:"guard"`
	Policy    Policy    `yaml:"policy"`
}

type Resources struct {
	RichPayload      int     `yaml:"rich_payload"`
	MinBaseDistance  float64 `yaml:"min_base_distance"`
	ReachFactor      float64 `yaml:"reach_factor"`
	NearlyFullAbove  int     `yaml:"nearly_full_above"`
	Full             int     `yaml:"full"`
	HarvestQuotaDiv  int     `yaml:"harvest_quota_divisor"`
	ScavengeRadius   float64 `yaml:"scavenge_radius"`
	ReturnHomeRadius float64 `yaml:"return_home_radius"`
}

type Guard struct {
	ProtectMin       float64 `yaml:"protect_min"`
	DroneProtectMax  float64 `yaml:"drone_protect_max"`
	BaseProtectMax   float64 `yaml:"base_protect_max"`
	LineClearance    float64 `yaml:"line_clearance"`
	ConeAngle        float64 `yaml:"cone_angle"`
	ConeDistance     float64 `yaml:"cone_distance"`
	ShooterClearance float64 `yaml:"shooter_clearance"`
	TargetClearance  float64 `yaml:"target_clearance"`
	EngageMargin     float64 `yaml:"engage_margin"`
	TurnMargin       float64 `yaml:"turn_margin"`
	FireMargin       float64 `yaml:"fire_margin"`
	SidestepDistance float64 `yaml:"sidestep_distance"`
	WoundedHealth    float64 `yaml:"wounded_health"`
}

type Policy struct {
	StallEscapeSteps    int `yaml:"stall_escape_steps"`
	StallSidestepSteps  int `yaml:"stall_sidestep_steps"`
	DefenseWaitSteps    int `yaml:"defense_wait_steps"`
	FewEnemies          int `yaml:"few_enemies"`
	SwarmEnemies        int `yaml:"swarm_enemies"`
	SmallTeam           int `yaml:"small_team"`
	ForcedTargetSurplus int `yaml:"forced_target_surplus"`
}

// Default returns the parameters the pilot was tuned with.
func Default() Tuning {
	return Tuning{
		WeaponRange:   635,
		ArrivalRadius: 20,

		DefenseRingRadius:  160,
		DefenseRingOffsets: []float64{15, 0, -20, 0, 15},
		DefenseRingAngles:  []float64{60, 30, 0, -30, -60},
		DefenseRingSpacing: 40,

		AttackFanMargin:        20,
		AttackFanOffsets:       []float64{20, 15, 10, 5, 0, 5, 10, 15, 20},
		AttackFanStartAngle:    24,
		AttackFanAngleStep:     -6,
		AttackFanBaseClearance: 100,
		FieldEdgeMargin:        50,

		Resources: Resources{
			RichPayload:      90,
			MinBaseDistance:  250,
			ReachFactor:      0.75,
			NearlyFullAbove:  75,
			Full:             100,
			HarvestQuotaDiv:  4,
			ScavengeRadius:   450,
			ReturnHomeRadius: 250,
		},
		Guard: Guard{
			ProtectMin:       50,
			DroneProtectMax:  300,
			BaseProtectMax:   350,
			LineClearance:    20,
			ConeAngle:        30,
			ConeDistance:     45,
			ShooterClearance: 25,
			TargetClearance:  20,
			EngageMargin:     20,
			TurnMargin:       100,
			FireMargin:       50,
			SidestepDistance: 15,
			WoundedHealth:    70,
		},
		Policy: Policy{
			StallEscapeSteps:    500,
			StallSidestepSteps:  25,
			DefenseWaitSteps:    200,
			FewEnemies:          5,
			SwarmEnemies:        5,
			SmallTeam:           3,
			ForcedTargetSurplus: 2,
		},
	}
}

// Load reads a tuning file on top of the defaults. Keys absent from the
// file keep their default; unknown keys are rejected.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects parameter sets the planner cannot work with.
func (t Tuning) Validate() error {
	if len(t.DefenseRingOffsets) == 0 || len(t.DefenseRingOffsets) != len(t.DefenseRingAngles) {
		return fmt.Errorf("defense ring needs matching offsets and angles, got %d and %d",
			len(t.DefenseRingOffsets), len(t.DefenseRingAngles))
	}
	if t.WeaponRange <= 0 {
		return fmt.Errorf("weapon_range must be positive, got %v", t.WeaponRange)
	}
	if t.Resources.HarvestQuotaDiv <= 0 {
		return fmt.Errorf("harvest_quota_divisor must be positive, got %d", t.Resources.HarvestQuotaDiv)
	}
	return nil
}
