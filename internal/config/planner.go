package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlannerDefaults seed the settings of users that never saved their own.
type PlannerDefaults struct {
	AvailableHoursPerDay   float64 `yaml:"available_hours_per_day"`
	UnscheduledHoursPerDay float64 `yaml:"unscheduled_hours_per_day"`
	// HorizonDays places the default horizon this many days after today.
	HorizonDays int `yaml:"horizon_days"`
}

// DefaultPlannerDefaults returns the built-in defaults, overridable by
// PLANNER_AVAILABLE_HOURS, PLANNER_UNSCHEDULED_HOURS and PLANNER_HORIZON_DAYS.
func DefaultPlannerDefaults() PlannerDefaults {
	return PlannerDefaults{
		AvailableHoursPerDay:   getEnvFloat("PLANNER_AVAILABLE_HOURS", 8),
		UnscheduledHoursPerDay: getEnvFloat("PLANNER_UNSCHEDULED_HOURS", 4),
		HorizonDays:            getEnvInt("PLANNER_HORIZON_DAYS", 28),
	}
}

// Normalize fills zero or invalid fields from DefaultPlannerDefaults and caps
// the unscheduled budget at the available one.
func (p *PlannerDefaults) Normalize() {
	def := DefaultPlannerDefaults()
	if p.AvailableHoursPerDay <= 0 || p.AvailableHoursPerDay > 24 {
		p.AvailableHoursPerDay = def.AvailableHoursPerDay
	}
	if p.UnscheduledHoursPerDay <= 0 {
		p.UnscheduledHoursPerDay = def.UnscheduledHoursPerDay
	}
	if p.UnscheduledHoursPerDay > p.AvailableHoursPerDay {
		p.UnscheduledHoursPerDay = p.AvailableHoursPerDay
	}
	if p.HorizonDays <= 0 {
		p.HorizonDays = def.HorizonDays
	}
}

// LoadPlannerDefaults reads a YAML file of planner defaults. An empty path
// yields the built-in defaults.
func LoadPlannerDefaults(path string) (PlannerDefaults, error) {
	p := DefaultPlannerDefaults()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read planner config: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse planner config: %w", err)
	}
	p.Normalize()
	return p, nil
}
