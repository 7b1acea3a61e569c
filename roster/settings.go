package roster

import "strconv"

// =============================================================================
// SETTINGS - Keys and defaults shared with the collaborator store
// =============================================================================

// Setting keys the engine consumes. The store owns the values; the engine
// only parses them.
const (
	SettingDefaultTargetHours = "default_target_hours"
	SettingDurationMorning    = "duration_morning"
	SettingDurationAfternoon  = "duration_afternoon"
	SettingDurationNight      = "duration_night"
	SettingStaffingMorning    = "staffing_morning"
	SettingStaffingAfternoon  = "staffing_afternoon"
	SettingStaffingNight      = "staffing_night"
)

// DefaultSettings are seeded into a fresh store.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingDefaultTargetHours: "160",
		SettingDurationMorning:    "7",
		SettingDurationAfternoon:  "8",
		SettingDurationNight:      "8",
		SettingStaffingMorning:    "2",
		SettingStaffingAfternoon:  "2",
		SettingStaffingNight:      "1",
	}
}

var durationKeys = map[ShiftType]string{
	ShiftMorning:   SettingDurationMorning,
	ShiftAfternoon: SettingDurationAfternoon,
	ShiftNight:     SettingDurationNight,
}

var staffingKeys = map[ShiftType]string{
	ShiftMorning:   SettingStaffingMorning,
	ShiftAfternoon: SettingStaffingAfternoon,
	ShiftNight:     SettingStaffingNight,
}

// ParseShiftConfig builds a ShiftConfig from raw settings. A missing or
// non-numeric duration/staffing value is fatal: the caller must not start
// a generation or repair pass with a partial configuration.
func ParseShiftConfig(settings map[string]string) (ShiftConfig, error) {
	cfg := ShiftConfig{
		Durations: make(map[ShiftType]int, len(durationKeys)),
		Staffing:  make(map[ShiftType]int, len(staffingKeys)),
	}
	for _, shift := range ShiftTypes() {
		d, err := requireInt(settings, durationKeys[shift])
		if err != nil {
			return ShiftConfig{}, err
		}
		n, err := requireInt(settings, staffingKeys[shift])
		if err != nil {
			return ShiftConfig{}, err
		}
		cfg.Durations[shift] = d
		cfg.Staffing[shift] = n
	}
	return cfg, nil
}

func requireInt(settings map[string]string, key string) (int, error) {
	raw, ok := settings[key]
	if !ok || raw == "" {
		return 0, &ConfigError{Key: key, Cause: ErrMissingSetting}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Key: key, Value: raw, Cause: ErrInvalidSetting}
	}
	return n, nil
}
