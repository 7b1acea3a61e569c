/*
errors.go - Error taxonomy for the scheduling engine

PURPOSE:
  Only configuration/input problems abort a generation or repair call.
  Everything algorithmic that can go wrong mid-pass (no eligible employee,
  under-staffing) is collected as a Warning and returned alongside a valid
  result; an unresolved absence conflict in repair stays silent and shows
  up only as an unchanged record.

USAGE:
  if errors.Is(err, roster.ErrMissingSetting) { ... }

SEE ALSO:
  - settings.go: ParseShiftConfig, the main producer of these errors
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingSetting is returned when a required duration/staffing
	// setting is absent. Fatal to the current call.
	ErrMissingSetting = errors.New("missing required setting")

	// ErrInvalidSetting is returned when a required setting exists but is
	// not numeric. Fatal to the current call.
	ErrInvalidSetting = errors.New("invalid setting value")

	// ErrEmployeeNotFound is returned by stores when a referenced
	// employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrSnapshotNotFound is returned when no roster snapshot has been
	// saved for the requested month.
	ErrSnapshotNotFound = errors.New("roster snapshot not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError reports which setting made generation or repair abort.
type ConfigError struct {
	Key   string
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("setting %q: %v", e.Key, e.Cause)
	}
	return fmt.Sprintf("setting %q = %q: %v", e.Key, e.Value, e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// IsConfigError reports whether err is fatal input/configuration trouble,
// as opposed to a warning-level staffing shortfall.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingSetting) || errors.Is(err, ErrInvalidSetting)
}
