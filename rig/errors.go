package rig

import (
	"errors"
	"fmt"

	"github.com/binzume/mocapretarget/skeleton"
)

// ErrInvalidConfig is matched by every error returned for a bad rig profile.
var ErrInvalidConfig = errors.New("invalid rig config")

// ConfigError describes why a rig profile was rejected.
type ConfigError struct {
	Joint  skeleton.JointID
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Joint == skeleton.Unspecified {
		return "rig: " + e.Reason
	}
	return fmt.Sprintf("rig: %v: %s", e.Joint, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func configError(j skeleton.JointID, format string, a ...interface{}) error {
	return &ConfigError{Joint: j, Reason: fmt.Sprintf(format, a...)}
}
