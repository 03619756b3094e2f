package pdetect

import (
	"go.viam.com/rdk/resource"
)

// DefaultDetectorName is the vision service a pdetect sensor depends on when its config
// does not name one.
const DefaultDetectorName = "myPeopleDetector"

// Config describes a pdetect sensor. CameraName is required; DetectorName selects the
// vision service dependency and falls back to DefaultDetectorName when empty.
type Config struct {
	CameraName   string `json:"camera_name"`
	DetectorName string `json:"detector_name,omitempty"`
}

// Validate ensures all parts of the config are valid and returns the vision service as the
// single required dependency.
func (cfg *Config) Validate(path string) ([]string, []string, error) {
	if cfg.CameraName == "" {
		return nil, nil, resource.NewConfigValidationFieldRequiredError(path, "camera_name")
	}
	return []string{cfg.detector()}, nil, nil
}

func (cfg *Config) detector() string {
	if cfg.DetectorName == "" {
		return DefaultDetectorName
	}
	return cfg.DetectorName
}
