// Package pdetect implements dl-org:sensor-pd:pdetect, a sensor that reports whether a
// vision service currently sees a person through a configured camera.
package pdetect

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/vision"
)

// Model is the full model definition.
var Model = resource.NewModel("dl-org", "sensor-pd", "pdetect")

func init() {
	resource.RegisterComponent(sensor.API, Model, resource.Registration[sensor.Sensor, *Config]{
		Constructor: newSensor,
	})
}

type pdetect struct {
	resource.Named
	resource.TriviallyCloseable

	logger logging.Logger

	mu         sync.RWMutex
	cameraName string
	detector   vision.Service
}

func newSensor(ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (sensor.Sensor, error) {
	s := &pdetect{
		Named:  conf.ResourceName().AsNamed(),
		logger: logger,
	}
	if err := s.Reconfigure(ctx, deps, conf); err != nil {
		return nil, err
	}
	return s, nil
}

// Reconfigure swaps in the camera and vision service named by conf. The previous pair stays
// in place if either cannot be resolved.
func (s *pdetect) Reconfigure(ctx context.Context, deps resource.Dependencies, conf resource.Config) error {
	cfg, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return err
	}
	if _, _, err := cfg.Validate(conf.ResourceName().String()); err != nil {
		return err
	}

	name := cfg.detector()
	detector, err := resource.FromProvider[vision.Service](deps, vision.Named(name))
	if err != nil {
		return &DependencyMissingError{Name: name, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraName = cfg.CameraName
	s.detector = detector
	s.logger.Debugf("using vision service %q on camera %q", name, cfg.CameraName)
	return nil
}

// Readings returns {"person_detected": 1} when a person is in view and 0 otherwise.
func (s *pdetect) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	result, err := s.DoCommand(ctx, map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	detected, err := cast.ToIntE(result[ReadingKey])
	if err != nil {
		return nil, errors.Wrapf(err, "bad %s value", ReadingKey)
	}
	return map[string]interface{}{ReadingKey: detected}, nil
}

// DoCommand ignores cmd and runs one detection query against the configured camera.
func (s *pdetect) DoCommand(ctx context.Context, cmd map[string]interface{}) (map[string]interface{}, error) {
	s.mu.RLock()
	cameraName, detector := s.cameraName, s.detector
	s.mu.RUnlock()

	if detector == nil {
		return nil, ErrNotConfigured
	}

	dets, err := detector.DetectionsFromCamera(ctx, cameraName, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get detections from camera %q", cameraName)
	}
	detected := PersonDetected(dets)
	s.logger.Debugf("%d detections from %q, person detected: %t", len(dets), cameraName, detected)
	return Reading(detected), nil
}
