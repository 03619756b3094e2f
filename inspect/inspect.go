// Package inspect pulls a frame, model metadata and filtered detections from a running
// robot and reads deployed pdetect sensors.
package inspect

import (
	"context"
	"image"
	"os"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/mlmodel"
	"go.viam.com/rdk/services/vision"
	"go.viam.com/rdk/vision/objectdetection"

	"github.com/dl-org/sensor-pd/pdetect"
)

// Machine is the part of a robot connection inspect needs.
type Machine interface {
	ResourceNames() []resource.Name
	ResourceByName(name resource.Name) (resource.Resource, error)
}

// Options names the resources to inspect and how to filter detections.
type Options struct {
	CameraName    string
	ModelName     string
	DetectorName  string
	Filter        Filter
	SaveFramePath string
}

// DefaultOptions matches the resource names of the people detection setup.
func DefaultOptions() Options {
	return Options{
		CameraName:   "cam",
		ModelName:    "people",
		DetectorName: pdetect.DefaultDetectorName,
		Filter: Filter{
			Label:         pdetect.PersonLabel,
			MinConfidence: pdetect.ConfidenceThreshold,
		},
	}
}

// Filter keeps detections of one label above a confidence.
type Filter struct {
	Label         string
	MinConfidence float64
}

// Apply returns the detections that match f, in their original order.
func (f Filter) Apply(dets []objectdetection.Detection) []objectdetection.Detection {
	return lo.Filter(dets, func(d objectdetection.Detection, _ int) bool {
		return pdetect.Matches(d, f.Label, f.MinConfidence)
	})
}

// Frame describes the image pulled from a camera.
type Frame struct {
	SourceName string
	MimeType   string
	Size       int
	Bounds     image.Rectangle
	Data       []byte
}

// Report is everything one inspection gathered.
type Report struct {
	Resources  []resource.Name
	Frame      Frame
	Metadata   mlmodel.MLMetadata
	Detections []objectdetection.Detection
}

func lookup[T resource.Resource](m Machine, name resource.Name) (T, error) {
	var zero T
	res, err := m.ResourceByName(name)
	if err != nil {
		return zero, errors.Wrapf(err, "could not find %s", name)
	}
	typed, ok := res.(T)
	if !ok {
		return zero, errors.Errorf("resource %s has unexpected type %T", name, res)
	}
	return typed, nil
}

// FetchFrame gets one image from cam. A frame that cannot be decoded is still returned, with
// empty bounds.
func FetchFrame(ctx context.Context, cam camera.ImagesSource, logger logging.Logger) (Frame, error) {
	images, _, err := cam.Images(ctx, nil, nil)
	if err != nil {
		return Frame{}, errors.Wrap(err, "could not get images from camera")
	}
	if len(images) == 0 {
		return Frame{}, errors.New("camera returned no images")
	}
	named := images[0]
	data, err := named.Bytes(ctx)
	if err != nil {
		return Frame{}, errors.Wrap(err, "could not read image bytes")
	}
	frame := Frame{
		SourceName: named.SourceName,
		MimeType:   named.MimeType(),
		Size:       len(data),
		Data:       data,
	}
	if img, err := named.Image(ctx); err == nil {
		frame.Bounds = img.Bounds()
	} else {
		logger.Debugw("could not decode frame", "source", named.SourceName, "error", err)
	}
	return frame, nil
}

// ModelMetadata reads the metadata of an ML model service.
func ModelMetadata(ctx context.Context, svc mlmodel.Service) (mlmodel.MLMetadata, error) {
	md, err := svc.Metadata(ctx)
	if err != nil {
		return mlmodel.MLMetadata{}, errors.Wrap(err, "could not get model metadata")
	}
	return md, nil
}

// Detections queries svc for detections on cameraName and applies f.
func Detections(
	ctx context.Context,
	svc vision.Service,
	cameraName string,
	f Filter,
) ([]objectdetection.Detection, error) {
	dets, err := svc.DetectionsFromCamera(ctx, cameraName, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get detections from camera %q", cameraName)
	}
	return f.Apply(dets), nil
}

// Run gathers a Report from m. The frame is written to opts.SaveFramePath when set.
func Run(ctx context.Context, m Machine, opts Options, logger logging.Logger) (*Report, error) {
	report := &Report{Resources: m.ResourceNames()}

	cam, err := lookup[camera.Camera](m, camera.Named(opts.CameraName))
	if err != nil {
		return nil, err
	}
	if report.Frame, err = FetchFrame(ctx, cam, logger); err != nil {
		return nil, err
	}
	if opts.SaveFramePath != "" {
		//nolint:gosec
		if err := os.WriteFile(opts.SaveFramePath, report.Frame.Data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "could not save frame to %s", opts.SaveFramePath)
		}
		logger.Infof("saved %d byte frame to %s", report.Frame.Size, opts.SaveFramePath)
	}

	model, err := lookup[mlmodel.Service](m, mlmodel.Named(opts.ModelName))
	if err != nil {
		return nil, err
	}
	if report.Metadata, err = ModelMetadata(ctx, model); err != nil {
		return nil, err
	}

	detector, err := lookup[vision.Service](m, vision.Named(opts.DetectorName))
	if err != nil {
		return nil, err
	}
	if report.Detections, err = Detections(ctx, detector, opts.CameraName, opts.Filter); err != nil {
		return nil, err
	}
	logger.Debugf("%d detections kept for label %q", len(report.Detections), opts.Filter.Label)
	return report, nil
}

// ReadSensor returns the readings of the named sensor.
func ReadSensor(ctx context.Context, m Machine, name string) (map[string]interface{}, error) {
	s, err := lookup[sensor.Sensor](m, sensor.Named(name))
	if err != nil {
		return nil, err
	}
	readings, err := s.Readings(ctx, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get readings from %q", name)
	}
	return readings, nil
}
