package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"

	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/data"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/mlmodel"
	"go.viam.com/rdk/utils"
	"go.viam.com/rdk/vision/objectdetection"
	"go.viam.com/test"

	"github.com/dl-org/sensor-pd/testutils/inject"
)

type fakeMachine struct {
	*inject.Robot
	closed   bool
	closeErr error
}

func (m *fakeMachine) Close(ctx context.Context) error {
	m.closed = true
	return m.closeErr
}

func newFakeMachine(t *testing.T) *fakeMachine {
	t.Helper()
	frame, err := camera.NamedImageFromImage(image.NewRGBA(image.Rect(0, 0, 8, 8)), "cam", utils.MimeTypePNG, data.Annotations{})
	test.That(t, err, test.ShouldBeNil)

	cam := inject.NewCamera("front")
	cam.ImagesFunc = func(
		ctx context.Context,
		filterSourceNames []string,
		extra map[string]interface{},
	) ([]camera.NamedImage, resource.ResponseMetadata, error) {
		return []camera.NamedImage{frame}, resource.ResponseMetadata{}, nil
	}

	model := inject.NewMLModelService("people")
	model.MetadataFunc = func(ctx context.Context) (mlmodel.MLMetadata, error) {
		return mlmodel.MLMetadata{ModelName: "people", ModelType: "object_detector"}, nil
	}

	detector := inject.NewVisionService("myPeopleDetector")
	detector.DetectionsFromCameraFunc = func(
		ctx context.Context,
		cameraName string,
		extra map[string]interface{},
	) ([]objectdetection.Detection, error) {
		return []objectdetection.Detection{
			objectdetection.NewDetection(image.Rect(0, 0, 8, 8), image.Rect(0, 0, 4, 4), 0.42, "Person"),
			objectdetection.NewDetection(image.Rect(0, 0, 8, 8), image.Rect(4, 4, 8, 8), 0.97, "Bicycle"),
		}, nil
	}

	pd := inject.NewSensor("pd")
	pd.ReadingsFunc = func(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"person_detected": 0}, nil
	}

	return &fakeMachine{Robot: inject.NewRobot(cam, model, detector, pd)}
}

func runApp(t *testing.T, m *fakeMachine, dialErr error, args ...string) (string, *dialArgs, error) {
	t.Helper()
	var got dialArgs
	dial := func(ctx context.Context, address, apiKeyID, apiKey string, logger logging.Logger) (machine, error) {
		got = dialArgs{address: address, apiKeyID: apiKeyID, apiKey: apiKey}
		if dialErr != nil {
			return nil, dialErr
		}
		return m, nil
	}
	app := newApp(logging.NewTestLogger(t), dial)
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	base := []string{"inspect", "--address", "robot.local", "--api-key-id", "key-id", "--api-key", "secret"}
	err := app.RunContext(context.Background(), append(base, args...))
	return out.String(), &got, err
}

type dialArgs struct {
	address, apiKeyID, apiKey string
}

func TestDetectionsCommand(t *testing.T) {
	t.Run("custom filter", func(t *testing.T) {
		m := newFakeMachine(t)
		out, dialed, err := runApp(t, m, nil,
			"detections", "--camera", "front", "--label", "bicycle", "--min-confidence", "0.9")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, dialed, test.ShouldResemble, &dialArgs{address: "robot.local", apiKeyID: "key-id", apiKey: "secret"})
		test.That(t, out, test.ShouldContainSubstring, "Bicycle")
		test.That(t, out, test.ShouldContainSubstring, "0.970")
		test.That(t, out, test.ShouldNotContainSubstring, "0.420")
		test.That(t, m.closed, test.ShouldBeTrue)
	})

	t.Run("default filter drops weak people", func(t *testing.T) {
		m := newFakeMachine(t)
		out, _, err := runApp(t, m, nil, "detections", "--camera", "front")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldNotContainSubstring, "0.420")
		test.That(t, out, test.ShouldNotContainSubstring, "Bicycle")
	})

	t.Run("missing camera closes connection", func(t *testing.T) {
		m := newFakeMachine(t)
		_, _, err := runApp(t, m, nil, "detections")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, m.closed, test.ShouldBeTrue)
	})

	t.Run("close error is reported", func(t *testing.T) {
		m := newFakeMachine(t)
		m.closeErr = errors.New("hang up failed")
		_, _, err := runApp(t, m, nil, "detections", "--camera", "front")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "hang up failed")
	})

	t.Run("dial error", func(t *testing.T) {
		m := newFakeMachine(t)
		_, _, err := runApp(t, m, errors.New("no route"), "detections")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "robot.local")
		test.That(t, m.closed, test.ShouldBeFalse)
	})
}

func TestReadingsCommand(t *testing.T) {
	m := newFakeMachine(t)
	out, _, err := runApp(t, m, nil, "readings", "--sensor", "pd")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "person_detected")
	test.That(t, m.closed, test.ShouldBeTrue)
}
