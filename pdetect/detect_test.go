package pdetect

import (
	"image"
	"testing"

	"go.viam.com/rdk/vision/objectdetection"
	"go.viam.com/test"
)

func det(label string, score float64) objectdetection.Detection {
	return objectdetection.NewDetection(image.Rect(0, 0, 640, 480), image.Rect(10, 10, 50, 90), score, label)
}

func TestPersonDetected(t *testing.T) {
	for _, tc := range []struct {
		name     string
		dets     []objectdetection.Detection
		expected bool
	}{
		{"no detections", nil, false},
		{"empty detections", []objectdetection.Detection{}, false},
		{"capitalized person", []objectdetection.Detection{det("Person", 0.9)}, true},
		{"other class", []objectdetection.Detection{det("Dog", 0.99)}, false},
		{"score equal to threshold", []objectdetection.Detection{det("person", 0.5)}, false},
		{"upper case person first", []objectdetection.Detection{det("PERSON", 0.51), det("Car", 0.99)}, true},
		{"person after other classes", []objectdetection.Detection{det("Car", 0.99), det("person", 0.7)}, true},
		{"only weak people", []objectdetection.Detection{det("person", 0.2), det("Person", 0.5)}, false},
		{"label containing person", []objectdetection.Detection{det("personal_item", 0.9)}, false},
		{"nil entry skipped", []objectdetection.Detection{nil, det("person", 0.8)}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, PersonDetected(tc.dets), test.ShouldEqual, tc.expected)
		})
	}
}

func TestMatches(t *testing.T) {
	test.That(t, Matches(det("Cat", 0.8), "cat", 0.75), test.ShouldBeTrue)
	test.That(t, Matches(det("Cat", 0.75), "cat", 0.75), test.ShouldBeFalse)
	test.That(t, Matches(det("Cat", 0.8), "dog", 0.1), test.ShouldBeFalse)
	test.That(t, Matches(nil, "cat", 0), test.ShouldBeFalse)
}

func TestReading(t *testing.T) {
	test.That(t, Reading(true), test.ShouldResemble, map[string]interface{}{"person_detected": 1})
	test.That(t, Reading(false), test.ShouldResemble, map[string]interface{}{"person_detected": 0})
}
