package pdetect

import (
	"strings"

	"github.com/samber/lo"
	"go.viam.com/rdk/vision/objectdetection"
)

const (
	// PersonLabel is the class label counted as a person, compared case-insensitively.
	PersonLabel = "person"
	// ConfidenceThreshold is the score a detection must strictly exceed to count.
	ConfidenceThreshold = 0.5
	// ReadingKey is the only key of a pdetect reading.
	ReadingKey = "person_detected"
)

// Matches reports whether d carries label (ignoring case) with a score strictly above
// minConfidence.
func Matches(d objectdetection.Detection, label string, minConfidence float64) bool {
	if d == nil {
		return false
	}
	return strings.EqualFold(d.Label(), label) && d.Score() > minConfidence
}

// PersonDetected reports whether any detection is a person above ConfidenceThreshold.
// Detections are checked in order and the first match ends the scan.
func PersonDetected(dets []objectdetection.Detection) bool {
	return lo.ContainsBy(dets, func(d objectdetection.Detection) bool {
		return Matches(d, PersonLabel, ConfidenceThreshold)
	})
}

// Reading converts a detection result into the sensor's single-key reading.
func Reading(detected bool) map[string]interface{} {
	if detected {
		return map[string]interface{}{ReadingKey: 1}
	}
	return map[string]interface{}{ReadingKey: 0}
}
