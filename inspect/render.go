package inspect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/mlmodel"
	"go.viam.com/rdk/vision/objectdetection"
)

// ResourcesTable prints one row per resource, sorted by API and name.
func ResourcesTable(names []resource.Name) string {
	sorted := append([]resource.Name(nil), names...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "API", "Name"})
	for i, name := range sorted {
		t.AppendRow(table.Row{i + 1, name.API.String(), name.ShortName()})
	}
	return t.Render()
}

// FrameTable summarizes a frame.
func FrameTable(f Frame) string {
	dims := "unknown"
	if !f.Bounds.Empty() {
		dims = fmt.Sprintf("%dx%d", f.Bounds.Dx(), f.Bounds.Dy())
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Source", "MIME Type", "Bytes", "Dimensions"})
	t.AppendRow(table.Row{f.SourceName, f.MimeType, f.Size, dims})
	return t.Render()
}

// MetadataTable prints the model description followed by its input and output tensors.
func MetadataTable(md mlmodel.MLMetadata) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (%s)", md.ModelName, md.ModelType))
	t.AppendHeader(table.Row{"Direction", "Tensor", "Data Type", "Description"})
	for _, in := range md.Inputs {
		t.AppendRow(table.Row{"input", in.Name, in.DataType, in.Description})
	}
	for _, out := range md.Outputs {
		t.AppendRow(table.Row{"output", out.Name, out.DataType, out.Description})
	}
	var sb strings.Builder
	if md.ModelDescription != "" {
		sb.WriteString(md.ModelDescription)
		sb.WriteString("\n")
	}
	sb.WriteString(t.Render())
	return sb.String()
}

// DetectionsTable prints the label, score and bounding box of each detection.
func DetectionsTable(dets []objectdetection.Detection) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Label", "Confidence", "Bounding Box"})
	for i, d := range dets {
		box := ""
		if bb := d.BoundingBox(); bb != nil {
			box = bb.String()
		}
		t.AppendRow(table.Row{i + 1, d.Label(), fmt.Sprintf("%.3f", d.Score()), box})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(dets)})
	return t.Render()
}

// ReadingsTable prints sensor readings sorted by key.
func ReadingsTable(readings map[string]interface{}) string {
	keys := make([]string, 0, len(readings))
	for k := range readings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Reading", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, readings[k]})
	}
	return t.Render()
}

// String renders the whole report.
func (r *Report) String() string {
	return strings.Join([]string{
		"Resources:",
		ResourcesTable(r.Resources),
		"Frame:",
		FrameTable(r.Frame),
		"Model metadata:",
		MetadataTable(r.Metadata),
		"Detections:",
		DetectionsTable(r.Detections),
	}, "\n")
}
