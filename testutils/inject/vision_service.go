package inject

import (
	"context"

	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/vision"
	"go.viam.com/rdk/vision/objectdetection"
)

// VisionService is an injected vision service.
type VisionService struct {
	vision.Service
	name                     resource.Name
	DetectionsFromCameraFunc func(
		ctx context.Context,
		cameraName string,
		extra map[string]interface{},
	) ([]objectdetection.Detection, error)
	CloseFunc func(ctx context.Context) error
}

// NewVisionService returns a new injected vision service.
func NewVisionService(name string) *VisionService {
	return &VisionService{name: vision.Named(name)}
}

// Name returns the name of the resource.
func (vs *VisionService) Name() resource.Name {
	return vs.name
}

// DetectionsFromCamera calls the injected DetectionsFromCamera or the real variant.
func (vs *VisionService) DetectionsFromCamera(
	ctx context.Context,
	cameraName string,
	extra map[string]interface{},
) ([]objectdetection.Detection, error) {
	if vs.DetectionsFromCameraFunc == nil {
		return vs.Service.DetectionsFromCamera(ctx, cameraName, extra)
	}
	return vs.DetectionsFromCameraFunc(ctx, cameraName, extra)
}

// Close calls the injected Close or the real version.
func (vs *VisionService) Close(ctx context.Context) error {
	if vs.CloseFunc == nil {
		if vs.Service == nil {
			return nil
		}
		return vs.Service.Close(ctx)
	}
	return vs.CloseFunc(ctx)
}
