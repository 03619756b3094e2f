package inject

import (
	"context"

	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/resource"
)

// Camera is an injected camera.
type Camera struct {
	camera.Camera
	name       resource.Name
	ImagesFunc func(
		ctx context.Context,
		filterSourceNames []string,
		extra map[string]interface{},
	) ([]camera.NamedImage, resource.ResponseMetadata, error)
}

// NewCamera returns a new injected camera.
func NewCamera(name string) *Camera {
	return &Camera{name: camera.Named(name)}
}

// Name returns the name of the resource.
func (c *Camera) Name() resource.Name {
	return c.name
}

// Images calls the injected Images or the real version.
func (c *Camera) Images(
	ctx context.Context,
	filterSourceNames []string,
	extra map[string]interface{},
) ([]camera.NamedImage, resource.ResponseMetadata, error) {
	if c.ImagesFunc == nil {
		return c.Camera.Images(ctx, filterSourceNames, extra)
	}
	return c.ImagesFunc(ctx, filterSourceNames, extra)
}
