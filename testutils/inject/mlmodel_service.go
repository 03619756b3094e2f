package inject

import (
	"context"

	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/services/mlmodel"
)

// MLModelService is an injected ML model service.
type MLModelService struct {
	mlmodel.Service
	name         resource.Name
	MetadataFunc func(ctx context.Context) (mlmodel.MLMetadata, error)
}

// NewMLModelService returns a new injected ML model service.
func NewMLModelService(name string) *MLModelService {
	return &MLModelService{name: mlmodel.Named(name)}
}

// Name returns the name of the resource.
func (s *MLModelService) Name() resource.Name {
	return s.name
}

// Metadata calls the injected Metadata or the real version.
func (s *MLModelService) Metadata(ctx context.Context) (mlmodel.MLMetadata, error) {
	if s.MetadataFunc == nil {
		return s.Service.Metadata(ctx)
	}
	return s.MetadataFunc(ctx)
}
