package inject

import (
	"sort"

	"go.viam.com/rdk/resource"
)

// Robot is an injected machine that serves a fixed set of resources.
type Robot struct {
	Resources          map[resource.Name]resource.Resource
	ResourceNamesFunc  func() []resource.Name
	ResourceByNameFunc func(name resource.Name) (resource.Resource, error)
}

// NewRobot returns an injected robot serving the given resources under their own names.
func NewRobot(resources ...resource.Resource) *Robot {
	r := &Robot{Resources: make(map[resource.Name]resource.Resource, len(resources))}
	for _, res := range resources {
		r.Resources[res.Name()] = res
	}
	return r
}

// ResourceNames calls the injected ResourceNames or lists the served resources.
func (r *Robot) ResourceNames() []resource.Name {
	if r.ResourceNamesFunc != nil {
		return r.ResourceNamesFunc()
	}
	names := make([]resource.Name, 0, len(r.Resources))
	for name := range r.Resources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names
}

// ResourceByName calls the injected ResourceByName or looks up a served resource.
func (r *Robot) ResourceByName(name resource.Name) (resource.Resource, error) {
	if r.ResourceByNameFunc != nil {
		return r.ResourceByNameFunc(name)
	}
	res, ok := r.Resources[name]
	if !ok {
		return nil, resource.NewNotFoundError(name)
	}
	return res, nil
}
