package ggscript

import "github.com/gogpu/ggscript/resource"

// Resolver looks up the resources a script refers to by id. A miss turns
// the opcode that needed the resource into a no-op.
//
// *resource.Registry implements Resolver.
type Resolver interface {
	ResolveImage(id string) (resource.Image, bool)
	ResolveFont(id string) (resource.Font, bool)
}

// emptyResolver resolves nothing.
type emptyResolver struct{}

func (emptyResolver) ResolveImage(string) (resource.Image, bool) { return resource.Image{}, false }
func (emptyResolver) ResolveFont(string) (resource.Font, bool)   { return resource.Font{}, false }

var _ Resolver = (*resource.Registry)(nil)
