// Package component models the candidates competing for selection: their
// identity, their lazily resolved metadata descriptor, and the resolution
// gateway that supplies it.
package component

import "fmt"

// ID identifies one component instance at one version.
type ID struct {
	Group   string
	Name    string
	Version string
}

// String renders the ID as "group:name:version". The group segment is
// omitted when empty.
func (id ID) String() string {
	if id.Group == "" {
		return fmt.Sprintf("%s:%s", id.Name, id.Version)
	}
	return fmt.Sprintf("%s:%s:%s", id.Group, id.Name, id.Version)
}
