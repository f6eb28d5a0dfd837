// internal/app/system/industries/industries.go

// Package industries holds the industry/client-type taxonomy shared by
// opportunities and users. The registry is built once in bootstrap and
// injected into the features that validate against it, so the set of
// valid ids lives in exactly one place instead of ambient globals.
package industries

import "sort"

// Registry maps industry ids to display names. The same ids double as
// user client types; a user and an opportunity are compatible when the
// ids are equal.
type Registry struct {
	names map[int]string
}

// Industry is one taxonomy entry, used for listings.
type Industry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// New builds a registry from an id→name table. The table is copied.
func New(names map[int]string) *Registry {
	m := make(map[int]string, len(names))
	for id, name := range names {
		m[id] = name
	}
	return &Registry{names: m}
}

// Default returns the registry with the platform's standard taxonomy.
func Default() *Registry {
	return New(map[int]string{
		1:  "Technology",
		2:  "Health",
		3:  "Automotive",
		4:  "Food & Beverage",
		5:  "Energy",
		6:  "Education",
		7:  "Fashion",
		8:  "Tourism",
		9:  "Entertainment",
		10: "Construction",
		11: "Finance",
		12: "Real Estate",
		13: "Media",
		14: "Transportation",
		15: "Agriculture",
		16: "Manufacturing",
		17: "Telecommunications",
		18: "Professional Services",
		19: "Environment",
		20: "Arts & Culture",
	})
}

// IsValid reports whether id names a known industry.
func (r *Registry) IsValid(id int) bool {
	_, ok := r.names[id]
	return ok
}

// NameOf returns the display name for id, or "" if unknown.
func (r *Registry) NameOf(id int) string {
	return r.names[id]
}

// List returns all industries ordered by id.
func (r *Registry) List() []Industry {
	out := make([]Industry, 0, len(r.names))
	for id, name := range r.names {
		out = append(out, Industry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
