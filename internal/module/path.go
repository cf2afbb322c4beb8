package module

import (
	"regexp"
	"strings"
)

const Separator = "."

var idPattern = regexp.MustCompile(`^[a-zA-Z](?:[_-]?[a-zA-Z0-9]+)*$`)

// ValidID reports whether id may name a factory, value or submodule.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Path locates a registration from the root module of a container. The empty
// path is the root module itself.
type Path []string

// ParsePath splits a dotted path. An empty string yields a single empty
// segment, which never matches a registration.
func ParsePath(formatted string) Path {
	return strings.Split(formatted, Separator)
}

func (p Path) String() string {
	return strings.Join(p, Separator)
}

func (p Path) Equal(other Path) bool {
	return p.String() == other.String()
}

// Join returns a new path with id appended; p is never modified.
func (p Path) Join(id string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = id
	return out
}

func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	out := make(Path, len(p)-1)
	copy(out, p[:len(p)-1])
	return out
}

// Split separates the owning module path from the final identifier.
func (p Path) Split() (Path, string) {
	if len(p) == 0 {
		return Path{}, ""
	}
	return p.Parent(), p[len(p)-1]
}

func (p Path) Prefix(n int) Path {
	out := make(Path, n)
	copy(out, p[:n])
	return out
}
