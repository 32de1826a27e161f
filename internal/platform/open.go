package platform

import (
	"fmt"
	"sort"
	"strings"
)

// backends holds the constructors compiled into this binary, keyed by name.
var backends = map[string]func(class string) Backend{}

// Available lists the backend names compiled into this binary.
func Available() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns an uninitialized backend by name. An empty name or "auto"
// prefers glfw when it is compiled in. class names the application to the
// window system where the backend supports it.
func Open(name, class string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		for _, candidate := range []string{"glfw", "x11"} {
			if _, ok := backends[candidate]; ok {
				name = candidate
				break
			}
		}
	}

	ctor, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", name, strings.Join(Available(), ", "))
	}
	return ctor(class), nil
}
