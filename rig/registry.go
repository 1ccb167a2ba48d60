package rig

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// ErrUnknownProfile is returned by Lookup for names nobody registered.
var ErrUnknownProfile = errors.New("unknown rig profile")

// Factory returns a new profile each time it is called.
type Factory func() (*Config, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a profile available under name. Registering a name twice replaces the factory.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = f
}

// Lookup returns a fresh copy of the named profile.
func Lookup(name string) (*Config, error) {
	registryMu.RLock()
	f, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return f()
}

// Profiles returns the registered profile names, sorted.
func Profiles() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var names []string
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func embeddedProfile(file string) Factory {
	return func() (*Config, error) {
		data, err := profileFS.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return ParseConfig(data)
	}
}

func init() {
	files, _ := profileFS.ReadDir("profiles")
	for _, f := range files {
		name := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		Register(name, embeddedProfile(path.Join("profiles", f.Name())))
	}
}
