package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission lists the roles allowed on one route pattern. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list admits any authenticated caller.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

// PermissionData is the route table. Skip disables authorisation for every route.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions returns the entry for a chi route pattern, or the zero Permission when none exists.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(method, path)]
}

func Parse(data []byte) (*PermissionData, error) {
	table := &PermissionData{}
	if err := json.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Permission, len(table.Endpoints))
	for _, endpoint := range table.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, dup := table.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		table.index[key] = endpoint
	}

	return table, nil
}

var (
	loaded   *PermissionData
	loadOnce sync.Once
)

// Get returns the embedded table, parsed once per process.
func Get() *PermissionData {
	loadOnce.Do(func() {
		table, err := Parse(embedded)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load embedded permissions")
		}

		log.Info().Int("endpoints", len(table.Endpoints)).Msg("permissions loaded")
		loaded = table
	})

	return loaded
}
