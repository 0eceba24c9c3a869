// Package timezone renders and stamps times in the zone named by APP_TIMEZONE.
package timezone

import (
	"fmt"
	"parking/config"
	"sync"
	"time"
	_ "time/tzdata" // zone database for minimal images

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var (
	mu       sync.RWMutex
	location *time.Location
	once     sync.Once
)

// Location returns the application zone, loading it from config on first use.
// An unknown zone name falls back to UTC.
func Location() *time.Location {
	once.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			name = defaultZone
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

			loc = time.UTC
		}

		set(loc)
	})

	mu.RLock()
	defer mu.RUnlock()

	return location
}

// Use switches the application zone to an IANA name such as "Asia/Jakarta".
func Use(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	once.Do(func() {})
	set(loc)

	log.Info().Str("timezone", loc.String()).Msg("Application timezone set")

	return nil
}

func set(loc *time.Location) {
	mu.Lock()
	defer mu.Unlock()

	location = loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
