package providers

import (
	"context"
	"strings"
	"time"
)

// TimeProvider supplies the current time. It is never cacheable — caching
// a clock reading would make the prompt visibly lag behind real time.
type TimeProvider struct {
	Now func() time.Time
}

// NewTimeProvider returns a TimeProvider backed by the real wall clock.
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{Now: time.Now}
}

func (p *TimeProvider) Name() string       { return "time" }
func (p *TimeProvider) Sections() []string { return []string{"time"} }

func (p *TimeProvider) DefaultConfig() Config {
	return Config{"name": "time", "format": "%H:%M:%S"}
}

func (p *TimeProvider) Cacheable() bool         { return false }
func (p *TimeProvider) CacheTTL() time.Duration { return 0 }

func (p *TimeProvider) Collect(_ context.Context, cfg Config, _ bool) (map[string]string, error) {
	layout := strftimeToGo(cfg.GetString("format", "%H:%M:%S"))
	name := cfg.GetString("name", "time")
	return map[string]string{
		name: p.Now().Format(layout),
	}, nil
}

// strftimeToGo translates the common strftime directives twig's config
// documents (%H, %M, %S, %Y, %m, %d, %p, %A, %a, %B, %b) into Go's
// reference-time layout. Unrecognized directives pass through unchanged so
// a typo surfaces as a garbled timestamp rather than a dropped character.
func strftimeToGo(format string) string {
	replacer := strings.NewReplacer(
		"%Y", "2006",
		"%m", "01",
		"%d", "02",
		"%H", "15",
		"%M", "04",
		"%S", "05",
		"%p", "PM",
		"%A", "Monday",
		"%a", "Mon",
		"%B", "January",
		"%b", "Jan",
		"%%", "%",
	)
	return replacer.Replace(format)
}
