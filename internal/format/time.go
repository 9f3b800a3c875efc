// Package format provides shared time formatting utilities.
package format

import (
	"fmt"
	"time"
)

// ElapsedCompact renders a duration as a single compact unit: seconds while
// under a minute, then minutes, hours, and finally days. Used for
// git_elapsed, where prompt real estate is scarce and a single unit reads
// faster than a composite one.
func ElapsedCompact(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
