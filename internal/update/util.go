package update

import (
	"strings"

	"github.com/sandeepkv93/focusd/internal/clock"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// formatDuration renders a configured duration the way the countdown shows it.
func formatDuration(totalSec int) string {
	return clock.FromSeconds(max(totalSec, 0)).String()
}
