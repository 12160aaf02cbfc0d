package safe

import (
	"fmt"
	"time"
)

// FormatDuration renders an elapsed duration using the largest populated unit
// plus the remainder of the next lower one: "1 day, 2 hours",
// "1 minute, 30 seconds", "45 seconds". Counts other than exactly 1 pluralize.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%s, %s", pluralize(days, "day"), pluralize(hours, "hour"))
	case hours > 0:
		return fmt.Sprintf("%s, %s", pluralize(hours, "hour"), pluralize(minutes, "minute"))
	case minutes > 0:
		return fmt.Sprintf("%s, %s", pluralize(minutes, "minute"), pluralize(seconds, "second"))
	default:
		return pluralize(seconds, "second")
	}
}

func pluralize(count int64, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
