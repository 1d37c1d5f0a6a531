package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTime renders "HH:MM" as a 12-hour clock ("14:00" -> "2:00 PM").
// Input that does not look like HH:MM is returned unchanged.
func FormatTime(hhmm string) string {
	hours, minutes, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hours)
	if err != nil || hour < 0 || hour > 23 {
		return hhmm
	}

	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%s %s", hour, minutes, ampm)
}
