// Package academic validates school-year identifiers: either a bare 4-digit
// year or a "YYYY-YYYY" pair exactly one year apart.
package academic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted distance from the current calendar year for a bare year.
const (
	YearsBack    = 5
	YearsForward = 2
)

// ValidateYear checks an operator-supplied academic year against the current
// calendar year. It accepts "2023" and "2023-2024" forms.
func ValidateYear(input string) error {
	return validateYearAt(input, time.Now().Year())
}

func validateYearAt(input string, currentYear int) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("academic year is required")
	}

	if !strings.Contains(input, "-") {
		return validateSingleYear(input, currentYear)
	}

	// Pair form: only the start+1 relation is enforced. The per-year window
	// is deliberately not re-checked here, matching the established backend
	// behavior for ranges.
	parts := strings.SplitN(input, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("invalid start year %q", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("invalid end year %q", parts[1])
	}
	if end != start+1 {
		return fmt.Errorf("end year %d must be exactly one year after start year %d", end, start)
	}
	return nil
}

func validateSingleYear(input string, currentYear int) error {
	if len(input) != 4 || !isDigits(input) {
		return fmt.Errorf("academic year must be a 4-digit year, got %q", input)
	}
	year, _ := strconv.Atoi(input)
	if year < currentYear-YearsBack {
		return fmt.Errorf("year %d is before the minimum allowed year %d", year, currentYear-YearsBack)
	}
	if year > currentYear+YearsForward {
		return fmt.Errorf("year %d is after the maximum allowed year %d", year, currentYear+YearsForward)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
