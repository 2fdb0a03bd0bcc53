package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate parses the due date field of the task editor.
// Supported formats:
// - yyyy-mm-dd (e.g., "2024-06-01")
// - dd/mm/yyyy (e.g., "15/12/2024")
// - X days / X weeks (e.g., "3 days", "2 weeks")
// An empty input means no due date and returns (nil, nil).
func ParseDueDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if dueDate, err := parseISODate(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseSlashDate(input); err == nil {
		return dueDate, nil
	}

	if dueDate, err := parseRelative(input); err == nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, X days, or X weeks")
}

// FormatInputDate renders a stored due date back into the editor field.
// A nil date renders as the empty string.
func FormatInputDate(dueDate *time.Time) string {
	if dueDate == nil {
		return ""
	}
	return dueDate.Format("2006-01-02")
}

// FormatCardDate renders a due date for the task card, e.g. "Jun 1, 2024".
func FormatCardDate(dueDate time.Time) string {
	return dueDate.Format("Jan 2, 2006")
}

// parseISODate parses yyyy-mm-dd.
func parseISODate(input string) (*time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date")
	}
	return &parsed, nil
}

// parseSlashDate parses dd/mm/yyyy.
func parseSlashDate(input string) (*time.Time, error) {
	dateRegex := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	dueDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Check if date is valid (handles leap years, etc.)
	if dueDate.Day() != day || dueDate.Month() != time.Month(month) || dueDate.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &dueDate, nil
}

// parseRelative parses "X days" and "X weeks" from today.
func parseRelative(input string) (*time.Time, error) {
	relativeRegex := regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return nil, fmt.Errorf("invalid number")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch matches[2] {
	case "day", "days":
		dueDate := today.AddDate(0, 0, amount)
		return &dueDate, nil
	default:
		dueDate := today.AddDate(0, 0, amount*7)
		return &dueDate, nil
	}
}
