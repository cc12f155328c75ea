package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot - covers NCT IDs,
	// EudraCT numbers, and UUIDs
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateQuery validates free-text query values such as condition filters
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateRegion validates a region filter value. Empty means "all regions".
func ValidateRegion(region string) error {
	switch strings.ToLower(region) {
	case "", "us", "eu", "others":
		return nil
	}
	return errors.New("region must be one of: us, eu, others")
}

// ValidateDate validates flexible date strings (YYYY-MM-DD, YYYY-MM, or YYYY)
func ValidateDate(date string) error {
	// Empty dates are allowed
	if date == "" {
		return nil
	}

	if _, err := ParseFlexibleDate(date); err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD, YYYY-MM, or YYYY")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	sanitized = strings.TrimSpace(sanitized)

	return sanitized
}

// ValidateAndSanitizeQuery validates and sanitizes a free-text query value
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
