package utils

import (
	"fmt"
	"net/url"
)

// ParseDateParam retrieves a flexible date value from the URL query parameters
// and returns it normalized to YYYY-MM-DD. Missing values return the empty
// string; invalid values are recorded in the fieldErrors map.
func ParseDateParam(params url.Values, key string, fieldErrors map[string][]string) (string, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return "", fieldErrors
	}

	if err := ValidateDate(val); err != nil {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return "", fieldErrors
	}
	return NormalizeDate(val), fieldErrors
}
