package handler

import (
	"fmt"
	"strconv"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", paramName)
	}
	return val, nil
}
