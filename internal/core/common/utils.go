package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoObject is returned when a response holds no JSON object.
var ErrNoObject = errors.New("no JSON object found in response")

// ExtractObject returns the text between the first '{' and the last '}'.
// Models sometimes wrap JSON in markdown fences or prose even in JSON mode.
func ExtractObject(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end == -1 || end < start {
		return "", ErrNoObject
	}
	return response[start : end+1], nil
}

// ParseJSON cleans and unmarshals a JSON object string into a type T.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, err := ExtractObject(response)
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
