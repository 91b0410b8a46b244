package geckopush

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxErrorMessageRunes = 200

var errNoSuccessField = errors.New(`response has no "success" field`)

// pushResponse is the decoded body of a push API reply.
type pushResponse struct {
	success bool
	message string
}

// parseResponse decodes a push API reply.
//
// The "success" field is read leniently: booleans, the strings "true"/"false"
// and the numbers 1/0 are all accepted. The error message is taken from an
// "error" or "message" field, or from "error.message".
func parseResponse(body []byte) (pushResponse, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return pushResponse{}, err
	}

	var resp pushResponse
	for _, path := range [][]string{{"error"}, {"error", "message"}, {"message"}} {
		if msg := lookupString(doc, path); msg != "" {
			resp.message = msg
			break
		}
	}

	raw, ok := doc["success"]
	if !ok {
		return resp, errNoSuccessField
	}
	success, ok := truthy(raw)
	if !ok {
		return resp, errNoSuccessField
	}
	resp.success = success
	return resp, nil
}

// errorMessage pulls a human readable message out of an error reply,
// falling back to the trimmed raw body.
func errorMessage(body []byte) string {
	if resp, err := parseResponse(body); resp.message != "" || err == nil {
		return resp.message
	}
	msg := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(msg) > maxErrorMessageRunes {
		msg = string([]rune(msg)[:maxErrorMessageRunes]) + "..."
	}
	return msg
}

// lookupString walks doc along path and returns the string found there.
func lookupString(doc map[string]interface{}, path []string) string {
	var current interface{} = doc
	for _, part := range path {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = obj[part]
		if !ok {
			return ""
		}
	}
	s, _ := current.(string)
	return s
}

// truthy converts a boolean-ish JSON value.
func truthy(v interface{}) (value bool, ok bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	case float64:
		switch v {
		case 1:
			return true, true
		case 0:
			return false, true
		}
	}
	return false, false
}
