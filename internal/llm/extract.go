package llm

import (
	"encoding/json"
	"strings"

	"tubelens/internal/core"
)

// ExtractJSON recovers a JSON payload from free-form model text. Extraction
// order: a ```json fenced block first, then the trimmed response itself when
// it starts with '{' or '['. Payload boundaries are found with a brace-depth
// scan so nested objects in the model output are handled correctly.
func ExtractJSON(text string) (json.RawMessage, error) {
	if block, ok := fencedBlock(text); ok {
		if raw, err := parseCandidate(block); err == nil {
			return raw, nil
		}
		// The fence content may carry prose around the payload.
		if payload, ok := scanPayload(block); ok {
			return parseCandidate(payload)
		}
		return nil, &core.ExtractionError{Reason: "fenced block is not valid JSON"}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if payload, ok := scanPayload(trimmed); ok {
			return parseCandidate(payload)
		}
		return nil, &core.ExtractionError{Reason: "unbalanced JSON delimiters"}
	}

	return nil, &core.ExtractionError{Reason: "no JSON payload found in response"}
}

// fencedBlock returns the content of the first ```json fence, if present.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```json")
	if start < 0 {
		return "", false
	}
	rest := text[start+len("```json"):]
	end := strings.Index(rest, "```")
	if end < 0 {
		// Unterminated fence; take everything after the opener.
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// scanPayload finds the first complete JSON object or array in s using a
// brace-depth scan that honors string literals and escapes.
func scanPayload(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}
	open := s[start]
	closer := byte('}')
	if open == '[' {
		closer = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Delimiters inside strings do not count.
		case c == open:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseCandidate validates candidate as JSON and returns it untouched.
func parseCandidate(candidate string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, &core.ExtractionError{Reason: "candidate payload failed to parse", Err: err}
	}
	return raw, nil
}
