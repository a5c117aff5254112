package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"tubelens/internal/core"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here is your result:\n```json\n{\"title\": \"hello\"}\n```\nLet me know if you need more."
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Extracted payload is not valid JSON: %v", err)
	}
	if payload["title"] != "hello" {
		t.Errorf("Expected title hello, got %q", payload["title"])
	}
}

func TestExtractJSONUnterminatedFence(t *testing.T) {
	text := "```json\n{\"ok\": true}"
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	var payload map[string]bool
	if err := json.Unmarshal(raw, &payload); err != nil || !payload["ok"] {
		t.Errorf("Expected {\"ok\": true}, got %s (err %v)", raw, err)
	}
}

func TestExtractJSONBareObjectWithTrailingProse(t *testing.T) {
	text := `{"items": [{"nested": "}"}]} That closes the analysis.`
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	var payload struct {
		Items []map[string]string `json:"items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Extracted payload is not valid JSON: %v", err)
	}
	// The closing brace inside the string literal must not end the scan.
	if payload.Items[0]["nested"] != "}" {
		t.Errorf("Expected nested value \"}\", got %q", payload.Items[0]["nested"])
	}
}

func TestExtractJSONArray(t *testing.T) {
	raw, err := ExtractJSON(`[1, 2, 3]`)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	var nums []int
	if err := json.Unmarshal(raw, &nums); err != nil || len(nums) != 3 {
		t.Errorf("Expected [1,2,3], got %s", raw)
	}
}

func TestExtractJSONEscapedQuotes(t *testing.T) {
	raw, err := ExtractJSON(`{"text": "she said \"hi\" twice"}`)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Extracted payload is not valid JSON: %v", err)
	}
	if payload["text"] != `she said "hi" twice` {
		t.Errorf("Unexpected text %q", payload["text"])
	}
}

func TestExtractJSONNoPayload(t *testing.T) {
	_, err := ExtractJSON("I could not produce any structured output, sorry.")
	if err == nil {
		t.Fatal("Expected error for prose-only response")
	}
	var extErr *core.ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("Expected ExtractionError, got %T", err)
	}
}

func TestExtractJSONUnbalancedDelimiters(t *testing.T) {
	_, err := ExtractJSON(`{"open": [1, 2`)
	if err == nil {
		t.Fatal("Expected error for unbalanced payload")
	}
	var extErr *core.ExtractionError
	if !errors.As(err, &extErr) {
		t.Errorf("Expected ExtractionError, got %T", err)
	}
}

func TestExtractJSONInvalidFenceContent(t *testing.T) {
	_, err := ExtractJSON("```json\nnot json at all\n```")
	if err == nil {
		t.Fatal("Expected error for a fence without JSON")
	}
}
