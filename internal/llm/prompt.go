package llm

import (
	"encoding/json"
	"fmt"
)

// PromptWithShape appends a pretty-printed JSON template to the instruction
// with a directive to answer only in that shape. This is the sole mechanism
// used to constrain model output format.
func PromptWithShape(instruction string, shape any) string {
	if shape == nil {
		return instruction
	}
	pretty, err := json.MarshalIndent(shape, "", "  ")
	if err != nil {
		return instruction
	}
	return fmt.Sprintf("%s\n\nRespond ONLY in this JSON shape:\n```json\n%s\n```", instruction, pretty)
}
