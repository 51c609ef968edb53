package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON decodes the object spanning the first '{' and the last '}' of
// text into v, ignoring any prose or code fences around it.
func ExtractJSON(text string, v any) error {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return newError(FailureMalformed, errors.New("no JSON object in model response"))
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return newError(FailureMalformed, err)
	}
	return nil
}
