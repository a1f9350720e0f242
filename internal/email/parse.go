package email

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Parse extracts the email JSON object from raw model output. Models wrap
// their JSON in code fences or prose often enough that both are tolerated:
// the first fenced block wins, otherwise the slice from the first "{" to the
// last "}".
func Parse(raw string) (*Email, error) {
	payload := extractJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("no JSON object in model output: %s", snippet(raw))
	}

	var e Email
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, fmt.Errorf("invalid email JSON: %w (output: %s)", err, snippet(raw))
	}
	if e.Subject == "" && e.Body == "" {
		return nil, fmt.Errorf("model output has neither subject nor body: %s", snippet(raw))
	}
	return &e, nil
}

func extractJSON(raw string) string {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		if fenced := strings.TrimSpace(m[1]); fenced != "" {
			raw = fenced
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
