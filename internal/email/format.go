package email

import (
	"encoding/json"
	"fmt"
	"strings"

	"coldreach/internal/prospect"
)

// Format renders the generated email in the banner layout used for terminal
// output.
func Format(e *Email, p *prospect.Prospect) string {
	to := p.Email
	if to == "" {
		to = "email@example.com"
	}
	followUp := e.FollowUp
	if followUp == "" {
		followUp = "N/A"
	}

	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)
	lines := []string{
		rule,
		fmt.Sprintf("TO: %s <%s>", p.Name, to),
		fmt.Sprintf("SUBJECT: %s", e.Subject),
		rule,
		"",
		e.Body,
		"",
		thin,
		"FOLLOW-UP (if no response after 3-5 days):",
		thin,
		followUp,
		"",
	}
	return strings.Join(lines, "\n")
}

// Output pairs the enriched prospect with the generated email for raw JSON
// rendering.
type Output struct {
	Prospect *prospect.Prospect `json:"prospect"`
	Email    *Email             `json:"email"`
}

// RenderJSON renders the generation result as indented JSON.
func RenderJSON(p *prospect.Prospect, e *Email) (string, error) {
	raw, err := json.MarshalIndent(Output{Prospect: p, Email: e}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
