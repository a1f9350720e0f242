package prompt

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"

	"coldreach/internal/email"
	"coldreach/internal/prospect"
)

// Unknown substitutes for prospect fields research never filled in.
const Unknown = "Unknown"

// ColdEmail is the fixed generation template. The model is asked for a JSON
// object so the response parser has a stable contract.
const ColdEmail = `Generate a cold email with these requirements:

PROSPECT:
- Name: {{.name}}
- Company: {{.company}}
- Role: {{.role}}
- Company Description: {{.company_description}}
- Tech Stack: {{.tech_stack}}

SENDER:
- Name: {{.sender_name}}
- Company: {{.sender_company}}
- Value Proposition: {{.value_prop}}
- Desired CTA: {{.cta}}

STYLE:
- Tone: {{.tone}}
- Length: {{.length}} (short=3-4 sentences, medium=5-6 sentences)

RULES:
1. Personalize based on prospect's company/role
2. Lead with value, not features
3. One clear call-to-action
4. No generic flattery ("I love your company!")
5. Sound human, not templated
6. Subject line should create curiosity

Return JSON:
{
    "subject": "Email subject line",
    "body": "Full email body",
    "follow_up": "Follow-up email if no response (shorter)"
}`

var inputVariables = []string{
	"name", "company", "role", "company_description", "tech_stack",
	"sender_name", "sender_company", "value_prop", "cta", "tone", "length",
}

// Build fills the template with prospect and sender fields. Prospect fields
// the research step may have left empty render as Unknown.
func Build(p *prospect.Prospect, s *email.Sender, st *email.Style) (string, error) {
	tmpl := prompts.NewPromptTemplate(ColdEmail, inputVariables)
	out, err := tmpl.Format(map[string]any{
		"name":                p.Name,
		"company":             p.Company,
		"role":                orUnknown(p.Role),
		"company_description": orUnknown(p.CompanyDescription),
		"tech_stack":          orUnknown(p.TechStack),
		"sender_name":         s.Name,
		"sender_company":      s.Company,
		"value_prop":          s.ValueProp,
		"cta":                 s.CTA,
		"tone":                st.Tone,
		"length":              st.Length,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return out, nil
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
