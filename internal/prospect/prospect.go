package prospect

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// Prospect is the person an email is written to, plus whatever research has
// been gathered about their company.
type Prospect struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	// Research findings
	CompanyDescription string `json:"company_description"`
	RecentNews         string `json:"recent_news"`
	TechStack          string `json:"tech_stack"`
	PainPoints         string `json:"pain_points"`
}

// Validate checks required fields and the shape of the optional ones.
func (p *Prospect) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("prospect name is required")
	}
	if strings.TrimSpace(p.Company) == "" {
		return errors.New("prospect company is required")
	}
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("invalid prospect email %q: %w", p.Email, err)
		}
	}
	if p.Website != "" {
		u, err := url.Parse(p.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid website URL %q", p.Website)
		}
	}
	return nil
}
