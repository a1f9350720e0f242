package prospect

import "testing"

func TestValidate_Required(t *testing.T) {
	p := &Prospect{}
	if err := p.Validate(); err == nil {
		t.Errorf("expected error for empty prospect")
	}
	p.Name = "Jane Smith"
	if err := p.Validate(); err == nil {
		t.Errorf("expected error for missing company")
	}
	p.Company = "TechCorp"
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid prospect: %v", err)
	}
}

func TestValidate_Email(t *testing.T) {
	p := &Prospect{Name: "Jane Smith", Company: "TechCorp", Email: "not-an-email"}
	if err := p.Validate(); err == nil {
		t.Errorf("expected error for malformed email")
	}
	p.Email = "jane@techcorp.com"
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid email: %v", err)
	}
}

func TestValidate_Website(t *testing.T) {
	p := &Prospect{Name: "Jane Smith", Company: "TechCorp"}
	for _, bad := range []string{"not a url", "ftp://techcorp.com", "https://"} {
		p.Website = bad
		if err := p.Validate(); err == nil {
			t.Errorf("expected error for website %q", bad)
		}
	}
	p.Website = "https://techcorp.com"
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid website: %v", err)
	}
}
