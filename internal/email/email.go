package email

import (
	"errors"
	"fmt"
	"strings"
)

// Email is the generated outreach message.
type Email struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	FollowUp string `json:"follow_up"`
}

// Sender describes who the email is from.
type Sender struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	ValueProp string `json:"value_prop"`
	CTA       string `json:"cta"`
}

// Style controls the voice of the generated email.
type Style struct {
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

const (
	ToneProfessional         = "professional"
	ToneCasual               = "casual"
	ToneProfessionalFriendly = "professional-friendly"

	LengthShort  = "short"
	LengthMedium = "medium"

	DefaultCTA = "quick call"
)

// Normalize fills unset optional fields with their defaults.
func (s *Sender) Normalize() {
	if s.CTA == "" {
		s.CTA = DefaultCTA
	}
}

func (s *Sender) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("sender name is required")
	}
	if strings.TrimSpace(s.Company) == "" {
		return errors.New("sender company is required")
	}
	if strings.TrimSpace(s.ValueProp) == "" {
		return errors.New("value proposition is required")
	}
	return nil
}

// Normalize fills unset fields with their defaults.
func (st *Style) Normalize() {
	if st.Tone == "" {
		st.Tone = ToneProfessionalFriendly
	}
	if st.Length == "" {
		st.Length = LengthShort
	}
}

func (st *Style) Validate() error {
	switch st.Tone {
	case ToneProfessional, ToneCasual, ToneProfessionalFriendly:
	default:
		return fmt.Errorf("invalid tone %q (professional, casual or professional-friendly)", st.Tone)
	}
	switch st.Length {
	case LengthShort, LengthMedium:
	default:
		return fmt.Errorf("invalid length %q (short or medium)", st.Length)
	}
	return nil
}
