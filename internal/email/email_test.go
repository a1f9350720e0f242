package email

import "testing"

func TestSenderNormalizeAndValidate(t *testing.T) {
	s := &Sender{Name: "Alex Doe", Company: "DevTools Inc", ValueProp: "we cut build times in half"}
	s.Normalize()
	if s.CTA != DefaultCTA {
		t.Errorf("expected default CTA, got %q", s.CTA)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid sender: %v", err)
	}

	for _, broken := range []Sender{
		{},
		{Name: "Alex Doe"},
		{Name: "Alex Doe", Company: "DevTools Inc"},
	} {
		if err := broken.Validate(); err == nil {
			t.Errorf("expected error for sender %+v", broken)
		}
	}
}

func TestStyleNormalizeAndValidate(t *testing.T) {
	st := &Style{}
	st.Normalize()
	if st.Tone != ToneProfessionalFriendly || st.Length != LengthShort {
		t.Errorf("unexpected defaults: %+v", st)
	}
	if err := st.Validate(); err != nil {
		t.Errorf("expected valid style after normalize: %v", err)
	}

	if err := (&Style{Tone: "aggressive", Length: LengthShort}).Validate(); err == nil {
		t.Errorf("expected error for unknown tone")
	}
	if err := (&Style{Tone: ToneCasual, Length: "epic"}).Validate(); err == nil {
		t.Errorf("expected error for unknown length")
	}
}
