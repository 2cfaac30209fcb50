package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	raw, err := issuer.Issue(42, "doctor", "doctor_dashboard")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("got user_id %d, want 42", claims.UserID)
	}
	if claims.Role != "doctor" {
		t.Errorf("got role %q, want doctor", claims.Role)
	}
	if claims.Redirect != "doctor_dashboard" {
		t.Errorf("got redirect %q, want doctor_dashboard", claims.Redirect)
	}
	if claims.ID == "" {
		t.Error("jti is empty")
	}
}

func TestParseExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)

	raw, err := issuer.Issue(1, "patient", "patient_dashboard")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := issuer.Parse(raw); !errors.Is(err, ErrExpired) {
		t.Errorf("got %v, want ErrExpired", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	raw, err := other.Issue(1, "patient", "patient_dashboard")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q): got %v, want ErrInvalid", raw, err)
		}
	}
}

func TestParseRejectsTamperedToken(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	raw, err := issuer.Issue(1, "patient", "patient_dashboard")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tampered := raw + "xx"
	if _, err := issuer.Parse(tampered); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}
