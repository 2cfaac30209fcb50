package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestSimpleJSONOmitsStatus(t *testing.T) {
	data, err := json.Marshal(SlotUnavailableError)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["kind"] != KindSlotUnavailable {
		t.Errorf("got kind %v, want %q", decoded["kind"], KindSlotUnavailable)
	}
	if _, ok := decoded["Status"]; ok {
		t.Error("HTTP status leaked into the body")
	}
}

func TestFromValidationError(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
		Age  int    `validate:"gt=0"`
	}

	validate := validator.New()
	err := validate.Struct(&form{})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	resp := FromValidationError(err)
	if resp.Code() != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.Code())
	}
	if resp.Kind() != KindValidation {
		t.Errorf("got kind %q, want %q", resp.Kind(), KindValidation)
	}
	if !strings.Contains(resp.Error(), "Name") || !strings.Contains(resp.Error(), "Age") {
		t.Errorf("message does not name the offending fields: %q", resp.Error())
	}
}

func TestFromValidationErrorNonValidatorInput(t *testing.T) {
	resp := FromValidationError(errors.New("boom"))
	if resp != MalformedBodyError {
		t.Errorf("got %v, want MalformedBodyError", resp)
	}
}

func TestParamErrorMessages(t *testing.T) {
	missing := NewMissingParamError("doctor_id")
	if missing.Code() != http.StatusBadRequest || !strings.Contains(missing.Error(), "doctor_id") {
		t.Errorf("unexpected missing-param error: %v", missing)
	}

	invalid := NewInvalidParamTypeError("id", "int32")
	if invalid.Code() != http.StatusBadRequest || !strings.Contains(invalid.Error(), "int32") {
		t.Errorf("unexpected invalid-param error: %v", invalid)
	}
}
