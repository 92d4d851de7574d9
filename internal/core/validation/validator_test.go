package validation

import "testing"

func TestValidateSettings_Empty(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateSettings(nil); err != nil {
		t.Errorf("nil settings should be valid, got %v", err)
	}
	if err := v.ValidateSettings(map[string]interface{}{}); err != nil {
		t.Errorf("empty settings should be valid, got %v", err)
	}
}

func TestValidateSettings_Valid(t *testing.T) {
	v := NewValidator()

	settings := map[string]interface{}{
		"notification_email":  "ops@example.com",
		"currency":            "USD",
		"warranty_alert_days": 45,
		"default_priority":    "medium",
		"timezone":            "Europe/Berlin",
	}

	if err := v.ValidateSettings(settings); err != nil {
		t.Errorf("expected valid settings, got %v", err)
	}
}

func TestValidateSettings_UnknownKey(t *testing.T) {
	v := NewValidator()

	err := v.ValidateSettings(map[string]interface{}{"colour_scheme": "dark"})
	if err == nil {
		t.Fatal("unknown keys must be rejected")
	}
	if !IsValidationError(err) {
		t.Errorf("expected ValidationErrors, got %T", err)
	}
}

func TestValidateSettings_BadValues(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		settings map[string]interface{}
	}{
		{"bad currency", map[string]interface{}{"currency": "DOGE"}},
		{"alert days too low", map[string]interface{}{"warranty_alert_days": 0}},
		{"alert days too high", map[string]interface{}{"warranty_alert_days": 400}},
		{"bad priority", map[string]interface{}{"default_priority": "urgent"}},
		{"wrong type", map[string]interface{}{"warranty_alert_days": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSettings(tt.settings)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsValidationError(err) {
				t.Errorf("expected ValidationErrors, got %T", err)
			}
			if ve := GetValidationErrors(err); ve == nil || len(ve.Errors) == 0 {
				t.Error("expected at least one field error")
			}
		})
	}
}
