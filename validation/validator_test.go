package validation

import (
	"strings"
	"testing"

	"github.com/pediadose/dosage-api/dosing"
)

func validProfile() dosing.Profile {
	return dosing.Profile{
		Name:           "Acetaminophen (Tylenol)",
		MgPerKg:        15,
		MaxDoseMg:      1000,
		IntervalHours:  6,
		MaxDailyDoseMg: 4000,
	}
}

func TestValidateProfileValid(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateProfile(dosing.Acetaminophen, validProfile()); err != nil {
		t.Errorf("Expected valid profile to pass, got %v", err)
	}
}

func TestValidateProfileInvariants(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		mutate func(*dosing.Profile)
	}{
		{"empty name", func(p *dosing.Profile) { p.Name = "  " }},
		{"zero mg_per_kg", func(p *dosing.Profile) { p.MgPerKg = 0 }},
		{"negative mg_per_kg", func(p *dosing.Profile) { p.MgPerKg = -5 }},
		{"implausible mg_per_kg", func(p *dosing.Profile) { p.MgPerKg = 500 }},
		{"zero max dose", func(p *dosing.Profile) { p.MaxDoseMg = 0 }},
		{"implausible max dose", func(p *dosing.Profile) { p.MaxDoseMg = 50000 }},
		{"zero interval", func(p *dosing.Profile) { p.IntervalHours = 0 }},
		{"interval above a day", func(p *dosing.Profile) { p.IntervalHours = 48 }},
		{"zero daily limit", func(p *dosing.Profile) { p.MaxDailyDoseMg = 0 }},
		{"daily limit below single dose", func(p *dosing.Profile) { p.MaxDailyDoseMg = 500 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			if err := v.ValidateProfile(dosing.Acetaminophen, p); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestValidateFormulary(t *testing.T) {
	v := NewValidator()

	good := map[dosing.Medication]dosing.Profile(dosing.DefaultFormulary())
	if err := v.ValidateFormulary(good); err != nil {
		t.Errorf("Expected built-in formulary to validate, got %v", err)
	}

	if err := v.ValidateFormulary(map[dosing.Medication]dosing.Profile{}); err == nil {
		t.Error("Expected empty formulary to fail")
	}

	bad := map[dosing.Medication]dosing.Profile{
		dosing.Ibuprofen: {Name: "Ibuprofen", MgPerKg: -1, MaxDoseMg: 800, IntervalHours: 8, MaxDailyDoseMg: 3200},
	}
	err := v.ValidateFormulary(bad)
	if err == nil {
		t.Fatal("Expected invalid formulary to fail")
	}
	if !strings.Contains(err.Error(), "mg_per_kg") {
		t.Errorf("Expected error to name the bad field, got %v", err)
	}
}

func TestValidateUserInput(t *testing.T) {
	v := NewValidator()

	valid := []string{"acetaminophen", "Ibuprofen", "amoxicillin", "en", "es"}
	for _, input := range valid {
		if err := v.ValidateUserInput(input); err != nil {
			t.Errorf("Expected %q to pass, got %v", input, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		strings.Repeat("a", 65),
		"<script>alert(1)</script>",
		"x' or 1=1 --",
		"../../etc/passwd",
		"med${HOME}",
		"drop table medications",
	}
	for _, input := range invalid {
		if err := v.ValidateUserInput(input); err == nil {
			t.Errorf("Expected %q to be rejected", input)
		}
	}
}
