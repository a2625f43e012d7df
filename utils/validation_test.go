package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"+15551234567",
		"15551234567",
		"+44 20 7946 0958",
		"(555) 123-4567",
	}
	for _, phone := range valid {
		if !ValidatePhone(phone) {
			t.Errorf("expected %q to be valid", phone)
		}
	}

	invalid := []string{
		"",
		"abc",
		"+0123456",
		"555-CALL-NOW",
	}
	for _, phone := range invalid {
		if ValidatePhone(phone) {
			t.Errorf("expected %q to be invalid", phone)
		}
	}
}
