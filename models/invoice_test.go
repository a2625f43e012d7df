package models

import "testing"

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		id   uint
		want string
	}{
		{1, "INV-00001"},
		{42, "INV-00042"},
		{99999, "INV-99999"},
		{123456, "INV-123456"},
	}
	for _, tc := range cases {
		if got := FormatInvoiceNumber(tc.id); got != tc.want {
			t.Errorf("FormatInvoiceNumber(%d) = %s, want %s", tc.id, got, tc.want)
		}
	}
}

func TestIsValidInvoiceStatus(t *testing.T) {
	for _, status := range []string{InvoicePending, InvoicePartial, InvoicePaid, InvoiceOverdue, InvoiceCancelled} {
		if !IsValidInvoiceStatus(status) {
			t.Errorf("expected %s to be valid", status)
		}
	}
	for _, status := range []string{"", "pending", "Refunded", "All"} {
		if IsValidInvoiceStatus(status) {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestIsValidPaymentMethod(t *testing.T) {
	for _, method := range PaymentMethods {
		if !IsValidPaymentMethod(method) {
			t.Errorf("expected %s to be valid", method)
		}
	}
	for _, method := range []string{"", "cash", "Barter"} {
		if IsValidPaymentMethod(method) {
			t.Errorf("expected %q to be invalid", method)
		}
	}
}
