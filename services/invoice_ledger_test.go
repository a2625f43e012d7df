package services

import (
	"testing"
	"time"

	"mediflow-backend/models"
	"mediflow-backend/store"
)

func newTestLedger(seed ...models.Invoice) (*InvoiceLedger, *store.MemoryInvoiceStore) {
	invoices := store.NewMemoryInvoiceStore(seed...)
	patients := store.NewMemoryPatientDirectory(
		store.PatientRef{ID: 1, Name: "Jane Doe"},
		store.PatientRef{ID: 2, Name: "John Roe"},
	)
	return NewInvoiceLedger(invoices, patients), invoices
}

func dueDate() time.Time {
	return time.Now().AddDate(0, 1, 0)
}

func checkInvariants(t *testing.T, inv *models.Invoice) {
	t.Helper()
	if inv.TotalAmount != inv.BalanceDue+inv.AmountPaid {
		t.Errorf("invariant broken: TotalAmount %.2f != BalanceDue %.2f + AmountPaid %.2f",
			inv.TotalAmount, inv.BalanceDue, inv.AmountPaid)
	}
	var sum float64
	for _, p := range inv.Payments {
		sum += p.Amount
	}
	if inv.AmountPaid != sum {
		t.Errorf("invariant broken: AmountPaid %.2f != sum of payments %.2f", inv.AmountPaid, sum)
	}
}

func TestCreateInvoice(t *testing.T) {
	ledger, _ := newTestLedger()

	inv, err := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items: []InvoiceItemInput{
			{Description: "Consultation", Quantity: 2, Rate: 50},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if inv.ID != 1 {
		t.Errorf("expected id 1, got %d", inv.ID)
	}
	if inv.InvoiceNumber != "INV-00001" {
		t.Errorf("expected invoice number INV-00001, got %s", inv.InvoiceNumber)
	}
	if inv.PatientName != "Jane Doe" {
		t.Errorf("expected denormalized patient name, got %q", inv.PatientName)
	}
	if inv.TotalAmount != 100 {
		t.Errorf("expected total 100, got %.2f", inv.TotalAmount)
	}
	if inv.BalanceDue != 100 {
		t.Errorf("expected balance due 100, got %.2f", inv.BalanceDue)
	}
	if inv.AmountPaid != 0 {
		t.Errorf("expected amount paid 0, got %.2f", inv.AmountPaid)
	}
	if inv.Status != models.InvoicePending {
		t.Errorf("expected status Pending, got %s", inv.Status)
	}
	if len(inv.Payments) != 0 {
		t.Errorf("expected no payments, got %d", len(inv.Payments))
	}
	if inv.IssueDate.IsZero() {
		t.Error("expected issue date to be set")
	}
	checkInvariants(t, inv)
}

func TestCreateInvoice_AssignsMaxPlusOne(t *testing.T) {
	ledger, _ := newTestLedger(models.Invoice{ID: 7, InvoiceNumber: "INV-00007", PatientID: 1})

	inv, err := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "X-ray", Quantity: 1, Rate: 75}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if inv.ID != 8 {
		t.Errorf("expected id 8, got %d", inv.ID)
	}
	if inv.InvoiceNumber != "INV-00008" {
		t.Errorf("expected invoice number INV-00008, got %s", inv.InvoiceNumber)
	}
}

func TestCreateInvoice_Validation(t *testing.T) {
	ledger, _ := newTestLedger()

	cases := []struct {
		name  string
		items []InvoiceItemInput
	}{
		{"empty items", nil},
		{"zero quantity", []InvoiceItemInput{{Description: "Bad", Quantity: 0, Rate: 10}}},
		{"negative rate", []InvoiceItemInput{{Description: "Bad", Quantity: 1, Rate: -5}}},
		{"zero amount", []InvoiceItemInput{{Description: "Bad", Quantity: 1, Rate: 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Create(CreateInvoiceInput{PatientID: 1, DueDate: dueDate(), Items: tc.items})
			if !IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateInvoice_UnknownPatient(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.Create(CreateInvoiceInput{
		PatientID: 99,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 50}},
	})
	if !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRecordPayment_FullPayment(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 2, Rate: 50}},
	})

	updated, err := ledger.RecordPayment(inv.ID, PaymentInput{Amount: 100, PaymentMethod: "Cash"})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if updated.AmountPaid != 100 {
		t.Errorf("expected amount paid 100, got %.2f", updated.AmountPaid)
	}
	if updated.BalanceDue != 0 {
		t.Errorf("expected balance due 0, got %.2f", updated.BalanceDue)
	}
	if updated.Status != models.InvoicePaid {
		t.Errorf("expected status Paid, got %s", updated.Status)
	}
	if len(updated.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(updated.Payments))
	}
	if updated.Payments[0].ID != 1 {
		t.Errorf("expected payment id 1, got %d", updated.Payments[0].ID)
	}
	if updated.Payments[0].Date.IsZero() {
		t.Error("expected payment date to be set")
	}
	checkInvariants(t, updated)
}

func TestRecordPayment_PartialPayment(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	updated, err := ledger.RecordPayment(inv.ID, PaymentInput{Amount: 40, PaymentMethod: "Check"})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.Status != models.InvoicePartial {
		t.Errorf("expected status Partial, got %s", updated.Status)
	}
	if updated.BalanceDue != 60 {
		t.Errorf("expected balance due 60, got %.2f", updated.BalanceDue)
	}
	checkInvariants(t, updated)

	// Settling the remainder flips the status to Paid
	updated, err = ledger.RecordPayment(inv.ID, PaymentInput{Amount: 60, PaymentMethod: "Cash"})
	if err != nil {
		t.Fatalf("second RecordPayment failed: %v", err)
	}
	if updated.Status != models.InvoicePaid {
		t.Errorf("expected status Paid, got %s", updated.Status)
	}
	if len(updated.Payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(updated.Payments))
	}
	if updated.Payments[1].ID != 2 {
		t.Errorf("expected sequential payment id 2, got %d", updated.Payments[1].ID)
	}
	checkInvariants(t, updated)
}

func TestRecordPayment_Validation(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	cases := []struct {
		name  string
		input PaymentInput
	}{
		{"zero amount", PaymentInput{Amount: 0, PaymentMethod: "Cash"}},
		{"negative amount", PaymentInput{Amount: -10, PaymentMethod: "Cash"}},
		{"exceeds balance due", PaymentInput{Amount: 150, PaymentMethod: "Cash"}},
		{"unknown method", PaymentInput{Amount: 50, PaymentMethod: "Barter"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.RecordPayment(inv.ID, tc.input)
			if !IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}

	// Rejected payments leave the invoice untouched
	current, _ := ledger.GetByID(inv.ID)
	if len(current.Payments) != 0 || current.AmountPaid != 0 {
		t.Errorf("rejected payments must not mutate the invoice: %+v", current)
	}
}

func TestRecordPayment_NotFound(t *testing.T) {
	ledger, _ := newTestLedger()

	_, err := ledger.RecordPayment(42, PaymentInput{Amount: 10, PaymentMethod: "Cash"})
	if !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRecordPayment_RespectsAdminOverride(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	if _, err := ledger.UpdateStatus(inv.ID, models.InvoiceOverdue); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	updated, err := ledger.RecordPayment(inv.ID, PaymentInput{Amount: 100, PaymentMethod: "Insurance"})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if updated.Status != models.InvoiceOverdue {
		t.Errorf("payment derivation must not clobber admin status, got %s", updated.Status)
	}
	if updated.BalanceDue != 0 {
		t.Errorf("financial fields must still update, balance due %.2f", updated.BalanceDue)
	}
	checkInvariants(t, updated)
}

func TestUpdate_ReplacingItemsRecomputesTotals(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})
	ledger.RecordPayment(inv.ID, PaymentInput{Amount: 40, PaymentMethod: "Cash"})

	newItems := []InvoiceItemInput{{Description: "Extended consultation", Quantity: 1, Rate: 200}}
	updated, err := ledger.Update(inv.ID, UpdateInvoiceInput{Items: &newItems})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.TotalAmount != 200 {
		t.Errorf("expected total 200, got %.2f", updated.TotalAmount)
	}
	if updated.BalanceDue != 160 {
		t.Errorf("expected balance due 160, got %.2f", updated.BalanceDue)
	}
	if updated.Status != models.InvoicePartial {
		t.Errorf("updating items must not retroactively change status, got %s", updated.Status)
	}
	if updated.InvoiceNumber != inv.InvoiceNumber || updated.ID != inv.ID {
		t.Error("invoice identity must never change on update")
	}
	if !updated.IssueDate.Equal(inv.IssueDate) {
		t.Error("issue date must never change on update")
	}
	checkInvariants(t, updated)
}

func TestUpdate_DueDateAndNotesOnly(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	newDue := dueDate().AddDate(0, 0, 14)
	notes := "payment plan agreed"
	updated, err := ledger.Update(inv.ID, UpdateInvoiceInput{DueDate: &newDue, Notes: &notes})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.DueDate.Equal(newDue) {
		t.Error("expected due date to be updated")
	}
	if updated.Notes != notes {
		t.Errorf("expected notes to be updated, got %q", updated.Notes)
	}
	if updated.TotalAmount != inv.TotalAmount || updated.InvoiceNumber != inv.InvoiceNumber {
		t.Error("updating due date must not touch totals or identity")
	}
}

func TestUpdateStatus(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	updated, err := ledger.UpdateStatus(inv.ID, models.InvoiceCancelled)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.InvoiceCancelled {
		t.Errorf("expected status Cancelled, got %s", updated.Status)
	}
	if !updated.StatusOverridden {
		t.Error("expected the invoice to be marked as overridden")
	}

	if _, err := ledger.UpdateStatus(inv.ID, "Refunded"); !IsValidation(err) {
		t.Errorf("expected ValidationError for unknown status, got %v", err)
	}
	if _, err := ledger.UpdateStatus(404, models.InvoicePaid); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ledger, _ := newTestLedger()
	inv, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})

	if err := ledger.Delete(inv.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := ledger.GetByID(inv.ID); !IsNotFound(err) {
		t.Errorf("expected deleted invoice to be gone, got %v", err)
	}
	all, _ := ledger.GetAll()
	if len(all) != 0 {
		t.Errorf("expected empty collection after delete, got %d", len(all))
	}

	if err := ledger.Delete(inv.ID); !IsNotFound(err) {
		t.Errorf("expected NotFoundError on double delete, got %v", err)
	}
}

func TestGetByStatus(t *testing.T) {
	ledger, _ := newTestLedger()
	a, _ := ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})
	ledger.Create(CreateInvoiceInput{
		PatientID: 2,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Imaging", Quantity: 1, Rate: 250}},
	})
	ledger.RecordPayment(a.ID, PaymentInput{Amount: 100, PaymentMethod: "Cash"})

	paid, err := ledger.GetByStatus(models.InvoicePaid)
	if err != nil {
		t.Fatalf("GetByStatus failed: %v", err)
	}
	if len(paid) != 1 || paid[0].ID != a.ID {
		t.Errorf("expected only the paid invoice, got %+v", paid)
	}

	for _, status := range []string{"", "All"} {
		all, err := ledger.GetByStatus(status)
		if err != nil {
			t.Fatalf("GetByStatus(%q) failed: %v", status, err)
		}
		if len(all) != 2 {
			t.Errorf("GetByStatus(%q): expected unfiltered collection, got %d", status, len(all))
		}
	}
}

func TestSearch(t *testing.T) {
	ledger, _ := newTestLedger()
	ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})
	ledger.Create(CreateInvoiceInput{
		PatientID: 2,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Imaging", Quantity: 1, Rate: 250}},
	})

	byName, err := ledger.Search("jane")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].PatientName != "Jane Doe" {
		t.Errorf("expected case-insensitive match on patient name, got %+v", byName)
	}

	byNumber, _ := ledger.Search("inv-00002")
	if len(byNumber) != 1 || byNumber[0].ID != 2 {
		t.Errorf("expected match on invoice number, got %+v", byNumber)
	}

	all, _ := ledger.Search("  ")
	if len(all) != 2 {
		t.Errorf("blank query should return everything, got %d", len(all))
	}

	none, _ := ledger.Search("zzz")
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestGetByPatient(t *testing.T) {
	ledger, _ := newTestLedger()
	ledger.Create(CreateInvoiceInput{
		PatientID: 1,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Consultation", Quantity: 1, Rate: 100}},
	})
	ledger.Create(CreateInvoiceInput{
		PatientID: 2,
		DueDate:   dueDate(),
		Items:     []InvoiceItemInput{{Description: "Imaging", Quantity: 1, Rate: 250}},
	})

	invoices, err := ledger.GetByPatient(2)
	if err != nil {
		t.Fatalf("GetByPatient failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].PatientID != 2 {
		t.Errorf("expected only patient 2's invoices, got %+v", invoices)
	}
}

func TestGetAll_SortedByIssueDateDesc(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	ledger, _ := newTestLedger(
		models.Invoice{ID: 1, InvoiceNumber: "INV-00001", PatientID: 1, IssueDate: older},
		models.Invoice{ID: 2, InvoiceNumber: "INV-00002", PatientID: 1, IssueDate: newer},
	)

	all, err := ledger.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(all))
	}
	if all[0].ID != 2 || all[1].ID != 1 {
		t.Errorf("expected most recently issued first, got order %d, %d", all[0].ID, all[1].ID)
	}
}

func TestGetByDateRange(t *testing.T) {
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	ledger, _ := newTestLedger(
		models.Invoice{ID: 1, InvoiceNumber: "INV-00001", PatientID: 1, IssueDate: jan},
		models.Invoice{ID: 2, InvoiceNumber: "INV-00002", PatientID: 1, IssueDate: jun},
	)

	invoices, err := ledger.GetByDateRange(
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != 1 {
		t.Errorf("expected only the January invoice, got %+v", invoices)
	}
}
