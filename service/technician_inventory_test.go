package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tooltrack/models"
)

func TestCreditCreatesThenMerges(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	if err := svc.Credit(ctx, 1, 7, 42, "Drill", 2, "J-100", 1); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if err := svc.Credit(ctx, 1, 7, 42, "Drill", 3, "J-200", 2); err != nil {
		t.Fatalf("second credit: %v", err)
	}

	var records []models.TechnicianInventory
	db.Where("technician_id = ? AND item_id = ?", 7, 42).Find(&records)
	if len(records) != 1 {
		t.Fatalf("expected one merged record, got %d", len(records))
	}
	record := records[0]
	if record.Quantity != 5 || record.RemainingQuantity != 5 || record.UsedQuantity != 0 {
		t.Errorf("expected 5/5/0, got %d/%d/%d", record.Quantity, record.RemainingQuantity, record.UsedQuantity)
	}
	if record.Status != models.TechnicianInventoryActive {
		t.Errorf("expected active, got %s", record.Status)
	}
	if !strings.Contains(record.Notes, "J-100") || !strings.Contains(record.Notes, "J-200") {
		t.Errorf("notes should log both credits:\n%s", record.Notes)
	}
}

func TestCreditDoesNotMergeAcrossTechnicianOrCompany(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	svc.Credit(ctx, 1, 7, 42, "Drill", 1, "J-1", 1)
	svc.Credit(ctx, 1, 8, 42, "Drill", 1, "J-1", 1)
	svc.Credit(ctx, 2, 7, 42, "Drill", 1, "J-1", 1)

	var count int64
	db.Model(&models.TechnicianInventory{}).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 separate records, got %d", count)
	}
}

func TestUseRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	if err := svc.Credit(ctx, 1, 7, 42, "Drill", 4, "J-100", 1); err != nil {
		t.Fatalf("credit: %v", err)
	}
	var record models.TechnicianInventory
	db.Where("technician_id = ?", 7).First(&record)

	if err := svc.Use(ctx, 1, 7, record.ID, 4, "J-100"); err != nil {
		t.Fatalf("use: %v", err)
	}

	db.First(&record, record.ID)
	if record.RemainingQuantity != 0 || record.UsedQuantity != 4 {
		t.Errorf("expected remaining 0/used 4, got %d/%d", record.RemainingQuantity, record.UsedQuantity)
	}
	if record.Status != models.TechnicianInventoryUsed {
		t.Errorf("expected used status at zero, got %s", record.Status)
	}

	if got := countActivity(t, db, 1, models.ActionAdded); got != 1 {
		t.Errorf("expected 1 added audit entry, got %d", got)
	}
	if got := countActivity(t, db, 1, models.ActionUsed); got != 1 {
		t.Errorf("expected 1 used audit entry, got %d", got)
	}
}

func TestUsePartialKeepsActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	svc.Credit(ctx, 1, 7, 42, "Drill", 5, "J-100", 1)
	var record models.TechnicianInventory
	db.Where("technician_id = ?", 7).First(&record)

	if err := svc.Use(ctx, 1, 7, record.ID, 2, ""); err != nil {
		t.Fatalf("use: %v", err)
	}

	db.First(&record, record.ID)
	if record.RemainingQuantity != 3 || record.Status != models.TechnicianInventoryActive {
		t.Errorf("expected remaining 3 active, got %d %s", record.RemainingQuantity, record.Status)
	}
	if record.RemainingQuantity != record.Quantity-record.UsedQuantity {
		t.Errorf("remaining must equal quantity minus used")
	}
}

func TestUseOverdraftRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	svc.Credit(ctx, 1, 7, 42, "Drill", 2, "J-100", 1)
	var record models.TechnicianInventory
	db.Where("technician_id = ?", 7).First(&record)

	err := svc.Use(ctx, 1, 7, record.ID, 3, "")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("expected insufficient balance, got %v", err)
	}
	err = svc.Use(ctx, 1, 7, record.ID, 0, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("zero amount should fail validation, got %v", err)
	}

	db.First(&record, record.ID)
	if record.RemainingQuantity != 2 {
		t.Errorf("failed use must not change balance, got %d", record.RemainingQuantity)
	}
}

func TestCreditAfterUsedOpensNewRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	svc.Credit(ctx, 1, 7, 42, "Drill", 2, "J-100", 1)
	var first models.TechnicianInventory
	db.Where("technician_id = ?", 7).First(&first)
	if err := svc.Use(ctx, 1, 7, first.ID, 2, ""); err != nil {
		t.Fatalf("use: %v", err)
	}

	// The used record is terminal; a fresh credit starts over.
	if err := svc.Credit(ctx, 1, 7, 42, "Drill", 5, "J-300", 3); err != nil {
		t.Fatalf("credit after used: %v", err)
	}

	var records []models.TechnicianInventory
	db.Where("technician_id = ? AND item_id = ?", 7, 42).Order("id ASC").Find(&records)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Status != models.TechnicianInventoryUsed {
		t.Errorf("first record must stay used, got %s", records[0].Status)
	}
	if records[1].Status != models.TechnicianInventoryActive || records[1].RemainingQuantity != 5 {
		t.Errorf("new record should be active with 5 remaining, got %s/%d", records[1].Status, records[1].RemainingQuantity)
	}
}

func TestUseScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianAccounts(db)
	ctx := context.Background()

	svc.Credit(ctx, 1, 7, 42, "Drill", 2, "J-100", 1)
	var record models.TechnicianInventory
	db.Where("technician_id = ?", 7).First(&record)

	err := svc.Use(ctx, 1, 8, record.ID, 1, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("another technician's record must look absent, got %v", err)
	}
}
