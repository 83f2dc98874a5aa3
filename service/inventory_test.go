package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tooltrack/models"
)

func strptr(s string) *string { return &s }

func TestAddItemRequiresNameAndCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	err := svc.AddItem(ctx, 1, &models.InventoryItem{CompanyID: 1, CategoryID: 1}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}

	err = svc.AddItem(ctx, 1, &models.InventoryItem{CompanyID: 1, Name: "Drill"}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for missing category, got %v", err)
	}
}

func TestAddItemTruckLocationRequiresTruck(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	svc := NewInventory(db, &fakeImages{})

	item := &models.InventoryItem{
		Name:         "Drill",
		CategoryID:   category.ID,
		CompanyID:    1,
		LocationType: models.LocationTruck,
	}
	err := svc.AddItem(context.Background(), 1, item, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for truck location without truck, got %v", err)
	}
}

func TestAddItemUnknownCategoryOrTruck(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	err := svc.AddItem(ctx, 1, &models.InventoryItem{
		Name: "Drill", CategoryID: 999, CompanyID: 1,
	}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not-found for bad category, got %v", err)
	}

	truckID := uint(999)
	err = svc.AddItem(ctx, 1, &models.InventoryItem{
		Name: "Drill", CategoryID: category.ID, CompanyID: 1,
		LocationType: models.LocationTruck, AssignedTruckID: &truckID,
	}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not-found for bad truck, got %v", err)
	}
}

func TestDuplicateSerialScopedToCompany(t *testing.T) {
	db := newTestDB(t)
	c1 := seedCategory(t, db, 1, "Tools")
	c2 := seedCategory(t, db, 2, "Tools")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	first := &models.InventoryItem{Name: "Drill", CategoryID: c1.ID, CompanyID: 1, SerialNumber: strptr("SN-1")}
	if err := svc.AddItem(ctx, 1, first, nil); err != nil {
		t.Fatalf("first add: %v", err)
	}

	second := &models.InventoryItem{Name: "Drill", CategoryID: c1.ID, CompanyID: 1, SerialNumber: strptr("SN-1")}
	if err := svc.AddItem(ctx, 1, second, nil); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected duplicate error in same company, got %v", err)
	}

	other := &models.InventoryItem{Name: "Drill", CategoryID: c2.ID, CompanyID: 2, SerialNumber: strptr("SN-1")}
	if err := svc.AddItem(ctx, 2, other, nil); err != nil {
		t.Errorf("same serial in another company should succeed, got %v", err)
	}
}

func TestFindConflictExcludesSelfAndNil(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	item := &models.InventoryItem{Name: "Drill", CategoryID: category.ID, CompanyID: 1, Barcode: strptr("BC-9")}
	if err := svc.AddItem(ctx, 1, item, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	conflict, err := svc.FindConflict(ctx, 1, nil, strptr("BC-9"), item.ID)
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict != nil {
		t.Errorf("item should not conflict with itself, got %+v", conflict)
	}

	conflict, err = svc.FindConflict(ctx, 1, nil, nil, 0)
	if err != nil {
		t.Fatalf("FindConflict: %v", err)
	}
	if conflict != nil {
		t.Errorf("nil identifiers should never conflict, got %+v", conflict)
	}
}

func TestTransferItemToTruck(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	truck := seedTruck(t, db, 1, "Van 7")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	item := &models.InventoryItem{Name: "Drill", CategoryID: category.ID, CompanyID: 1}
	if err := svc.AddItem(ctx, 1, item, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.TransferItem(ctx, 1, 1, item.ID, &truck.ID); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	var got models.InventoryItem
	if err := db.First(&got, item.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.LocationType != models.LocationTruck {
		t.Errorf("expected location truck, got %s", got.LocationType)
	}
	if got.AssignedTruckID == nil || *got.AssignedTruckID != truck.ID {
		t.Errorf("expected assigned truck %d, got %v", truck.ID, got.AssignedTruckID)
	}

	var entries []models.ActivityLog
	if err := db.Where("action = ?", models.ActionTransferred).Find(&entries).Error; err != nil {
		t.Fatalf("loading audit: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 transferred audit entry, got %d", len(entries))
	}
	var details map[string]any
	if err := json.Unmarshal(entries[0].Details, &details); err != nil {
		t.Fatalf("decoding details: %v", err)
	}
	if details["from"] != "Warehouse" {
		t.Errorf("expected from Warehouse, got %v", details["from"])
	}
	if details["to"] != "Van 7" {
		t.Errorf("expected to Van 7, got %v", details["to"])
	}
}

func TestTransferToCurrentLocationFails(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	truck := seedTruck(t, db, 1, "Van 7")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	item := &models.InventoryItem{Name: "Drill", CategoryID: category.ID, CompanyID: 1}
	if err := svc.AddItem(ctx, 1, item, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.TransferItem(ctx, 1, 1, item.ID, nil); !errors.Is(err, ErrInvalidTransfer) {
		t.Errorf("warehouse to warehouse should fail, got %v", err)
	}

	if err := svc.TransferItem(ctx, 1, 1, item.ID, &truck.ID); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := svc.TransferItem(ctx, 1, 1, item.ID, &truck.ID); !errors.Is(err, ErrInvalidTransfer) {
		t.Errorf("same truck should fail, got %v", err)
	}
}

func TestEditItemBackToWarehouseClearsTruck(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	truck := seedTruck(t, db, 1, "Van 7")
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	item := &models.InventoryItem{
		Name: "Drill", CategoryID: category.ID, CompanyID: 1,
		LocationType: models.LocationTruck, AssignedTruckID: &truck.ID,
	}
	if err := svc.AddItem(ctx, 1, item, nil); err != nil {
		t.Fatalf("add: %v", err)
	}

	upd := &models.InventoryItem{
		Name: "Drill", CategoryID: category.ID,
		LocationType: models.LocationWarehouse, AssignedTruckID: &truck.ID,
	}
	if err := svc.EditItem(ctx, 1, 1, item.ID, upd, nil); err != nil {
		t.Fatalf("edit: %v", err)
	}

	var got models.InventoryItem
	db.First(&got, item.ID)
	if got.AssignedTruckID != nil {
		t.Errorf("warehouse item must have no assigned truck, got %v", *got.AssignedTruckID)
	}
}

func TestDeleteItemCapturesStateAndReleasesImage(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	imgs := &fakeImages{}
	svc := NewInventory(db, imgs)
	ctx := context.Background()

	item := &models.InventoryItem{Name: "Drill", CategoryID: category.ID, CompanyID: 1, SerialNumber: strptr("SN-7")}
	if err := svc.AddItem(ctx, 1, item, []byte("fake-image")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteItem(ctx, 1, 1, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Errorf("item should be gone")
	}

	var entry models.ActivityLog
	if err := db.Where("action = ?", models.ActionDeleted).First(&entry).Error; err != nil {
		t.Fatalf("expected a deleted audit entry: %v", err)
	}
	var details map[string]any
	json.Unmarshal(entry.Details, &details)
	if details["name"] != "Drill" || details["serial_number"] != "SN-7" {
		t.Errorf("audit entry should carry the item's last state, got %v", details)
	}

	if len(imgs.deletes) != 1 {
		t.Errorf("expected 1 released image, got %d", len(imgs.deletes))
	}
}

func TestDecrementWarehouseStock(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	item := seedItem(t, db, 1, category.ID, "Screws", 10, 0)
	svc := NewInventory(db, &fakeImages{})
	ctx := context.Background()

	if err := svc.DecrementWarehouseStock(ctx, 1, item.ID, 4); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	var got models.InventoryItem
	db.First(&got, item.ID)
	if got.Quantity != 6 {
		t.Errorf("expected quantity 6, got %d", got.Quantity)
	}

	err := svc.DecrementWarehouseStock(ctx, 1, item.ID, 7)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected insufficient stock, got %v", err)
	}
	db.First(&got, item.ID)
	if got.Quantity != 6 {
		t.Errorf("failed decrement must not change quantity, got %d", got.Quantity)
	}
}

func TestItemInvisibleAcrossCompanies(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")
	item := seedItem(t, db, 1, category.ID, "Drill", 1, 0)
	svc := NewInventory(db, &fakeImages{})

	err := svc.DeleteItem(context.Background(), 9, 2, item.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("other company's item must look absent, got %v", err)
	}
}
