package service

import (
	"testing"

	"tooltrack/models"
)

func TestCheckLowStockCounterItem(t *testing.T) {
	db := newTestDB(t)

	tests := []struct {
		name     string
		quantity int
		minimum  int
		fires    bool
	}{
		{"below_minimum", 2, 3, true},
		{"at_minimum", 3, 3, false},
		{"above_minimum", 5, 3, false},
		{"no_minimum_configured", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.InventoryItem{
				ID: 1, Name: "Drill", CompanyID: 1,
				Quantity: tt.quantity, MinQuantity: tt.minimum,
			}
			event, err := CheckLowStock(db, &item)
			if err != nil {
				t.Fatalf("CheckLowStock: %v", err)
			}
			if (event != nil) != tt.fires {
				t.Errorf("fires = %v, want %v", event != nil, tt.fires)
			}
			if event != nil && (event.Remaining != tt.quantity || event.Minimum != tt.minimum) {
				t.Errorf("unexpected event %+v", event)
			}
		})
	}
}

func TestCheckLowStockGroupedItem(t *testing.T) {
	db := newTestDB(t)
	category := seedCategory(t, db, 1, "Tools")

	groupID := "c2c5e0f2-3a47-4e58-9a31-1f1f0c8b6a01"
	for i := 0; i < 2; i++ {
		item := models.InventoryItem{
			Name: "Ladder", CategoryID: category.ID, CompanyID: 1,
			Condition: models.ConditionGood, LocationType: models.LocationWarehouse,
			GroupID: &groupID, MinQuantity: 3,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("seeding group member: %v", err)
		}
	}

	var member models.InventoryItem
	db.Where("group_id = ?", groupID).First(&member)

	// Two units remain against a minimum of three.
	event, err := CheckLowStock(db, &member)
	if err != nil {
		t.Fatalf("CheckLowStock: %v", err)
	}
	if event == nil {
		t.Fatal("expected a low-stock event for the group")
	}
	if event.Remaining != 2 || event.Minimum != 3 {
		t.Errorf("expected remaining 2 minimum 3, got %d/%d", event.Remaining, event.Minimum)
	}
}
