package service

import (
	"testing"

	"gorm.io/gorm"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/notify"
)

type fakeImages struct {
	puts    int
	deletes []string
}

func (f *fakeImages) Put(data []byte) (string, error) {
	f.puts++
	return "/uploads/test.jpg", nil
}

func (f *fakeImages) Delete(url string) bool {
	f.deletes = append(f.deletes, url)
	return true
}

type sentEvent struct {
	Kind    notify.Kind
	Payload map[string]any
}

type recordingNotifier struct {
	events []sentEvent
}

func (r *recordingNotifier) Send(kind notify.Kind, payload map[string]any) error {
	r.events = append(r.events, sentEvent{Kind: kind, Payload: payload})
	return nil
}

func (r *recordingNotifier) ofKind(kind notify.Kind) []sentEvent {
	var out []sentEvent
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func seedCategory(t *testing.T, db *gorm.DB, companyID uint, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name, CompanyID: companyID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return category
}

func seedTruck(t *testing.T, db *gorm.DB, companyID uint, name string) models.Truck {
	t.Helper()
	truck := models.Truck{Name: name, CompanyID: companyID}
	if err := db.Create(&truck).Error; err != nil {
		t.Fatalf("seeding truck: %v", err)
	}
	return truck
}

// seedItem creates a warehouse consumable directly, skipping the
// service path so tests control exact state.
func seedItem(t *testing.T, db *gorm.DB, companyID, categoryID uint, name string, quantity, minQuantity int) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		Name:         name,
		CategoryID:   categoryID,
		CompanyID:    companyID,
		Condition:    models.ConditionGood,
		LocationType: models.LocationWarehouse,
		Quantity:     quantity,
		MinQuantity:  minQuantity,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	return item
}

func countActivity(t *testing.T, db *gorm.DB, companyID uint, action models.ActivityAction) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.ActivityLog{}).
		Where("company_id = ? AND action = ?", companyID, action).
		Count(&count).Error; err != nil {
		t.Fatalf("counting activity: %v", err)
	}
	return count
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return config.NewTestDB(t)
}
