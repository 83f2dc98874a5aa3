package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tooltrack/config"
	"tooltrack/models"
	"tooltrack/service"
	"tooltrack/utils"
)

type itemInput struct {
	Name            string               `json:"name" binding:"required"`
	Description     string               `json:"description"`
	CategoryID      uint                 `json:"category_id" binding:"required"`
	SerialNumber    *string              `json:"serial_number"`
	Barcode         *string              `json:"barcode"`
	Condition       models.ItemCondition `json:"condition"`
	LocationType    models.LocationType  `json:"location_type"`
	AssignedTruckID *uint                `json:"assigned_truck_id"`
	UnitPrice       decimal.Decimal      `json:"unit_price"`
	Quantity        int                  `json:"quantity"`
	MinQuantity     int                  `json:"min_quantity"`
}

func (in *itemInput) toModel(companyID uint) *models.InventoryItem {
	return &models.InventoryItem{
		Name:            in.Name,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		SerialNumber:    in.SerialNumber,
		Barcode:         in.Barcode,
		Condition:       in.Condition,
		LocationType:    in.LocationType,
		AssignedTruckID: in.AssignedTruckID,
		CompanyID:       companyID,
		UnitPrice:       in.UnitPrice,
		Quantity:        in.Quantity,
		MinQuantity:     in.MinQuantity,
	}
}

func CreateItem(c *gin.Context) {
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}

	item := in.toModel(companyID)
	svc := service.NewInventory(config.DB, images)
	if err := svc.AddItem(c.Request.Context(), userID, item, nil); err != nil {
		serviceError(c, err)
		return
	}

	config.DB.Preload("Category").Preload("AssignedTruck").First(item, item.ID)
	utils.Created(c, "item added", item)
}

func GetAllItems(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}

	q := config.DB.Where("company_id = ?", companyID).
		Preload("Category").Preload("AssignedTruck")
	if loc := c.Query("location"); loc != "" {
		q = q.Where("location_type = ?", loc)
	}
	if truck := c.Query("truck_id"); truck != "" {
		q = q.Where("assigned_truck_id = ?", truck)
	}

	var items []models.InventoryItem
	if err := q.Order("id DESC").Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "listing items failed", err)
		return
	}
	utils.Success(c, "items", items)
}

func GetItemByID(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("company_id = ?", companyID).
		Preload("Category").Preload("AssignedTruck").
		First(&item, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "item not found", nil)
		return
	}
	utils.Success(c, "item", item)
}

func UpdateItem(c *gin.Context) {
	var in itemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	svc := service.NewInventory(config.DB, images)
	if err := svc.EditItem(c.Request.Context(), userID, companyID, uint(id), in.toModel(companyID), nil); err != nil {
		serviceError(c, err)
		return
	}

	var item models.InventoryItem
	config.DB.Preload("Category").Preload("AssignedTruck").First(&item, id)
	utils.Success(c, "item updated", item)
}

func DeleteItem(c *gin.Context) {
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	svc := service.NewInventory(config.DB, images)
	if err := svc.DeleteItem(c.Request.Context(), userID, companyID, uint(id)); err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "item deleted", nil)
}

func TransferItem(c *gin.Context) {
	var in struct {
		// Nil truck id means the warehouse.
		TruckID *uint `json:"truck_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	userID, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	svc := service.NewInventory(config.DB, images)
	if err := svc.TransferItem(c.Request.Context(), userID, companyID, uint(id), in.TruckID); err != nil {
		serviceError(c, err)
		return
	}

	var item models.InventoryItem
	config.DB.Preload("AssignedTruck").First(&item, id)
	utils.Success(c, "item transferred", item)
}

// UploadItemImage replaces the item's photo from a multipart form.
func UploadItemImage(c *gin.Context) {
	_, companyID, ok := identity(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id", err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "image file required", err)
		return
	}
	f, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "reading image failed", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "reading image failed", err)
		return
	}

	svc := service.NewInventory(config.DB, images)
	url, err := svc.SetItemImage(c.Request.Context(), companyID, uint(id), data)
	if err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "image stored", gin.H{"image_url": url})
}
