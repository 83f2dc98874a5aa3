package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tooltrack/models"
	"tooltrack/notify"
)

// Requests orchestrates the stock request lifecycle:
// pending -> fulfilled -> received.
type Requests struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewRequests(db *gorm.DB, notifier notify.Notifier) *Requests {
	return &Requests{db: db, notifier: notifier}
}

type RequestLineInput struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

type LineFulfillment struct {
	LineID   uint `json:"line_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// LineWarning reports a line skipped during fulfillment.
type LineWarning struct {
	LineID   uint   `json:"line_id"`
	ItemName string `json:"item_name"`
	Reason   string `json:"reason"`
}

type FulfillResult struct {
	Request  *models.StockRequest `json:"request"`
	Warnings []LineWarning        `json:"warnings,omitempty"`
}

// CreateRequest opens a pending request. The creation notification is
// best-effort: a send failure is logged and never rolls back the
// request.
func (s *Requests) CreateRequest(ctx context.Context, requesterID, companyID uint, jobNumber, notes string, lines []RequestLineInput) (*models.StockRequest, error) {
	if jobNumber == "" {
		return nil, validationf("job number is required")
	}
	if len(lines) == 0 {
		return nil, validationf("at least one line is required")
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, validationf("line %d: quantity must be positive", i)
		}
	}

	request := models.StockRequest{
		RequesterID: requesterID,
		CompanyID:   companyID,
		JobNumber:   jobNumber,
		Notes:       notes,
		Status:      models.RequestPending,
	}

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		for _, line := range lines {
			var item models.InventoryItem
			err := tx.Where("company_id = ?", companyID).First(&item, line.ItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("item %d", line.ItemID)
			}
			if err != nil {
				return err
			}
			request.Lines = append(request.Lines, models.RequestLine{
				ItemID:            item.ID,
				ItemName:          item.Name,
				QuantityRequested: line.Quantity,
			})
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.Send(notify.KindStockRequestCreated, map[string]any{
		"request_id":   request.ID,
		"requester_id": requesterID,
		"job_number":   jobNumber,
		"lines":        len(request.Lines),
	}); err != nil {
		log.Printf("sending request-created notification for request %d: %v", request.ID, err)
	}

	return &request, nil
}

// Fulfill executes an admin's per-line fulfillment of a pending
// request. For every fulfilled line, in one transaction: the warehouse
// counter is decremented, the requester's technician account is
// credited, and the item is re-checked against its minimum. A line
// whose stock runs short is skipped and reported as a warning; the
// request transitions to fulfilled only when at least one line
// succeeded. Low-stock events are delivered after the transaction
// commits.
func (s *Requests) Fulfill(ctx context.Context, actorID, companyID, requestID uint, fills []LineFulfillment) (*FulfillResult, error) {
	if len(fills) == 0 {
		return nil, validationf("no line fulfillments given")
	}
	byLine := make(map[uint]int, len(fills))
	for _, f := range fills {
		if f.Quantity < 0 {
			return nil, validationf("line %d: fulfilled quantity cannot be negative", f.LineID)
		}
		byLine[f.LineID] = f.Quantity
	}

	var (
		result FulfillResult
		events []*LowStockEvent
	)

	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		result = FulfillResult{}
		events = events[:0]

		var request models.StockRequest
		err := lockForUpdate(tx).
			Where("company_id = ?", companyID).
			First(&request, requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("request %d", requestID)
		}
		if err != nil {
			return err
		}
		if request.Status != models.RequestPending {
			return validationf("request %d is already %s", request.ID, request.Status)
		}

		var reqLines []models.RequestLine
		if err := tx.Where("stock_request_id = ?", request.ID).
			Order("id ASC").Find(&reqLines).Error; err != nil {
			return err
		}

		for id := range byLine {
			found := false
			for i := range reqLines {
				if reqLines[i].ID == id {
					found = true
					break
				}
			}
			if !found {
				return notFoundf("line %d on request %d", id, request.ID)
			}
		}

		fulfilledAny := false
		for i := range reqLines {
			line := &reqLines[i]
			amount, ok := byLine[line.ID]
			if !ok || amount == 0 {
				continue
			}
			if amount > line.QuantityRequested {
				return validationf("line %d: fulfilled %d exceeds requested %d", line.ID, amount, line.QuantityRequested)
			}

			var item models.InventoryItem
			err := lockForUpdate(tx).
				Where("company_id = ?", companyID).
				First(&item, line.ItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reason := fmt.Sprintf("item %d no longer exists", line.ItemID)
				result.Warnings = append(result.Warnings, LineWarning{LineID: line.ID, ItemName: line.ItemName, Reason: reason})
				if err := tx.Model(line).Update("fail_reason", reason).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			if err := decrementStock(tx, &item, amount); err != nil {
				// Lines are independent units of work: a short line is
				// skipped, the rest proceed.
				if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrValidation) {
					reason := err.Error()
					result.Warnings = append(result.Warnings, LineWarning{LineID: line.ID, ItemName: line.ItemName, Reason: reason})
					if err := tx.Model(line).Update("fail_reason", reason).Error; err != nil {
						return err
					}
					continue
				}
				return err
			}

			if err := tx.Model(line).Updates(map[string]any{
				"quantity_fulfilled": amount,
				"fail_reason":        nil,
			}).Error; err != nil {
				return err
			}

			if err := creditTechnician(tx, companyID, request.RequesterID, item.ID, item.Name, amount, request.JobNumber, request.ID); err != nil {
				return err
			}

			event, err := CheckLowStock(tx, &item)
			if err != nil {
				return err
			}
			if event != nil {
				events = append(events, event)
			}
			fulfilledAny = true
		}

		if !fulfilledAny {
			return fmt.Errorf("%w: no line could be fulfilled", ErrInsufficientStock)
		}

		now := time.Now().UTC()
		request.Status = models.RequestFulfilled
		request.FulfilledAt = &now
		if err := tx.Model(&request).Updates(map[string]any{
			"status":       request.Status,
			"fulfilled_at": request.FulfilledAt,
		}).Error; err != nil {
			return err
		}

		result.Request = &request
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if err := s.notifier.Send(notify.KindLowStock, map[string]any{
			"item_id":   event.ItemID,
			"item_name": event.ItemName,
			"remaining": event.Remaining,
			"minimum":   event.Minimum,
		}); err != nil {
			log.Printf("sending low-stock notification for item %d: %v", event.ItemID, err)
		}
	}

	return &result, nil
}

// ConfirmReceipt marks lines of a fulfilled request as received by the
// requester. Any marking call with at least one line moves the whole
// request to received; per-line flags are still tracked so stricter
// completion semantics can be adopted later without a data migration.
func (s *Requests) ConfirmReceipt(ctx context.Context, technicianID, companyID, requestID uint, lineIDs []uint) (*models.StockRequest, error) {
	if len(lineIDs) == 0 {
		return nil, validationf("at least one line must be marked as received")
	}

	var request models.StockRequest
	err := inTx(ctx, s.db, func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("company_id = ? AND requester_id = ?", companyID, technicianID).
			First(&request, requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("request %d", requestID)
		}
		if err != nil {
			return err
		}
		if request.Status == models.RequestPending {
			return validationf("request %d has not been fulfilled yet", request.ID)
		}
		if request.Status == models.RequestReceived {
			return validationf("request %d is already received", request.ID)
		}

		for _, lineID := range lineIDs {
			res := tx.Model(&models.RequestLine{}).
				Where("id = ? AND stock_request_id = ?", lineID, request.ID).
				Update("received", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return notFoundf("line %d on request %d", lineID, request.ID)
			}
		}

		now := time.Now().UTC()
		request.Status = models.RequestReceived
		request.ReceivedAt = &now
		if err := tx.Model(&request).Updates(map[string]any{
			"status":      request.Status,
			"received_at": request.ReceivedAt,
		}).Error; err != nil {
			return err
		}

		return recordActivity(tx, companyID, technicianID, models.ActionReceived, request.JobNumber, map[string]any{
			"request_id": request.ID,
			"job_number": request.JobNumber,
			"lines":      lineIDs,
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Get loads a request with its lines, scoped to the company.
func (s *Requests) Get(ctx context.Context, companyID, requestID uint) (*models.StockRequest, error) {
	var request models.StockRequest
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Preload("Lines").
		First(&request, requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("request %d", requestID)
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListForRequester returns a technician's own requests, newest first.
func (s *Requests) ListForRequester(ctx context.Context, companyID, requesterID uint) ([]models.StockRequest, error) {
	var requests []models.StockRequest
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND requester_id = ?", companyID, requesterID).
		Preload("Lines").
		Order("id DESC").
		Find(&requests).Error
	return requests, err
}

// ListAll returns the company's requests, optionally filtered by
// status, newest first.
func (s *Requests) ListAll(ctx context.Context, companyID uint, status models.RequestStatus) ([]models.StockRequest, error) {
	q := s.db.WithContext(ctx).Where("company_id = ?", companyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []models.StockRequest
	err := q.Preload("Lines").Order("id DESC").Find(&requests).Error
	return requests, err
}
