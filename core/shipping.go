package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recognized shipping types. Membership is owned by the service; callers
// validate against ListAvailableShippingTypes before constructing requests.
const (
	ShippingTypeStandard  = "standard"
	ShippingTypeExpress   = "express"
	ShippingTypeOvernight = "overnight"
	ShippingTypePickup    = "pickup"
)

var availableShippingTypes = []string{
	ShippingTypeStandard,
	ShippingTypeExpress,
	ShippingTypeOvernight,
	ShippingTypePickup,
}

// ShippingService is the gatekeeper and recorder for shipment creation and
// status lookup. It owns the recognized shipping-type set and drives the
// persist-then-publish protocol against the injected repository and publisher.
type ShippingService struct {
	repo      ShippingRepository
	publisher ShippingPublisher
}

func NewShippingService(repo ShippingRepository, publisher ShippingPublisher) *ShippingService {
	return &ShippingService{repo: repo, publisher: publisher}
}

// ListAvailableShippingTypes returns the recognized shipping types.
func (s *ShippingService) ListAvailableShippingTypes() []string {
	types := make([]string, len(availableShippingTypes))
	copy(types, availableShippingTypes)
	return types
}

func (s *ShippingService) IsShippingTypeAvailable(shippingType string) bool {
	for _, t := range availableShippingTypes {
		if t == shippingType {
			return true
		}
	}
	return false
}

// CreateShipping validates the shipping type, persists a new shipment record
// with status created, then publishes the shipping id to the queue.
// Persistence completes before publication, so any consumer reacting to the
// message can always find the record. If the publish fails after the record
// is written, the id is still returned together with an error wrapping
// ErrNotificationFailed: the shipment exists, only the notification is owed.
func (s *ShippingService) CreateShipping(ctx context.Context, shippingType string, productIDs []string, orderID string, dueDate time.Time) (string, error) {
	if !s.IsShippingTypeAvailable(shippingType) {
		return "", fmt.Errorf("%w: %q", ErrShippingTypeNotAvailable, shippingType)
	}

	shippingID := uuid.New().String()
	record := ShipmentRecord{
		ShippingID:   shippingID,
		ShippingType: shippingType,
		ProductIDs:   productIDs,
		OrderID:      orderID,
		Status:       StatusCreated,
		DueDate:      dueDate,
	}

	if err := s.repo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("save shipment %s: %w", shippingID, err)
	}

	if err := s.publisher.Send(ctx, shippingID); err != nil {
		return shippingID, fmt.Errorf("%w: shipment %s: %w", ErrNotificationFailed, shippingID, err)
	}

	return shippingID, nil
}

// CheckStatus reads the shipment's current status through the repository.
func (s *ShippingService) CheckStatus(ctx context.Context, shippingID string) (Status, error) {
	record, err := s.repo.Get(ctx, shippingID)
	if err != nil {
		return "", fmt.Errorf("check shipment %s: %w", shippingID, err)
	}
	return record.Status, nil
}

// ProcessShipping resolves a shipment announced on the queue: the record is
// marked in progress, then completed when handled before its due date and
// failed otherwise. A missing record is an error so the queue redelivers;
// the record is always written before the id is published, so a miss means
// the repository is lagging, not that the shipment never existed.
func (s *ShippingService) ProcessShipping(ctx context.Context, shippingID string) (Status, error) {
	record, err := s.repo.Get(ctx, shippingID)
	if err != nil {
		return "", fmt.Errorf("process shipment %s: %w", shippingID, err)
	}

	record.Status = StatusInProgress
	if err := s.repo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("mark shipment %s in progress: %w", shippingID, err)
	}

	if time.Now().UTC().After(record.DueDate) {
		record.Status = StatusFailed
	} else {
		record.Status = StatusCompleted
	}
	if err := s.repo.Put(ctx, record); err != nil {
		return "", fmt.Errorf("resolve shipment %s: %w", shippingID, err)
	}
	return record.Status, nil
}
