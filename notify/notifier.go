package notify

import "log"

type Kind string

const (
	KindStockRequestCreated Kind = "stock_request_created"
	KindLowStock            Kind = "low_stock"
	KindTest                Kind = "test"
)

// Notifier delivers workflow events to the outside world. Delivery is
// best-effort; callers log failures and move on.
type Notifier interface {
	Send(kind Kind, payload map[string]any) error
}

// LogNotifier writes events to the application log. The real mail/push
// transport lives outside this service; this keeps events visible
// without an API key.
type LogNotifier struct{}

func (LogNotifier) Send(kind Kind, payload map[string]any) error {
	log.Printf("notification [%s]: %v", kind, payload)
	return nil
}
