package memory

import (
	"context"
	"sync"

	facility "carpark-cloud/internal/facility/domain"
)

// ReceiptArchive is an in-memory receipt archive for demo/testing.
type ReceiptArchive struct {
	mu       sync.RWMutex
	receipts []facility.Receipt
}

// NewReceiptArchive constructs an archive.
func NewReceiptArchive() *ReceiptArchive {
	return &ReceiptArchive{}
}

// Append stores a receipt.
func (a *ReceiptArchive) Append(ctx context.Context, receipt facility.Receipt) error {
	_ = ctx
	a.mu.Lock()
	a.receipts = append(a.receipts, receipt)
	a.mu.Unlock()
	return nil
}

// List returns all archived receipts in issue order.
func (a *ReceiptArchive) List(ctx context.Context) ([]facility.Receipt, error) {
	_ = ctx
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]facility.Receipt(nil), a.receipts...), nil
}
