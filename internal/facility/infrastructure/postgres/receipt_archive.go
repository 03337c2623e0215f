package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	facility "carpark-cloud/internal/facility/domain"
)

// ReceiptArchive persists issued receipts.
type ReceiptArchive struct {
	db *sql.DB
}

// NewReceiptArchive constructs an archive.
func NewReceiptArchive(db *sql.DB) *ReceiptArchive {
	return &ReceiptArchive{db: db}
}

// Append inserts a receipt row.
func (a *ReceiptArchive) Append(ctx context.Context, receipt facility.Receipt) error {
	if a == nil || a.db == nil {
		return errors.New("receipt archive: nil db")
	}
	_, err := a.db.ExecContext(ctx, `
INSERT INTO parking_receipts (slot_id, vehicle_no, vehicle_class, entered_at, exited_at, duration_hours, amount)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		receipt.SlotID, receipt.VehicleID, string(receipt.Class),
		receipt.EnteredAt, receipt.ExitedAt, receipt.Hours, receipt.Amount)
	return err
}

// ListBetween returns receipts whose exit time falls in [from, to).
func (a *ReceiptArchive) ListBetween(ctx context.Context, from, to time.Time) ([]facility.Receipt, error) {
	if a == nil || a.db == nil {
		return nil, errors.New("receipt archive: nil db")
	}
	rows, err := a.db.QueryContext(ctx, `
SELECT slot_id, vehicle_no, vehicle_class, entered_at, exited_at, duration_hours, amount
FROM parking_receipts
WHERE exited_at >= $1 AND exited_at < $2
ORDER BY exited_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []facility.Receipt
	for rows.Next() {
		var r facility.Receipt
		var class string
		if err := rows.Scan(&r.SlotID, &r.VehicleID, &class, &r.EnteredAt, &r.ExitedAt, &r.Hours, &r.Amount); err != nil {
			return nil, err
		}
		r.Class = facility.VehicleClass(class)
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}
