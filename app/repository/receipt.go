package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

var ErrReceiptNotFound = errors.New("receipt not found")

const receiptColumns = `id, receipt_id, payment_id, user_id, package_name, amount, currency, issued_at, created_at`

type ReceiptRepository struct {
	db DBTX
}

func NewReceiptRepository(db DBTX) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	query := `
		INSERT INTO receipts (receipt_id, payment_id, user_id, package_name, amount, currency, issued_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		receipt.ReceiptID,
		receipt.PaymentID,
		receipt.UserID,
		receipt.PackageName,
		receipt.Amount,
		receipt.Currency,
		receipt.IssuedAt,
		receipt.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	receipt.ID = uint64(id)
	return nil
}

func (r *ReceiptRepository) FindByReceiptID(ctx context.Context, receiptID string) (*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = ?`

	receipt := &entity.Receipt{}
	if err := scanReceipt(r.db.QueryRowContext(ctx, query, receiptID), receipt); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return receipt, nil
}

func (r *ReceiptRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE user_id = ? ORDER BY issued_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	receipts := make([]*entity.Receipt, 0)
	for rows.Next() {
		receipt := &entity.Receipt{}
		if err := scanReceipt(rows, receipt); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return receipts, nil
}

func scanReceipt(scan rowScanner, receipt *entity.Receipt) error {
	return scan.Scan(
		&receipt.ID,
		&receipt.ReceiptID,
		&receipt.PaymentID,
		&receipt.UserID,
		&receipt.PackageName,
		&receipt.Amount,
		&receipt.Currency,
		&receipt.IssuedAt,
		&receipt.CreatedAt,
	)
}
