package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists")
)

const paymentColumns = `id, payment_id, order_id, transaction_id, user_id, user_name,
		status, payer_email, payer_name, package_name, package_features,
		amount, currency, create_time, created_at, updated_at`

// CaptureUpdate carries the gateway-reported capture result applied to the
// ledger record matching OrderID.
type CaptureUpdate struct {
	OrderID       string
	TransactionID string
	Status        entity.Status
	PayerEmail    string
	PayerName     string
	CreateTime    time.Time
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	featuresJSON, err := serializeStringList(payment.PackageFeatures)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (
			payment_id, order_id, transaction_id, user_id, user_name,
			status, payer_email, payer_name, package_name, package_features,
			amount, currency, create_time, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.PaymentID,
		payment.OrderID,
		payment.TransactionID,
		payment.UserID,
		payment.UserName,
		string(payment.Status),
		payment.PayerEmail,
		payment.PayerName,
		payment.PackageName,
		featuresJSON,
		payment.Amount,
		payment.Currency,
		payment.CreateTime,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.ID = uint64(id)
	return nil
}

func (r *PaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = ?`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, paymentID), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return payment, nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = ?`

	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, orderID), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return payment, nil
}

// ApplyCapture updates the record matching the capture's order id and
// returns the updated record. A capture with no matching record returns
// (nil, nil); callers decide what that means. The UPDATE and the
// follow-up read are separate statements, so a concurrent status write
// landing between them is reflected in the returned record.
func (r *PaymentRepository) ApplyCapture(ctx context.Context, capture CaptureUpdate) (*entity.Payment, error) {
	query := `
		UPDATE payments SET
			transaction_id = ?,
			status = ?,
			payer_email = ?,
			payer_name = ?,
			create_time = ?,
			updated_at = ?
		WHERE order_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		capture.TransactionID,
		string(capture.Status),
		capture.PayerEmail,
		capture.PayerName,
		capture.CreateTime,
		time.Now().UTC(),
		capture.OrderID,
	)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}

	return r.FindByOrderID(ctx, capture.OrderID)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, paymentID string, status entity.Status) error {
	query := `UPDATE payments SET status = ?, updated_at = ? WHERE payment_id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), paymentID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, paymentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = ?`, paymentID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) ListAll(ctx context.Context) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// Stats aggregates in one pass. Statuses without an explicit bucket
// (APPROVED, VOIDED) are counted in the totals only.
func (r *PaymentRepository) Stats(ctx context.Context) (*entity.PaymentStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(status = 'CAPTURED'), 0),
			COALESCE(SUM(CASE WHEN status = 'CAPTURED' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(status = 'CREATED'), 0),
			COALESCE(SUM(status = 'FAILED'), 0)
		FROM payments
	`

	stats := &entity.PaymentStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalPayments,
		&stats.TotalAmount,
		&stats.CapturedPayments,
		&stats.CapturedAmount,
		&stats.CreatedPayments,
		&stats.FailedPayments,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	var statusRaw string
	var featuresJSON string

	err := scan.Scan(
		&payment.ID,
		&payment.PaymentID,
		&payment.OrderID,
		&payment.TransactionID,
		&payment.UserID,
		&payment.UserName,
		&statusRaw,
		&payment.PayerEmail,
		&payment.PayerName,
		&payment.PackageName,
		&featuresJSON,
		&payment.Amount,
		&payment.Currency,
		&payment.CreateTime,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return err
	}

	status, err := entity.ParseStatus(statusRaw)
	if err != nil {
		return err
	}
	payment.Status = status

	features, err := parseStringList(featuresJSON)
	if err != nil {
		return err
	}
	payment.PackageFeatures = features

	return nil
}

func collectPayments(rows *sql.Rows) ([]*entity.Payment, error) {
	payments := make([]*entity.Payment, 0)
	for rows.Next() {
		item := &entity.Payment{}
		if err := scanPayment(rows, item); err != nil {
			return nil, err
		}
		payments = append(payments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
