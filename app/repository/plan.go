package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/engagesphere/engagesphere-backend/app/entity"
)

var (
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAlreadyExists = errors.New("plan already exists")
)

const planColumns = `id, plan_id, name, features, price, currency, created_at, updated_at`

type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	featuresJSON, err := serializeStringList(plan.Features)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plans (plan_id, name, features, price, currency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.PlanID,
		plan.Name,
		featuresJSON,
		plan.Price,
		plan.Currency,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPlanAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	plan.ID = uint64(id)
	return nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *entity.Plan) error {
	featuresJSON, err := serializeStringList(plan.Features)
	if err != nil {
		return err
	}

	query := `
		UPDATE plans SET name = ?, features = ?, price = ?, currency = ?, updated_at = ?
		WHERE plan_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.Name,
		featuresJSON,
		plan.Price,
		plan.Currency,
		time.Now().UTC(),
		plan.PlanID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPlanAlreadyExists
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) FindByPlanID(ctx context.Context, planID string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE plan_id = ?`

	plan := &entity.Plan{}
	if err := scanPlan(r.db.QueryRowContext(ctx, query, planID), plan); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *PlanRepository) ListAll(ctx context.Context) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY price ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*entity.Plan, 0)
	for rows.Next() {
		plan := &entity.Plan{}
		if err := scanPlan(rows, plan); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func scanPlan(scan rowScanner, plan *entity.Plan) error {
	var featuresJSON string

	err := scan.Scan(
		&plan.ID,
		&plan.PlanID,
		&plan.Name,
		&featuresJSON,
		&plan.Price,
		&plan.Currency,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	features, err := parseStringList(featuresJSON)
	if err != nil {
		return err
	}
	plan.Features = features

	return nil
}
