package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/engagesphere/engagesphere-backend/app/entity"
	"github.com/engagesphere/engagesphere-backend/app/repository"
)

type planRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	Update(ctx context.Context, plan *entity.Plan) error
	FindByPlanID(ctx context.Context, planID string) (*entity.Plan, error)
	ListAll(ctx context.Context) ([]*entity.Plan, error)
}

type PlanService struct {
	planRepo planRepository
}

func NewPlanService(planRepo planRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

type PlanInput struct {
	Name     string
	Features []string
	Price    string
	Currency string
}

func (s *PlanService) parsePlanInput(input PlanInput) (string, []string, decimal.Decimal, string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", nil, decimal.Zero, "", fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil || price.IsNegative() {
		return "", nil, decimal.Zero, "", fmt.Errorf("%w: price must be a non-negative decimal", ErrInvalidRequest)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	return name, cloneFeatures(input.Features), price, currency, nil
}

func (s *PlanService) CreatePlan(ctx context.Context, input PlanInput) (*entity.Plan, error) {
	name, features, price, currency, err := s.parsePlanInput(input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := &entity.Plan{
		PlanID:    uuid.NewString(),
		Name:      name,
		Features:  features,
		Price:     price,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrPlanAlreadyExists) {
			return nil, ErrPlanAlreadyExists
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) UpdatePlan(ctx context.Context, planID string, input PlanInput) (*entity.Plan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, fmt.Errorf("%w: planId is required", ErrInvalidRequest)
	}

	name, features, price, currency, err := s.parsePlanInput(input)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	plan.Name = name
	plan.Features = features
	plan.Price = price
	plan.Currency = currency
	plan.UpdatedAt = time.Now().UTC()

	if err := s.planRepo.Update(ctx, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrPlanNotFound):
			return nil, ErrPlanNotFound
		case errors.Is(err, repository.ErrPlanAlreadyExists):
			return nil, ErrPlanAlreadyExists
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) GetPlan(ctx context.Context, planID string) (*entity.Plan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, fmt.Errorf("%w: planId is required", ErrInvalidRequest)
	}

	plan, err := s.planRepo.FindByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]*entity.Plan, error) {
	return s.planRepo.ListAll(ctx)
}
