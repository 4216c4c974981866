package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/engagesphere/engagesphere-backend/app/factory"
	"github.com/engagesphere/engagesphere-backend/app/mapper"
	"github.com/engagesphere/engagesphere-backend/app/service"
	"github.com/engagesphere/engagesphere-backend/app/types"
)

type PlanController struct {
	planService *service.PlanService
	logger      logrus.FieldLogger
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{
		planService: planService,
		logger:      factory.NewModuleLogger("plan-controller"),
	}
}

func (c *PlanController) CreatePlan(ctx echo.Context) error {
	req, err := types.NewPlanRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	plan, err := c.planService.CreatePlan(ctx.Request().Context(), service.PlanInput{
		Name:     req.Name,
		Features: req.Features,
		Price:    req.Price.String(),
		Currency: req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanAlreadyExists):
			return writeEnvelopeError(ctx, http.StatusConflict, "A plan with this name already exists")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create plan failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to create plan")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SuccessResponse{Success: true, Data: mapper.PlanToView(plan)})
}

func (c *PlanController) UpdatePlan(ctx echo.Context) error {
	req, err := types.NewPlanRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	plan, err := c.planService.UpdatePlan(ctx.Request().Context(), ctx.Param("planId"), service.PlanInput{
		Name:     req.Name,
		Features: req.Features,
		Price:    req.Price.String(),
		Currency: req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Plan not found")
		case errors.Is(err, service.ErrPlanAlreadyExists):
			return writeEnvelopeError(ctx, http.StatusConflict, "A plan with this name already exists")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Update plan failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to update plan")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Data: mapper.PlanToView(plan)})
}

func (c *PlanController) GetPlan(ctx echo.Context) error {
	plan, err := c.planService.GetPlan(ctx.Request().Context(), ctx.Param("planId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Plan not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get plan failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch plan")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Data: mapper.PlanToView(plan)})
}

func (c *PlanController) ListPlans(ctx echo.Context) error {
	plans, err := c.planService.ListPlans(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List plans failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch plans")
	}

	views := mapper.PlansToView(plans)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}
