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

type ReceiptController struct {
	receiptService *service.ReceiptService
	logger         logrus.FieldLogger
}

func NewReceiptController(receiptService *service.ReceiptService) *ReceiptController {
	return &ReceiptController{
		receiptService: receiptService,
		logger:         factory.NewModuleLogger("receipt-controller"),
	}
}

func (c *ReceiptController) CreateReceipt(ctx echo.Context) error {
	req, err := types.NewCreateReceiptRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	receipt, err := c.receiptService.CreateReceipt(ctx.Request().Context(), req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Payment not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create receipt failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to create receipt")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SuccessResponse{Success: true, Data: mapper.ReceiptToView(receipt)})
}

func (c *ReceiptController) GetReceipt(ctx echo.Context) error {
	receipt, err := c.receiptService.GetReceipt(ctx.Request().Context(), ctx.Param("receiptId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReceiptNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Receipt not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get receipt failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch receipt")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Data: mapper.ReceiptToView(receipt)})
}

func (c *ReceiptController) ListReceiptsByUser(ctx echo.Context) error {
	receipts, err := c.receiptService.ListReceiptsByUser(ctx.Request().Context(), ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List receipts failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch receipts")
	}

	views := mapper.ReceiptsToView(receipts)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}
