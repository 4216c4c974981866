package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/engagesphere/engagesphere-backend/app/factory"
	"github.com/engagesphere/engagesphere-backend/app/gateway"
	"github.com/engagesphere/engagesphere-backend/app/mapper"
	"github.com/engagesphere/engagesphere-backend/app/service"
	"github.com/engagesphere/engagesphere-backend/app/types"
)

type PaymentController struct {
	paymentService *service.PaymentService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         factory.NewModuleLogger("payment-controller"),
	}
}

func (c *PaymentController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *PaymentController) CreateOrder(ctx echo.Context) error {
	req, err := types.NewCreateOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, approveLink, err := c.paymentService.CreateOrder(ctx.Request().Context(), service.CreateOrderInput{
		Amount:          req.Amount.String(),
		PackageName:     req.PackageName,
		PackageFeatures: req.PackageFeatures,
		UserID:          req.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUser):
			return c.writeError(ctx, http.StatusBadRequest, "Invalid userId")
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create order failed")
			return c.writeError(ctx, http.StatusInternalServerError, "Order creation failed")
		}
	}

	return ctx.JSON(http.StatusOK, &types.CreateOrderResponse{
		Payment:     mapper.PaymentToView(payment),
		ApproveLink: approveLink,
	})
}

func (c *PaymentController) CaptureOrder(ctx echo.Context) error {
	req, err := types.NewCaptureOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, err := c.paymentService.CaptureOrder(ctx.Request().Context(), req.OrderID())
	if err != nil {
		var declined *gateway.CaptureDeclinedError
		switch {
		case errors.As(err, &declined):
			return ctx.JSON(http.StatusBadRequest, &types.CaptureErrorResponse{
				Error:   "Order cannot be captured. Ensure it is approved by the buyer.",
				Details: declined.Detail,
			})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Capture order failed")
			return c.writeError(ctx, http.StatusInternalServerError, "Payment capture failed")
		}
	}

	// payment is null when the gateway capture succeeded but no ledger
	// record matched the order id.
	return ctx.JSON(http.StatusOK, &types.CaptureOrderResponse{
		Message: "Payment captured & updated",
		Payment: mapper.PaymentToView(payment),
	})
}

func (c *PaymentController) GetPayment(ctx echo.Context) error {
	req, err := types.NewGetPaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, err := c.paymentService.GetPaymentDetails(ctx.Request().Context(), req.PaymentID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "Payment not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get payment failed")
		return c.writeError(ctx, http.StatusInternalServerError, "Could not retrieve payment details")
	}

	return ctx.JSON(http.StatusOK, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToView(payment)})
}

func (c *PaymentController) ListAllPayments(ctx echo.Context) error {
	items, err := c.paymentService.ListAllPayments(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List payments failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch payments")
	}

	views := mapper.PaymentsToView(items)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}

func (c *PaymentController) GetPaymentStats(ctx echo.Context) error {
	stats, err := c.paymentService.ComputeStats(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Compute payment stats failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch payment statistics")
	}

	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Data: mapper.StatsToView(stats)})
}

func (c *PaymentController) ListPaymentsByUser(ctx echo.Context) error {
	userID := ctx.Param("userId")

	items, err := c.paymentService.ListPaymentsByUser(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List payments by user failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch user payments")
	}

	views := mapper.PaymentsToView(items)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}

func (c *PaymentController) UpdatePaymentStatus(ctx echo.Context) error {
	req, err := types.NewUpdatePaymentStatusRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	payment, err := c.paymentService.UpdateStatus(ctx.Request().Context(), req.PaymentID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Payment not found")
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Update payment status failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to update payment status")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessMessageResponse{
		Success: true,
		Message: "Payment status updated successfully",
		Data:    mapper.PaymentToView(payment),
	})
}

func (c *PaymentController) DeletePayment(ctx echo.Context) error {
	paymentID := ctx.Param("paymentId")

	if err := c.paymentService.DeletePayment(ctx.Request().Context(), paymentID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "Payment not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Delete payment failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to delete payment")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessMessageResponse{Success: true, Message: "Payment deleted successfully"})
}

func (c *PaymentController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
