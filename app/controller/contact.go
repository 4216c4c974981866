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

type ContactController struct {
	contactService *service.ContactService
	logger         logrus.FieldLogger
}

func NewContactController(contactService *service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
		logger:         factory.NewModuleLogger("contact-controller"),
	}
}

func (c *ContactController) CreateContact(ctx echo.Context) error {
	req, err := types.NewCreateContactRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	contact, err := c.contactService.CreateContact(ctx.Request().Context(), service.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create contact failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to submit contact message")
	}

	return ctx.JSON(http.StatusCreated, &types.SuccessResponse{Success: true, Data: mapper.ContactToView(contact)})
}

func (c *ContactController) ListContacts(ctx echo.Context) error {
	contacts, err := c.contactService.ListContacts(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List contacts failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch contact messages")
	}

	views := mapper.ContactsToView(contacts)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}
