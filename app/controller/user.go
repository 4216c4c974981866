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

type UserController struct {
	userService *service.UserService
	logger      logrus.FieldLogger
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		userService: userService,
		logger:      factory.NewModuleLogger("user-controller"),
	}
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	req, err := types.NewCreateUserRequestFromContext(ctx)
	if err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := c.userService.CreateUser(ctx.Request().Context(), service.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			return writeEnvelopeError(ctx, http.StatusConflict, "A user with this email already exists")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create user failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to create user")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SuccessResponse{Success: true, Data: mapper.UserToView(user)})
}

func (c *UserController) GetUser(ctx echo.Context) error {
	user, err := c.userService.GetUser(ctx.Request().Context(), ctx.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return writeEnvelopeError(ctx, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidRequest):
			return writeEnvelopeError(ctx, http.StatusBadRequest, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get user failed")
			return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch user")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SuccessResponse{Success: true, Data: mapper.UserToView(user)})
}

func (c *UserController) ListUsers(ctx echo.Context) error {
	users, err := c.userService.ListUsers(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List users failed")
		return writeEnvelopeError(ctx, http.StatusInternalServerError, "Failed to fetch users")
	}

	views := mapper.UsersToView(users)
	return ctx.JSON(http.StatusOK, &types.SuccessListResponse{Success: true, Data: views, Total: len(views)})
}

func writeEnvelopeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.AdminErrorResponse{Success: false, Error: message})
}
