package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bigs-im/pg-gateway/app/factory"
	"github.com/bigs-im/pg-gateway/app/mapper"
	"github.com/bigs-im/pg-gateway/app/provider"
	"github.com/bigs-im/pg-gateway/app/service"
	"github.com/bigs-im/pg-gateway/app/types"
)

type PaymentController struct {
	paymentService *service.PaymentService
	queryService   *service.QueryService
	logger         logrus.FieldLogger
}

func NewPaymentController(paymentService *service.PaymentService, queryService *service.QueryService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		queryService:   queryService,
		logger:         factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *PaymentController) CreatePayment(ctx echo.Context) error {
	req, err := types.NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.paymentService.Pay(ctx.Request().Context(), &service.PayCommand{
		PartnerID: req.PartnerID,
		Amount:    req.Amount,
		Card: provider.CardCredentials{
			Number:    req.CardNumber,
			BirthDate: req.BirthDate,
			Expiry:    req.Expiry,
			Password:  req.Password,
		},
	})
	if err != nil {
		var transport *provider.TransportError
		switch {
		case errors.Is(err, service.ErrInvalidRequest),
			errors.Is(err, service.ErrPartnerNotFound),
			errors.Is(err, service.ErrPartnerInactive):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoFeePolicy), errors.Is(err, provider.ErrNoProvider):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Payment configuration error")
			return c.writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, provider.ErrProviderAuth):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Processor authentication failed")
			return c.writeError(ctx, http.StatusBadGateway, "processor configuration error")
		case errors.As(err, &transport):
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Processor transport fault")
			return c.writeError(ctx, http.StatusBadGateway, "processor unavailable")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create payment failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	response := &types.PaymentEnvelopeResponse{
		Payment: mapper.PaymentToResponse(result.Payment),
		Decline: mapper.DeclineToResponse(result.Decline),
	}
	if result.Decline != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, response)
	}
	return ctx.JSON(http.StatusCreated, response)
}

func (c *PaymentController) QueryPayments(ctx echo.Context) error {
	req, err := types.NewQueryPaymentsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.queryService.Query(ctx.Request().Context(), &service.QueryFilter{
		PartnerID: req.PartnerID,
		Status:    req.Status,
		From:      req.From,
		To:        req.To,
		Cursor:    req.Cursor,
		Limit:     req.Limit,
	})
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Query payments failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.QueryPaymentsResponse{
		Payments:   mapper.PaymentsToResponse(result.Items),
		Summary:    mapper.SummaryToResponse(result.Summary),
		NextCursor: result.NextCursor,
		HasNext:    result.HasNext,
	})
}

func (c *PaymentController) writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, &types.ErrorResponse{Error: message})
}
