// Package http exposes the application's use cases over a REST API built on
// Echo. Handlers translate JSON payloads into commands and queries and map
// domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"bundletrack/internal/core/application/usecases/commands"
	"bundletrack/internal/core/application/usecases/queries"
	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server implements the HTTP handlers for the bundle tracking API.
// It coordinates between HTTP requests and application use cases.
type Server struct {
	// Command handlers
	createCutOrderHandler    commands.CreateCutOrderCommandHandler
	applyBundleActionHandler commands.ApplyBundleActionCommandHandler
	splitBundleHandler       commands.SplitBundleCommandHandler

	// Query handlers
	getCutOrderHandler   queries.GetCutOrderQueryHandler
	listLocationsHandler queries.ListLocationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createCutOrderHandler commands.CreateCutOrderCommandHandler,
	applyBundleActionHandler commands.ApplyBundleActionCommandHandler,
	splitBundleHandler commands.SplitBundleCommandHandler,
	getCutOrderHandler queries.GetCutOrderQueryHandler,
	listLocationsHandler queries.ListLocationsQueryHandler,
) *Server {
	return &Server{
		createCutOrderHandler:    createCutOrderHandler,
		applyBundleActionHandler: applyBundleActionHandler,
		splitBundleHandler:       splitBundleHandler,
		getCutOrderHandler:       getCutOrderHandler,
		listLocationsHandler:     listLocationsHandler,
	}
}

// RegisterRoutes wires the API routes onto the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/cut-orders", s.CreateCutOrder)
	api.GET("/cut-orders/:id", s.GetCutOrder)
	api.POST("/bundle-actions", s.ApplyBundleAction)
	api.POST("/bundles/:id/split", s.SplitBundle)
	api.GET("/locations", s.GetLocations)

	e.GET("/health", s.Health)
}

// Error is the JSON error payload returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewCutOrder is the request payload for cut order registration.
type NewCutOrder struct {
	Code                string          `json:"code"`
	Date                time.Time       `json:"date"`
	DeclaredBundleCount int             `json:"declaredBundleCount"`
	LocationCode        string          `json:"locationCode"`
	Bundles             []NewBundleSpec `json:"bundles"`
}

// NewBundleSpec describes one initial bundle of a new cut order.
type NewBundleSpec struct {
	Number int `json:"number"`
	Sheets int `json:"sheets"`
}

// CreatedResponse carries the identifier of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// BundleActionRequest is the request payload for a batch bundle action.
type BundleActionRequest struct {
	BundleIDs       []string `json:"bundleIds"`
	Action          string   `json:"action"`
	DestinationCode string   `json:"destinationCode,omitempty"`
	WorkOrderNumber string   `json:"workOrderNumber,omitempty"`
}

// SplitRequest is the request payload for splitting sheets off a bundle.
type SplitRequest struct {
	OrderID      string `json:"orderId"`
	Sheets       int    `json:"sheets"`
	OriginalSSCC string `json:"originalSscc"`
	OriginalLUID string `json:"originalLuid"`
	NewSSCC      string `json:"newSscc"`
	NewLUID      string `json:"newLuid"`
}

// CutOrder is the response payload for a cut order projection.
type CutOrder struct {
	ID                  string          `json:"id"`
	Code                string          `json:"code"`
	Date                time.Time       `json:"date"`
	DeclaredBundleCount int             `json:"declaredBundleCount"`
	Active              bool            `json:"active"`
	Bundles             []BundleDetails `json:"bundles"`
}

// BundleDetails is the response payload for one bundle within a cut order.
type BundleDetails struct {
	ID              string         `json:"id"`
	DisplayName     string         `json:"displayName"`
	Number          *int           `json:"number"`
	BaseNumber      *int           `json:"baseNumber"`
	Variant         int            `json:"variant"`
	Sheets          int            `json:"sheets"`
	Status          string         `json:"status"`
	LocationCode    string         `json:"locationCode,omitempty"`
	WorkOrderNumber string         `json:"workOrderNumber"`
	SSCC            string         `json:"sscc"`
	LUID            string         `json:"luid"`
	CreatedAt       time.Time      `json:"createdAt"`
	History         []HistoryEntry `json:"history"`
}

// HistoryEntry is the response payload for one ledger entry.
type HistoryEntry struct {
	Action          string    `json:"action"`
	DestinationCode string    `json:"destinationCode,omitempty"`
	WorkOrderNumber string    `json:"workOrderNumber,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Location is the response payload for one site catalog entry.
type Location struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// CreateCutOrder handles POST /api/v1/cut-orders.
func (s *Server) CreateCutOrder(ctx echo.Context) error {
	var payload NewCutOrder
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bundles := make([]commands.BundleSpec, 0, len(payload.Bundles))
	for _, spec := range payload.Bundles {
		bundles = append(bundles, commands.BundleSpec{
			Number: spec.Number,
			Sheets: spec.Sheets,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateCutOrderCommand(
		orderID,
		payload.Code,
		payload.Date,
		payload.DeclaredBundleCount,
		payload.LocationCode,
		bundles,
	)
	if err != nil {
		return badRequest(ctx, "Invalid cut order data: "+err.Error())
	}

	if handleErr := s.createCutOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetCutOrder handles GET /api/v1/cut-orders/:id.
func (s *Server) GetCutOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid cut order id")
	}

	query, err := queries.NewGetCutOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid cut order id")
	}

	response, err := s.getCutOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, projectCutOrder(response))
}

// ApplyBundleAction handles POST /api/v1/bundle-actions.
func (s *Server) ApplyBundleAction(ctx echo.Context) error {
	var payload BundleActionRequest
	if err := ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	bundleIDs := make([]kernel.UUID, 0, len(payload.BundleIDs))
	for _, raw := range payload.BundleIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid bundle id: "+raw)
		}
		bundleIDs = append(bundleIDs, id)
	}

	action, err := bundle.ActionFromString(payload.Action)
	if err != nil {
		return badRequest(ctx, "Invalid action: "+payload.Action)
	}

	cmd, err := commands.NewApplyBundleActionCommand(
		bundleIDs,
		action,
		payload.DestinationCode,
		payload.WorkOrderNumber,
	)
	if err != nil {
		return badRequest(ctx, "Invalid action data: "+err.Error())
	}

	if handleErr := s.applyBundleActionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SplitBundle handles POST /api/v1/bundles/:id/split.
func (s *Server) SplitBundle(ctx echo.Context) error {
	bundleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid bundle id")
	}

	var payload SplitRequest
	if err = ctx.Bind(&payload); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewSplitBundleCommand(
		bundleID,
		orderID,
		payload.Sheets,
		payload.OriginalSSCC,
		payload.OriginalLUID,
		payload.NewSSCC,
		payload.NewLUID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid split data: "+err.Error())
	}

	if handleErr := s.splitBundleHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLocations handles GET /api/v1/locations.
func (s *Server) GetLocations(ctx echo.Context) error {
	response, err := s.listLocationsHandler.Handle(ctx.Request().Context())
	if err != nil {
		return domainError(ctx, err)
	}

	locations := make([]Location, 0, len(response.Locations))
	for _, l := range response.Locations {
		locations = append(locations, Location{
			ID:   l.ID.String(),
			Code: l.Code,
		})
	}

	return ctx.JSON(http.StatusOK, locations)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// projectCutOrder maps the query read model onto the JSON payload.
func projectCutOrder(response queries.GetCutOrderQueryResponse) CutOrder {
	bundles := make([]BundleDetails, 0, len(response.Bundles))
	for _, b := range response.Bundles {
		history := make([]HistoryEntry, 0, len(b.History))
		for _, entry := range b.History {
			history = append(history, HistoryEntry{
				Action:          entry.Action,
				DestinationCode: entry.DestinationCode,
				WorkOrderNumber: entry.WorkOrderNumber,
				OccurredAt:      entry.OccurredAt,
			})
		}

		bundles = append(bundles, BundleDetails{
			ID:              b.ID.String(),
			DisplayName:     b.DisplayName,
			Number:          b.Number,
			BaseNumber:      b.BaseNumber,
			Variant:         b.Variant,
			Sheets:          b.Sheets,
			Status:          b.Status,
			LocationCode:    b.LocationCode,
			WorkOrderNumber: b.WorkOrderNumber,
			SSCC:            b.SSCC,
			LUID:            b.LUID,
			CreatedAt:       b.CreatedAt,
			History:         history,
		})
	}

	return CutOrder{
		ID:                  response.ID.String(),
		Code:                response.Code,
		Date:                response.Date,
		DeclaredBundleCount: response.DeclaredBundleCount,
		Active:              response.Active,
		Bundles:             bundles,
	}
}

// badRequest replies with a 400 and the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use case error onto the HTTP status it deserves:
// missing objects are 404, lost version races are 409, validation failures
// are 400, anything else is a 500.
func domainError(ctx echo.Context, err error) error {
	var (
		notFound   *errs.ObjectNotFoundError
		conflict   *errs.VersionConflictError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		required   *errs.ValueIsRequiredError
	)

	switch {
	case errors.As(err, &notFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.As(err, &conflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.As(err, &invalid), errors.As(err, &outOfRange), errors.As(err, &required),
		errors.Is(err, bundle.ErrBundleNumberNotResolvable):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
