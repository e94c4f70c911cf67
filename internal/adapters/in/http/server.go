package http

import (
	"errors"
	"net/http"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the shipment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases: requests
// are bound and parsed here, everything else is delegated.
type Server struct {
	// Command handlers
	createShipmentHandler commands.CreateShipmentCommandHandler
	updateStatusHandler   commands.UpdateShipmentStatusCommandHandler
	markDeliveredHandler  commands.MarkShipmentDeliveredCommandHandler
	markReturnedHandler   commands.MarkShipmentReturnedCommandHandler

	// Query handlers
	getShipmentHandler           queries.GetShipmentQueryHandler
	getShipmentsByStatusHandler  queries.GetShipmentsByStatusQueryHandler
	getShipmentsByCarrierHandler queries.GetShipmentsByCarrierQueryHandler
	getShipmentsDueBeforeHandler queries.GetShipmentsDueBeforeQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler,
	markDeliveredHandler commands.MarkShipmentDeliveredCommandHandler,
	markReturnedHandler commands.MarkShipmentReturnedCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getShipmentsByStatusHandler queries.GetShipmentsByStatusQueryHandler,
	getShipmentsByCarrierHandler queries.GetShipmentsByCarrierQueryHandler,
	getShipmentsDueBeforeHandler queries.GetShipmentsDueBeforeQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:        createShipmentHandler,
		updateStatusHandler:          updateStatusHandler,
		markDeliveredHandler:         markDeliveredHandler,
		markReturnedHandler:          markReturnedHandler,
		getShipmentHandler:           getShipmentHandler,
		getShipmentsByStatusHandler:  getShipmentsByStatusHandler,
		getShipmentsByCarrierHandler: getShipmentsByCarrierHandler,
		getShipmentsDueBeforeHandler: getShipmentsDueBeforeHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.ListShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.POST("/shipments/:id/status", s.UpdateShipmentStatus)
	api.POST("/shipments/:id/delivered", s.MarkShipmentDelivered)
	api.POST("/shipments/:id/return", s.MarkShipmentReturned)

	e.GET("/health", s.Health)
}

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewShipmentRequest is the body of POST /api/v1/shipments.
type NewShipmentRequest struct {
	OrderID string `json:"order_id"`

	CarrierName    string `json:"carrier_name"`
	CarrierCode    string `json:"carrier_code"`
	CarrierPhone   string `json:"carrier_phone,omitempty"`
	CarrierWebsite string `json:"carrier_website,omitempty"`

	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url,omitempty"`
	TrackingQRCode string `json:"tracking_qr_code,omitempty"`

	PickupDate        *time.Time `json:"pickup_date,omitempty"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	TimeSlot          string     `json:"time_slot,omitempty"`

	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone,omitempty"`
	Street           string `json:"street"`
	City             string `json:"city"`
	ZipCode          string `json:"zip_code"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country"`
	Instructions     string `json:"instructions,omitempty"`
	AbsenteeHandling string `json:"absentee_handling,omitempty"`

	CostBase       int64 `json:"cost_base"`
	CostAdditional int64 `json:"cost_additional"`

	DeliveryMethod   string   `json:"delivery_method,omitempty"`
	SpecialHandling  []string `json:"special_handling,omitempty"`
	InsuranceEnabled bool     `json:"insurance_enabled,omitempty"`
	InsuranceAmount  int64    `json:"insurance_amount,omitempty"`
}

// ShipmentCreatedResponse is the body of a successful shipment creation.
type ShipmentCreatedResponse struct {
	ID string `json:"id"`
}

// UpdateStatusRequest is the body of POST /api/v1/shipments/:id/status.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// MarkDeliveredRequest is the body of POST /api/v1/shipments/:id/delivered.
type MarkDeliveredRequest struct {
	ConfirmedBy string `json:"confirmed_by"`
	Method      string `json:"method,omitempty"`
}

// MarkReturnedRequest is the body of POST /api/v1/shipments/:id/return.
type MarkReturnedRequest struct {
	Reason             string     `json:"reason"`
	ReturnLocation     string     `json:"return_location,omitempty"`
	NewDeliveryAttempt *time.Time `json:"new_delivery_attempt,omitempty"`
}

// ShipmentResponse is the body of GET /api/v1/shipments/:id.
type ShipmentResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`

	CarrierName    string `json:"carrier_name"`
	CarrierCode    string `json:"carrier_code"`
	CarrierPhone   string `json:"carrier_phone,omitempty"`
	CarrierWebsite string `json:"carrier_website,omitempty"`

	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url,omitempty"`
	TrackingQRCode string `json:"tracking_qr_code,omitempty"`

	PickupDate        *time.Time `json:"pickup_date,omitempty"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	TimeSlot          string     `json:"time_slot"`

	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone,omitempty"`
	Street           string `json:"street"`
	City             string `json:"city"`
	ZipCode          string `json:"zip_code"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country"`
	Instructions     string `json:"instructions,omitempty"`
	AbsenteeHandling string `json:"absentee_handling"`

	CostBase       int64 `json:"cost_base"`
	CostAdditional int64 `json:"cost_additional"`
	CostTotal      int64 `json:"cost_total"`

	DeliveryMethod   string   `json:"delivery_method"`
	SpecialHandling  []string `json:"special_handling,omitempty"`
	InsuranceEnabled bool     `json:"insurance_enabled"`
	InsuranceAmount  int64    `json:"insurance_amount,omitempty"`

	ReturnReason       string     `json:"return_reason,omitempty"`
	ReturnDate         *time.Time `json:"return_date,omitempty"`
	ReturnLocation     string     `json:"return_location,omitempty"`
	NewDeliveryAttempt *time.Time `json:"new_delivery_attempt,omitempty"`

	ConfirmationMethod string     `json:"confirmation_method,omitempty"`
	ConfirmedBy        string     `json:"confirmed_by,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`

	History []HistoryEntry `json:"history"`

	IsDelayed            bool `json:"is_delayed"`
	DeliveryDurationDays *int `json:"delivery_duration_days,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one audit trail entry in the shipment response.
type HistoryEntry struct {
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
	Signature   string    `json:"signature,omitempty"`
}

// CreateShipment handles POST /api/v1/shipments - registers a new shipment.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req NewShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, orderID, commands.CreateShipmentParams{
		CarrierName:       req.CarrierName,
		CarrierCode:       req.CarrierCode,
		CarrierPhone:      req.CarrierPhone,
		CarrierWebsite:    req.CarrierWebsite,
		TrackingNumber:    req.TrackingNumber,
		TrackingURL:       req.TrackingURL,
		TrackingQRCode:    req.TrackingQRCode,
		PickupDate:        req.PickupDate,
		EstimatedDelivery: req.EstimatedDelivery,
		TimeSlot:          req.TimeSlot,
		RecipientName:     req.RecipientName,
		RecipientPhone:    req.RecipientPhone,
		Street:            req.Street,
		City:              req.City,
		ZipCode:           req.ZipCode,
		State:             req.State,
		Country:           req.Country,
		Instructions:      req.Instructions,
		AbsenteeHandling:  req.AbsenteeHandling,
		CostBase:          req.CostBase,
		CostAdditional:    req.CostAdditional,
		DeliveryMethod:    req.DeliveryMethod,
		SpecialHandling:   req.SpecialHandling,
		InsuranceEnabled:  req.InsuranceEnabled,
		InsuranceAmount:   req.InsuranceAmount,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment data: " + err.Error(),
		})
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, ShipmentCreatedResponse{ID: shipmentID.String()})
}

// UpdateShipmentStatus handles POST /api/v1/shipments/:id/status - records a
// lifecycle transition.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id: " + err.Error(),
		})
	}

	var req UpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(shipmentID, req.Status, req.Location, req.Description)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status data: " + err.Error(),
		})
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkShipmentDelivered handles POST /api/v1/shipments/:id/delivered -
// confirms the final delivery.
func (s *Server) MarkShipmentDelivered(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id: " + err.Error(),
		})
	}

	var req MarkDeliveredRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewMarkShipmentDeliveredCommand(shipmentID, req.ConfirmedBy, req.Method)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid confirmation data: " + err.Error(),
		})
	}

	if handleErr := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkShipmentReturned handles POST /api/v1/shipments/:id/return - records a
// return to sender.
func (s *Server) MarkShipmentReturned(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id: " + err.Error(),
		})
	}

	var req MarkReturnedRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewMarkShipmentReturnedCommand(shipmentID, req.Reason, req.ReturnLocation, req.NewDeliveryAttempt)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid return data: " + err.Error(),
		})
	}

	if handleErr := s.markReturnedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipment handles GET /api/v1/shipments/:id - retrieves one shipment with
// its history and derived metrics.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id: " + err.Error(),
		})
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid shipment id: " + err.Error(),
		})
	}

	detail, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(detail))
}

// ListShipments handles GET /api/v1/shipments - lists shipment summaries
// filtered by exactly one of status, carrier or due_before.
func (s *Server) ListShipments(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	carrier := ctx.QueryParam("carrier")
	dueBefore := ctx.QueryParam("due_before")

	filters := 0
	for _, f := range []string{status, carrier, dueBefore} {
		if f != "" {
			filters++
		}
	}
	if filters != 1 {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Exactly one of status, carrier or due_before is required",
		})
	}

	switch {
	case status != "":
		return s.listByStatus(ctx, status)
	case carrier != "":
		return s.listByCarrier(ctx, carrier)
	default:
		return s.listDueBefore(ctx, dueBefore)
	}
}

func (s *Server) listByStatus(ctx echo.Context, status string) error {
	query, err := queries.NewGetShipmentsByStatusQuery(status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	summaries, err := s.getShipmentsByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

func (s *Server) listByCarrier(ctx echo.Context, carrier string) error {
	query, err := queries.NewGetShipmentsByCarrierQuery(carrier)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid carrier: " + err.Error(),
		})
	}

	summaries, err := s.getShipmentsByCarrierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

func (s *Server) listDueBefore(ctx echo.Context, dueBefore string) error {
	cutoff, err := time.Parse(time.RFC3339, dueBefore)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid due_before timestamp: " + err.Error(),
		})
	}

	query, err := queries.NewGetShipmentsDueBeforeQuery(cutoff)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid due_before: " + err.Error(),
		})
	}

	summaries, err := s.getShipmentsDueBeforeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, summaries)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse maps application errors to HTTP statuses. Validation failures
// become 400, missing objects 404, and conflicts with the stored state 409.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectAlreadyExists),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrVersionConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func toShipmentResponse(detail queries.GetShipmentQueryResponse) ShipmentResponse {
	resp := ShipmentResponse{
		ID:      detail.ID.String(),
		OrderID: detail.OrderID.String(),
		Status:  detail.Status,

		CarrierName:    detail.CarrierName,
		CarrierCode:    detail.CarrierCode,
		CarrierPhone:   detail.CarrierPhone,
		CarrierWebsite: detail.CarrierWebsite,

		TrackingNumber: detail.TrackingNumber,
		TrackingURL:    detail.TrackingURL,
		TrackingQRCode: detail.TrackingQRCode,

		PickupDate:        detail.PickupDate,
		EstimatedDelivery: detail.EstimatedDelivery,
		ActualDelivery:    detail.ActualDelivery,
		TimeSlot:          detail.TimeSlot,

		RecipientName:    detail.RecipientName,
		RecipientPhone:   detail.RecipientPhone,
		Street:           detail.Street,
		City:             detail.City,
		ZipCode:          detail.ZipCode,
		State:            detail.State,
		Country:          detail.Country,
		Instructions:     detail.Instructions,
		AbsenteeHandling: detail.AbsenteeHandling,

		CostBase:       detail.CostBase,
		CostAdditional: detail.CostAdditional,
		CostTotal:      detail.CostTotal,

		DeliveryMethod:   detail.DeliveryMethod,
		SpecialHandling:  detail.SpecialHandling,
		InsuranceEnabled: detail.InsuranceEnabled,
		InsuranceAmount:  detail.InsuranceAmount,

		ReturnReason:       detail.ReturnReason,
		ReturnDate:         detail.ReturnDate,
		ReturnLocation:     detail.ReturnLocation,
		NewDeliveryAttempt: detail.NewDeliveryAttempt,

		ConfirmationMethod: detail.ConfirmationMethod,
		ConfirmedBy:        detail.ConfirmedBy,
		ConfirmedAt:        detail.ConfirmedAt,

		IsDelayed:            detail.IsDelayed,
		DeliveryDurationDays: detail.DeliveryDurationDays,

		CreatedAt: detail.CreatedAt,
		UpdatedAt: detail.UpdatedAt,
	}

	resp.History = make([]HistoryEntry, len(detail.History))
	for i, entry := range detail.History {
		resp.History[i] = HistoryEntry{
			Status:      entry.Status,
			Location:    entry.Location,
			Timestamp:   entry.Timestamp,
			Description: entry.Description,
			Signature:   entry.Signature,
		}
	}

	return resp
}
