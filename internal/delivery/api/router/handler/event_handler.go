package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"evently/internal/delivery/api/response"
	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/entity"
	domainerrors "evently/internal/domain/errors"
	"evently/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dateOnlyLayout = "2006-01-02"

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	EventUC usecase.EventUsecase
	Logger  *slog.Logger
}

// EventHandler holds dependencies for event handlers.
type EventHandler struct {
	eventUC usecase.EventUsecase
	logger  *slog.Logger
}

// NewEventHandler is the constructor for EventHandler.
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		eventUC: params.EventUC,
		logger:  params.Logger,
	}
}

// CreateEventRequest represents the request body for creating an event.
// Capacity accepts a JSON number or a numeric string.
type CreateEventRequest struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description" validate:"required"`
	Date        string      `json:"date" validate:"required"`
	Location    string      `json:"location" validate:"required,max=255"`
	Capacity    json.Number `json:"capacity" validate:"required"`
	Latitude    *float64    `json:"latitude" validate:"required_with=Longitude,omitempty,min=-90,max=90"`
	Longitude   *float64    `json:"longitude" validate:"required_with=Latitude,omitempty,min=-180,max=180"`
}

func (r *CreateEventRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Date = strings.TrimSpace(r.Date)
	r.Location = strings.TrimSpace(r.Location)
}

// toInput converts the validated request, parsing the fields the validator cannot.
func (r *CreateEventRequest) toInput() (*usecase.CreateEventInput, error) {
	date, err := parseEventDate(r.Date)
	if err != nil {
		return nil, domainerrors.NewValidationError("date", "date must be an RFC3339 timestamp or YYYY-MM-DD")
	}

	capacity, err := r.Capacity.Int64()
	if err != nil || capacity < 0 || capacity > int64(^uint32(0)>>1) {
		return nil, domainerrors.NewValidationError("capacity", "capacity must be a non-negative integer")
	}

	input := &usecase.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		Location:    r.Location,
		Capacity:    int(capacity),
	}

	if r.Latitude != nil && r.Longitude != nil {
		input.Coordinates = &entity.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}

	return input, nil
}

func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, errors.WithStack(err)
	}

	return t, nil
}

// NearbyQuery holds the optional geo filter of GET /events.
type NearbyQuery struct {
	Latitude  float64 `json:"lat" validate:"min=-90,max=90"`
	Longitude float64 `json:"lng" validate:"min=-180,max=180"`
	RadiusKm  float64 `json:"radiusKm" validate:"gt=0"`
}

// CreatorResponse is the public view of an event's creator.
type CreatorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Location    string          `json:"location"`
	Capacity    int             `json:"capacity"`
	TicketsSold int             `json:"ticketsSold"`
	CreatedBy   CreatorResponse `json:"createdBy"`
	Latitude    *float64        `json:"latitude,omitempty"`
	Longitude   *float64        `json:"longitude,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateEventResponse confirms a created event.
type CreateEventResponse struct {
	Message string         `json:"message"`
	Event   *EventResponse `json:"event"`
}

func newEventResponse(event *entity.Event) *EventResponse {
	resp := &EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		Capacity:    event.Capacity,
		TicketsSold: event.TicketsSold,
		CreatedBy:   CreatorResponse{ID: event.CreatedBy},
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}

	if event.Creator != nil {
		resp.CreatedBy = CreatorResponse{ID: event.Creator.ID, Name: event.Creator.Name}
	}

	if event.Coordinates != nil {
		lat, lng := event.Coordinates.Latitude, event.Coordinates.Longitude
		resp.Latitude = &lat
		resp.Longitude = &lng
	}

	return resp
}

// CreateEvent handles POST /events. It runs behind the authorization gate.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	creatorID, ok := deliverycontext.GetSubjectID(c)
	if !ok {
		return domainerrors.ErrAccessDenied
	}

	var req CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	event, err := h.eventUC.CreateEvent(c.Request().Context(), creatorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, CreateEventResponse{
		Message: "Event created successfully!",
		Event:   newEventResponse(event),
	})
}

// ListEvents handles GET /events, optionally filtered by ?lat=&lng=&radiusKm=.
func (h *EventHandler) ListEvents(c echo.Context) error {
	near, err := h.parseNearby(c)
	if err != nil {
		return err
	}

	events, err := h.eventUC.ListEvents(c.Request().Context(), &usecase.ListEventsInput{Near: near})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := make([]*EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, newEventResponse(event))
	}

	return response.Success(c, http.StatusOK, resp)
}

// parseNearby returns nil when no geo parameter is present and a ValidationError when only some are.
func (h *EventHandler) parseNearby(c echo.Context) (*usecase.NearbyFilter, error) {
	params := []string{"lat", "lng", "radiusKm"}

	present := 0
	for _, name := range params {
		if c.QueryParam(name) != "" {
			present++
		}
	}
	if present == 0 {
		return nil, nil
	}
	if present < len(params) {
		return nil, domainerrors.NewValidationError("radiusKm", "lat, lng and radiusKm must be given together")
	}

	var query NearbyQuery
	err := echo.QueryParamsBinder(c).
		Float64("lat", &query.Latitude).
		Float64("lng", &query.Longitude).
		Float64("radiusKm", &query.RadiusKm).
		BindError()
	if err != nil {
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) && len(bindErr.Field) > 0 {
			return nil, domainerrors.NewValidationError(bindErr.Field, bindErr.Field+" must be a number")
		}

		return nil, domainerrors.NewValidationError("lat", "lat, lng and radiusKm must be numbers")
	}

	if err := c.Validate(&query); err != nil {
		return nil, err
	}

	return &usecase.NearbyFilter{
		Latitude:  query.Latitude,
		Longitude: query.Longitude,
		RadiusKm:  query.RadiusKm,
	}, nil
}

// GetEvent handles GET /events/:id.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}

	event, err := h.eventUC.GetEvent(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newEventResponse(event))
}

// GetEventQR handles GET /events/:id/qr and returns a PNG share code.
func (h *EventHandler) GetEventQR(c echo.Context) error {
	id, err := eventIDParam(c)
	if err != nil {
		return err
	}

	png, err := h.eventUC.EventShareQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// eventIDParam treats a malformed id like an unknown one.
func eventIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(domainerrors.ErrEventNotFound, "malformed event id")
	}

	return id, nil
}
