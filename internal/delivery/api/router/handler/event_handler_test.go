package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "evently/internal/delivery/context"
	"evently/internal/domain/entity"
	domainerrors "evently/internal/domain/errors"
	mockUsecase "evently/internal/mocks/usecase"
	"evently/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEventHandler(t *testing.T) (*EventHandler, *mockUsecase.MockEventUsecase) {
	eventUC := mockUsecase.NewMockEventUsecase(t)

	return NewEventHandler(EventHandlerParams{EventUC: eventUC, Logger: newDiscardLogger()}), eventUC
}

func newAuthenticatedContext(body string, subjectID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(http.MethodPost, "/events", body)
	deliverycontext.SetSubjectID(c, subjectID)

	return c, rec
}

func TestEventHandler_CreateEvent(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	creatorID := uuid.New()
	eventID := uuid.New()

	wantInput := &usecase.CreateEventInput{
		Title:       "Go meetup",
		Description: "Monthly gathering",
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Location:    "Taipei",
		Capacity:    50,
	}
	eventUC.EXPECT().
		CreateEvent(mock.Anything, creatorID, wantInput).
		Return(&entity.Event{
			ID:        eventID,
			Title:     "Go meetup",
			Date:      wantInput.Date,
			Location:  "Taipei",
			Capacity:  50,
			CreatedBy: creatorID,
			Creator:   &entity.EventCreator{ID: creatorID, Name: "A"},
		}, nil)

	c, rec := newAuthenticatedContext(
		`{"title":"Go meetup","description":"Monthly gathering","date":"2025-03-01","location":"Taipei","capacity":"50"}`,
		creatorID,
	)
	require.NoError(t, h.CreateEvent(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body CreateEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Event created successfully!", body.Message)
	require.NotNil(t, body.Event)
	assert.Equal(t, eventID, body.Event.ID)
	assert.Equal(t, creatorID, body.Event.CreatedBy.ID)
	assert.Equal(t, "A", body.Event.CreatedBy.Name)
	assert.Equal(t, 0, body.Event.TicketsSold)
}

func TestEventHandler_CreateEvent_WithCoordinates(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	creatorID := uuid.New()

	eventUC.EXPECT().
		CreateEvent(mock.Anything, creatorID, mock.AnythingOfType("*usecase.CreateEventInput")).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, input *usecase.CreateEventInput) (*entity.Event, error) {
			require.NotNil(t, input.Coordinates)
			assert.InDelta(t, 25.034, input.Coordinates.Latitude, 1e-9)
			assert.InDelta(t, 121.5645, input.Coordinates.Longitude, 1e-9)
			assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), input.Date)

			return &entity.Event{ID: uuid.New(), CreatedBy: creatorID, Coordinates: input.Coordinates}, nil
		})

	c, rec := newAuthenticatedContext(
		`{"title":"t","description":"d","date":"2025-03-01T18:00:00+08:00","location":"l","capacity":10,"latitude":25.034,"longitude":121.5645}`,
		creatorID,
	)
	require.NoError(t, h.CreateEvent(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"latitude":25.034`)
}

func TestEventHandler_CreateEvent_RequiresSubject(t *testing.T) {
	h, _ := newTestEventHandler(t)

	c, _ := newTestContext(http.MethodPost, "/events", `{"title":"t"}`)
	err := h.CreateEvent(c)

	assert.ErrorIs(t, err, domainerrors.ErrAccessDenied)
}

func TestEventHandler_CreateEvent_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "missing title", body: `{"description":"d","date":"2025-03-01","location":"l","capacity":1}`, wantField: "title"},
		{name: "missing capacity", body: `{"title":"t","description":"d","date":"2025-03-01","location":"l"}`, wantField: "capacity"},
		{name: "negative capacity", body: `{"title":"t","description":"d","date":"2025-03-01","location":"l","capacity":-1}`, wantField: "capacity"},
		{name: "fractional capacity", body: `{"title":"t","description":"d","date":"2025-03-01","location":"l","capacity":1.5}`, wantField: "capacity"},
		{name: "bad date", body: `{"title":"t","description":"d","date":"next friday","location":"l","capacity":1}`, wantField: "date"},
		{name: "latitude without longitude", body: `{"title":"t","description":"d","date":"2025-03-01","location":"l","capacity":1,"latitude":25}`, wantField: "longitude"},
		{name: "latitude out of range", body: `{"title":"t","description":"d","date":"2025-03-01","location":"l","capacity":1,"latitude":95,"longitude":121}`, wantField: "latitude"},
		{name: "title longer than column", body: `{"title":"` + strings.Repeat("t", 256) + `","description":"d","date":"2025-03-01","location":"l","capacity":1}`, wantField: "title"},
		{name: "location longer than column", body: `{"title":"t","description":"d","date":"2025-03-01","location":"` + strings.Repeat("l", 256) + `","capacity":1}`, wantField: "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestEventHandler(t)

			c, _ := newAuthenticatedContext(tt.body, uuid.New())
			err := h.CreateEvent(c)

			var validationErr *domainerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field())
		})
	}
}

func TestEventHandler_ListEvents(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	creatorID := uuid.New()

	eventUC.EXPECT().
		ListEvents(mock.Anything, &usecase.ListEventsInput{}).
		Return([]*entity.Event{
			{ID: uuid.New(), Title: "first", CreatedBy: creatorID, Creator: &entity.EventCreator{ID: creatorID, Name: "A"}},
			{ID: uuid.New(), Title: "second", CreatedBy: creatorID},
		}, nil)

	c, rec := newTestContext(http.MethodGet, "/events", "")
	require.NoError(t, h.ListEvents(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, CreatorResponse{ID: creatorID, Name: "A"}, body[0].CreatedBy)
	assert.Equal(t, CreatorResponse{ID: creatorID}, body[1].CreatedBy)
}

func TestEventHandler_ListEvents_Empty(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	eventUC.EXPECT().ListEvents(mock.Anything, mock.Anything).Return(nil, nil)

	c, rec := newTestContext(http.MethodGet, "/events", "")
	require.NoError(t, h.ListEvents(c))

	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestEventHandler_ListEvents_Nearby(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	eventUC.EXPECT().
		ListEvents(mock.Anything, &usecase.ListEventsInput{
			Near: &usecase.NearbyFilter{Latitude: 25.034, Longitude: 121.5645, RadiusKm: 5},
		}).
		Return([]*entity.Event{}, nil)

	c, rec := newTestContext(http.MethodGet, "/events?lat=25.034&lng=121.5645&radiusKm=5", "")
	require.NoError(t, h.ListEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventHandler_ListEvents_BadNearby(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{name: "partial", query: "lat=25&lng=121", wantField: "radiusKm"},
		{name: "not a number", query: "lat=north&lng=121&radiusKm=5", wantField: "lat"},
		{name: "zero radius", query: "lat=25&lng=121&radiusKm=0", wantField: "radiusKm"},
		{name: "longitude out of range", query: "lat=25&lng=200&radiusKm=5", wantField: "lng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestEventHandler(t)

			c, _ := newTestContext(http.MethodGet, "/events?"+tt.query, "")
			err := h.ListEvents(c)

			var validationErr *domainerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field())
		})
	}
}

func TestEventHandler_GetEvent(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	eventID := uuid.New()
	eventUC.EXPECT().GetEvent(mock.Anything, eventID).Return(&entity.Event{ID: eventID, Title: "Go meetup"}, nil)

	c, rec := newTestContext(http.MethodGet, "/events/"+eventID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(eventID.String())
	require.NoError(t, h.GetEvent(c))

	var body EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, eventID, body.ID)
	assert.Equal(t, "Go meetup", body.Title)
}

func TestEventHandler_GetEvent_NotFound(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		h, _ := newTestEventHandler(t)
		c, _ := newTestContext(http.MethodGet, "/events/42", "")
		c.SetParamNames("id")
		c.SetParamValues("42")

		assert.ErrorIs(t, h.GetEvent(c), domainerrors.ErrEventNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		h, eventUC := newTestEventHandler(t)
		eventID := uuid.New()
		eventUC.EXPECT().GetEvent(mock.Anything, eventID).Return(nil, errors.Wrap(domainerrors.ErrEventNotFound, eventID.String()))

		c, _ := newTestContext(http.MethodGet, "/events/"+eventID.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(eventID.String())

		assert.ErrorIs(t, h.GetEvent(c), domainerrors.ErrEventNotFound)
	})
}

func TestEventHandler_GetEventQR(t *testing.T) {
	h, eventUC := newTestEventHandler(t)
	eventID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	eventUC.EXPECT().EventShareQR(mock.Anything, eventID).Return(png, nil)

	c, rec := newTestContext(http.MethodGet, "/events/"+eventID.String()+"/qr", "")
	c.SetParamNames("id")
	c.SetParamValues(eventID.String())
	require.NoError(t, h.GetEventQR(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestRootHandlers(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/", "")
	require.NoError(t, Welcome(c))
	assert.Equal(t, "Welcome to the Event Management API", rec.Body.String())

	c, rec = newTestContext(http.MethodGet, "/health", "")
	require.NoError(t, HealthCheck(c))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
