package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/saqerservice/saqer-admin-api/internal/dto"
	"github.com/saqerservice/saqer-admin-api/internal/handler"
	"github.com/saqerservice/saqer-admin-api/internal/service"
)

type stubBookingService struct {
	booking dto.BookingResponse
	list    dto.BookingListResponse
	err     error

	lastStatus string
	lastActor  service.ActivityActor
}

func (s *stubBookingService) List(context.Context, dto.BookingListRequest) (dto.BookingListResponse, error) {
	return s.list, s.err
}

func (s *stubBookingService) Get(context.Context, uint) (dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingService) Create(_ context.Context, _ dto.BookingCreateRequest, actor service.ActivityActor) (dto.BookingResponse, error) {
	s.lastActor = actor
	return s.booking, s.err
}

func (s *stubBookingService) Update(context.Context, uint, dto.BookingUpdateRequest, service.ActivityActor) (dto.BookingResponse, error) {
	return s.booking, s.err
}

func (s *stubBookingService) UpdateStatus(_ context.Context, _ uint, payload dto.BookingStatusRequest, _ service.ActivityActor) (dto.BookingResponse, error) {
	s.lastStatus = payload.Status
	return s.booking, s.err
}

func (s *stubBookingService) Delete(context.Context, uint, service.ActivityActor) error {
	return s.err
}

func newBookingApp(svc service.BookingService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/admin/bookings", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		c.Locals("user_role", "operator")
		return c.Next()
	})
	handler.NewBookingHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestBookingHandlerCreatePassesActor(t *testing.T) {
	svc := &stubBookingService{booking: dto.BookingResponse{ID: 1, Code: "BK-aaa"}}
	app := newBookingApp(svc)

	body, err := json.Marshal(map[string]interface{}{
		"pickup_address": "Airport Terminal 1",
		"drop_address":   "Downtown Plaza",
		"amount":         35.5,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	require.Equal(t, uint(7), svc.lastActor.ID)
	require.Equal(t, "operator", svc.lastActor.Role)
}

func TestBookingHandlerStatusTransitionConflict(t *testing.T) {
	svc := &stubBookingService{err: service.ErrInvalidStatusTransition}
	app := newBookingApp(svc)

	body := []byte(`{"status":"pending"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/5/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestBookingHandlerNotFound(t *testing.T) {
	svc := &stubBookingService{err: service.ErrBookingNotFound}
	app := newBookingApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/42", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBookingHandlerRejectsBadID(t *testing.T) {
	app := newBookingApp(&stubBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/abc", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
