package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hotelbook/service-booking/internal/application"
	"github.com/hotelbook/service-booking/pkg/auth"
	"github.com/hotelbook/service-booking/pkg/middleware"
	"github.com/hotelbook/service-booking/pkg/response"
)

// RoomHandler serves the room directory and per-room availability.
type RoomHandler struct {
	rooms    *application.RoomService
	bookings *application.BookingService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms *application.RoomService, bookings *application.BookingService) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings}
}

// RegisterRoutes registers room routes.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	rooms := r.Group("/api/v1/rooms")
	rooms.Use(middleware.AuthMiddleware(jwtManager))
	{
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.GET("/:id/bookings", h.ListRoomBookings)
	}
}

// ListRooms handles GET /api/v1/rooms. Only admins may ask for inactive rooms.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	role, _ := middleware.GetUserRole(c)
	showInactive := role == auth.RoleAdmin && c.Query("show_inactive") == "true"

	result, err := h.rooms.ListRooms(c.Request.Context(), showInactive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, ok := pathID(c, "room")
	if !ok {
		return
	}

	result, err := h.rooms.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListRoomBookings handles GET /api/v1/rooms/:id/bookings?date=YYYY-MM-DD.
func (h *RoomHandler) ListRoomBookings(c *gin.Context) {
	roomID, ok := pathID(c, "room")
	if !ok {
		return
	}

	result, err := h.bookings.GetRoomBookings(c.Request.Context(), roomID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
