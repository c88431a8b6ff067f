package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hotelbook/service-booking/internal/application"
	"github.com/hotelbook/service-booking/pkg/auth"
	"github.com/hotelbook/service-booking/pkg/middleware"
	"github.com/hotelbook/service-booking/pkg/response"
)

// FeedbackHandler handles HTTP requests for room feedback.
type FeedbackHandler struct {
	service *application.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *application.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// RegisterRoutes registers feedback routes.
func (h *FeedbackHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	rooms := r.Group("/api/v1/rooms")
	rooms.Use(authMW)
	{
		rooms.GET("/:id/feedback", h.ListRoomFeedback)
		rooms.POST("/:id/feedback", middleware.RequireRole(auth.RoleUser), h.CreateFeedback)
	}

	feedback := r.Group("/api/v1/feedback")
	feedback.Use(authMW)
	{
		feedback.PUT("/:id", h.UpdateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}
}

// CreateFeedback handles POST /api/v1/rooms/:id/feedback.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	roomID, ok := pathID(c, "room")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateFeedback(c.Request.Context(), userID, roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRoomFeedback handles GET /api/v1/rooms/:id/feedback.
func (h *FeedbackHandler) ListRoomFeedback(c *gin.Context) {
	roomID, ok := pathID(c, "room")
	if !ok {
		return
	}

	result, err := h.service.ListRoomFeedback(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateFeedback handles PUT /api/v1/feedback/:id.
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, ok := pathID(c, "feedback")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateFeedback(c.Request.Context(), id, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteFeedback handles DELETE /api/v1/feedback/:id.
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id, ok := pathID(c, "feedback")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteFeedback(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
