package dto

import (
	"time"

	"github.com/gradtrack/gradtrack-api/internal/models"
)

// NotificationCreateRequest publishes an in-app notification to a user.
type NotificationCreateRequest struct {
	UserID   uint                   `json:"user_id" validate:"required,gt=0"`
	Type     string                 `json:"type" validate:"required,max=64"`
	Message  string                 `json:"message" validate:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// NotificationResponse is the notification view returned to clients.
type NotificationResponse struct {
	ID        uint                   `json:"id"`
	UserID    uint                   `json:"user_id"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewNotificationResponse converts a Notification model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Message:   model.Message,
		Metadata:  model.Metadata,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice of models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}
	return responses
}
