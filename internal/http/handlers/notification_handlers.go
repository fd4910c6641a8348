package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

// GetNotificationsHandler godoc
// @Summary List notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {object} NotificationsResult
// @Router /notifications [get]
// @Security BearerAuth
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := notificationRepo.List()
	if err != nil {
		http.Error(w, "could not fetch notifications", http.StatusInternalServerError)
		return
	}
	unread, err := notificationRepo.UnreadCount()
	if err != nil {
		http.Error(w, "could not fetch notifications", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, NotificationsResult{Data: list, UnreadCount: unread})
}

// CreateNotificationHandler godoc
// @Summary Add a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body NotificationRequest true "Notification"
// @Success 201 {object} models.NotificationItem
// @Failure 400 {object} ValidationErrorsResult
// @Router /notifications [post]
// @Security BearerAuth
func CreateNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	n, err := notificationRepo.Add(models.NotificationItem{
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		ActionURL: req.ActionURL,
		ProductID: req.ProductID,
	})
	if err != nil {
		log.Printf("could not add notification: %v", err)
		http.Error(w, "could not add notification", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, n)
}

// MarkNotificationReadHandler godoc
// @Summary Mark one notification read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204 "Marked read"
// @Failure 404 {string} string "Not found"
// @Router /notifications/{id}/read [post]
// @Security BearerAuth
func MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	found, err := notificationRepo.MarkRead(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "could not update notification", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsReadHandler godoc
// @Summary Mark every notification read
// @Tags notifications
// @Success 204 "Marked read"
// @Router /notifications/read-all [post]
// @Security BearerAuth
func MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	if err := notificationRepo.MarkAllRead(); err != nil {
		http.Error(w, "could not update notifications", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
