package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-console/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-console/internal/models"
)

func notifications(t *testing.T, r http.Handler) handler.NotificationsResult {
	t.Helper()
	w := authed(r, http.MethodGet, "/notifications", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.NotificationsResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func TestNotificationHandlers(t *testing.T) {
	r := newRouter()

	t.Run("List", func(t *testing.T) {
		resp := notifications(t, r)
		if len(resp.Data) != 3 || resp.UnreadCount != 2 {
			t.Fatalf("expected 3 notifications with 2 unread, got %d and %d", len(resp.Data), resp.UnreadCount)
		}
		if resp.Data[0].ID != "seed-1" {
			t.Errorf("expected seed-1 first, got %s", resp.Data[0].ID)
		}
	})

	t.Run("Create", func(t *testing.T) {
		w := authed(r, http.MethodPost, "/notifications", handler.NotificationRequest{
			Type: models.NotificationSuccess, Title: "Delivery received", Message: "PO-1002 arrived", ActionURL: "/purchase-orders/2",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		created, _ := decode[models.NotificationItem](w)
		if created.ID == "" || created.IsRead || created.Timestamp.IsZero() {
			t.Errorf("expected a fresh unread notification, got %+v", created)
		}

		resp := notifications(t, r)
		if resp.Data[0].ID != created.ID || resp.UnreadCount != 3 {
			t.Errorf("expected the new notification first and 3 unread, got %s and %d", resp.Data[0].ID, resp.UnreadCount)
		}
	})

	t.Run("Create invalid", func(t *testing.T) {
		w := authed(r, http.MethodPost, "/notifications", handler.NotificationRequest{Type: "urgent", Title: "x"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		resp, _ := decode[handler.ValidationErrorsResult](w)
		if len(resp.Errors) != 2 {
			t.Errorf("expected errors on type and message, got %+v", resp.Errors)
		}
	})

	t.Run("Mark read", func(t *testing.T) {
		if w := authed(r, http.MethodPost, "/notifications/seed-1/read", nil); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := notifications(t, r).UnreadCount; got != 2 {
			t.Errorf("expected 2 unread, got %d", got)
		}
		if w := authed(r, http.MethodPost, "/notifications/missing/read", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("Mark all read", func(t *testing.T) {
		if w := authed(r, http.MethodPost, "/notifications/read-all", nil); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := notifications(t, r).UnreadCount; got != 0 {
			t.Errorf("expected nothing unread, got %d", got)
		}
	})
}

func TestNotificationPermissions(t *testing.T) {
	r := newRouter()
	staff, err := generateToken(r, "staff", "staff123")
	if err != nil {
		t.Fatal(err)
	}

	w := doRequest(r, http.MethodPost, "/notifications", staff, handler.NotificationRequest{
		Type: models.NotificationInfo, Title: "Hello", Message: "From the warehouse",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected staff to be refused creating notifications, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/notifications/seed-2/read", staff, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected staff to mark notifications read, got %d", w.Code)
	}
}
