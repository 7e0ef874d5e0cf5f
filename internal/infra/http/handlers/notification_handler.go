package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/notify"
)

type NotificationCenter interface {
	List() []entity.Notification
	MarkRead(id string) error
	Dismiss(id string) error
	ClearAll()
}

type NotificationHandler struct {
	center NotificationCenter
}

func NewNotificationHandler(center NotificationCenter) *NotificationHandler {
	return &NotificationHandler{center: center}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.center.List()
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	if list == nil {
		list = []entity.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": list, "unread": unread})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.center.MarkRead(chi.URLParam(r, "id")))
}

func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.center.Dismiss(chi.URLParam(r, "id")))
}

func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	h.center.ClearAll()
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) respond(w http.ResponseWriter, err error) {
	if errors.Is(err, notify.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "notification not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
