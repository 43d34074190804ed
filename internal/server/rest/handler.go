// Package rest exposes the user directory over HTTP/JSON using chi.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/logging"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
	"github.com/go-chi/chi/v5"
)

// UserDirectory is the service the handlers delegate to.
type UserDirectory interface {
	List(ctx context.Context) ([]*models.User, error)
	ListByBirthDateRange(ctx context.Context, from, to timex.Date) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, user *models.User) (*models.User, error)
	Patch(ctx context.Context, id int64, p *models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Handler translates HTTP requests into UserDirectory calls.
type Handler struct {
	users  UserDirectory
	logger logging.Logger
}

func NewHandler(users UserDirectory, logger logging.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fromRaw, toRaw := q.Get("from"), q.Get("to")

	if fromRaw == "" && toRaw == "" {
		list, err := h.users.List(r.Context())
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if fromRaw == "" || toRaw == "" {
		h.handleError(w, r, common.BadRequest("both from and to must be supplied"))
		return
	}

	from, err := timex.ParseDate(fromRaw)
	if err != nil {
		h.handleError(w, r, common.BadRequest("from: %v", err))
		return
	}
	to, err := timex.ParseDate(toRaw)
	if err != nil {
		h.handleError(w, r, common.BadRequest("to: %v", err))
		return
	}

	list, err := h.users.ListByBirthDateRange(r.Context(), from, to)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeBody(r, &user); err != nil {
		h.handleError(w, r, err)
		return
	}

	saved, err := h.users.Create(r.Context(), &user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var user models.User
	if err := decodeBody(r, &user); err != nil {
		h.handleError(w, r, err)
		return
	}

	saved, err := h.users.Update(r.Context(), id, &user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) patchUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var patch models.UserPatch
	if err := decodeBody(r, &patch); err != nil {
		h.handleError(w, r, err)
		return
	}

	saved, err := h.users.Patch(r.Context(), id, &patch)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Ping(r.Context()); err != nil {
		h.logger.Error(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, messageResponse{Message: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.BadRequest("invalid id %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.BadRequest("invalid request body: %v", err)
	}
	return nil
}
