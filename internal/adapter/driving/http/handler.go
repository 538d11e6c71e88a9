// Package httphandler is the HTTP driving adapter serving the REST API.
package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/wifivault/internal/application"
	"github.com/ericfisherdev/wifivault/internal/domain/model"
	"github.com/ericfisherdev/wifivault/internal/domain/port/driven"
)

// defaultQRSize is the rendered QR edge length in pixels when the request
// does not specify one.
const defaultQRSize = 256

// Handler exposes authentication and credential-record endpoints over the
// application services.
type Handler struct {
	auth     *application.AuthService
	networks *application.NetworkServices
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(auth *application.AuthService, networks *application.NetworkServices, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     auth,
		networks: networks,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/signup", h.SignUp)
	mux.HandleFunc("POST /api/v1/auth/signin", h.SignIn)
	mux.HandleFunc("POST /api/v1/auth/signout", h.SignOut)
	mux.HandleFunc("GET /api/v1/networks", h.requireSession(h.ListNetworks))
	mux.HandleFunc("POST /api/v1/networks", h.requireSession(h.AddNetwork))
	mux.HandleFunc("PATCH /api/v1/networks/{id}", h.requireSession(h.UpdateNetwork))
	mux.HandleFunc("DELETE /api/v1/networks/{id}", h.requireSession(h.DeleteNetwork))
	mux.HandleFunc("GET /api/v1/networks/{id}/qr", h.requireSession(h.NetworkQR))
	mux.HandleFunc("GET /api/v1/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// SignUp registers a new account.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.Confirm)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

// SignIn authenticates and issues a bearer token.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token: sess.Token,
		User:  toUserResponse(sess.User),
	})
}

// SignOut revokes the caller's session. Succeeds even for unknown tokens.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNetworks fetches and reconciles the caller's records.
func (h *Handler) ListNetworks(w http.ResponseWriter, r *http.Request, user *model.User) {
	networks, err := h.networks.ForOwner(user.ID).List(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := make([]NetworkResponse, 0, len(networks))
	for _, n := range networks {
		resp = append(resp, toNetworkResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddNetwork stores a new credential record.
func (h *Handler) AddNetwork(w http.ResponseWriter, r *http.Request, user *model.User) {
	var req AddNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	network, err := h.networks.ForOwner(user.ID).Add(r.Context(), user.ID, application.AddNetworkInput{
		Name:     req.Name,
		Password: req.Password,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNetworkResponse(*network))
}

// UpdateNetwork applies a partial update to one record.
func (h *Handler) UpdateNetwork(w http.ResponseWriter, r *http.Request, user *model.User) {
	var req UpdateNetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	svc, err := h.ownerService(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	network, err := svc.Update(r.Context(), r.PathValue("id"), application.UpdateNetworkInput{
		Name:     req.Name,
		Password: req.Password,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toNetworkResponse(*network))
}

// DeleteNetwork removes one record.
func (h *Handler) DeleteNetwork(w http.ResponseWriter, r *http.Request, user *model.User) {
	svc, err := h.ownerService(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NetworkQR renders one record's Wi-Fi connection string as a PNG QR code.
func (h *Handler) NetworkQR(w http.ResponseWriter, r *http.Request, user *model.User) {
	size := defaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 64 || parsed > 1024 {
			writeError(w, http.StatusBadRequest, "size must be an integer between 64 and 1024")
			return
		}
		size = parsed
	}

	svc, err := h.ownerService(r.Context(), user)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	png, err := svc.ShareQR(r.PathValue("id"), size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ownerService returns the caller's synchronizer, warming its local view from
// the store when it is empty (fresh process or first request of a session).
// Record operations resolve against the local view, so it must be populated
// before update/delete/qr can find anything.
func (h *Handler) ownerService(ctx context.Context, user *model.User) (*application.NetworkService, error) {
	svc := h.networks.ForOwner(user.ID)
	if len(svc.Networks()) == 0 {
		if _, err := svc.List(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// requireSession resolves the bearer token to a user and rejects the request
// with 401 when there is no live session.
func (h *Handler) requireSession(next func(http.ResponseWriter, *http.Request, *model.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := h.auth.CurrentUser(r.Context(), token)
		if err != nil {
			h.logger.Error("failed to resolve session", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		next(w, r, user)
	}
}

// bearerToken extracts the token from the Authorization header, or "".
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return auth[len(prefix):]
}

// writeServiceError maps the application error taxonomy onto HTTP statuses.
// Unexpected errors are logged with detail and returned as an opaque 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *application.ValidationError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, driven.ErrNetworkNotFound):
		writeError(w, http.StatusNotFound, "network not found")
	case errors.Is(err, driven.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, driven.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
