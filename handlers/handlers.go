// handlers.go - Handler wiring and shared response helpers

// Package handlers adapts the stores, session manager and policy to the JSON
// API. No business rule lives here: handlers parse input, resolve identity
// and translate domain errors to status codes.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"go-tree-catalog/apperrors"
	"go-tree-catalog/config"
	"go-tree-catalog/session"
	"go-tree-catalog/store"

	"github.com/gin-gonic/gin"
)

// Handler bundles the dependencies every route needs.
type Handler struct {
	cfg      *config.Config
	users    *store.UserStore
	trees    *store.TreeStore
	sessions *session.Manager
	log      *slog.Logger
}

// New returns a Handler using the given stores and session manager.
func New(cfg *config.Config, users *store.UserStore, trees *store.TreeStore, sessions *session.Manager, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, users: users, trees: trees, sessions: sessions, log: log}
}

// storageCtx bounds a storage call with the configured timeout. It derives
// from the background context so a client disconnect does not cancel a
// mutation mid-flight.
func (h *Handler) storageCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.cfg.StorageTimeout)
}

// fail writes the error response for err. Unexpected errors are logged with
// full detail and surfaced to the client as a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.log.Error("internal error", "path", c.Request.URL.Path, "err", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 with the given message, used for body-binding
// failures that never reach the stores.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.Production, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.cfg.Production, true)
}
