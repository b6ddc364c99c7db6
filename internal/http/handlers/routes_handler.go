// README: Featured route handlers: public priced list, admin CRUD.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/routes"
	"taxifare/internal/types"
)

type RoutesService interface {
	List(ctx context.Context) ([]routes.Route, error)
	ListPriced(ctx context.Context) ([]routes.PricedRoute, error)
	Create(ctx context.Context, cmd routes.CreateCommand) (*routes.Route, error)
	Delete(ctx context.Context, id types.ID) error
}

type RoutesHandler struct {
	routes RoutesService
}

func NewRoutesHandler(svc RoutesService) *RoutesHandler {
	return &RoutesHandler{routes: svc}
}

func (h *RoutesHandler) ListPriced(c *gin.Context) {
	list, err := h.routes.ListPriced(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, list)
}

func (h *RoutesHandler) List(c *gin.Context) {
	list, err := h.routes.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, list)
}

func (h *RoutesHandler) Create(c *gin.Context) {
	var cmd routes.CreateCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.routes.Create(c.Request.Context(), cmd)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, r)
}

func (h *RoutesHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid route id")
		return
	}
	if err := h.routes.Delete(c.Request.Context(), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
