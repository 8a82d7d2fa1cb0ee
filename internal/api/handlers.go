package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"varotra-backend-go/internal/hub"
	"varotra-backend-go/internal/middleware"
	"varotra-backend-go/internal/models"
)

// Handler exposes the workspace facade over HTTP. Every route is scoped
// to the owner the auth middleware resolved.
type Handler struct {
	manager *hub.Manager
	log     *zap.Logger
}

func NewHandler(manager *hub.Manager, log *zap.Logger) *Handler {
	return &Handler{manager: manager, log: log.Named("api")}
}

func (h *Handler) workspace(c *gin.Context) (*hub.Workspace, bool) {
	ws, err := h.manager.Workspace(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		writeError(c, h.log, err)
		return nil, false
	}
	return ws, true
}

// GetState reports the workspace lifecycle state so the client can decide
// between rendering data, retrying, and offering local mode.
func (h *Handler) GetState(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	state, lastErr := ws.State()
	c.JSON(http.StatusOK, stateResponse(state, lastErr))
}

// Initialize retries the remote fetch after a failure.
func (h *Handler) Initialize(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := ws.Initialize(c.Request.Context()); err != nil {
		writeError(c, h.log, err)
		return
	}
	state, lastErr := ws.State()
	c.JSON(http.StatusOK, stateResponse(state, lastErr))
}

// UseLocalMode abandons the remote store for this owner and serves the
// in-memory sample dataset.
func (h *Handler) UseLocalMode(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	ws.UseLocalMode()
	state, lastErr := ws.State()
	c.JSON(http.StatusOK, stateResponse(state, lastErr))
}

// GetSnapshot returns the complete current view: all six entity lists in
// canonical order plus the lifecycle state.
func (h *Handler) GetSnapshot(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot())
}

// GetDashboard returns the derived analytics for the current snapshot.
func (h *Handler) GetDashboard(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Stats())
}

// Migrate bulk-copies a dataset into the remote store. Without a request
// body the owner's local dataset is migrated, which is the local-to-cloud
// upgrade path.
func (h *Handler) Migrate(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}

	// A request body is the complete dataset to migrate; only an empty
	// body falls back to the owner's local dataset.
	var ds models.Dataset
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&ds); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid dataset payload", Details: err.Error()})
			return
		}
	} else {
		ds = ws.LocalDataset()
	}

	if err := ws.Migrate(c.Request.Context(), ds); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("migration completed",
		zap.String("owner", middleware.OwnerID(c)), zap.Int("records", ds.Count()))
	c.JSON(http.StatusOK, gin.H{"migrated": ds.Count()})
}

func (h *Handler) ListContacts(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot().Contacts)
}

func (h *Handler) AddContact(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid contact payload", Details: err.Error()})
		return
	}
	id, err := ws.AddContact(c.Request.Context(), contact)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) GetContact(c *gin.Context) {
	getByID(h, c, (*hub.Workspace).GetContact)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	h.update(c, (*hub.Workspace).UpdateContact)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	h.delete(c, (*hub.Workspace).DeleteContact)
}

func (h *Handler) ListProducts(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot().Products)
}

func (h *Handler) AddProduct(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid product payload", Details: err.Error()})
		return
	}
	id, err := ws.AddProduct(c.Request.Context(), product)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) GetProduct(c *gin.Context) {
	getByID(h, c, (*hub.Workspace).GetProduct)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	h.update(c, (*hub.Workspace).UpdateProduct)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	h.delete(c, (*hub.Workspace).DeleteProduct)
}

func (h *Handler) ListOrders(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot().Orders)
}

func (h *Handler) AddOrder(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid order payload", Details: err.Error()})
		return
	}
	id, err := ws.AddOrder(c.Request.Context(), order)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) GetOrder(c *gin.Context) {
	getByID(h, c, (*hub.Workspace).GetOrder)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	h.update(c, (*hub.Workspace).UpdateOrder)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	h.delete(c, (*hub.Workspace).DeleteOrder)
}

func (h *Handler) ListNotes(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot().Notes)
}

func (h *Handler) AddNote(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var note models.Note
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid note payload", Details: err.Error()})
		return
	}
	id, err := ws.AddNote(c.Request.Context(), note)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) UpdateNote(c *gin.Context) {
	h.update(c, (*hub.Workspace).UpdateNote)
}

func (h *Handler) ListReminders(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ws.Snapshot().Reminders)
}

func (h *Handler) AddReminder(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var reminder models.Reminder
	if err := c.ShouldBindJSON(&reminder); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid reminder payload", Details: err.Error()})
		return
	}
	id, err := ws.AddReminder(c.Request.Context(), reminder)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, IDResponse{ID: id})
}

func (h *Handler) UpdateReminder(c *gin.Context) {
	h.update(c, (*hub.Workspace).UpdateReminder)
}

func (h *Handler) GetVendorProfile(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	vendor := ws.Snapshot().Vendor
	if vendor == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Vendor profile has not been set up yet"})
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *Handler) SetVendorProfile(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var profile models.VendorProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile payload", Details: err.Error()})
		return
	}
	if err := ws.SetVendorProfile(c.Request.Context(), profile); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// update is the shared partial-update flow: the patch is an arbitrary
// field map, immutable fields are stripped further down the stack.
func (h *Handler) update(c *gin.Context, op func(*hub.Workspace, context.Context, string, map[string]any) error) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid patch payload", Details: err.Error()})
		return
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Patch must contain at least one field"})
		return
	}
	if err := op(ws, c.Request.Context(), c.Param("id"), patch); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// getByID is the shared detail flow. An absent record is a 404 here even
// though the facade reports it as (nil, nil).
func getByID[T any](h *Handler, c *gin.Context, op func(*hub.Workspace, context.Context, string) (*T, error)) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	item, err := op(ws, c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Record not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) delete(c *gin.Context, op func(*hub.Workspace, context.Context, string) error) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := op(ws, c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
