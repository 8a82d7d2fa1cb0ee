package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1. authMW resolves the owner
// for every data route; the health check stays outside it.
func RegisterRoutes(r *gin.Engine, h *Handler, authMW gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1", authMW)

	v1.GET("/state", h.GetState)
	v1.POST("/initialize", h.Initialize)
	v1.POST("/local-mode", h.UseLocalMode)
	v1.POST("/migrate", h.Migrate)
	v1.GET("/snapshot", h.GetSnapshot)
	v1.GET("/dashboard", h.GetDashboard)

	contacts := v1.Group("/contacts")
	{
		contacts.GET("", h.ListContacts)
		contacts.POST("", h.AddContact)
		contacts.GET("/:id", h.GetContact)
		contacts.PATCH("/:id", h.UpdateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.AddProduct)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	orders := v1.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.AddOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}

	notes := v1.Group("/notes")
	{
		notes.GET("", h.ListNotes)
		notes.POST("", h.AddNote)
		notes.PATCH("/:id", h.UpdateNote)
	}

	reminders := v1.Group("/reminders")
	{
		reminders.GET("", h.ListReminders)
		reminders.POST("", h.AddReminder)
		reminders.PATCH("/:id", h.UpdateReminder)
	}

	vendor := v1.Group("/vendor-profile")
	{
		vendor.GET("", h.GetVendorProfile)
		vendor.PUT("", h.SetVendorProfile)
	}
}
