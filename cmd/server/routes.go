package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"shipstack.backend/internal/interfaces/http/handlers"
	"shipstack.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	walletHandler    *handlers.WalletHandler
	shippingHandler  *handlers.ShippingHandler
	pincodeHandler   *handlers.PincodeHandler
	warehouseHandler *handlers.WarehouseHandler
	productHandler   *handlers.ProductHandler
	adminHandler     *handlers.AdminHandler
	authMiddleware   gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/signup", d.authMiddleware, middleware.RequireAdmin(), d.authHandler.Signup)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/verify-otp", d.authHandler.VerifyOTP)
		}

		// Wallet routes (protected)
		wallet := v1.Group("/wallet")
		wallet.Use(d.authMiddleware)
		{
			wallet.GET("/balance", d.walletHandler.GetBalance)
		}

		// Recharge routes; the callback is hit by the payment gateway
		recharge := v1.Group("/recharge")
		{
			recharge.POST("/link", d.authMiddleware, d.walletHandler.CreateRechargeLink)
			recharge.GET("/callback", d.walletHandler.RechargeCallback)
		}

		// Shipping routes (protected)
		shipping := v1.Group("/shipping")
		shipping.Use(d.authMiddleware)
		{
			shipping.POST("/cost", d.shippingHandler.GetShippingCost)
			shipping.GET("/order-id", d.shippingHandler.GenerateOrderID)
			shipping.POST("/orders", middleware.IdempotencyMiddleware(), d.shippingHandler.CreateOrder)
			shipping.POST("/orders/details", d.shippingHandler.OrderDetails)
			shipping.POST("/orders/list", d.shippingHandler.ListOrders)
			shipping.GET("/track/:waybill", d.shippingHandler.TrackWaybill)
			shipping.POST("/label", d.shippingHandler.GetLabel)
			shipping.POST("/edit", d.shippingHandler.EditShipment)
		}

		// Pincode routes (protected)
		pincode := v1.Group("/pincode")
		pincode.Use(d.authMiddleware)
		{
			pincode.POST("/serviceability", d.pincodeHandler.Serviceability)
			pincode.POST("/data", d.pincodeHandler.Data)
		}

		// Warehouse routes (protected)
		warehouses := v1.Group("/warehouses")
		warehouses.Use(d.authMiddleware)
		{
			warehouses.POST("", d.warehouseHandler.CreateWarehouse)
			warehouses.GET("", d.warehouseHandler.ListWarehouses)
		}

		// Catalog routes (protected)
		products := v1.Group("/products")
		products.Use(d.authMiddleware)
		{
			products.POST("", d.productHandler.CreateProduct)
			products.GET("", d.productHandler.ListProducts)
			products.GET("/:id", d.productHandler.GetProduct)
		}
		categories := v1.Group("/categories")
		categories.Use(d.authMiddleware)
		{
			categories.POST("", d.productHandler.CreateCategory)
			categories.GET("", d.productHandler.ListCategories)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PATCH("/users/:id/margin", d.adminHandler.UpdateMargin)
			admin.PATCH("/users/:id/active", d.adminHandler.SetActive)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)
		}
	}
}
