package router

import (
	"github.com/gin-gonic/gin"

	"restaurant-ops/controllers"
	"restaurant-ops/middlewares"
	"restaurant-ops/services"
	"restaurant-ops/store"
)

// SetupRouter wires the HTTP surface. The controllers are thin: everything
// with real semantics lives in the services they call.
func SetupRouter(st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	catalog := services.NewStoreCatalog(st)
	occupancy := services.NewOccupancy(st)
	lifecycle := services.NewLifecycle(st, catalog)
	adjustment := services.NewAdjustment(st, catalog, lifecycle)
	billing := services.NewBilling(st, lifecycle)

	healthCtrl := controllers.NewHealthController(st)
	userCtrl := controllers.NewUserController(st)
	tableCtrl := controllers.NewTableController(st, occupancy)
	menuCtrl := controllers.NewMenuController(st)
	orderCtrl := controllers.NewOrderController(st, lifecycle, adjustment)
	kitchenCtrl := controllers.NewKitchenController(st, lifecycle)
	paymentCtrl := controllers.NewPaymentController(st, billing)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/health", healthCtrl.Health)

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no auth
	r.GET("/categories", menuCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/kds/ws", controllers.KDSHandler)

		// Tables & occupancy
		auth.GET("/tables", tableCtrl.GetAllTables)
		auth.GET("/tables/status", tableCtrl.FindTablesByStatus)
		auth.GET("/tables/stats", tableCtrl.GetTableStats)
		auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
		auth.GET("/tables/:table_id/openings", tableCtrl.GetTableOpenings)
		auth.POST("/tables/:table_id/open", tableCtrl.OpenTable)
		auth.POST("/tables/:table_id/close", tableCtrl.CloseTable)

		// Orders
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/tables/:table_id/orders", orderCtrl.CreateOrder)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.PATCH("/orders/:order_id/adjust", orderCtrl.AdjustOrder)

		// Kitchen
		kitchen := auth.Group("/kitchen")
		kitchen.Use(middlewares.RequireRole("chef", "staff"))
		{
			kitchen.GET("/pending-orders", kitchenCtrl.GetPendingOrders)
			kitchen.GET("/pending-items", kitchenCtrl.GetPendingItems)
			kitchen.POST("/orders/:order_id/ready", kitchenCtrl.MarkOrderReady)
			kitchen.PATCH("/order-items/:item_id/status", kitchenCtrl.UpdateItemStatus)
			kitchen.GET("/ingredients", kitchenCtrl.ListIngredients)
			kitchen.POST("/ingredients", kitchenCtrl.CreateIngredient)
			kitchen.PATCH("/ingredients/:ingredient_id", kitchenCtrl.UpdateIngredientQuantity)
			kitchen.GET("/ingredients/report", kitchenCtrl.IngredientsReport)
			kitchen.GET("/menus/:menu_item_id/ingredients", kitchenCtrl.CheckItemIngredients)
		}

		// Payments & reports
		payments := auth.Group("/payments")
		payments.Use(middlewares.RequireRole("staff"))
		{
			payments.POST("/bills", paymentCtrl.CreateBill)
			payments.GET("/bills/:bill_id", paymentCtrl.GetBill)
			payments.GET("/history", paymentCtrl.GetPaymentHistory)
			payments.GET("/reports/revenue", paymentCtrl.GetRevenueSummary)
			payments.GET("/reports/daily", paymentCtrl.GetDailyRevenue)
		}

		// Admin
		admin := auth.Group("/admin")
		admin.Use(middlewares.RequireRole())
		{
			admin.GET("/users", userCtrl.GetAllUsers)
			admin.GET("/users/:user_id", userCtrl.GetUserByID)
			admin.PATCH("/users/:user_id", userCtrl.UpdateUser)
			admin.DELETE("/users/:user_id", userCtrl.DeactivateUser)

			admin.POST("/tables", tableCtrl.CreateTable)
			admin.DELETE("/tables/:table_id", tableCtrl.DeactivateTable)

			admin.POST("/categories", menuCtrl.CreateCategory)
			admin.POST("/menus", menuCtrl.CreateMenu)
			admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
			admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
		}
	}

	return r
}
