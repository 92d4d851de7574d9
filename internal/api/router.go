package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/propdesk/propdesk/internal/api/handlers"
	"github.com/propdesk/propdesk/internal/api/middleware"
	"github.com/propdesk/propdesk/internal/core/auth"
)

type Router struct {
	engine             *gin.Engine
	authMiddleware     *middleware.AuthMiddleware
	authHandler        *handlers.AuthHandler
	companyHandler     *handlers.CompanyHandler
	propertyHandler    *handlers.PropertyHandler
	maintenanceHandler *handlers.MaintenanceHandler
	workOrderHandler   *handlers.WorkOrderHandler
	contractorHandler  *handlers.ContractorHandler
	warrantyHandler    *handlers.WarrantyHandler
	dashboardHandler   *handlers.DashboardHandler
	insightsHandler    *handlers.InsightsHandler
	adminHandler       *handlers.AdminHandler
}

func NewRouter(
	authService *auth.Service,
	authHandler *handlers.AuthHandler,
	companyHandler *handlers.CompanyHandler,
	propertyHandler *handlers.PropertyHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	contractorHandler *handlers.ContractorHandler,
	warrantyHandler *handlers.WarrantyHandler,
	dashboardHandler *handlers.DashboardHandler,
	insightsHandler *handlers.InsightsHandler,
	adminHandler *handlers.AdminHandler,
) *Router {
	return &Router{
		authMiddleware:     middleware.NewAuthMiddleware(authService),
		authHandler:        authHandler,
		companyHandler:     companyHandler,
		propertyHandler:    propertyHandler,
		maintenanceHandler: maintenanceHandler,
		workOrderHandler:   workOrderHandler,
		contractorHandler:  contractorHandler,
		warrantyHandler:    warrantyHandler,
		dashboardHandler:   dashboardHandler,
		insightsHandler:    insightsHandler,
		adminHandler:       adminHandler,
	}
}

func (r *Router) Setup(mode string) *gin.Engine {
	gin.SetMode(mode)
	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	r.engine.Use(gin.Logger())
	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Company-ID"},
		AllowCredentials: true,
	}))
	r.engine.Use(middleware.AuditMiddleware())

	r.setupRoutes()
	return r.engine
}

func (r *Router) setupRoutes() {
	api := r.engine.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", r.authHandler.Register)
		authRoutes.POST("/login", r.authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate())
	{
		// Current user
		protected.GET("/auth/me", r.authHandler.Me)

		// Companies (requires auth, no specific company)
		companies := protected.Group("/companies")
		{
			companies.POST("", r.companyHandler.Create)
			companies.GET("", r.companyHandler.List)
		}

		// Company-specific routes
		company := protected.Group("/companies/:companyId")
		company.Use(r.authMiddleware.RequireCompany())
		{
			company.GET("", r.companyHandler.Get)
			company.PUT("", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.Update)
			company.PUT("/settings", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.UpdateSettings)
			company.DELETE("", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.Delete)

			// Roles
			company.GET("/roles", r.companyHandler.ListRoles)
			company.POST("/roles", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.CreateRole)

			// Members
			company.GET("/members", r.companyHandler.ListMembers)
			company.POST("/members", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.AddMember)
			company.DELETE("/members/:userId", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.RemoveMember)

			// API Keys
			company.GET("/api-keys", r.companyHandler.ListAPIKeys)
			company.POST("/api-keys", r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.CreateAPIKey)
		}

		// API key deletion (not company-scoped in URL)
		protected.DELETE("/api-keys/:keyId", r.authMiddleware.RequireCompany(), r.authMiddleware.RequirePermission(auth.PermCompanyManage), r.companyHandler.DeleteAPIKey)

		// Properties (company required via header or param)
		properties := protected.Group("/properties")
		properties.Use(r.authMiddleware.RequireCompany())
		{
			properties.POST("", r.authMiddleware.RequirePermission(auth.PermPropertyWrite), r.propertyHandler.Create)
			properties.GET("", r.authMiddleware.RequirePermission(auth.PermPropertyRead), r.propertyHandler.List)
			properties.GET("/:id", r.authMiddleware.RequirePermission(auth.PermPropertyRead), r.propertyHandler.Get)
			properties.GET("/:id/overview", r.authMiddleware.RequirePermission(auth.PermReportRead), r.propertyHandler.Overview)
			properties.GET("/:id/warranties", r.authMiddleware.RequirePermission(auth.PermWarrantyRead), r.warrantyHandler.ListByProperty)
			properties.POST("/:id/insights", r.authMiddleware.RequirePermission(auth.PermInsightRun), r.insightsHandler.Property)
			properties.PUT("/:id", r.authMiddleware.RequirePermission(auth.PermPropertyWrite), r.propertyHandler.Update)
			properties.DELETE("/:id", r.authMiddleware.RequirePermission(auth.PermPropertyDelete), r.propertyHandler.Delete)
		}

		// Maintenance requests
		requests := protected.Group("/requests")
		requests.Use(r.authMiddleware.RequireCompany())
		{
			requests.POST("", r.authMiddleware.RequirePermission(auth.PermRequestWrite), r.maintenanceHandler.Create)
			requests.GET("", r.authMiddleware.RequirePermission(auth.PermRequestRead), r.maintenanceHandler.List)
			requests.GET("/:id", r.authMiddleware.RequirePermission(auth.PermRequestRead), r.maintenanceHandler.Get)
			requests.PUT("/:id", r.authMiddleware.RequirePermission(auth.PermRequestWrite), r.maintenanceHandler.Update)
			requests.PUT("/:id/status", r.authMiddleware.RequirePermission(auth.PermRequestWrite), r.maintenanceHandler.UpdateStatus)
			requests.DELETE("/:id", r.authMiddleware.RequirePermission(auth.PermRequestDelete), r.maintenanceHandler.Delete)

			// Work orders under a request
			requests.POST("/:id/work-orders", r.authMiddleware.RequirePermission(auth.PermWorkOrderWrite), r.workOrderHandler.Create)
			requests.GET("/:id/work-orders", r.authMiddleware.RequirePermission(auth.PermWorkOrderRead), r.workOrderHandler.ListByRequest)
		}

		// Work order direct access (by ID)
		workOrders := protected.Group("/work-orders")
		workOrders.Use(r.authMiddleware.RequireCompany())
		{
			workOrders.GET("", r.authMiddleware.RequirePermission(auth.PermWorkOrderRead), r.workOrderHandler.List)
			workOrders.GET("/:id", r.authMiddleware.RequirePermission(auth.PermWorkOrderRead), r.workOrderHandler.Get)
			workOrders.PUT("/:id", r.authMiddleware.RequirePermission(auth.PermWorkOrderWrite), r.workOrderHandler.Update)
			workOrders.DELETE("/:id", r.authMiddleware.RequirePermission(auth.PermWorkOrderDelete), r.workOrderHandler.Delete)
		}

		// Contractors
		contractors := protected.Group("/contractors")
		contractors.Use(r.authMiddleware.RequireCompany())
		{
			contractors.POST("", r.authMiddleware.RequirePermission(auth.PermContractorWrite), r.contractorHandler.Create)
			contractors.GET("", r.authMiddleware.RequirePermission(auth.PermContractorRead), r.contractorHandler.List)
			contractors.GET("/:id", r.authMiddleware.RequirePermission(auth.PermContractorRead), r.contractorHandler.Get)
			contractors.PUT("/:id", r.authMiddleware.RequirePermission(auth.PermContractorWrite), r.contractorHandler.Update)
			contractors.DELETE("/:id", r.authMiddleware.RequirePermission(auth.PermContractorWrite), r.contractorHandler.Delete)
		}

		// Warranties
		warranties := protected.Group("/warranties")
		warranties.Use(r.authMiddleware.RequireCompany())
		{
			warranties.POST("", r.authMiddleware.RequirePermission(auth.PermWarrantyWrite), r.warrantyHandler.Create)
			warranties.GET("", r.authMiddleware.RequirePermission(auth.PermWarrantyRead), r.warrantyHandler.List)
			warranties.GET("/:id", r.authMiddleware.RequirePermission(auth.PermWarrantyRead), r.warrantyHandler.Get)
			warranties.PUT("/:id", r.authMiddleware.RequirePermission(auth.PermWarrantyWrite), r.warrantyHandler.Update)
			warranties.DELETE("/:id", r.authMiddleware.RequirePermission(auth.PermWarrantyWrite), r.warrantyHandler.Delete)
		}

		// Dashboard and reports
		dashboard := protected.Group("/dashboard")
		dashboard.Use(r.authMiddleware.RequireCompany())
		{
			dashboard.GET("", r.authMiddleware.RequirePermission(auth.PermReportRead), r.dashboardHandler.Summary)
		}

		reports := protected.Group("/reports")
		reports.Use(r.authMiddleware.RequireCompany())
		{
			reports.GET("/expenses", r.authMiddleware.RequirePermission(auth.PermReportRead), r.dashboardHandler.Expenses)
		}

		// AI insights
		insights := protected.Group("/insights")
		insights.Use(r.authMiddleware.RequireCompany())
		{
			insights.GET("/dashboard", r.authMiddleware.RequirePermission(auth.PermInsightRun), r.insightsHandler.Dashboard)
			insights.GET("/expenses", r.authMiddleware.RequirePermission(auth.PermInsightRun), r.insightsHandler.Expenses)
		}

		// Admin routes (super admin only)
		admin := protected.Group("/admin")
		admin.Use(r.authMiddleware.RequireSuperAdmin())
		{
			admin.GET("/companies", r.adminHandler.ListCompanies)
			admin.GET("/companies/:companyId", r.adminHandler.GetCompanyDetail)

			admin.GET("/users", r.adminHandler.ListUsers)
			admin.PUT("/users/:userId", r.adminHandler.UpdateUser)
			admin.POST("/users/:userId/promote", r.adminHandler.PromoteUser)
			admin.POST("/users/:userId/demote", r.adminHandler.DemoteUser)

			admin.GET("/audit-logs", r.adminHandler.QueryAuditLogs)
		}
	}
}
