package router

import (
	"log"

	"dealdesk/config"
	"dealdesk/controllers"
	"dealdesk/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public routes, authenticated
// routes (token), validated routes (token + active user), admin routes.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	controllers.SetSecurityConfig(cfg.Security.JwtSecret, cfg.Security.AccessCodeLen)

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)
	api.GET("/portal/:code", Logger(), controllers.GetPortalView)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.GET("/me", Logger(), controllers.Me)

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	// Directory CRUD
	validated.GET("/users", Logger(), controllers.GetUsers)
	validated.GET("/customers", Logger(), controllers.GetCustomers)
	validated.GET("/customers/:id", Logger(), controllers.GetCustomerByID)
	validated.POST("/customers", Logger(), controllers.CreateCustomer)
	validated.PUT("/customers/:id", Logger(), controllers.UpdateCustomer)
	validated.GET("/properties", Logger(), controllers.GetProperties)
	validated.GET("/properties/:id", Logger(), controllers.GetPropertyByID)
	validated.POST("/properties", Logger(), controllers.CreateProperty)
	validated.PUT("/properties/:id", Logger(), controllers.UpdateProperty)
	validated.GET("/attorneys", Logger(), controllers.GetAttorneys)
	validated.POST("/attorneys", Logger(), controllers.CreateAttorney)
	validated.PUT("/attorneys/:id", Logger(), controllers.UpdateAttorney)
	validated.GET("/lenders", Logger(), controllers.GetLenders)
	validated.POST("/lenders", Logger(), controllers.CreateLender)
	validated.PUT("/lenders/:id", Logger(), controllers.UpdateLender)
	validated.GET("/inspectors", Logger(), controllers.GetInspectors)
	validated.GET("/inspectors/:id", Logger(), controllers.GetInspectorByID)
	validated.POST("/inspectors", Logger(), controllers.CreateInspector)
	validated.PUT("/inspectors/:id", Logger(), controllers.UpdateInspector)
	validated.GET("/inspection-types", Logger(), controllers.GetInspectionTypes)

	// Transactions
	validated.GET("/transactions", Logger(), controllers.GetTransactions)
	validated.GET("/transactions/:id", Logger(), controllers.GetTransactionByID)
	validated.POST("/transactions", Logger(), controllers.CreateTransaction)
	validated.PUT("/transactions/:id", Logger(), controllers.UpdateTransaction)
	validated.POST("/transactions/:id/participants", Logger(), controllers.AddTransactionParticipant)
	validated.DELETE("/transactions/:id/participants", Logger(), controllers.RemoveTransactionParticipant)
	validated.POST("/transactions/:id/apply-template", Logger(), controllers.ApplyTemplateToTransaction)

	// Follow-up events (the task workflow)
	validated.GET("/followup-events", Logger(), controllers.GetFollowUpEvents)
	validated.GET("/followup-events/:id", Logger(), controllers.GetFollowUpEventByID)
	validated.POST("/followup-events", Logger(), controllers.CreateFollowUpEvent)
	validated.PUT("/followup-events/:id", Logger(), controllers.UpdateFollowUpEvent)

	// Inspection requests
	validated.POST("/transactions/:id/inspection-requests", Logger(), controllers.DispatchInspectionRequests)
	validated.GET("/transactions/:id/inspection-requests", Logger(), controllers.GetInspectionRequests)
	validated.GET("/inspection-requests/:id/history", Logger(), controllers.GetInspectionRequestHistory)

	// Templates
	validated.GET("/templates", Logger(), controllers.GetTaskTemplates)
	validated.GET("/templates/:id", Logger(), controllers.GetTaskTemplateByID)
	validated.POST("/templates/preview", Logger(), controllers.PreviewTemplate)

	// Reports
	validated.GET("/reports/tasks-per-status", Logger(), controllers.GetTasksPerStatus)
	validated.GET("/reports/open-transactions", Logger(), controllers.GetOpenTransactionProgress)

	// Admin routes
	admin := validated.Group("")
	admin.Use(Adminizer())
	admin.PUT("/users/:id", Logger(), controllers.UpdateUser)
	admin.DELETE("/customers/:id", Logger(), controllers.DeleteCustomer)
	admin.DELETE("/properties/:id", Logger(), controllers.DeleteProperty)
	admin.DELETE("/attorneys/:id", Logger(), controllers.DeleteAttorney)
	admin.DELETE("/lenders/:id", Logger(), controllers.DeleteLender)
	admin.DELETE("/inspectors/:id", Logger(), controllers.DeleteInspector)
	admin.POST("/inspection-types", Logger(), controllers.CreateInspectionType)
	admin.DELETE("/inspection-types/:id", Logger(), controllers.DeleteInspectionType)
	admin.DELETE("/transactions/:id", Logger(), controllers.DeleteTransaction)
	admin.DELETE("/followup-events/:id", Logger(), controllers.DeleteFollowUpEvent)
	admin.POST("/templates", Logger(), controllers.CreateTaskTemplate)
	admin.POST("/templates/:id/tasks", Logger(), controllers.CreateTemplateTask)
	admin.DELETE("/templates/:id", Logger(), controllers.DeleteTaskTemplate)

	log.Printf("Routes initialized")
}
