package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/handlers"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
	ucBlock "github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/block"
)

// Deps reúne o que as rotas precisam; montado uma vez no main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         zerolog.Logger
	Appointment ucAppointment.Deps
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	blockDeps := ucBlock.Deps{
		Repo:   deps.Appointment.Repo,
		Locker: deps.Appointment.Locker,
		Audit:  deps.Appointment.Audit,
		Log:    deps.Log,
	}

	authHandler := handlers.NewAuthHandler(deps.DB, deps.Config)
	meHandler := handlers.NewMeHandler(deps.DB)
	branchHandler := handlers.NewBranchHandler(deps.DB)
	staffHandler := handlers.NewStaffHandler(deps.DB)
	serviceHandler := handlers.NewServiceHandler(deps.DB)
	clientHandler := handlers.NewClientHandler(deps.DB)
	scheduleHandler := handlers.NewScheduleHandler(deps.Appointment.Repo)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointment)
	boardHandler := handlers.NewBoardHandler(deps.Appointment)
	blockHandler := handlers.NewBlockHandler(blockDeps)
	publicHandler := handlers.NewPublicHandler(deps.DB, deps.Appointment)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/branch", branchHandler.GetMe)
			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/services", serviceHandler.List)
			secured.GET("/me/staff", staffHandler.List)
			secured.GET("/me/schedule", scheduleHandler.Get)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments/validate", appointmentHandler.Validate)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Edit)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// BOARD
			// ------------------------------
			secured.GET("/me/board", boardHandler.Get)
			secured.POST("/me/board/move", boardHandler.Move)

			// ------------------------------
			// BLOCKS
			// ------------------------------
			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// 🛡️ ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/branches", branchHandler.List)
				admin.POST("/branches", branchHandler.Create)
				admin.PATCH("/branch", branchHandler.UpdateMe)
				admin.PUT("/schedule", scheduleHandler.Update)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.POST("/staff", staffHandler.Create)
				admin.PATCH("/staff/:id", staffHandler.Update)
			}
		}
	}
}
