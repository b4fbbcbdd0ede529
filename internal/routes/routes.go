package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dq-report-service/internal/auth"
	handler "dq-report-service/internal/handlers"
	"dq-report-service/internal/services/reporting"
	"dq-report-service/internal/services/watch"
)

type Deps struct {
	Validator *auth.Validator
	Reporting *reporting.Service
	Watch     *watch.Service
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	emailHandler := handler.NewEmailHandler(deps.Reporting)
	reportHandler := handler.NewReportHandler(deps.Reporting)

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/", handler.BearerAuth(deps.Validator))

	emails := api.Group("/email")
	emails.POST("/invite-user", emailHandler.InviteUser)
	emails.POST("/dq-report-upload-success", emailHandler.UploadSuccess)
	emails.POST("/dq-report-check-success", emailHandler.CheckSuccess)
	emails.POST("/dq-report", emailHandler.DQReport)
	emails.POST("/master-data-release-notification", emailHandler.MasterDataRelease)

	reports := api.Group("/reports")
	reports.POST("/accordion", reportHandler.Accordion)
	reports.POST("/drill-down", reportHandler.DrillDown)
	reports.POST("/pdf", reportHandler.PDF)
	reports.GET("/renders/:uploadId", reportHandler.ListRenders)

	// Upload watches need the portal API; they are left out when it is not configured.
	if deps.Watch != nil {
		watchHandler := handler.NewWatchHandler(deps.Watch)
		watches := api.Group("/watch")
		watches.POST("/:uploadId", watchHandler.Start)
		watches.GET("/:uploadId", watchHandler.Get)
		watches.DELETE("/:uploadId", watchHandler.Stop)
	}
}
