package handler

import "github.com/gin-gonic/gin"

// Handlers bundles the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Schedule *ScheduleHandler
	Flows    *AssignmentFlowHandler
	UIHints  *UIHintHandler
	Metrics  *MetricsHandler
}

// RegisterRoutes mounts every engine endpoint on api.
func RegisterRoutes(api *gin.RouterGroup, h Handlers) {
	schedule := api.Group("/schedule")
	schedule.GET("/grid", h.Schedule.Grid)
	schedule.POST("/selection/validate", h.Schedule.ValidateSelection)
	schedule.POST("/teachers/classify", h.Schedule.ClassifyTeachers)
	schedule.POST("/assignments/validate", h.Schedule.ValidateAssignment)
	schedule.DELETE("/sessions/:id", h.Schedule.DeleteSession)
	schedule.DELETE("/cache", h.Schedule.InvalidateCache)

	RegisterAssignmentFlowRoutes(schedule.Group("/flows"), h.Flows)

	hints := api.Group("/ui-hints")
	hints.GET("/:key", h.UIHints.Get)
	hints.PUT("/:key", h.UIHints.Set)

	api.GET("/metrics/summary", h.Metrics.Summary)
}

// RegisterAssignmentFlowRoutes mounts the assignment flow steps on flows.
func RegisterAssignmentFlowRoutes(flows *gin.RouterGroup, h *AssignmentFlowHandler) {
	flows.POST("", h.Start)
	flows.GET("/:id", h.State)
	flows.DELETE("/:id", h.End)
	flows.GET("/:id/grid", h.Grid)
	flows.POST("/:id/cells", h.ToggleCell)
	flows.DELETE("/:id/cells", h.ClearSelection)
	flows.POST("/:id/confirm", h.ConfirmSelection)
	flows.PUT("/:id/course", h.SelectCourse)
	flows.PUT("/:id/session-type", h.SelectSessionType)
	flows.GET("/:id/teachers", h.ClassifyTeachers)
	flows.PUT("/:id/teacher", h.SelectTeacher)
	flows.GET("/:id/spaces", h.LoadSpaces)
	flows.PUT("/:id/space", h.SelectSpace)
	flows.POST("/:id/validate", h.Validate)
	flows.POST("/:id/submit", h.Submit)
	flows.DELETE("/:id/sessions/:sessionId", h.DeleteSession)
}
