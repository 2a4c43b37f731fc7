package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/api/login", h.handleLogin)
	r.Post("/api/logout", h.handleLogout)
	r.Get("/api/health", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/api/me", h.handleMe)
		r.Get("/api/events", h.handleEvents)
		r.Get("/api/dashboard", h.handleDashboard)

		r.Route("/api/tools", func(r chi.Router) {
			r.Get("/", h.handleListTools)
			r.Get("/{id}", h.handleToolDetail)
			r.Post("/{id}/take", h.handleTakeTool)
			r.Post("/{id}/return", h.handleReturnTool)
			r.With(h.requireAdmin).Post("/{id}/maintenance", h.handleToolMaintenance)
		})

		r.Route("/api/materials", func(r chi.Router) {
			r.Get("/", h.handleListMaterials)
			r.Get("/{id}", h.handleMaterialDetail)
			r.Post("/{id}/take", h.handleTakeMaterial)
			r.Post("/{id}/return", h.handleReturnMaterial)
			r.With(h.requireAdmin).Post("/{id}/quantity", h.handleAdjustQuantity)
		})

		r.Route("/api/queue", func(r chi.Router) {
			r.Get("/", h.handleListQueue)
			r.Post("/{toolID}/join", h.handleJoinQueue)
			r.Post("/{toolID}/leave", h.handleLeaveQueue)
			r.Get("/{toolID}/next", h.handleQueueNext)
		})

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", h.handleListTasks)
			r.Post("/", h.handleCreateTask)
			r.Post("/from-operation", h.handleTaskFromOperation)
			r.Get("/{id}", h.handleTaskDetail)
			r.Post("/{id}/tools", h.handleAddTaskTool)
			r.Delete("/{id}/tools/{serial}", h.handleRemoveTaskTool)
			r.Post("/{id}/start", h.handleStartTask)
			r.Post("/{id}/complete", h.handleCompleteTask)
			r.Post("/{id}/cancel", h.handleCancelTask)
			r.Delete("/{id}", h.handleDeleteTask)
		})

		r.Route("/api/operations", func(r chi.Router) {
			r.Get("/", h.handleListOperations)
			r.Get("/{id}", h.handleOperationDetail)
			r.With(h.requireAdmin).Post("/", h.handleSaveOperation)
			r.With(h.requireAdmin).Delete("/{id}", h.handleDeleteOperation)
		})

		r.Route("/api/history", func(r chi.Router) {
			r.Get("/", h.handleHistory)
			r.Get("/archive", h.handleHistoryArchive)
		})

		r.Get("/api/stations", h.handleStations)
	})

	return r
}
