package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"toolcrib/document"
	"toolcrib/taskflow"
)

func (h *Handlers) handleListTasks(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	if doc == nil {
		h.jsonError(w, "document not loaded", http.StatusServiceUnavailable)
		return
	}
	tasks := doc.Tasks
	if status := r.URL.Query().Get("status"); status != "" {
		var filtered []document.Task
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	h.jsonOK(w, map[string]any{"tasks": tasks})
}

func (h *Handlers) handleTaskDetail(w http.ResponseWriter, r *http.Request) {
	doc := h.engine.Snapshot()
	task := doc.TaskByID(chi.URLParam(r, "id"))
	if task == nil {
		h.jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	// Per-tool availability so a pending task shows what blocks it.
	availability := make(map[string]taskflow.ToolAvailability, len(task.Tools))
	for _, ref := range task.Tools {
		availability[ref.Serial] = taskflow.Availability(doc, ref.Serial)
	}
	h.jsonOK(w, map[string]any{"task": task, "availability": availability})
}

func (h *Handlers) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		OperationNumber string `json:"operation_number"`
		Description     string `json:"description"`
		DueDate         string `json:"due_date"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	opNumber := h.operationNumber(w, r, req.OperationNumber)
	task, err := h.engine.CreateTask(r.Context(), operatorFrom(r), req.Name, opNumber, req.Description, req.DueDate)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleTaskFromOperation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OperationID string `json:"operation_id"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	task, err := h.engine.TaskFromOperation(r.Context(), operatorFrom(r), req.OperationID)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleAddTaskTool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Serial string `json:"serial"`
		Name   string `json:"name"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	task, err := h.engine.AddTaskTool(r.Context(), operatorFrom(r), chi.URLParam(r, "id"), req.Serial, req.Name)
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleRemoveTaskTool(w http.ResponseWriter, r *http.Request) {
	task, err := h.engine.RemoveTaskTool(r.Context(), operatorFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "serial"))
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleStartTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.engine.StartTask(r.Context(), operatorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.engine.CompleteTask(r.Context(), operatorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleCancelTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.engine.CancelTask(r.Context(), operatorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, task)
}

func (h *Handlers) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteTask(r.Context(), operatorFrom(r), chi.URLParam(r, "id")); err != nil {
		h.jsonOpError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "deleted"})
}
