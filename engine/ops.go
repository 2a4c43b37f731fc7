package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"toolcrib/auth"
	"toolcrib/document"
	"toolcrib/registry"
	"toolcrib/reservation"
	"toolcrib/taskflow"
)

// actorName is the name written into history and holder fields.
func actorName(actor *auth.Operator) string {
	if actor.DisplayName != "" {
		return actor.DisplayName
	}
	return actor.Username
}

// --- Tools ---

func (e *Engine) TakeTool(ctx context.Context, actor *auth.Operator, toolID int64, operationNumber, station string) (*document.Tool, error) {
	var out document.Tool
	err := e.mutate(ctx, func(doc *document.Document) error {
		tool, err := registry.TakeTool(doc, toolID, actorName(actor), operationNumber, station, time.Now())
		if err != nil {
			return err
		}
		out = *tool
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventToolTaken, Payload: ToolEvent{
		ToolID: out.ID, Serial: out.Serial, Name: out.Name,
		Operator: actorName(actor), Station: out.Station,
	}})
	return &out, nil
}

func (e *Engine) ReturnTool(ctx context.Context, actor *auth.Operator, toolID int64, operationNumber string) (*document.Tool, error) {
	var out document.Tool
	err := e.mutate(ctx, func(doc *document.Document) error {
		tool, err := registry.ReturnTool(doc, toolID, actorName(actor), operationNumber, time.Now())
		if err != nil {
			return err
		}
		out = *tool
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventToolReturned, Payload: ToolEvent{
		ToolID: out.ID, Serial: out.Serial, Name: out.Name, Operator: actorName(actor),
	}})
	return &out, nil
}

// SetToolMaintenance flags or clears maintenance. Admin only.
func (e *Engine) SetToolMaintenance(ctx context.Context, actor *auth.Operator, toolID int64, on bool) (*document.Tool, error) {
	if !actor.Admin {
		return nil, ErrPermissionDenied
	}
	var out document.Tool
	err := e.mutate(ctx, func(doc *document.Document) error {
		tool, err := registry.SetToolMaintenance(doc, toolID, on)
		if err != nil {
			return err
		}
		out = *tool
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventMaintenanceChanged, Payload: MaintenanceEvent{
		ToolID: out.ID, Serial: out.Serial, On: on, Actor: actorName(actor),
	}})
	return &out, nil
}

// --- Materials ---

func (e *Engine) TakeMaterial(ctx context.Context, actor *auth.Operator, materialID int64, operationNumber, station string) (*document.Material, error) {
	var out document.Material
	err := e.mutate(ctx, func(doc *document.Document) error {
		mat, err := registry.TakeMaterial(doc, materialID, actorName(actor), operationNumber, station, time.Now())
		if err != nil {
			return err
		}
		out = *mat
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventMaterialTaken, Payload: MaterialEvent{
		MaterialID: out.ID, Code: out.Code, Name: out.Name,
		Operator: actorName(actor), Quantity: out.Quantity,
	}})
	return &out, nil
}

func (e *Engine) ReturnMaterial(ctx context.Context, actor *auth.Operator, materialID int64, operationNumber string) (*document.Material, error) {
	var out document.Material
	err := e.mutate(ctx, func(doc *document.Document) error {
		mat, err := registry.ReturnMaterial(doc, materialID, actorName(actor), operationNumber, time.Now())
		if err != nil {
			return err
		}
		out = *mat
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventMaterialReturned, Payload: MaterialEvent{
		MaterialID: out.ID, Code: out.Code, Name: out.Name,
		Operator: actorName(actor), Quantity: out.Quantity,
	}})
	return &out, nil
}

// AdjustMaterialQuantity restocks or writes off stock. Admin only.
func (e *Engine) AdjustMaterialQuantity(ctx context.Context, actor *auth.Operator, materialID int64, quantity int) (*document.Material, error) {
	if !actor.Admin {
		return nil, ErrPermissionDenied
	}
	var out document.Material
	err := e.mutate(ctx, func(doc *document.Document) error {
		mat, err := registry.AdjustMaterialQuantity(doc, materialID, quantity)
		if err != nil {
			return err
		}
		out = *mat
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventQuantityAdjusted, Payload: MaterialEvent{
		MaterialID: out.ID, Code: out.Code, Name: out.Name,
		Operator: actorName(actor), Quantity: out.Quantity,
	}})
	return &out, nil
}

// --- Reservation queue ---

func (e *Engine) JoinQueue(ctx context.Context, actor *auth.Operator, toolID int64, operationNumber, station string) (*document.Reservation, error) {
	var out document.Reservation
	err := e.mutate(ctx, func(doc *document.Document) error {
		res, err := reservation.Join(doc, toolID, actorName(actor), operationNumber, station, time.Now())
		if err != nil {
			return err
		}
		out = *res
		return nil
	})
	if err != nil {
		return nil, err
	}
	pos := reservation.Position(e.Snapshot(), toolID, actorName(actor))
	e.Events.Emit(Event{Type: EventQueueJoined, Payload: QueueEvent{
		ToolID: out.ToolID, ToolName: out.ToolName, Operator: out.Operator, Position: pos,
	}})
	return &out, nil
}

func (e *Engine) LeaveQueue(ctx context.Context, actor *auth.Operator, toolID int64) error {
	err := e.mutate(ctx, func(doc *document.Document) error {
		return reservation.Leave(doc, toolID, actorName(actor))
	})
	if err != nil {
		return err
	}
	e.Events.Emit(Event{Type: EventQueueLeft, Payload: QueueEvent{
		ToolID: toolID, Operator: actorName(actor),
	}})
	return nil
}

// --- Tasks ---

func (e *Engine) CreateTask(ctx context.Context, actor *auth.Operator, name, operationNumber, description, dueDate string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.Create(doc, name, operationNumber, description, dueDate, actorName(actor), time.Now())
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventTaskCreated, Payload: TaskEvent{
		TaskID: out.ID, Name: out.Name, Status: out.Status, Operator: actorName(actor),
	}})
	return &out, nil
}

func (e *Engine) TaskFromOperation(ctx context.Context, actor *auth.Operator, operationID string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.FromOperation(doc, operationID, actorName(actor), time.Now())
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventTaskCreated, Payload: TaskEvent{
		TaskID: out.ID, Name: out.Name, Status: out.Status, Operator: actorName(actor),
	}})
	return &out, nil
}

func (e *Engine) AddTaskTool(ctx context.Context, actor *auth.Operator, taskID, serial, name string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.AddTool(doc, taskID, serial, name)
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *Engine) RemoveTaskTool(ctx context.Context, actor *auth.Operator, taskID, serial string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.RemoveTool(doc, taskID, serial)
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *Engine) StartTask(ctx context.Context, actor *auth.Operator, taskID string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.Start(doc, taskID, actorName(actor), time.Now())
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventTaskStarted, Payload: TaskEvent{
		TaskID: out.ID, Name: out.Name, Status: out.Status, Operator: actorName(actor),
	}})
	return &out, nil
}

func (e *Engine) CompleteTask(ctx context.Context, actor *auth.Operator, taskID string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.Complete(doc, taskID, actorName(actor), time.Now())
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventTaskCompleted, Payload: TaskEvent{
		TaskID: out.ID, Name: out.Name, Status: out.Status, Operator: actorName(actor),
	}})
	return &out, nil
}

func (e *Engine) CancelTask(ctx context.Context, actor *auth.Operator, taskID string) (*document.Task, error) {
	var out document.Task
	err := e.mutate(ctx, func(doc *document.Document) error {
		task, err := taskflow.Cancel(doc, taskID, actorName(actor), time.Now())
		if err != nil {
			return err
		}
		out = *task
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventTaskCancelled, Payload: TaskEvent{
		TaskID: out.ID, Name: out.Name, Status: out.Status, Operator: actorName(actor),
	}})
	return &out, nil
}

func (e *Engine) DeleteTask(ctx context.Context, actor *auth.Operator, taskID string) error {
	err := e.mutate(ctx, func(doc *document.Document) error {
		return taskflow.Delete(doc, taskID)
	})
	if err != nil {
		return err
	}
	e.Events.Emit(Event{Type: EventTaskDeleted, Payload: TaskEvent{
		TaskID: taskID, Operator: actorName(actor),
	}})
	return nil
}

// --- Operations catalog ---

// SaveOperation creates or updates a catalog template. Admin only.
func (e *Engine) SaveOperation(ctx context.Context, actor *auth.Operator, op document.Operation) (*document.Operation, error) {
	if !actor.Admin {
		return nil, ErrPermissionDenied
	}
	if op.ID == "" {
		op.ID = "op-" + uuid.New().String()[:8]
	}
	err := e.mutate(ctx, func(doc *document.Document) error {
		if doc.Operations == nil {
			doc.Operations = map[string]document.Operation{}
		}
		doc.Operations[op.ID] = op
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Events.Emit(Event{Type: EventOperationSaved, Payload: OperationEvent{
		OperationID: op.ID, Code: op.Code, Action: "saved", Actor: actorName(actor),
	}})
	return &op, nil
}

// DeleteOperation removes a catalog template. Admin only. Tasks already
// spawned from it keep their copied tool lists.
func (e *Engine) DeleteOperation(ctx context.Context, actor *auth.Operator, operationID string) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}
	err := e.mutate(ctx, func(doc *document.Document) error {
		if _, ok := doc.Operations[operationID]; !ok {
			return taskflow.ErrNotFound
		}
		delete(doc.Operations, operationID)
		return nil
	})
	if err != nil {
		return err
	}
	e.Events.Emit(Event{Type: EventOperationDeleted, Payload: OperationEvent{
		OperationID: operationID, Action: "deleted", Actor: actorName(actor),
	}})
	return nil
}
