package engine

func (e *Engine) wireEventHandlers() {
	// Every committed history entry goes to the SQL archive and out on
	// the broadcast topic. Both are best-effort: the document already
	// holds the truth.
	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(HistoryAppendedEvent)
		if e.db != nil {
			if err := e.db.AppendHistory(e.cfg.Workshop.ID, &ev.Entry); err != nil {
				e.logFn("engine: archive history %s: %v", ev.Entry.ID, err)
			}
		}
		e.publish("history_appended", ev.Entry)
	}, EventHistoryAppended)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(ToolEvent)
		e.logFn("engine: tool %s taken by %s", ev.Serial, ev.Operator)
		e.publish("tool_taken", ev)
	}, EventToolTaken)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(ToolEvent)
		e.logFn("engine: tool %s returned by %s", ev.Serial, ev.Operator)
		e.publish("tool_returned", ev)
	}, EventToolReturned)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(MaterialEvent)
		e.publish("material_taken", ev)
	}, EventMaterialTaken)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(MaterialEvent)
		e.publish("material_returned", ev)
	}, EventMaterialReturned)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(MaintenanceEvent)
		e.logFn("engine: tool %s maintenance=%v by %s", ev.Serial, ev.On, ev.Actor)
		e.publish("maintenance_changed", ev)
	}, EventMaintenanceChanged)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(MaterialEvent)
		e.logFn("engine: material %s quantity adjusted to %d by %s", ev.Code, ev.Quantity, ev.Operator)
		e.publish("quantity_adjusted", ev)
	}, EventQuantityAdjusted)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(QueueEvent)
		e.logFn("engine: %s queued for tool %d (position %d)", ev.Operator, ev.ToolID, ev.Position)
		e.publish("queue_joined", ev)
	}, EventQueueJoined)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(QueueEvent)
		e.publish("queue_left", ev)
	}, EventQueueLeft)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(TaskEvent)
		e.logFn("engine: task %s (%s) -> %s", ev.TaskID, ev.Name, ev.Status)
		e.publish("task_changed", ev)
	}, EventTaskCreated, EventTaskStarted, EventTaskCompleted, EventTaskCancelled, EventTaskDeleted)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(OperationEvent)
		e.logFn("engine: operation %s %s by %s", ev.OperationID, ev.Action, ev.Actor)
		e.publish("operation_changed", ev)
	}, EventOperationSaved, EventOperationDeleted)

	e.Events.SubscribeTypes(func(evt Event) {
		ev := evt.Payload.(SyncFailedEvent)
		e.logFn("engine: sync failure: %s", ev.Detail)
	}, EventSyncFailed)
}

func (e *Engine) publish(eventType string, payload any) {
	if e.msgClient == nil {
		return
	}
	if err := e.msgClient.PublishEvent(eventType, payload); err != nil {
		e.logFn("engine: publish %s: %v", eventType, err)
	}
}
