// Package engine owns the live workshop document and serializes every
// mutation against it. All writes run clone-mutate-save-commit: the
// mutation is applied to a deep copy, the copy is saved through the sync
// gateway, and only a successful save replaces the in-memory document.
// A failed save leaves local state exactly as it was.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"toolcrib/auth"
	"toolcrib/config"
	"toolcrib/docstore"
	"toolcrib/document"
	"toolcrib/messaging"
	"toolcrib/store"
)

type LogFunc func(format string, args ...any)

type Config struct {
	AppConfig *config.Config
	Gateway   docstore.Gateway
	DB        *store.DB
	MsgClient *messaging.Client
	Directory *auth.Directory
	LogFunc   LogFunc
	Debug     bool
}

type Engine struct {
	cfg       *config.Config
	gateway   docstore.Gateway
	db        *store.DB
	msgClient *messaging.Client
	directory *auth.Directory
	Events    *EventBus
	logFn     LogFunc
	startedAt time.Time

	// mu is the in-flight guard: one mutation at a time, reads see either
	// the previous or the next committed document, never a partial one.
	mu  sync.Mutex
	doc *document.Document

	unsubscribe  docstore.Unsubscribe
	stopChan     chan struct{}
	msgConnected bool
}

func New(c Config) *Engine {
	logFn := c.LogFunc
	if logFn == nil {
		logFn = log.Printf
	}
	return &Engine{
		cfg:       c.AppConfig,
		gateway:   c.Gateway,
		db:        c.DB,
		msgClient: c.MsgClient,
		directory: c.Directory,
		Events:    NewEventBus(),
		logFn:     logFn,
		stopChan:  make(chan struct{}),
	}
}

// Start loads the remote document (seeding one if configured and none
// exists), wires event handlers and subscribes to remote changes.
func (e *Engine) Start(ctx context.Context) error {
	e.wireEventHandlers()

	doc, err := e.gateway.Load(ctx)
	if err != nil {
		return err
	}
	if doc == nil && e.cfg.Workshop.SeedOnEmpty {
		doc = document.Seed(time.Now())
		if err := e.gateway.Save(ctx, doc); err != nil {
			return err
		}
		e.logFn("engine: seeded default catalog (%d tools, %d materials)", len(doc.Tools), len(doc.Materials))
	}
	if doc == nil {
		doc = &document.Document{Operations: map[string]document.Operation{}}
	}

	e.mu.Lock()
	e.doc = doc
	e.mu.Unlock()
	e.Events.Emit(Event{Type: EventDocumentReplaced, Payload: DocumentReplacedEvent{Origin: "seed"}})

	unsub, err := e.gateway.Subscribe(ctx, e.onRemoteChange)
	if err != nil {
		return err
	}
	e.unsubscribe = unsub

	e.startedAt = time.Now()
	e.checkConnectionStatus()
	go e.connectionHealthLoop()

	e.logFn("engine: started (workshop %s)", e.cfg.Workshop.ID)
	return nil
}

func (e *Engine) Stop() {
	select {
	case e.stopChan <- struct{}{}:
	default:
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
	e.logFn("engine: stopped")
}

// Accessors
func (e *Engine) DB() *store.DB                { return e.db }
func (e *Engine) AppConfig() *config.Config    { return e.cfg }
func (e *Engine) MsgClient() *messaging.Client { return e.msgClient }
func (e *Engine) Directory() *auth.Directory   { return e.directory }
func (e *Engine) StartedAt() time.Time         { return e.startedAt }

// Snapshot returns a deep copy of the committed document. Callers may
// read and serialize it freely without further locking.
func (e *Engine) Snapshot() *document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil
	}
	return e.doc.Clone()
}

// mutate runs fn against a clone, saves the clone remotely, then commits
// it locally. History entries fn appended are re-emitted on the bus after
// commit so wiring (archive, broadcast) only sees saved state.
func (e *Engine) mutate(ctx context.Context, fn func(doc *document.Document) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return ErrNotReady
	}

	working := e.doc.Clone()
	before := len(working.History)
	if err := fn(working); err != nil {
		return err
	}
	working.LastUpdate = time.Now()

	if err := e.gateway.Save(ctx, working); err != nil {
		e.logFn("engine: save rejected, keeping previous document: %v", err)
		e.Events.Emit(Event{Type: EventSyncFailed, Payload: SyncFailedEvent{Detail: err.Error()}})
		return err
	}
	e.doc = working

	appended := len(working.History) - before
	for i := appended - 1; i >= 0; i-- {
		e.Events.Emit(Event{Type: EventHistoryAppended, Payload: HistoryAppendedEvent{Entry: working.History[i]}})
	}
	return nil
}

// onRemoteChange swaps in a document written by another client. Last
// writer wins at whole-document granularity; any local view is refreshed
// via the bus.
func (e *Engine) onRemoteChange(doc *document.Document, err error) {
	if err != nil {
		e.logFn("engine: remote change load: %v", err)
		e.Events.Emit(Event{Type: EventSyncFailed, Payload: SyncFailedEvent{Detail: err.Error()}})
		return
	}
	if doc == nil {
		return
	}
	e.mu.Lock()
	e.doc = doc
	e.mu.Unlock()
	e.logFn("engine: document replaced by remote writer")
	e.Events.Emit(Event{Type: EventDocumentReplaced, Payload: DocumentReplacedEvent{Origin: "remote"}})
}

func (e *Engine) checkConnectionStatus() {
	if e.msgClient == nil {
		return
	}
	if e.msgClient.IsConnected() {
		if !e.msgConnected {
			e.msgConnected = true
			e.Events.Emit(Event{Type: EventMessagingConnected, Payload: ConnectionEvent{Detail: "messaging connected"}})
		}
	} else {
		if e.msgConnected {
			e.msgConnected = false
			e.Events.Emit(Event{Type: EventMessagingDisconnected, Payload: ConnectionEvent{Detail: "messaging disconnected"}})
		}
	}
}

func (e *Engine) connectionHealthLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			e.checkConnectionStatus()
		}
	}
}
