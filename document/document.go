package document

import (
	"encoding/json"
	"time"
)

// Document is the whole workshop state: one blob, loaded and saved as a
// unit through the sync gateway. Mutations never touch a shared Document
// directly; the engine clones, mutates the clone, and swaps after a
// successful save.
type Document struct {
	Tools      []Tool               `json:"tools"`
	Materials  []Material           `json:"materials"`
	Stations   []Station            `json:"stations"`
	WaitQueue  []Reservation        `json:"wait_queue"`
	Tasks      []Task               `json:"tasks"`
	Operations map[string]Operation `json:"operations"`
	History    []HistoryEntry       `json:"history"`
	LastUpdate time.Time            `json:"last_update"`
}

func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

func Decode(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Clone returns a deep copy. Slices of value types copy cleanly; Task tool
// lists and operation fields need their own backing arrays.
func (d *Document) Clone() *Document {
	c := &Document{
		Tools:      append([]Tool(nil), d.Tools...),
		Materials:  append([]Material(nil), d.Materials...),
		Stations:   append([]Station(nil), d.Stations...),
		WaitQueue:  append([]Reservation(nil), d.WaitQueue...),
		History:    append([]HistoryEntry(nil), d.History...),
		LastUpdate: d.LastUpdate,
	}
	if d.Tasks != nil {
		c.Tasks = make([]Task, len(d.Tasks))
		for i, t := range d.Tasks {
			t.Tools = append([]ToolRef(nil), t.Tools...)
			c.Tasks[i] = t
		}
	}
	if d.Operations != nil {
		c.Operations = make(map[string]Operation, len(d.Operations))
		for k, op := range d.Operations {
			op.Documents = append([]OperationDocument(nil), op.Documents...)
			op.Steps = append([]string(nil), op.Steps...)
			op.RequiredTools = append([]ToolRef(nil), op.RequiredTools...)
			c.Operations[k] = op
		}
	}
	return c
}

// ToolByID returns a pointer into the document's tool slice, or nil.
func (d *Document) ToolByID(id int64) *Tool {
	for i := range d.Tools {
		if d.Tools[i].ID == id {
			return &d.Tools[i]
		}
	}
	return nil
}

// ToolBySerial returns a pointer into the document's tool slice, or nil.
func (d *Document) ToolBySerial(serial string) *Tool {
	if serial == "" {
		return nil
	}
	for i := range d.Tools {
		if d.Tools[i].Serial == serial {
			return &d.Tools[i]
		}
	}
	return nil
}

// MaterialByID returns a pointer into the document's material slice, or nil.
func (d *Document) MaterialByID(id int64) *Material {
	for i := range d.Materials {
		if d.Materials[i].ID == id {
			return &d.Materials[i]
		}
	}
	return nil
}

// TaskByID returns a pointer into the document's task slice, or nil.
func (d *Document) TaskByID(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// StationName resolves a station id to its display name. Task transitions
// store free-text labels in the station field; those pass through unchanged.
func (d *Document) StationName(id string) string {
	for _, s := range d.Stations {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
