package registry

import (
	"time"

	"github.com/google/uuid"

	"toolcrib/document"
	"toolcrib/ledger"
)

// TakeTool marks a tool in-use by operator at station and prepends a
// "taken" history entry. Station is a station id; the history entry stores
// the resolved display name.
func TakeTool(doc *document.Document, id int64, operator, operationNumber, station string, now time.Time) (*document.Tool, error) {
	tool := doc.ToolByID(id)
	if tool == nil {
		return nil, ErrNotFound
	}
	if tool.Status != document.StatusAvailable {
		return nil, ErrNotAvailable
	}

	tool.Status = document.StatusInUse
	tool.Holder = operator
	tool.Station = station

	ledger.Record(doc, document.HistoryEntry{
		ID:              uuid.New().String(),
		Resource:        tool.Name,
		Kind:            document.KindTool,
		Serial:          tool.Serial,
		Action:          document.ActionTaken,
		Operator:        operator,
		OperationNumber: operationNumber,
		Station:         doc.StationName(station),
		Time:            now,
	})
	return tool, nil
}

// ReturnTool releases a tool back to its home location. The wait queue is
// untouched: the next reservation is advisory and its operator must take
// the tool explicitly.
func ReturnTool(doc *document.Document, id int64, operator, operationNumber string, now time.Time) (*document.Tool, error) {
	tool := doc.ToolByID(id)
	if tool == nil {
		return nil, ErrNotFound
	}
	if tool.Status != document.StatusInUse {
		return nil, ErrNotInUse
	}

	station := tool.Station
	tool.Status = document.StatusAvailable
	tool.Holder = ""
	tool.Station = ""

	ledger.Record(doc, document.HistoryEntry{
		ID:              uuid.New().String(),
		Resource:        tool.Name,
		Kind:            document.KindTool,
		Serial:          tool.Serial,
		Action:          document.ActionReturned,
		Operator:        operator,
		OperationNumber: operationNumber,
		Station:         doc.StationName(station),
		Time:            now,
	})
	return tool, nil
}

// TakeMaterial marks a material in-use. A material with zero quantity is
// effectively depleted no matter what status it carries.
func TakeMaterial(doc *document.Document, id int64, operator, operationNumber, station string, now time.Time) (*document.Material, error) {
	mat := doc.MaterialByID(id)
	if mat == nil {
		return nil, ErrNotFound
	}
	if mat.Quantity <= 0 {
		return nil, ErrDepleted
	}
	if mat.Status != document.StatusAvailable {
		return nil, ErrNotAvailable
	}

	mat.Status = document.StatusInUse
	mat.Holder = operator
	mat.Station = station

	ledger.Record(doc, document.HistoryEntry{
		ID:              uuid.New().String(),
		Resource:        mat.Name,
		Kind:            document.KindMaterial,
		Serial:          mat.Code,
		Action:          document.ActionTaken,
		Operator:        operator,
		OperationNumber: operationNumber,
		Station:         doc.StationName(station),
		Time:            now,
	})
	return mat, nil
}

// ReturnMaterial releases a material back to its home location.
func ReturnMaterial(doc *document.Document, id int64, operator, operationNumber string, now time.Time) (*document.Material, error) {
	mat := doc.MaterialByID(id)
	if mat == nil {
		return nil, ErrNotFound
	}
	if mat.Status != document.StatusInUse {
		return nil, ErrNotInUse
	}

	station := mat.Station
	mat.Status = document.StatusAvailable
	mat.Holder = ""
	mat.Station = ""

	ledger.Record(doc, document.HistoryEntry{
		ID:              uuid.New().String(),
		Resource:        mat.Name,
		Kind:            document.KindMaterial,
		Serial:          mat.Code,
		Action:          document.ActionReturned,
		Operator:        operator,
		OperationNumber: operationNumber,
		Station:         doc.StationName(station),
		Time:            now,
	})
	return mat, nil
}

// SetToolMaintenance moves a tool in or out of maintenance. Only an
// available tool can enter maintenance; leaving maintenance makes it
// available again.
func SetToolMaintenance(doc *document.Document, id int64, on bool) (*document.Tool, error) {
	tool := doc.ToolByID(id)
	if tool == nil {
		return nil, ErrNotFound
	}
	if on {
		if tool.Status != document.StatusAvailable {
			return nil, ErrNotAvailable
		}
		tool.Status = document.StatusMaintenance
		return tool, nil
	}
	if tool.Status != document.StatusMaintenance {
		return nil, ErrNotInUse
	}
	tool.Status = document.StatusAvailable
	return tool, nil
}

// AdjustMaterialQuantity sets the stock count for a material. Quantity
// reaching zero does not change the stored status; views and TakeMaterial
// treat zero quantity as depleted.
func AdjustMaterialQuantity(doc *document.Document, id int64, quantity int) (*document.Material, error) {
	if quantity < 0 {
		quantity = 0
	}
	mat := doc.MaterialByID(id)
	if mat == nil {
		return nil, ErrNotFound
	}
	mat.Quantity = quantity
	return mat, nil
}

// EffectiveMaterialStatus reports the status views should show: depleted
// wins over the stored status once quantity hits zero.
func EffectiveMaterialStatus(m *document.Material) string {
	if m.Quantity <= 0 && m.Status != document.StatusInUse {
		return document.StatusDepleted
	}
	return m.Status
}

// ToolsByStatus returns the tools currently in the given status.
func ToolsByStatus(doc *document.Document, status string) []document.Tool {
	var out []document.Tool
	for _, t := range doc.Tools {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// ToolsByGroup returns the tools sharing a group, with a count of how many
// are available.
func ToolsByGroup(doc *document.Document, group string) ([]document.Tool, int) {
	var out []document.Tool
	available := 0
	for _, t := range doc.Tools {
		if t.Group == group {
			out = append(out, t)
			if t.Status == document.StatusAvailable {
				available++
			}
		}
	}
	return out, available
}

// ToolsAtStation returns the in-use tools checked out to a station.
func ToolsAtStation(doc *document.Document, stationID string) []document.Tool {
	var out []document.Tool
	for _, t := range doc.Tools {
		if t.Status == document.StatusInUse && t.Station == stationID {
			out = append(out, t)
		}
	}
	return out
}
