package document

import "time"

// Seed returns the default document used when the sync gateway holds
// nothing yet: the fixed tool crib catalog, stations, two sample tasks and
// the operation templates.
func Seed(now time.Time) *Document {
	return &Document{
		Tools:      DefaultTools(),
		Materials:  DefaultMaterials(),
		Stations:   DefaultStations(),
		WaitQueue:  []Reservation{},
		Tasks:      DefaultTasks(now),
		Operations: DefaultOperations(),
		History:    []HistoryEntry{},
		LastUpdate: now,
	}
}

func DefaultTools() []Tool {
	return []Tool{
		{ID: 1, Name: "Torque Wrench M12 56Nm", Serial: "TW-001", Group: "torque", IsTorque: true, Status: StatusAvailable, Location: "shelf-1"},
		{ID: 2, Name: "Torque Wrench M10 32Nm", Serial: "TW-002", Group: "torque", IsTorque: true, Status: StatusAvailable, Location: "shelf-1"},
		{ID: 3, Name: "Torque Wrench M8 16.2Nm", Serial: "TW-003", Group: "torque", IsTorque: true, Status: StatusAvailable, Location: "shelf-2"},
		{ID: 4, Name: "Torque Wrench M6 6.8Nm", Serial: "TW-004", Group: "torque", IsTorque: true, Status: StatusAvailable, Location: "shelf-2"},
		{ID: 5, Name: "TORX T30 Screwdriver", Serial: "SD-001", Group: "screwdrivers", Status: StatusAvailable, Location: "shelf-3"},
		{ID: 6, Name: "Wrench 22", Serial: "WR-022", Group: "wrenches", Status: StatusAvailable, Location: "shelf-3"},
		{ID: 7, Name: "Wrench 18", Serial: "WR-018", Group: "wrenches", Status: StatusAvailable, Location: "shelf-4"},
		{ID: 8, Name: "Wrench 13", Serial: "WR-013", Group: "wrenches", Status: StatusAvailable, Location: "shelf-4"},
	}
}

func DefaultMaterials() []Material {
	return []Material{
		{ID: 1, Name: "Molykote", Code: "MOLY-001", Status: StatusAvailable, Location: "rack-a1", Quantity: 4, MinQuantity: 2},
		{ID: 2, Name: "Loctite 270", Code: "LOC-270", Status: StatusAvailable, Location: "rack-b2", Quantity: 6, MinQuantity: 2},
		{ID: 3, Name: "Molykote", Code: "MOLY-002", Status: StatusAvailable, Location: "rack-a1", Quantity: 0, MinQuantity: 2},
		{ID: 4, Name: "Loctite 271", Code: "LOC-271", Status: StatusAvailable, Location: "rack-b2", Quantity: 3, MinQuantity: 2},
	}
}

func DefaultStations() []Station {
	return []Station{
		{ID: "station-0", Name: "Station 0"},
		{ID: "station-1", Name: "Station 1"},
		{ID: "station-2", Name: "Station 2"},
		{ID: "station-3", Name: "Station 3"},
		{ID: "station-4", Name: "Station 4"},
		{ID: "station-5", Name: "Station 5"},
	}
}

func DefaultTasks(now time.Time) []Task {
	return []Task{
		{
			ID:              "task-seed-150",
			Name:            "Disconnector Overhaul",
			OperationNumber: "150",
			Description:     "Maintenance and calibration of the main disconnector",
			Tools: []ToolRef{
				{Serial: "TW-001", Name: "Torque Wrench M12 56Nm"},
				{Serial: "SD-001", Name: "TORX T30 Screwdriver"},
			},
			Status:    TaskPending,
			CreatedAt: now,
		},
		{
			ID:              "task-seed-200",
			Name:            "Operation 200 - Transformer",
			OperationNumber: "200",
			Description:     "Inspection and maintenance of the power transformer",
			Tools: []ToolRef{
				{Serial: "WR-022", Name: "Wrench 22"},
				{Serial: "WR-018", Name: "Wrench 18"},
			},
			Status:    TaskPending,
			CreatedAt: now,
		},
	}
}

func DefaultOperations() map[string]Operation {
	return map[string]Operation{
		"disconnector": {
			ID:          "disconnector",
			Code:        "150",
			Name:        "Disconnector Operation",
			Description: "Maintenance and calibration of the main disconnector",
			Documents: []OperationDocument{
				{Name: "Full Procedure Manual", Type: "pdf", URL: "#"},
				{Name: "Electrical Diagrams", Type: "pdf", URL: "#"},
				{Name: "Required Tool List", Type: "pdf", URL: "#"},
			},
			Steps: []string{
				"De-energize the equipment and verify absence of voltage",
				"Inspect contacts and mechanisms",
				"Calibrate operating parameters",
				"Verify protection functions",
				"Record results on form QA-150",
			},
			RequiredTools: []ToolRef{
				{Serial: "TW-001", Name: "Torque Wrench M12 56Nm"},
				{Serial: "SD-001", Name: "TORX T30 Screwdriver"},
			},
		},
		"qb0300": {
			ID:          "qb0300",
			Code:        "QB0300",
			Name:        "QB0300 Operation",
			Description: "Assembly and verification of component QB0300",
			Documents: []OperationDocument{
				{Name: "Step-by-Step Assembly Guide", Type: "pdf", URL: "#"},
				{Name: "Final Checklist", Type: "pdf", URL: "#"},
				{Name: "Technical Specifications", Type: "pdf", URL: "#"},
			},
			Steps: []string{
				"Prepare components per the bill of materials",
				"Perform sequential assembly, stages 1-5",
				"Verify tolerances and adjustments",
				"Run the functional test",
				"Complete the quality documentation",
			},
		},
	}
}
