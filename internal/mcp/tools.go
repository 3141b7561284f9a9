package mcp

// Timer actions accepted by timer_control.
var timerActions = []string{"start", "pause", "reset", "skip"}

// ToolDefinitions returns the MCP tool definitions for the study server.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name: "study_log_minutes",
			Description: "Log study minutes against today. " +
				"Zero or negative values are ignored and nothing is stored.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"minutes": {Type: "number", Description: "Minutes studied"},
				},
				Required: []string{"minutes"},
			},
		},
		{
			Name:        "study_quick_add",
			Description: "Log the configured quick-add increment (30 minutes unless changed in settings).",
			InputSchema: InputSchema{Type: "object"},
		},
		{
			Name: "study_weekly",
			Description: "Weekly summary: minutes per day Monday to Sunday, weekly total, " +
				"daily average and the largest day.",
			InputSchema: InputSchema{Type: "object"},
		},
		{
			Name:        "deadline_add",
			Description: "Add a deadline. Blank title becomes Untitled and blank due date becomes TBD.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"title":   {Type: "string", Description: "What is due"},
					"dueText": {Type: "string", Description: "Free-form due date, e.g. 2025-05-01 or Friday"},
				},
			},
		},
		{
			Name:        "deadline_list",
			Description: "List deadlines, most recently added first.",
			InputSchema: InputSchema{Type: "object"},
		},
		{
			Name:        "deadline_delete",
			Description: "Remove a deadline by id.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"id": {Type: "number", Description: "Deadline id from deadline_list"},
				},
				Required: []string{"id"},
			},
		},
		{
			Name:        "timer_status",
			Description: "Current focus timer phase, remaining time and whether it is running.",
			InputSchema: InputSchema{Type: "object"},
		},
		{
			Name:        "timer_control",
			Description: "Start, pause, reset or skip the focus timer.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"action": {Type: "string", Description: "Timer intent", Enum: timerActions},
				},
				Required: []string{"action"},
			},
		},
	}
}
