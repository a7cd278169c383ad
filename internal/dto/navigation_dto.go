package dto

// NavigationInstruction is the output of free-text interpretation: which view
// to show, under which filters, optionally sorted and capped. Produced only
// by the query interpreter, consumed only by the navigation service.
type NavigationInstruction struct {
	TargetView string     `json:"targetView"`
	Filters    FilterSpec `json:"filters"`
	SortOrder  string     `json:"sortOrder,omitempty"` // "asc" | "desc"
	Limit      int        `json:"limit,omitempty"`     // 0 = unset
}

// InterpretRequest carries the free-text query.
type InterpretRequest struct {
	Text string `json:"text" validate:"required"`
}

// InterpretResponse reports what the interpreter decided. Instruction is nil
// when no dashboard view was recognized in the text.
type InterpretResponse struct {
	Matched     bool                   `json:"matched"`
	Instruction *NavigationInstruction `json:"instruction,omitempty"`
	ActiveView  string                 `json:"activeView"`
}
