package constant

// Dashboard views. Order matters for nothing here; the interpreter keeps its
// own ordered keyword table.
const (
	ViewTabular  = "tabular"
	ViewTimeline = "timeline"
	ViewStatus   = "status"
	ViewTrend    = "trend"
)

// In-process event topics (watermill gochannel).
const (
	TopicFiltersChanged    = "FILTERS_CHANGED"
	TopicNavigationApplied = "NAVIGATION_APPLIED"
)

// Chat stream session states.
const (
	ChatStateIdle      = "idle"
	ChatStateSending   = "sending"
	ChatStateStreaming = "streaming"
)

// Chat message roles.
const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

// Stream protocol event types, as emitted by the analysis backend.
const (
	StreamEventStatus  = "status"
	StreamEventContent = "content"
	StreamEventDone    = "done"
	StreamEventError   = "error"
)

// Canonical promotion statuses.
const (
	StatusCompleted = "COMPLETED"
	StatusOngoing   = "ONGOING"
	StatusPlanned   = "PLANNED"
)

// RAG classifications.
const (
	RAGRed   = "RED"
	RAGAmber = "AMBER"
	RAGGreen = "GREEN"
)

// Timeline view caps at the first 20 promotions after sorting by start date.
const TimelineCap = 20

// Default group count for top-N rankings when the query carries no limit.
const DefaultTopN = 5
