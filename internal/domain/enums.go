package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectInactive  ProjectStatus = "inactive"
	ProjectCompleted ProjectStatus = "completed"
)

type TimerStatus string

const (
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
)

type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntryCompleted EntryStatus = "completed"
	EntryInvoiced  EntryStatus = "invoiced"
)

// DefaultProjectColor is the display color assigned to projects created
// without an explicit color.
const DefaultProjectColor = "#3B82F6"
