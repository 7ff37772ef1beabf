package constants

import tea "github.com/charmbracelet/bubbletea"

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	Version            = "v0.3.0"

	// DefaultUserID identifies the local single-user profile. Rows still
	// carry a user_id column so a shared PostgreSQL store can hold data for
	// more than one user.
	DefaultUserID = "local"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the period label for monthly habits (YYYY-MM)
	MonthFormat = "2006-01"

	// Completion fetch paging. Statistics only need the trailing window of
	// history, so the refresh fetches completions from the last
	// CompletionWindowMonths months, CompletionPageSize rows at a time, and
	// gives up after CompletionPageCap pages to bound worst-case load.
	CompletionWindowMonths = 12
	CompletionPageSize     = 100
	CompletionPageCap      = 20

	// TopStreakCount is how many habits the ranked "top" view shows
	TopStreakCount = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"
	BackupTimeFormat = "20060102-150405"
)

// Session States
const (
	StateHabits SessionState = iota
	StateStreaks
	StateAddHabit
	StateConfirmDelete
	StateConfirmRestore
)
