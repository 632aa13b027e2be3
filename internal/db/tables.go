package db

// Tables holds the fully prefixed table names used by the schema. The prefix
// comes from configuration at startup, allowing timetrack tables to coexist
// with other tables in a shared database.
type Tables struct {
	Projects     string
	Categories   string
	ActiveTimers string
	TimeEntries  string
}

// NewTables builds the table name set for the given prefix.
func NewTables(prefix string) Tables {
	return Tables{
		Projects:     prefix + "projects",
		Categories:   prefix + "categories",
		ActiveTimers: prefix + "active_timers",
		TimeEntries:  prefix + "time_entries",
	}
}
