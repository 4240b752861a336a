package record

import "time"

// Session is one shell process's logical history session.
type Session struct {
	ID       int64     `json:"id" yaml:"id"`
	PPID     int       `json:"ppid" yaml:"ppid"`
	BootTime time.Time `json:"boot_time" yaml:"boot_time"`
}

// BootEpoch is one allocation of a boot identifier.
type BootEpoch struct {
	ID        int64     `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// HistoryEntry is one completed command invocation.
type HistoryEntry struct {
	ID         int64     `json:"id" yaml:"id"`                 // Global, store-assigned
	SessionID  int64     `json:"session_id" yaml:"session_id"` // FK session_ids(id)
	HistoryID  int64     `json:"history_id" yaml:"history_id"` // Caller-supplied
	PPID       int       `json:"ppid" yaml:"ppid"`
	StatusCode int       `json:"status_code" yaml:"status_code"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	Username   string    `json:"username" yaml:"username"`
	Directory  string    `json:"directory" yaml:"directory"`
	Raw        string    `json:"raw" yaml:"raw"`
}
