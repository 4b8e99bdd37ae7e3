package config

import "os"

// Cron schedules, overridable per deployment. The jobs themselves register
// through cron.Register (see cron/jobs).

// SyncSchedule controls how often the Busy extraction runs.
func SyncSchedule() string {
	if s := os.Getenv("SYNC_SCHEDULE"); s != "" {
		return s
	}
	return "0 * * * *"
}

// PublishSchedule controls how often the JSON snapshot is pushed.
func PublishSchedule() string {
	if s := os.Getenv("PUBLISH_SCHEDULE"); s != "" {
		return s
	}
	return "30 * * * *"
}
