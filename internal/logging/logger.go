package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide JSON logger on stdout. The Postgres
// batch handler is attached later via MultiHandler, once the database
// connection exists; boot-time records only reach stdout.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
