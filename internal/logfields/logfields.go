package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyRepo     = "repo"
	KeyPath     = "path"
	KeyFile     = "file"
	KeySection  = "section"
	KeyCategory = "category"
	KeyRule     = "rule"
	KeyCount    = "count"
	KeyStage    = "stage"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Repo(r string) slog.Attr      { return slog.String(KeyRepo, r) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Section(s string) slog.Attr   { return slog.String(KeySection, s) }
func Category(c string) slog.Attr  { return slog.String(KeyCategory, c) }
func Rule(id string) slog.Attr     { return slog.String(KeyRule, id) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
