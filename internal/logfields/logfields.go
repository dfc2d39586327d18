package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyUnit       = "unit"
	KeyJobID      = "job_id"
	KeyTrigger    = "trigger"
	KeyJobStatus  = "job_status"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyRoot       = "root"
	KeyPath       = "path"
	KeyArtifact   = "artifact"
	KeyURL        = "url"
	KeyWorker     = "worker"
	KeySchedule   = "schedule_name"
	KeyAddr       = "addr"
	KeyDay        = "day"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Unit(name string) slog.Attr      { return slog.String(KeyUnit, name) }
func JobID(id string) slog.Attr       { return slog.String(KeyJobID, id) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func JobStatus(s string) slog.Attr    { return slog.String(KeyJobStatus, s) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Artifact(p string) slog.Attr     { return slog.String(KeyArtifact, p) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Worker(w string) slog.Attr       { return slog.String(KeyWorker, w) }
func ScheduleName(n string) slog.Attr { return slog.String(KeySchedule, n) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Day(n int) slog.Attr             { return slog.Int(KeyDay, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
