package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyOpID       = "op_id"
	KeyOperation  = "operation"
	KeySite       = "site"
	KeyPage       = "page"
	KeySlug       = "slug"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyFiles      = "files"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func OpID(id string) slog.Attr         { return slog.String(KeyOpID, id) }
func Operation(op string) slog.Attr    { return slog.String(KeyOperation, op) }
func Site(name string) slog.Attr       { return slog.String(KeySite, name) }
func Page(title string) slog.Attr      { return slog.String(KeyPage, title) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Files(n int) slog.Attr            { return slog.Int(KeyFiles, n) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func DurationMS(ms int64) slog.Attr    { return slog.Int64(KeyDurationMS, ms) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
