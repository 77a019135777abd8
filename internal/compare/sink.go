package compare

// DiagnosticSink receives a warning whenever the comparator degrades a
// structural oddity to "no difference recorded" instead of failing
// (spec §7, comparator errors). It mirrors the teacher's Warning/
// WarningLevel value objects in internal/apply, but as an injected
// interface rather than an accumulated slice, since the comparator
// itself never returns an error for the caller to inspect afterward.
type DiagnosticSink interface {
	Warnf(format string, args ...any)
}

// SinkFunc adapts a plain function to a DiagnosticSink, the same shape
// as http.HandlerFunc.
type SinkFunc func(format string, args ...any)

func (f SinkFunc) Warnf(format string, args ...any) { f(format, args...) }

// NopSink discards every warning. The zero value is ready to use.
type NopSink struct{}

func (NopSink) Warnf(string, ...any) {}

func warnf(sink DiagnosticSink, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Warnf(format, args...)
}
