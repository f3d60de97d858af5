package ports

// ProgressSink receives coarse progress notifications from a running
// estimation. Observability only: implementations must not influence the
// computed result.
type ProgressSink interface {
	Progress(endpoint string, completed, total int)
}
