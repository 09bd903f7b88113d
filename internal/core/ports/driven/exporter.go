package driven

import "context"

// IndexExporter writes index snapshot documents to a sandboxed location.
// Implementations must reject paths escaping the sandbox root.
type IndexExporter interface {
	// Write stores a snapshot document under the given file name.
	Write(ctx context.Context, name string, data []byte) error
}
