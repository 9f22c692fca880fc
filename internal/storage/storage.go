package storage

import "context"

// TranscriptArchive stores raw generation transcripts (prompts plus model
// output) for server-side diagnostics. Writes are best effort: the
// generation flow logs archive failures and moves on.
type TranscriptArchive interface {
	// Save writes one transcript document under the given object key.
	Save(ctx context.Context, objectKey string, body []byte) error
}
