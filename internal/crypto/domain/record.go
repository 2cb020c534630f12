package domain

import "context"

type recordIDKey struct{}

// WithRecordID attaches the identifier of the record whose fields are being
// processed. It is only used to give decryption failures investigative context.
func WithRecordID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, recordIDKey{}, id)
}

// RecordID returns the record identifier stored by WithRecordID.
func RecordID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(recordIDKey{}).(string)
	return id, ok
}
