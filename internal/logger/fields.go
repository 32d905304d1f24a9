package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBatchID identifies one ranking invocation.
	FieldBatchID = "batch_id"
	// FieldMode is "simple" or "reference".
	FieldMode = "mode"
	// FieldFilename is the source filename of a document.
	FieldFilename = "filename"
	// FieldRequestID identifies one HTTP request.
	FieldRequestID = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// BatchFields returns the fields that tag every log entry of one batch.
func BatchFields(batchID, mode string) []zap.Field {
	return StringFields(
		StringField{Key: FieldBatchID, Value: batchID},
		StringField{Key: FieldMode, Value: mode},
	)
}

// WithBatch attaches the batch fields to logger.
func WithBatch(logger *zap.Logger, batchID, mode string) *zap.Logger {
	return WithFields(logger, BatchFields(batchID, mode)...)
}
