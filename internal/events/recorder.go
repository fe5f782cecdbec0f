package events

import (
	"log"

	"github.com/google/uuid"
)

// Error kinds attached to swallowed-error events.
const (
	KindCascade     = "cascade"
	KindTranslation = "translation"
	KindCache       = "cache"
	KindEnqueue     = "enqueue"
)

// Recorder receives errors that are deliberately swallowed (cascade,
// translation, cache) so they stay observable without reaching any caller.
type Recorder interface {
	SwallowedError(entityType string, entityID uuid.UUID, errKind string, err error)
}

type logRecorder struct{}

// NewLogRecorder returns a Recorder that writes one structured log line per event.
func NewLogRecorder() Recorder {
	return logRecorder{}
}

func (logRecorder) SwallowedError(entityType string, entityID uuid.UUID, errKind string, err error) {
	log.Printf("swallowed error entity_type=%s entity_id=%s kind=%s err=%v", entityType, entityID, errKind, err)
}
