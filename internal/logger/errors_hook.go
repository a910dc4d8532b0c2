package logger

import (
	"github.com/maxaizer/job-tracker/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const unknownErrorType = "unknown"

var knownErrorTypes = map[string]bool{
	ErrorTypeStorage:  true,
	ErrorTypeApi:      true,
	ErrorTypeDb:       true,
	ErrorTypeHttp:     true,
	ErrorTypeSession:  true,
	ErrorTypeTerminal: true,
}

// errorsHook counts errors by category. Warnings are counted only when they carry
// a known category, e.g. a corrupt session that was reset to anonymous.
type errorsHook struct{}

func (h *errorsHook) Fire(entry *log.Entry) error {
	errorType, known := classify(entry)
	if entry.Level == log.WarnLevel && !known {
		return nil
	}

	metrics.ErrorsCounter.WithLabelValues(errorType, entry.Level.String()).Inc()
	return nil
}

func (h *errorsHook) Levels() []log.Level {
	return []log.Level{
		log.WarnLevel,
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

// classify keeps the label set bounded: anything outside the known categories is unknown.
func classify(entry *log.Entry) (string, bool) {
	errorType, _ := entry.Data[ErrorTypeField].(string)
	if !knownErrorTypes[errorType] {
		return unknownErrorType, false
	}
	return errorType, true
}

func addErrorsHook() {
	log.AddHook(&errorsHook{})
	log.Debug("Error counting enabled")
}
