package diag

import (
	logging "github.com/ipfs/go-log/v2"
)

// LogSubsystem is the go-log subsystem name used for reload events.
const LogSubsystem = "astrotime/providers"

// EventLogger reports reloads to a go-log logger.
type EventLogger struct {
	log *logging.ZapEventLogger
}

// NewLogger returns an EventLogger on the LogSubsystem logger.
func NewLogger() *EventLogger {
	return &EventLogger{log: logging.Logger(LogSubsystem)}
}

func (l *EventLogger) LeapSecondReload(source string, err error) {
	l.reload("leap seconds", source, err)
}

func (l *EventLogger) EopReload(source string, err error) {
	l.reload("eop", source, err)
}

func (l *EventLogger) reload(kind, source string, err error) {
	if err != nil {
		l.log.Errorw("reload failed", "kind", kind, "source", source, "error", err)
		return
	}
	l.log.Infow("reloaded", "kind", kind, "source", source)
}
