package postgres

import (
	"time"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// eventReceiver forwards dbr instrumentation to zap. Query timings are
// logged at debug level, failures at warn; callers still log their own errors.
type eventReceiver struct {
	logger *zap.Logger
}

var _ dbr.EventReceiver = (*eventReceiver)(nil)

func newEventReceiver(logger *zap.Logger) *eventReceiver {
	return &eventReceiver{logger: logger.Named("dbr")}
}

func (e *eventReceiver) Event(eventName string) {
	e.logger.Debug(eventName)
}

func (e *eventReceiver) EventKv(eventName string, kvs map[string]string) {
	e.logger.Debug(eventName, kvFields(kvs)...)
}

func (e *eventReceiver) EventErr(eventName string, err error) error {
	e.logger.Warn(eventName, zap.Error(err))
	return err
}

func (e *eventReceiver) EventErrKv(eventName string, err error, kvs map[string]string) error {
	e.logger.Warn(eventName, append(kvFields(kvs), zap.Error(err))...)
	return err
}

func (e *eventReceiver) Timing(eventName string, nanoseconds int64) {
	e.logger.Debug(eventName, zap.Duration("duration", time.Duration(nanoseconds)))
}

func (e *eventReceiver) TimingKv(eventName string, nanoseconds int64, kvs map[string]string) {
	e.logger.Debug(eventName, append(kvFields(kvs), zap.Duration("duration", time.Duration(nanoseconds)))...)
}

func kvFields(kvs map[string]string) []zap.Field {
	fields := make([]zap.Field, 0, len(kvs)+1)
	for k, v := range kvs {
		fields = append(fields, zap.String(k, v))
	}
	return fields
}
