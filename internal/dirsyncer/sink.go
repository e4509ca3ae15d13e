package dirsyncer

import (
	"dmirror/internal/log"
	"dmirror/internal/model"
)

//go:generate mockgen -source=sink.go -destination=../../generated/mocks/mock_actionsink.go -package=mocks

//ActionSink receives action records while a pass runs. Record is called synchronously from the pass.
type ActionSink interface {
	Record(action model.Action)
}

type ActionSinkFunc func(action model.Action)

func (f ActionSinkFunc) Record(action model.Action) {
	f(action)
}

type multiSink []ActionSink

//MultiSink passes every action to each of the sinks, in the given order. Nil sinks are skipped.
func MultiSink(sinks ...ActionSink) ActionSink {
	ms := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) Record(action model.Action) {
	for _, s := range ms {
		s.Record(action)
	}
}

var actionMessages = map[model.ActionKind]string{
	model.DirectoryCreated: "directory created",
	model.FileCopied:       "file copied",
	model.FileUpdated:      "file updated",
	model.FileDeleted:      "file deleted",
	model.DirectoryDeleted: "directory deleted",
}

type logSink struct {
	log log.Logger
}

//NewLogSink writes one structured record per action: changes at info level, failures at error level.
func NewLogSink(logger log.Logger) ActionSink {
	return &logSink{log: logger}
}

func (s *logSink) Record(action model.Action) {
	fields := []log.Field{log.String("kind", string(action.Kind)), log.String("path", action.Path)}

	if action.Kind.IsFailure() {
		if action.Err != nil {
			fields = append(fields, log.String("op", string(action.Err.Op)), log.Cause(action.Err.Err))
		}
		s.log.Error("sync operation failed", fields...)
		return
	}

	if action.Kind == model.FileCopied || action.Kind == model.FileUpdated {
		fields = append(fields, log.Int64("size", action.Size))
	}
	msg, ok := actionMessages[action.Kind]
	if !ok {
		msg = string(action.Kind)
	}
	s.log.Info(msg, fields...)
}
