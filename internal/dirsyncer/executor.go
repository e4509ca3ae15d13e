package dirsyncer

import (
	"context"
	"io/fs"

	"dmirror/internal/model"
	"dmirror/pkg/helpers/iout"

	"github.com/spf13/afero"
)

//executor performs the replica mutations of one pass and reports each of them,
//to the pass result and to the sink, in the order they happen.
type executor struct {
	ctx    context.Context
	fs     afero.Fs
	result *model.Result
	sink   ActionSink
}

func newExecutor(ctx context.Context, fsys afero.Fs, res *model.Result, sink ActionSink) *executor {
	return &executor{ctx: ctx, fs: fsys, result: res, sink: sink}
}

func (e *executor) record(action model.Action) {
	e.result.Add(action)
	if e.sink != nil {
		e.sink.Record(action)
	}
}

//failOrAbort records a failed entry and lets the pass go on (returning nil),
//unless the failure was caused by the pass being canceled: then the context error is returned.
func (e *executor) failOrAbort(op model.FileOp, rel string, err error) error {
	if ctxErr := e.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	e.record(model.NewFailure(&model.FileOperationError{Op: op, Path: toSlash(rel), Err: err}))
	return nil
}

func (e *executor) copyFile(kind model.ActionKind, entry *model.EntryInfo, srcInfo fs.FileInfo) error {
	n, err := iout.CopyFile(e.ctx, e.fs, entry.SrcPathInfo.FullPath, entry.ReplicaPathInfo.FullPath, srcInfo)
	if err != nil {
		return e.failOrAbort(model.OpCopy, entry.Path, err)
	}
	action := model.NewAction(kind, toSlash(entry.Path))
	action.Size = n
	e.record(action)
	return nil
}

func (e *executor) removeFile(entry *model.EntryInfo) error {
	if err := iout.RemoveFile(e.fs, entry.ReplicaPathInfo.FullPath); err != nil {
		return e.failOrAbort(model.OpRemoveFile, entry.Path, err)
	}
	e.record(model.NewAction(model.FileDeleted, toSlash(entry.Path)))
	return nil
}

func (e *executor) removeTree(entry *model.EntryInfo) error {
	if err := iout.RemoveTree(e.fs, entry.ReplicaPathInfo.FullPath); err != nil {
		return e.failOrAbort(model.OpRemoveDir, entry.Path, err)
	}
	e.record(model.NewAction(model.DirectoryDeleted, toSlash(entry.Path)))
	return nil
}
