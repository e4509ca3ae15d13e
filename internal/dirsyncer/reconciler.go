package dirsyncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"dmirror/internal/model"
	"dmirror/pkg/helpers/iout"
	"dmirror/pkg/helpers/ut"

	"github.com/spf13/afero"
)

//ErrNestedRoots is returned when one root lies inside the other: mirroring would then write into the source.
var ErrNestedRoots = errors.New("source and replica directories cannot be nested")

//Reconciler converges a replica tree to a source tree, one full pass at a time.
//It keeps no state between passes except the pass counter, and it never writes to the source tree.
//It holds no locks either: passes against the same replica must not overlap.
type Reconciler struct {
	fs     afero.Fs
	sink   ActionSink
	passes ut.Sequence
}

//NewReconciler returns a Reconciler working on fsys. Every action is reported to sink (which may be nil)
//as soon as it's performed.
func NewReconciler(fsys afero.Fs, sink ActionSink) *Reconciler {
	return &Reconciler{fs: fsys, sink: sink}
}

//Reconcile runs one pass: phase A propagates source to replica top-down, then phase B prunes the replica bottom-up.
//
//Nested roots are refused with ErrNestedRoots.
//A missing root is reported as *model.NotFoundError before anything is touched.
//Failures of single entries don't stop the pass, they are reported as model.OperationFailed actions.
//An error is returned only when a root can't be listed or ctx is done; the partial result is returned with it.
func (r *Reconciler) Reconcile(ctx context.Context, srcRoot, replicaRoot string) (*model.Result, error) {
	if iout.IsWithin(srcRoot, replicaRoot) || iout.IsWithin(replicaRoot, srcRoot) {
		return nil, fmt.Errorf("%w: %q, %q", ErrNestedRoots, srcRoot, replicaRoot)
	}
	if err := r.checkRoot(model.SourceSide, srcRoot); err != nil {
		return nil, err
	}
	if err := r.checkRoot(model.ReplicaSide, replicaRoot); err != nil {
		return nil, err
	}

	res := model.NewResult(r.passes.Next())
	defer res.Finish()

	scanner := newDirScanner(ctx, r.fs, srcRoot, replicaRoot, newExecutor(ctx, r.fs, res, r.sink))
	if err := scanner.propagate(""); err != nil {
		return res, fmt.Errorf("cannot propagate source to replica: %w", err)
	}
	if err := scanner.prune(""); err != nil {
		return res, fmt.Errorf("cannot prune replica: %w", err)
	}
	return res, nil
}

func (r *Reconciler) checkRoot(side model.Side, root string) error {
	info, err := r.fs.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &model.NotFoundError{Side: side, Path: root, Err: err}
		}
		return fmt.Errorf("cannot stat %s directory %q: %w", side, root, err)
	}
	if !info.IsDir() {
		return &model.NotFoundError{Side: side, Path: root, Err: fmt.Errorf("%q is not a directory", root)}
	}
	return nil
}
