package dirsyncer

import (
	"context"
	"errors"
	"fmt"

	"dmirror/internal/log"
	"dmirror/internal/model"
	"dmirror/internal/settings"
	"dmirror/pkg/helpers/run"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"
)

//PassRunner runs one complete reconciliation pass. *Reconciler is the implementation.
type PassRunner interface {
	Reconcile(ctx context.Context, srcRoot, replicaRoot string) (*model.Result, error)
}

type DirSyncer struct {
	log      log.Logger
	settings settings.Settings
	runner   PassRunner
	clock    clockwork.Clock
}

func New(logger log.Logger, stg settings.Settings, runner PassRunner, clock clockwork.Clock) *DirSyncer {
	return &DirSyncer{log: logger, settings: stg, runner: runner, clock: clock}
}

//Start runs a pass, waits for the interval, and repeats until ctx is done (or after the first pass if Once is set).
//The wait starts only when the previous pass has finished, so passes never overlap.
//Start returns only most critical errors that make further work impossible (a missing or nested root directory),
//any other pass failure is logged and the next pass is run as scheduled.
func (d *DirSyncer) Start(ctx context.Context) error {
	d.log.Info("sync started",
		log.String("source", d.settings.SrcDir),
		log.String("replica", d.settings.ReplicaDir),
		log.Duration("interval", d.settings.Interval))

	for {
		if err := d.syncOnce(ctx); err != nil {
			if isFatal(err) {
				d.log.Error("sync stopped", log.Cause(err))
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			d.log.Error("sync pass failed, it will be retried", log.Cause(err))
		}

		if d.settings.Once {
			return nil
		}
		d.log.Info(fmt.Sprintf("sync finished, next sync in %d seconds", int64(d.settings.Interval.Seconds())))

		select {
		case <-ctx.Done():
			return nil
		case <-d.clock.After(d.settings.Interval):
		}
	}
}

//isFatal tells the errors no later pass can recover from.
func isFatal(err error) bool {
	var nfErr *model.NotFoundError
	return errors.As(err, &nfErr) || errors.Is(err, ErrNestedRoots)
}

func (d *DirSyncer) syncOnce(ctx context.Context) error {
	d.log.Debug("sync pass started")
	var res *model.Result
	err := run.WithError(func() (err error) {
		res, err = d.runner.Reconcile(ctx, d.settings.SrcDir, d.settings.ReplicaDir)
		return err
	})
	if res != nil {
		d.logSummary(res)
	}
	return err
}

func (d *DirSyncer) logSummary(res *model.Result) {
	fields := []log.Field{
		log.Uint64("pass", res.PassID),
		log.Int("dirsCreated", res.Count(model.DirectoryCreated)),
		log.Int("filesCopied", res.Count(model.FileCopied)),
		log.Int("filesUpdated", res.Count(model.FileUpdated)),
		log.Int("filesDeleted", res.Count(model.FileDeleted)),
		log.Int("dirsDeleted", res.Count(model.DirectoryDeleted)),
		log.String("transferred", humanize.Bytes(uint64(res.BytesCopied()))),
		log.Duration("took", res.Duration()),
	}
	if failures := res.Failures(); len(failures) > 0 {
		d.log.Warn("sync pass completed with failures", append(fields, log.Int("failed", len(failures)))...)
		return
	}
	d.log.Info("sync pass completed", fields...)
}
