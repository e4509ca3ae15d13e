package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dmirror/internal/dirsyncer"
	"dmirror/internal/log"
	"dmirror/internal/model"
	"dmirror/internal/settings"
	"dmirror/pkg/helpers/run"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//usageError marks errors caused by a wrong command line; the usage is printed for them.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func newRootCmd() *cobra.Command {
	flags := settings.DefaultFlags()

	cmd := &cobra.Command{
		Use:   "dmirror <source> <replica> <interval-seconds> <log-file>",
		Short: "Keep a replica directory an exact copy of a source directory",
		Long: "dmirror periodically makes the replica directory identical to the source directory: " +
			"missing and changed files are copied, files and directories absent from the source are removed. " +
			"Every change is logged to the console and appended to the log file.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != settings.ArgsCount {
				return &usageError{err: settings.ErrWrongArgsCount}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stg, err := settings.New(args, flags)
			if err != nil {
				return &usageError{err: err}
			}
			return mirror(cmd.Context(), *stg, cmd.OutOrStdout())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.Flags().StringVar(&flags.LogLevel, "loglvl", flags.LogLevel,
		fmt.Sprintf("logging level, one of: %s, %s, %s, %s", log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel))
	cmd.Flags().BoolVar(&flags.Once, "once", flags.Once,
		"if set, the directories are synchronized only once, otherwise until interruption")
	return cmd
}

func mirror(ctx context.Context, stg settings.Settings, console io.Writer) error {
	logger, closeLog, err := log.New(stg.LogLevel, stg.LogFile, console)
	if err != nil {
		return err
	}
	defer closeLog()
	defer func() { _ = logger.Sync() }()

	if err = stg.Validate(); err != nil {
		logger.Error("cannot start sync", log.Cause(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var totals runTotals
	sink := dirsyncer.MultiSink(dirsyncer.NewLogSink(logger), dirsyncer.ActionSinkFunc(totals.add))
	reconciler := dirsyncer.NewReconciler(afero.NewOsFs(), sink)
	syncer := dirsyncer.New(logger, stg, reconciler, clockwork.NewRealClock())
	if err = run.WithError(func() error { return syncer.Start(ctx) }); err != nil {
		return err
	}
	logger.Info("dmirror stopped", log.Int("changes", totals.changes), log.Int("failures", totals.failures))
	return nil
}

//runTotals counts the actions of all the passes of one run.
type runTotals struct {
	changes  int
	failures int
}

func (t *runTotals) add(action model.Action) {
	if action.Kind.IsFailure() {
		t.failures++
		return
	}
	t.changes++
}

//execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		var uErr *usageError
		if errors.As(err, &uErr) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}
