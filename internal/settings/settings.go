package settings

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dmirror/internal/log"
	"dmirror/internal/model"
	"dmirror/pkg/helpers/iout"

	"github.com/mitchellh/go-homedir"
)

const (
	ArgsCount = 4

	maxIntervalSeconds = math.MaxInt64 / int64(time.Second)
)

var ErrWrongArgsCount = fmt.Errorf("exactly %d arguments must present: <source> <replica> <interval-seconds> <log-file>", ArgsCount)

type Settings struct {
	SrcDir     string
	ReplicaDir string
	Interval   time.Duration
	LogFile    string
	LogLevel   log.Level
	Once       bool
}

//Flags are the optional switches; they are bound to the command line flags by the CLI.
type Flags struct {
	LogLevel string
	Once     bool
}

func DefaultFlags() Flags {
	return Flags{LogLevel: log.InfoLevel}
}

//New parses the positional arguments (source, replica, interval in whole seconds, log file) and the flags.
//It doesn't touch the filesystem; see Validate for that.
func New(args []string, flags Flags) (*Settings, error) {
	if len(args) != ArgsCount {
		return nil, ErrWrongArgsCount
	}

	stg := &Settings{Once: flags.Once}
	var err error
	if stg.SrcDir, err = absPath(args[0]); err != nil {
		return nil, err
	}
	if stg.ReplicaDir, err = absPath(args[1]); err != nil {
		return nil, err
	}
	if stg.SrcDir == stg.ReplicaDir {
		return nil, errors.New("the directories for synchronization cannot be the same")
	}
	if iout.IsWithin(stg.SrcDir, stg.ReplicaDir) || iout.IsWithin(stg.ReplicaDir, stg.SrcDir) {
		return nil, fmt.Errorf("the directories for synchronization cannot be nested: %q, %q", stg.SrcDir, stg.ReplicaDir)
	}
	if stg.Interval, err = parseInterval(args[2]); err != nil {
		return nil, err
	}
	if stg.LogFile, err = absPath(args[3]); err != nil {
		return nil, err
	}
	if !log.Level(flags.LogLevel).IsValid() {
		return nil, fmt.Errorf("logging level %q does not exist, permitted values are: %v, %v, %v, %v",
			flags.LogLevel, log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel)
	}
	stg.LogLevel = log.Level(strings.ToLower(strings.TrimSpace(flags.LogLevel)))

	return stg, nil
}

//Validate checks that both directories exist. It returns *model.NotFoundError naming the side that doesn't.
func (stg *Settings) Validate() error {
	if err := validateDirectoryPath(stg.SrcDir); err != nil {
		return &model.NotFoundError{Side: model.SourceSide, Path: stg.SrcDir, Err: err}
	}
	if err := validateDirectoryPath(stg.ReplicaDir); err != nil {
		return &model.NotFoundError{Side: model.ReplicaSide, Path: stg.ReplicaDir, Err: err}
	}
	return nil
}

func validateDirectoryPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory path", path)
	}
	return nil
}

func absPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path cannot be empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("path %q cannot be expanded: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("path %q cannot be converted to absolute: %w", path, err)
	}
	return abs, nil
}

func parseInterval(s string) (time.Duration, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("sync interval %q is not a whole number of seconds", s)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("sync interval must be positive, got %d", seconds)
	}
	if int64(seconds) > maxIntervalSeconds {
		return 0, fmt.Errorf("sync interval cannot exceed %d seconds, got %d", maxIntervalSeconds, seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}
