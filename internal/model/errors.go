package model

import "fmt"

// Side names one of the two trees taking part in a pass.
type Side string

const (
	SourceSide  Side = "source"
	ReplicaSide Side = "replica"
)

// NotFoundError means a root directory is missing or is not a directory.
// It's fatal: passes cannot run until the root is back, so the run stops.
type NotFoundError struct {
	Side Side
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s directory %q does not exist: %v", e.Side, e.Path, e.Err)
	}
	return fmt.Sprintf("%s directory %q does not exist", e.Side, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

//FileOp names the filesystem operation that failed.
type FileOp string

const (
	OpCreateDir   FileOp = "create_dir"
	OpListDir     FileOp = "list_dir"
	OpStat        FileOp = "stat"
	OpFingerprint FileOp = "fingerprint"
	OpCopy        FileOp = "copy"
	OpRemoveFile  FileOp = "remove_file"
	OpRemoveDir   FileOp = "remove_dir"
)

// FileOperationError is a failure of a single entry. The pass skips the entry and goes on.
type FileOperationError struct {
	Op   FileOp
	Path string
	Err  error
}

func (e *FileOperationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileOperationError) Unwrap() error {
	return e.Err
}
