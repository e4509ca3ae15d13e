package model

import "time"

//ActionKind is a kind of mutation (or failed mutation) performed on the replica tree.
type ActionKind string

const (
	DirectoryCreated ActionKind = "directory_created"
	FileCopied       ActionKind = "file_copied"
	FileUpdated      ActionKind = "file_updated"
	FileDeleted      ActionKind = "file_deleted"
	DirectoryDeleted ActionKind = "directory_deleted"
	OperationFailed  ActionKind = "operation_failed"
)

func (k ActionKind) IsFailure() bool {
	return k == OperationFailed
}

// Action is a record of one mutation performed during a pass.
// Path is relative to the replica root (for failures, to the root the failing operation touched).
type Action struct {
	Kind ActionKind          `json:"kind"`
	Path string              `json:"path"`
	Size int64               `json:"size,omitempty"` // bytes written, for copies only
	At   time.Time           `json:"at"`
	Err  *FileOperationError `json:"-"`
}

func NewAction(kind ActionKind, path string) Action {
	return Action{Kind: kind, Path: path, At: time.Now()}
}

func NewFailure(err *FileOperationError) Action {
	return Action{Kind: OperationFailed, Path: err.Path, At: time.Now(), Err: err}
}
