package model

import (
	"io/fs"
	"time"
)

//PathInfo holds info about one dir entry in a file tree (of either source OR replica directory).
type PathInfo struct {
	Exists   bool
	FullPath string
	IsDir    bool
	Size     int64 // in bytes
	ModTime  time.Time
}

func NewPathInfo(fullPath string, info fs.FileInfo) PathInfo {
	return PathInfo{
		Exists:   true,
		FullPath: fullPath,
		IsDir:    info.IsDir(),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
}

//EntryInfo holds info about same relative path in BOTH file trees (source and replica).
//It lives only while the path is being reconciled.
type EntryInfo struct {
	Path                         string // relative to both roots
	SrcPathInfo, ReplicaPathInfo PathInfo
}

//ResolveCopyKind tells what has to happen to a source file's replica counterpart:
//FileCopied when it's absent, FileUpdated when it's a file that still has to be compared by content,
//OperationFailed when a directory occupies the path (it will be pruned, and the file copied on the next pass).
func (e *EntryInfo) ResolveCopyKind() ActionKind {
	switch {
	case !e.ReplicaPathInfo.Exists:
		return FileCopied
	case e.ReplicaPathInfo.IsDir:
		return OperationFailed
	default:
		return FileUpdated
	}
}

//IsStaleInReplica reports whether the replica entry has to be removed: it exists,
//but the source has no entry of the same type at this path.
func (e *EntryInfo) IsStaleInReplica() bool {
	return e.ReplicaPathInfo.Exists && (!e.SrcPathInfo.Exists || e.SrcPathInfo.IsDir != e.ReplicaPathInfo.IsDir)
}
