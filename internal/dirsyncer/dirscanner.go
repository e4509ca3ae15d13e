package dirsyncer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"dmirror/internal/model"
	"dmirror/pkg/helpers/iout"

	"github.com/spf13/afero"
)

//dirScanner walks both trees of one pass. Relative paths are used everywhere, "" is the root.
type dirScanner struct {
	ctx         context.Context
	fs          afero.Fs
	srcRoot     string
	replicaRoot string
	exec        *executor
}

func newDirScanner(ctx context.Context, fsys afero.Fs, srcRoot, replicaRoot string, exec *executor) *dirScanner {
	return &dirScanner{ctx: ctx, fs: fsys, srcRoot: srcRoot, replicaRoot: replicaRoot, exec: exec}
}

//propagate makes sure the source directory at rel exists in the replica, brings its files over,
//and then descends into its subdirectories (in lexical order).
func (d *dirScanner) propagate(rel string) error {
	if err := d.ctx.Err(); err != nil {
		return err
	}

	if rel != "" { // the root exists, it was checked before the pass
		created, err := iout.EnsureDirExists(d.ctx, d.fs, d.replicaPath(rel))
		if err != nil {
			// nothing can be written below a directory that couldn't be made, so the whole subtree is skipped
			return d.exec.failOrAbort(model.OpCreateDir, rel, err)
		}
		if created {
			d.exec.record(model.NewAction(model.DirectoryCreated, toSlash(rel)))
		}
	}

	entries, err := afero.ReadDir(d.fs, d.srcPath(rel))
	if err != nil {
		if rel == "" {
			return err
		}
		return d.exec.failOrAbort(model.OpListDir, rel, err)
	}

	var subdirs []string
	for _, info := range entries {
		if err = d.ctx.Err(); err != nil {
			return err
		}
		childRel := filepath.Join(rel, info.Name())
		switch {
		case info.IsDir():
			subdirs = append(subdirs, childRel)
		case info.Mode().IsRegular():
			if err = d.propagateFile(childRel, info); err != nil {
				return err
			}
		}
	}

	for _, sub := range subdirs {
		if err = d.propagate(sub); err != nil {
			return err
		}
	}
	return nil
}

func (d *dirScanner) propagateFile(rel string, srcInfo fs.FileInfo) error {
	entry := model.EntryInfo{Path: rel, SrcPathInfo: model.NewPathInfo(d.srcPath(rel), srcInfo)}
	replicaInfo, err := d.stat(d.replicaPath(rel))
	if err != nil {
		return d.exec.failOrAbort(model.OpStat, rel, err)
	}
	entry.ReplicaPathInfo = replicaInfo

	kind := entry.ResolveCopyKind()
	switch kind {
	case model.OperationFailed:
		// phase B removes the directory, the file gets copied on the next pass
		return d.exec.failOrAbort(model.OpCopy, rel, iout.ErrIsDir)
	case model.FileUpdated:
		same, err := iout.SameContent(d.ctx, d.fs, entry.SrcPathInfo.FullPath, entry.ReplicaPathInfo.FullPath)
		if err != nil {
			return d.exec.failOrAbort(model.OpFingerprint, rel, err)
		}
		if same {
			return nil
		}
	}
	return d.exec.copyFile(kind, &entry, srcInfo)
}

//prune removes from the replica directory at rel everything the source doesn't have.
//Subdirectories go first (deepest first); a subdirectory missing in the source is removed as a whole,
//without visiting what's inside. Then the directory's own files are checked.
func (d *dirScanner) prune(rel string) error {
	if err := d.ctx.Err(); err != nil {
		return err
	}

	entries, err := afero.ReadDir(d.fs, d.replicaPath(rel))
	if err != nil {
		if rel == "" {
			return err
		}
		return d.exec.failOrAbort(model.OpListDir, rel, err)
	}

	var files []os.FileInfo
	for _, info := range entries {
		if !info.IsDir() {
			files = append(files, info)
			continue
		}
		childRel := filepath.Join(rel, info.Name())
		entry, err := d.replicaEntry(childRel, info)
		if err != nil {
			if err = d.exec.failOrAbort(model.OpStat, childRel, err); err != nil {
				return err
			}
			continue
		}
		if entry.IsStaleInReplica() {
			err = d.exec.removeTree(entry)
		} else {
			err = d.prune(childRel)
		}
		if err != nil {
			return err
		}
	}

	for _, info := range files {
		if err = d.ctx.Err(); err != nil {
			return err
		}
		childRel := filepath.Join(rel, info.Name())
		entry, err := d.replicaEntry(childRel, info)
		if err != nil {
			if err = d.exec.failOrAbort(model.OpStat, childRel, err); err != nil {
				return err
			}
			continue
		}
		if !entry.IsStaleInReplica() {
			continue
		}
		if err = d.exec.removeFile(entry); err != nil {
			return err
		}
	}
	return nil
}

func (d *dirScanner) replicaEntry(rel string, replicaInfo fs.FileInfo) (*model.EntryInfo, error) {
	srcInfo, err := d.stat(d.srcPath(rel))
	if err != nil {
		return nil, err
	}
	return &model.EntryInfo{
		Path:            rel,
		SrcPathInfo:     srcInfo,
		ReplicaPathInfo: model.NewPathInfo(d.replicaPath(rel), replicaInfo),
	}, nil
}

//stat returns a zero PathInfo (with Exists == false) for a missing path.
func (d *dirScanner) stat(path string) (model.PathInfo, error) {
	info, err := d.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.PathInfo{FullPath: path}, nil
		}
		return model.PathInfo{}, err
	}
	return model.NewPathInfo(path, info), nil
}

func (d *dirScanner) srcPath(rel string) string {
	return filepath.Join(d.srcRoot, rel)
}

func (d *dirScanner) replicaPath(rel string) string {
	return filepath.Join(d.replicaRoot, rel)
}

func toSlash(rel string) string {
	return filepath.ToSlash(rel)
}
