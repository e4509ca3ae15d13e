package iout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// chunkSize bounds the memory used by a single copy or fingerprint, whatever the file size is.
const chunkSize = 4096

var (
	ErrNotDir = errors.New("not a directory")
	ErrIsDir  = errors.New("is a directory")
)

func IsErrNotDir(err error) bool {
	return errors.Is(err, ErrNotDir)
}

//IsWithin reports whether path is root itself or lies somewhere below it. Both paths must be absolute.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

//readerWithContext allows to perform a cancellable read operation.
type readerWithContext struct {
	ctx context.Context
	r   io.Reader
}

func newReaderWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &readerWithContext{ctx: ctx, r: r}
}

func (r *readerWithContext) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
		return r.r.Read(p)
	}
}

//EnsureDirExists creates the directory at path together with any missing parents.
//It reports whether something was actually created.
func EnsureDirExists(ctx context.Context, fsys afero.Fs, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := fsys.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("cannot make dir %q: %w", path, ErrNotDir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("cannot make dir %q: %w", path, err)
	}
	if err = fsys.MkdirAll(path, os.ModePerm); err != nil {
		return false, fmt.Errorf("cannot make dir %q: %w", path, err)
	}
	return true, nil
}

//RemoveFile removes a single non-directory entry. Directories are refused with ErrIsDir.
func RemoveFile(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot remove file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot remove file %q: %w", path, ErrIsDir)
	}
	if err = fsys.Remove(path); err != nil {
		return fmt.Errorf("cannot remove file: %w", err)
	}
	return nil
}

//RemoveTree removes the directory at path with all its contents in one operation.
func RemoveTree(fsys afero.Fs, path string) error {
	if err := fsys.RemoveAll(path); err != nil {
		return fmt.Errorf("cannot remove dir: %w", err)
	}
	return nil
}

//CopyFile copies the regular file at srcPath over dstPath (creating or truncating it).
//The copied file gets the source modTime; a newly created file also gets the source permission bits.
//It returns the number of bytes written.
func CopyFile(ctx context.Context, fsys afero.Fs, srcPath, dstPath string, srcInfo fs.FileInfo) (int64, error) {
	n, err := copyFileContents(ctx, fsys, srcPath, dstPath, srcInfo.Mode().Perm())
	if err != nil {
		return n, fmt.Errorf("cannot copy file: %w", err)
	}
	if err = fsys.Chtimes(dstPath, time.Now(), srcInfo.ModTime()); err != nil {
		return n, fmt.Errorf("cannot set file modification time: %w", err)
	}
	return n, nil
}

func copyFileContents(ctx context.Context, fsys afero.Fs, src, dst string, perm fs.FileMode) (n int64, err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, fmt.Errorf("cannot create file: %w", err)
	}
	defer func() {
		if cErr := out.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("cannot close file: %w", cErr)
		}
	}()

	if n, err = io.CopyBuffer(out, newReaderWithContext(ctx, in), make([]byte, chunkSize)); err != nil {
		return n, fmt.Errorf("cannot read/write file content: %w", err)
	}
	return n, out.Sync()
}
