package iout

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

//Fingerprint is a content digest of a file. Two files are considered equal iff their fingerprints are.
type Fingerprint [md5.Size]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

//FileFingerprint streams the file at path through MD5 in chunkSize pieces.
func FileFingerprint(ctx context.Context, fsys afero.Fs, path string) (Fingerprint, error) {
	var fp Fingerprint

	f, err := fsys.Open(path)
	if err != nil {
		return fp, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err = io.CopyBuffer(h, newReaderWithContext(ctx, f), make([]byte, chunkSize)); err != nil {
		return fp, fmt.Errorf("cannot read file content: %w", err)
	}
	copy(fp[:], h.Sum(nil))
	return fp, nil
}

//SameContent compares the files at pathA and pathB by fingerprint.
func SameContent(ctx context.Context, fsys afero.Fs, pathA, pathB string) (bool, error) {
	a, err := FileFingerprint(ctx, fsys, pathA)
	if err != nil {
		return false, err
	}
	b, err := FileFingerprint(ctx, fsys, pathB)
	if err != nil {
		return false, err
	}
	return a == b, nil
}
