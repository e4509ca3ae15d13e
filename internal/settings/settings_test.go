package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dmirror/internal/log"
	"dmirror/internal/model"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name        string
		commandArgs []string
		flags       Flags
		wantErr     bool
		want        *Settings
	}{
		{name: "no args", commandArgs: nil, flags: DefaultFlags(), wantErr: true},
		{name: "not enough args", commandArgs: []string{"a", "b", "10"}, flags: DefaultFlags(), wantErr: true},
		{name: "too many args", commandArgs: []string{"a", "b", "10", "l.log", "x"}, flags: DefaultFlags(), wantErr: true},
		{name: "same dirs", commandArgs: []string{"dir", "dir", "10", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "replica inside source", commandArgs: []string{"d", "d/r", "10", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "source inside replica", commandArgs: []string{"/data/r/s", "/data/r", "10", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "interval overflows duration", commandArgs: []string{"d1", "d2", "9223372037", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "empty dir", commandArgs: []string{"", "dir", "10", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "interval not a number", commandArgs: []string{"d1", "d2", "ten", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "fractional interval", commandArgs: []string{"d1", "d2", "1.5", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "zero interval", commandArgs: []string{"d1", "d2", "0", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "negative interval", commandArgs: []string{"d1", "d2", "-3", "l.log"}, flags: DefaultFlags(), wantErr: true},
		{name: "bad level", commandArgs: []string{"d1", "d2", "3", "l.log"}, flags: Flags{LogLevel: "nope"}, wantErr: true},
		{
			name:        "valid args",
			commandArgs: []string{"dir1", "dir2", "30", "sync.log"},
			flags:       Flags{LogLevel: "DEBUG", Once: true},
			want: &Settings{
				SrcDir:     abs("dir1"),
				ReplicaDir: abs("dir2"),
				Interval:   30 * time.Second,
				LogFile:    abs("sync.log"),
				LogLevel:   log.DebugLevel,
				Once:       true,
			},
		},
		{
			name:        "sibling dirs sharing a name prefix",
			commandArgs: []string{"/data/d", "/data/dd", "9223372036", "l.log"},
			flags:       DefaultFlags(),
			want: &Settings{
				SrcDir:     "/data/d",
				ReplicaDir: "/data/dd",
				Interval:   9223372036 * time.Second,
				LogFile:    abs("l.log"),
				LogLevel:   log.InfoLevel,
			},
		},
		{
			name:        "default flags and home dir",
			commandArgs: []string{"~/src", "/tmp/replica", "1", "~/sync.log"},
			flags:       DefaultFlags(),
			want: &Settings{
				SrcDir:     filepath.Join(home, "src"),
				ReplicaDir: "/tmp/replica",
				Interval:   time.Second,
				LogFile:    filepath.Join(home, "sync.log"),
				LogLevel:   log.InfoLevel,
				Once:       false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requires := require.New(t)

			stg, err := New(tt.commandArgs, tt.flags)

			if tt.wantErr {
				requires.Error(err)
				requires.Nil(stg)
				return
			}

			requires.NoError(err)
			requires.NotNil(stg)
			requires.Equal(*tt.want, *stg)
		})
	}
}

func TestNewWrongArgsCount(t *testing.T) {
	_, err := New([]string{"only-one"}, DefaultFlags())
	require.ErrorIs(t, err, ErrWrongArgsCount)
}

func TestSettings_Validate(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "src")
	replicaDir := filepath.Join(root, "replica")
	notADir := filepath.Join(root, "file.txt")
	require.NoError(t, os.Mkdir(srcDir, 0o755))
	require.NoError(t, os.Mkdir(replicaDir, 0o755))
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))

	tests := []struct {
		name     string
		src      string
		replica  string
		wantSide model.Side
	}{
		{name: "both exist", src: srcDir, replica: replicaDir},
		{name: "source missing", src: filepath.Join(root, "nope"), replica: replicaDir, wantSide: model.SourceSide},
		{name: "replica missing", src: srcDir, replica: filepath.Join(root, "nope"), wantSide: model.ReplicaSide},
		{name: "source is a file", src: notADir, replica: replicaDir, wantSide: model.SourceSide},
		{name: "replica is a file", src: srcDir, replica: notADir, wantSide: model.ReplicaSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Settings{SrcDir: tt.src, ReplicaDir: tt.replica}).Validate()
			if tt.wantSide == "" {
				require.NoError(t, err)
				return
			}
			var nfErr *model.NotFoundError
			require.True(t, errors.As(err, &nfErr))
			require.Equal(t, tt.wantSide, nfErr.Side)
		})
	}
}

func abs(path string) string {
	s, _ := filepath.Abs(path)
	return s
}
