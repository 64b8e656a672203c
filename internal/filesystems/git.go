package filesystems

import (
	"fmt"
	"iter"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitFS implements a read-only FileSystem for git repositories (cloned locally)
type GitFS struct {
	repoURL   string
	ref       string
	localPath string
	localFS   *LocalFS
}

// NewGitFS creates a new GitFS instance and shallow-clones the repository
func NewGitFS(repoURL, ref string) (*GitFS, error) {
	if ref == "" {
		ref = "main" // default branch
	}

	tempDir, err := os.MkdirTemp("", "henvdall-git-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	gfs := &GitFS{
		repoURL:   repoURL,
		ref:       ref,
		localPath: tempDir,
		localFS:   NewLocalFS(),
	}

	if err := gfs.clone(); err != nil {
		os.RemoveAll(tempDir) // cleanup on error
		return nil, err
	}

	return gfs, nil
}

func (gfs *GitFS) clone() error {
	cmd := exec.Command("git", "clone", "--depth", "1", "--branch", gfs.ref, gfs.repoURL, gfs.localPath)
	if err := cmd.Run(); err != nil {
		// If branch clone fails, fall back to the default branch
		cmd = exec.Command("git", "clone", "--depth", "1", gfs.repoURL, gfs.localPath)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to clone repository %s: %w", gfs.repoURL, err)
		}
	}
	return nil
}

// Cleanup removes the temporary git repository
func (gfs *GitFS) Cleanup() error {
	if gfs.localPath != "" {
		return os.RemoveAll(gfs.localPath)
	}
	return nil
}

// resolve maps a repository-relative path into the clone, refusing escapes
func (gfs *GitFS) resolve(name string) (string, error) {
	clean := filepath.Clean(strings.TrimPrefix(name, "/"))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected: %s", name)
	}
	return gfs.localFS.Join(gfs.localPath, clean), nil
}

func (gfs *GitFS) ReadFile(name string) ([]byte, error) {
	fullPath, err := gfs.resolve(name)
	if err != nil {
		return nil, err
	}
	return gfs.localFS.ReadFile(fullPath)
}

func (gfs *GitFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		fullPath, err := gfs.resolve(name)
		if err != nil {
			yield(nil, err)
			return
		}
		for entry, err := range gfs.localFS.ReadDir(fullPath) {
			if !yield(entry, err) {
				return
			}
		}
	}
}

func (gfs *GitFS) Stat(name string) (FileInfo, error) {
	fullPath, err := gfs.resolve(name)
	if err != nil {
		return nil, err
	}
	return gfs.localFS.Stat(fullPath)
}

func (gfs *GitFS) Join(elem ...string) string {
	return gfs.localFS.Join(elem...)
}

func (gfs *GitFS) Base(path string) string {
	return gfs.localFS.Base(path)
}

func (gfs *GitFS) Dir(path string) string {
	return gfs.localFS.Dir(path)
}
