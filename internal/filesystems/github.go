package filesystems

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

// GitHubFS implements a read-only FileSystem over the GitHub contents API.
// It is used to read templates straight from a repository.
type GitHubFS struct {
	ctx    context.Context
	client *github.Client
	owner  string
	repo   string
	ref    string

	refOnce sync.Once
}

// NewGitHubFS creates a new GitHubFS instance. An empty ref resolves to the
// repository's default branch on first access.
func NewGitHubFS(owner, repo, ref string, token string) *GitHubFS {
	ctx := context.Background()
	var client *github.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHubFS{
		ctx:    ctx,
		client: client,
		owner:  owner,
		repo:   repo,
		ref:    ref,
	}
}

// resolveRef detects the default branch when no ref was given
func (gfs *GitHubFS) resolveRef() string {
	gfs.refOnce.Do(func() {
		if gfs.ref != "" {
			return
		}
		repo, _, err := gfs.client.Repositories.Get(gfs.ctx, gfs.owner, gfs.repo)
		if err != nil {
			// Fallback to "main" if we can't detect
			gfs.ref = "main"
			return
		}
		gfs.ref = repo.GetDefaultBranch()
	})
	return gfs.ref
}

// validatePath ensures the path is safe and within bounds
func (gfs *GitHubFS) validatePath(p string) (string, error) {
	p = path.Clean(strings.TrimPrefix(p, "/"))

	if p == ".." || strings.HasPrefix(p, "../") {
		return "", fmt.Errorf("path traversal detected: %s", p)
	}
	if p == "." {
		return "", nil
	}
	return p, nil
}

func (gfs *GitHubFS) getContents(name string) (*github.RepositoryContent, []*github.RepositoryContent, error) {
	p, err := gfs.validatePath(name)
	if err != nil {
		return nil, nil, err
	}

	opts := &github.RepositoryContentGetOptions{Ref: gfs.resolveRef()}
	file, dir, _, err := gfs.client.Repositories.GetContents(gfs.ctx, gfs.owner, gfs.repo, p, opts)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return nil, nil, fmt.Errorf("file not found: %s/%s/%s: %w", gfs.owner, gfs.repo, p, fs.ErrNotExist)
		}
		return nil, nil, fmt.Errorf("failed to fetch %s from %s/%s: %w", p, gfs.owner, gfs.repo, err)
	}
	return file, dir, nil
}

func (gfs *GitHubFS) ReadFile(name string) ([]byte, error) {
	file, _, err := gfs.getContents(name)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory", name)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return []byte(content), nil
}

func (gfs *GitHubFS) Stat(name string) (FileInfo, error) {
	file, _, err := gfs.getContents(name)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return &lightweightFileInfo{name: path.Base(name), isDir: true}, nil
	}
	return &lightweightFileInfo{name: file.GetName(), size: int64(file.GetSize())}, nil
}

func (gfs *GitHubFS) ReadDir(name string) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		file, dir, err := gfs.getContents(name)
		if err != nil {
			yield(nil, err)
			return
		}
		if file != nil {
			yield(nil, fmt.Errorf("%s is not a directory", name))
			return
		}

		for _, content := range dir {
			entry := &lightweightDirEntry{
				name:  content.GetName(),
				isDir: content.GetType() == "dir",
				size:  int64(content.GetSize()),
			}
			if !yield(entry, nil) {
				return // Consumer stopped iteration
			}
		}
	}
}

func (gfs *GitHubFS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (gfs *GitHubFS) Base(p string) string {
	return path.Base(p)
}

func (gfs *GitHubFS) Dir(p string) string {
	return path.Dir(p)
}

// lightweightDirEntry implements DirEntry from a contents API listing
type lightweightDirEntry struct {
	name  string
	isDir bool
	size  int64
}

func (e *lightweightDirEntry) Name() string {
	return e.name
}

func (e *lightweightDirEntry) IsDir() bool {
	return e.isDir
}

func (e *lightweightDirEntry) Type() fs.FileMode {
	if e.IsDir() {
		return fs.ModeDir
	}
	return 0
}

func (e *lightweightDirEntry) Info() (FileInfo, error) {
	return &lightweightFileInfo{
		name:  e.name,
		size:  e.size,
		isDir: e.isDir,
	}, nil
}

// lightweightFileInfo implements FileInfo for remote entries
type lightweightFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi *lightweightFileInfo) Name() string { return fi.name }
func (fi *lightweightFileInfo) Size() int64  { return fi.size }
func (fi *lightweightFileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (fi *lightweightFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *lightweightFileInfo) IsDir() bool        { return fi.isDir }
func (fi *lightweightFileInfo) Sys() interface{}   { return nil }
