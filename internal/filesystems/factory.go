package filesystems

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// NewFileSystem creates a filesystem implementation for reading a template at the given URI
// Supports:
// - /path/to/.env.example (no scheme)
// - file:///path/to/.env.example
// - github://owner/repo[/tree/ref[/path]]
// - git://github.com/owner/repo[#ref]
func NewFileSystem(uri string) (FileSystem, error) {
	// Handle local paths without scheme
	if !strings.Contains(uri, "://") {
		if _, err := filepath.Abs(uri); err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", uri, err)
		}
		return NewLocalFS(), nil
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI %s: %w", uri, err)
	}

	switch parsedURL.Scheme {
	case "file":
		return NewLocalFS(), nil

	case "github":
		return parseGitHubURL(parsedURL)

	case "git":
		return parseGitURL(parsedURL)

	default:
		return nil, fmt.Errorf("unsupported scheme: %s", parsedURL.Scheme)
	}
}

// parseGitHubURL parses github://owner/repo/tree/ref URLs
func parseGitHubURL(u *url.URL) (FileSystem, error) {
	// The host is the owner for github:// URLs
	owner := u.Host
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	if owner == "" || len(parts) < 1 || parts[0] == "" {
		return nil, fmt.Errorf("invalid GitHub URL format, expected: github://owner/repo[/tree/ref[/path]]")
	}

	ref := ""
	if len(parts) >= 3 && parts[1] == "tree" {
		ref = parts[2]
	}

	return NewGitHubFS(owner, parts[0], ref, os.Getenv("GITHUB_TOKEN")), nil
}

// parseGitURL parses git://owner/repo or git://github.com/owner/repo URLs
func parseGitURL(u *url.URL) (FileSystem, error) {
	var gitURL string

	if u.Host != "" && u.Host != "github.com" && strings.Count(u.Path, "/") == 1 {
		// Shorthand git://owner/repo, assumes github.com
		gitURL = fmt.Sprintf("https://github.com/%s/%s", u.Host, strings.Trim(u.Path, "/"))
	} else if u.Host == "" {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid git URL format, expected: git://owner/repo or git://github.com/owner/repo")
		}
		gitURL = fmt.Sprintf("https://github.com/%s/%s", parts[0], parts[1])
	} else {
		gitURL = fmt.Sprintf("https://%s%s", u.Host, u.Path)
	}

	gitFS, err := NewGitFS(gitURL, u.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create git filesystem: %w", err)
	}

	return gitFS, nil
}

// GetBasePath returns the path of the template within the filesystem
// returned by NewFileSystem for the same URI
func GetBasePath(uri string) string {
	if !strings.Contains(uri, "://") {
		return uri
	}

	parsedURL, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	switch parsedURL.Scheme {
	case "file":
		return parsedURL.Path

	case "github":
		// github://owner/repo/tree/ref/sub/path -> sub/path
		parts := strings.Split(strings.Trim(parsedURL.Path, "/"), "/")
		if len(parts) > 3 && parts[1] == "tree" {
			return strings.Join(parts[3:], "/")
		}
		return "."

	case "git":
		return "."

	default:
		return uri
	}
}

// ResolveTemplate turns a template location into a file path. Directories are
// searched with DiscoverTemplate; when nothing is found the conventional
// .env.example path is returned so callers report it as missing.
func ResolveTemplate(filesystem FileSystem, location string) (string, error) {
	info, err := filesystem.Stat(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return location, nil
		}
		return "", err
	}
	if !info.IsDir() {
		return location, nil
	}

	found, err := DiscoverTemplate(filesystem, location)
	if err != nil {
		return "", fmt.Errorf("failed to search %s for a template: %w", location, err)
	}
	if found == "" {
		return filesystem.Join(location, TemplateNames[0]), nil
	}
	return found, nil
}
