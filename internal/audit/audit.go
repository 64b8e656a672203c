// Package audit scans an env file for values that look like unfilled placeholders.
package audit

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/railwayapp/henvdall/internal/envfile"
	"github.com/railwayapp/henvdall/internal/filesystems"
	"github.com/railwayapp/henvdall/internal/validator"
)

// Reason explains why a value was flagged
type Reason string

const (
	ReasonEmpty       Reason = "Empty value"
	ReasonPlaceholder Reason = "Contains placeholder text"
	ReasonSuspicious  Reason = "Suspicious value"
)

// Recommendation is shown after the list of issues
const Recommendation = "Update these values before running your application."

// Issue is one flagged entry
type Issue struct {
	Key    string `json:"key" yaml:"key" toml:"key"`
	Value  string `json:"value" yaml:"value" toml:"value"`
	Reason Reason `json:"reason" yaml:"reason" toml:"reason"`
}

// Report is the outcome of auditing one file
type Report struct {
	Path    string  `json:"path" yaml:"path" toml:"path"`
	Found   bool    `json:"found" yaml:"found" toml:"found"`
	Entries int     `json:"entries" yaml:"entries" toml:"entries"`
	Issues  []Issue `json:"issues" yaml:"issues" toml:"issues"`
}

// HasIssues reports whether any entry was flagged
func (r Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Renderer displays audit results
type Renderer interface {
	// NotFound reports that the env file does not exist
	NotFound(path string)

	// Empty reports that the env file has no entries
	Empty(path string)

	// Clean reports that no placeholders were found
	Clean(path string)

	// Issues lists the flagged entries followed by the recommendation
	Issues(issues []Issue)
}

// Auditor checks env files against a placeholder Matcher
type Auditor struct {
	filesystem filesystems.FileSystem
	matcher    *validator.Matcher
	renderer   Renderer
	logger     *zap.Logger
}

// NewAuditor creates an Auditor. A nil matcher uses the built-in rules and a
// nil logger discards output.
func NewAuditor(filesystem filesystems.FileSystem, matcher *validator.Matcher, renderer Renderer, logger *zap.Logger) *Auditor {
	if matcher == nil {
		matcher = validator.DefaultMatcher()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{
		filesystem: filesystem,
		matcher:    matcher,
		renderer:   renderer,
		logger:     logger,
	}
}

// Audit scans the env file at path
func (a *Auditor) Audit(ctx context.Context, path string) (Report, error) {
	report := Report{Path: path}

	exists, err := filesystems.Exists(a.filesystem, path)
	if err != nil {
		return report, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		a.renderer.NotFound(path)
		return report, nil
	}
	report.Found = true

	entries, err := envfile.ParseFile(a.filesystem, path)
	if err != nil {
		return report, err
	}
	report.Entries = entries.Len()
	a.logger.Debug("Parsed env file", zap.String("path", path), zap.Int("entries", entries.Len()))

	if entries.Len() == 0 {
		a.renderer.Empty(path)
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Issues = a.FindIssues(entries)
	if !report.HasIssues() {
		a.renderer.Clean(path)
		return report, nil
	}

	a.logger.Debug("Found placeholder values", zap.Int("count", len(report.Issues)))
	a.renderer.Issues(report.Issues)
	return report, nil
}

// FindIssues returns an Issue for every entry whose value is a placeholder, in file order
func (a *Auditor) FindIssues(entries *envfile.EntryMap) []Issue {
	var issues []Issue
	for key, entry := range entries.All() {
		if !a.matcher.IsPlaceholder(entry.Value) {
			continue
		}
		issues = append(issues, Issue{
			Key:    key,
			Value:  entry.Value,
			Reason: a.Classify(entry.Value),
		})
	}
	return issues
}

// Classify explains why value is a placeholder
func (a *Auditor) Classify(value string) Reason {
	if strings.TrimSpace(value) == "" {
		return ReasonEmpty
	}
	if a.matcher.Match(value) {
		return ReasonPlaceholder
	}
	// Unreachable with the current rules, kept for rules that flag without matching
	return ReasonSuspicious
}
