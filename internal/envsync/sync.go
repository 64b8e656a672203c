// Package envsync adds the keys of a template env file that are missing from
// an actual env file, prompting for their values.
package envsync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/railwayapp/henvdall/internal/envfile"
	"github.com/railwayapp/henvdall/internal/filesystems"
	"github.com/railwayapp/henvdall/internal/validator"
)

// DefaultMarker is the comment written above appended entries
const DefaultMarker = "# Added by Henvdall"

// ErrTemplateNotFound is returned when the template file does not exist
var ErrTemplateNotFound = errors.New("template file not found")

// Request names the files taking part in a sync
type Request struct {
	TemplatePath string
	EnvPath      string
	// BackupPath defaults to EnvPath + ".bak"
	BackupPath string
}

// Result describes what a sync did
type Result struct {
	Changed    bool
	Added      []envfile.Entry
	BackupPath string
}

// Syncer runs the sync workflow
type Syncer struct {
	templateFS filesystems.FileSystem
	envFS      filesystems.WritableFileSystem
	renderer   Renderer
	prompter   Prompter
	logger     *zap.Logger
	marker     string
}

// Option configures a Syncer
type Option func(*Syncer)

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarker sets the comment line written above appended entries
func WithMarker(marker string) Option {
	return func(s *Syncer) {
		if marker != "" {
			s.marker = marker
		}
	}
}

// WithTemplateFS reads the template from a different filesystem than the env file
func WithTemplateFS(filesystem filesystems.FileSystem) Option {
	return func(s *Syncer) {
		if filesystem != nil {
			s.templateFS = filesystem
		}
	}
}

// NewSyncer creates a Syncer that reads and writes env files on envFS
func NewSyncer(envFS filesystems.WritableFileSystem, renderer Renderer, prompter Prompter, opts ...Option) *Syncer {
	s := &Syncer{
		templateFS: envFS,
		envFS:      envFS,
		renderer:   renderer,
		prompter:   prompter,
		logger:     zap.NewNop(),
		marker:     DefaultMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MissingKeys returns the template keys absent from actual, in template order
func MissingKeys(template, actual *envfile.EntryMap) []string {
	var missing []string
	for key := range template.All() {
		if !actual.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Sync adds the template keys missing from the env file. The env file is
// written once, after every value has been collected.
func (s *Syncer) Sync(ctx context.Context, req Request) (Result, error) {
	templateExists, err := filesystems.Exists(s.templateFS, req.TemplatePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check template %s: %w", req.TemplatePath, err)
	}
	if !templateExists {
		return Result{}, fmt.Errorf("%w at %s", ErrTemplateNotFound, req.TemplatePath)
	}

	template, err := envfile.ParseFile(s.templateFS, req.TemplatePath)
	if err != nil {
		return Result{}, err
	}
	actual, err := envfile.ParseFile(s.envFS, req.EnvPath)
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("Parsed env files",
		zap.String("template", req.TemplatePath),
		zap.Int("templateEntries", template.Len()),
		zap.String("env", req.EnvPath),
		zap.Int("envEntries", actual.Len()))

	keys := MissingKeys(template, actual)
	if len(keys) == 0 {
		s.renderer.InSync()
		return Result{}, nil
	}

	missing := make([]MissingKey, 0, len(keys))
	for _, key := range keys {
		entry, _ := template.Get(key)
		hint, _ := validator.ExtractHint(entry.Comment)
		missing = append(missing, MissingKey{
			Key:       key,
			Example:   entry.Value,
			Hint:      hint,
			Sensitive: validator.IsSensitiveKey(key),
		})
	}
	s.renderer.MissingKeys(missing)

	confirmed, err := s.prompter.Confirm(ctx, "Proceed with sync?")
	if err != nil {
		return Result{}, fmt.Errorf("failed to confirm sync: %w", err)
	}
	if !confirmed {
		s.renderer.Cancelled()
		return Result{}, nil
	}

	backupPath, err := s.backup(req)
	if err != nil {
		return Result{}, err
	}

	added, err := s.collect(ctx, missing)
	if err != nil {
		return Result{BackupPath: backupPath}, err
	}

	if err := s.appendEntries(req.EnvPath, added); err != nil {
		return Result{BackupPath: backupPath}, err
	}

	s.renderer.SyncComplete(len(added))
	return Result{Changed: true, Added: added, BackupPath: backupPath}, nil
}

// backup copies the env file aside if it exists. Returns the backup path, or
// "" when there was nothing to back up.
func (s *Syncer) backup(req Request) (string, error) {
	exists, err := filesystems.Exists(s.envFS, req.EnvPath)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", req.EnvPath, err)
	}
	if !exists {
		return "", nil
	}

	backupPath := req.BackupPath
	if backupPath == "" {
		backupPath = s.envFS.Join(s.envFS.Dir(req.EnvPath), s.envFS.Base(req.EnvPath)+".bak")
	}

	if err := s.envFS.CopyFile(req.EnvPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	s.logger.Debug("Created backup", zap.String("path", backupPath))
	s.renderer.BackupCreated(backupPath)

	return backupPath, nil
}

// collect asks for each missing value until it validates
func (s *Syncer) collect(ctx context.Context, missing []MissingKey) ([]envfile.Entry, error) {
	added := make([]envfile.Entry, 0, len(missing))
	s.renderer.CollectingValues(len(missing))

	for _, key := range missing {
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			value, err := s.prompter.AskValue(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("failed to read value for %s: %w", key.Key, err)
			}

			result := validator.ValidateValue(value, key.Hint)
			if strings.ContainsAny(value, "\r\n") {
				result = validator.Invalid(fmt.Sprintf("value for %s must be a single line", key.Key))
			}
			if !result.IsValid() {
				s.logger.Debug("Rejected value", zap.String("key", key.Key), zap.String("reason", result.Message()))
				s.renderer.ValueRejected(key.Key, result)
				continue
			}

			if !envfile.RoundTrips(key.Key, value) {
				s.renderer.LossyValue(key.Key)
			}
			added = append(added, envfile.Entry{Key: key.Key, Value: value})
			break
		}
	}

	return added, nil
}

// appendEntries writes the marker and new entries to the env file in one call
func (s *Syncer) appendEntries(envPath string, added []envfile.Entry) error {
	existing, err := s.envFS.ReadFile(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", envPath, err)
	}

	var b strings.Builder
	if len(existing) > 0 {
		if existing[len(existing)-1] != '\n' {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(s.marker)
	b.WriteString("\n")
	for _, entry := range added {
		b.WriteString(envfile.FormatEntry(entry.Key, entry.Value))
		b.WriteString("\n")
	}

	if err := s.envFS.AppendFile(envPath, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to update %s: %w", envPath, err)
	}
	s.logger.Debug("Appended entries", zap.String("path", envPath), zap.Int("count", len(added)))

	return nil
}
