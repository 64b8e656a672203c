package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/railwayapp/henvdall/internal/envsync"
	"github.com/railwayapp/henvdall/internal/filesystems"
)

var (
	// ErrNoScriptedValue is returned when a key has no scripted value and there is no fallback
	ErrNoScriptedValue = errors.New("no value provided")

	// ErrInvalidScriptedValue is returned when a scripted value was rejected
	ErrInvalidScriptedValue = errors.New("provided value was rejected")

	// ErrConfirmationRequired is returned when confirmation is needed but cannot be asked for
	ErrConfirmationRequired = errors.New("confirmation required, pass --yes to run non-interactively")
)

var _ envsync.Prompter = (*ScriptedPrompter)(nil)

// ScriptedPrompter answers from a fixed set of values, deferring to a
// fallback Prompter for anything it cannot answer.
type ScriptedPrompter struct {
	values    map[string]string
	assumeYes bool
	fallback  envsync.Prompter
	asked     map[string]bool
}

// NewScriptedPrompter creates a ScriptedPrompter. fallback may be nil.
func NewScriptedPrompter(values map[string]string, assumeYes bool, fallback envsync.Prompter) *ScriptedPrompter {
	if values == nil {
		values = map[string]string{}
	}
	return &ScriptedPrompter{
		values:    values,
		assumeYes: assumeYes,
		fallback:  fallback,
		asked:     make(map[string]bool),
	}
}

// Confirm answers yes when assumeYes is set
func (p *ScriptedPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if p.fallback == nil {
		return false, ErrConfirmationRequired
	}
	return p.fallback.Confirm(ctx, question)
}

// AskValue returns the scripted value for key. A second ask for the same key
// means the value was rejected, which is an error since it would never change.
func (p *ScriptedPrompter) AskValue(ctx context.Context, key envsync.MissingKey) (string, error) {
	value, ok := p.values[key.Key]
	if !ok {
		if p.fallback == nil {
			return "", fmt.Errorf("%w for %s", ErrNoScriptedValue, key.Key)
		}
		return p.fallback.AskValue(ctx, key)
	}

	if p.asked[key.Key] {
		return "", fmt.Errorf("%w for %s", ErrInvalidScriptedValue, key.Key)
	}
	p.asked[key.Key] = true
	return value, nil
}

// LoadValues reads KEY=VALUE pairs from a dotenv file
func LoadValues(filesystem filesystems.FileSystem, path string) (map[string]string, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file %s: %w", path, err)
	}
	values, err := godotenv.Unmarshal(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse values file %s: %w", path, err)
	}
	return values, nil
}
