package envsync

import (
	"context"

	"github.com/railwayapp/henvdall/internal/validator"
)

// MissingKey is a template key that the env file does not define
type MissingKey struct {
	Key       string
	Example   string
	Hint      validator.Hint
	Sensitive bool
}

// Renderer displays the progress of a sync. None of its methods affect the outcome.
type Renderer interface {
	// InSync reports that the env file already has every template key
	InSync()

	// MissingKeys lists the keys about to be added
	MissingKeys(missing []MissingKey)

	// Cancelled reports that the user declined the sync
	Cancelled()

	// BackupCreated reports where the env file was copied before mutation
	BackupCreated(path string)

	// CollectingValues announces that values are about to be asked for
	CollectingValues(count int)

	// ValueRejected reports a value that failed validation and will be asked for again
	ValueRejected(key string, result validator.Result)

	// LossyValue warns that a value will not read back exactly as entered
	LossyValue(key string)

	// SyncComplete reports how many entries were appended
	SyncComplete(added int)
}

// Prompter collects answers from the user
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(ctx context.Context, question string) (bool, error)

	// AskValue asks for the value of a missing key. It is called again for
	// the same key until the value validates.
	AskValue(ctx context.Context, key MissingKey) (string, error)
}
