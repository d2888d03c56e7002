// internal/debate/errors.go
package debate

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrGeneration    = errors.New("generation failed")
	ErrConfiguration = errors.New("invalid configuration")
	ErrAlreadyRun    = errors.New("debate already run")
	ErrTimeout       = errors.New("model response timed out")
)

// GenerationError is a failed generation call. It ends the run: no later
// stage can proceed without the missing utterance.
type GenerationError struct {
	Speaker string
	Stage   string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s (%s): generation failed: %v", e.Speaker, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrGeneration:
		return true
	case ErrTimeout:
		return errors.Is(e.Err, context.DeadlineExceeded)
	}
	return false
}

// ConfigurationError is a broken lookup table or template
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %s", e.Key, e.Message)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
