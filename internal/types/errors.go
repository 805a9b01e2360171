package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoName        = errors.New("product card has no name")
	ErrNoURL         = errors.New("product card has no resolvable URL")
	ErrNotVisible    = errors.New("product card is not visible")
	ErrMaxRetries    = errors.New("max retries exceeded")
	ErrCatalogFull   = errors.New("global product limit reached")
	ErrPageExhausted = errors.New("taxonomy page exhausted")
)

// CardError wraps a failure while processing a single product tile.
type CardError struct {
	Page    string
	Index   int
	Attempt int
	Err     error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("card %d on %q (attempt %d): %v", e.Index, e.Page, e.Attempt, e.Err)
}

func (e *CardError) Unwrap() error { return e.Err }

// TargetError wraps a failure of a whole taxonomy page crawl.
type TargetError struct {
	Target TaxonomyTarget
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("%s %q (%s): %v", e.Target.Kind, e.Target.Name, e.Target.URL, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// DetailError wraps a failure while enriching a record from its detail page.
type DetailError struct {
	Name string
	URL  string
	Err  error
}

func (e *DetailError) Error() string {
	return fmt.Sprintf("detail fetch for %q (%s): %v", e.Name, e.URL, e.Err)
}

func (e *DetailError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur while persisting the catalog.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
