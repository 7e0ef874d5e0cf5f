package search

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrSearchFailed        = errors.New("search failed: no provider returned results")
)

// Record is a business as reported by a single provider, before merging.
type Record struct {
	Name          string
	Address       string
	City          string
	ZipCode       string
	Phone         string
	Email         string
	Website       string
	Industry      string
	EmployeeCount int
	Revenue       string
	SocialMedia   []string
	ReviewCount   int
	Rating        float64
	Latitude      float64
	Longitude     float64
}

// Provider is an external read-only business data source.
type Provider interface {
	Name() string
	Search(ctx context.Context, req Request) ([]Record, error)
}

// ProviderError reports a single failed provider call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrProviderUnavailable, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderUnavailable, e.Err}
}

// Warning is the non-fatal, user-facing trace of a ProviderError.
type Warning struct {
	Provider string `json:"provider"`
	Message  string `json:"message"`
}
