package service

import (
	"github.com/opryshko/vitryna/internal/domain"
)

// Catalog errors
var (
	ErrProductNotFound = domain.ErrProductNotFound
	ErrPresetNotFound  = domain.ErrPresetNotFound

	// ErrQuerySuperseded marks a browse result that lost the race against a
	// newer query; callers drop it instead of rendering stale rows.
	ErrQuerySuperseded = domain.Errorf(domain.ECONFLICT, "", "Query superseded by a newer request")
)
