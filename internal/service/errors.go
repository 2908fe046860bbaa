package service

import "velvet-backend/internal/repository"

// ErrNotFound re-exports the repository sentinel so callers above the
// service layer need not import the repository package.
var ErrNotFound = repository.ErrNotFound
