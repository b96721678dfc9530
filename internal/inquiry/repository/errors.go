package repository

import "errors"

var (
	ErrFailedToEmbed  = errors.New("failed to embed query")
	ErrFailedToSearch = errors.New("failed to search templates")
	ErrFailedToGet    = errors.New("failed to get record")
)
