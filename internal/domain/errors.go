package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("no ingredients provided")
	ErrBatchTooLarge     = errors.New("too many queries in batch")
	ErrClassifierFailure = errors.New("classifier failure")
	ErrCorpusEmpty       = errors.New("corpus has no usable recipes")
)
