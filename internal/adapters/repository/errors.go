package repository

import (
	"errors"
	"fmt"

	"github.com/okian/nora/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrProjectExists = fmt.Errorf("%w: project id already exists", model.ErrInvalidInput)
	ErrClosed        = errors.New("store is closed")
)
