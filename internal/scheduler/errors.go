package scheduler

import "errors"

var ErrShuttingDown = errors.New("scheduler is shutting down")
