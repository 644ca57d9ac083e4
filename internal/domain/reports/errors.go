package reports

import "errors"

var ErrJobRunNotFound = errors.New("job run not found")
