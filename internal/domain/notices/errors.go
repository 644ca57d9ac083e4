package notices

import "errors"

var (
	ErrNoticeNotFound = errors.New("notice not found")
	ErrTitleRequired  = errors.New("title is required")
)
