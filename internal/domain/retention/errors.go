package retention

import "errors"

var ErrUnknownCategory = errors.New("unknown retention category")
