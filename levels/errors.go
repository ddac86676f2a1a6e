package levels

import "errors"

var ErrDuplicateName = errors.New("duplicate entity name")
