package types

import "errors"

var ErrInstancesEmpty = errors.New("instances empty")
