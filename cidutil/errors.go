package cidutil

import "errors"

var errInvalidPrefix = errors.New("cidutil: expected CIDv1 raw sha2-256")
