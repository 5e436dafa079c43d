package cart

import "errors"

var ErrCorruptSnapshot = errors.New("cart snapshot is corrupt")
