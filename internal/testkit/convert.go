package testkit

import (
	"fmt"

	"fortio.org/safecast"
)

func toUint32(v uint64) (uint32, error) {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		return 0, fmt.Errorf("element count overflow: %w", err)
	}
	return out, nil
}
