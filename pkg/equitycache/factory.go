package equitycache

import (
	"fmt"

	"pokerequity-server/pkg/db"
)

// OpenStore returns the persisted store named by kind: "postgres", "badger",
// or "memory". The badger path is ignored for the other kinds.
func OpenStore(kind, badgerPath string) (Store, error) {
	switch kind {
	case "postgres":
		return NewPostgresStore(db.Instance()), nil
	case "badger":
		return NewBadgerStore(badgerPath)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache store %q", kind)
	}
}
