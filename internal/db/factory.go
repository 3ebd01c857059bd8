package db

import "fmt"

// NewStore picks a backend by name. An empty backend means no index is kept.
func NewStore(backend, path, dsn string) (Store, error) {
	switch backend {
	case "sqlite":
		return NewSQLiteStore(path)
	case "postgres":
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown db backend %q (want sqlite or postgres)", backend)
	}
}
