// Package sqlxrepos implements the core repository interfaces on PostgreSQL
// via sqlx. Every repository holds a default executor and lets callers pass a
// transaction instead, so services can group repo calls atomically.
package sqlxrepos

import (
	"github.com/etasha-dev/scheduler/core"
)

func getExec(fallback core.DBExecutor, svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return fallback
}
