// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/sipelita/dashboard/internal/app/system/ratelimit"
	"github.com/sipelita/dashboard/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Scoring data is
// owned by the remote API; Mongo only keeps the operator audit trail.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// LoginLimiter runs a sweeper goroutine; Shutdown stops it.
	LoginLimiter *ratelimit.LoginLimiter

	// AuditRetention prunes old audit events; nil when retention is off.
	AuditRetention *workers.AuditRetention
}
