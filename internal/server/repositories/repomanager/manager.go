// Package repomanager hands out repositories bound to a dbx.DBTX, so services
// can run the same repository code against the pool or inside a transaction.
package repomanager

import (
	"github.com/mbertrand/piquante/internal/dbx"
	"github.com/mbertrand/piquante/internal/server/repositories/sauces"
	"github.com/mbertrand/piquante/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Sauces(db dbx.DBTX) sauces.Repository
}
