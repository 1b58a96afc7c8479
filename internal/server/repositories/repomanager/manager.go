package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/habits"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Habits(db dbx.DBTX) habits.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
