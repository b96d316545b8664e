package service_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/roster-api/internal/platform/sqldb"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
	"github.com/phrazzld/roster-api/internal/testdb"
)

type fixture struct {
	db     *sqldb.DB
	users  service.UserService
	groups service.GroupService
	hasher auth.PasswordHasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.Open(t)
	userStore := sqldb.NewUserStore(db, nil)
	groupStore := sqldb.NewGroupStore(db, nil)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	return &fixture{
		db:     db,
		users:  service.NewUserService(userStore, groupStore, hasher, db.DB, nil),
		groups: service.NewGroupService(groupStore, db.DB, nil),
		hasher: hasher,
	}
}

func aliceParams() service.CreateUserParams {
	return service.CreateUserParams{
		Username: "alice",
		Password: "s3cret",
		Email:    "alice@example.com",
		Name:     "Alice",
		Roles:    []string{"ROLE_ADMIN"},
	}
}
