package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/bookshelf-server/internal/crypto"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/repository/memory"
	"github.com/dtroode/bookshelf-server/internal/testutil"
)

type fixture struct {
	users   *memory.UserRepository
	books   *memory.BookRepository
	account *Account
	catalog *Catalog
	reading *Reading
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	users := memory.NewUserRepository()
	books := memory.NewBookRepository()
	log := testutil.MakeNoopLogger()
	m := metrics.New()

	return fixture{
		users:   users,
		books:   books,
		account: NewAccount(users, crypto.NewBcrypt(bcrypt.MinCost), log, m),
		catalog: NewCatalog(books, log, m),
		reading: NewReading(users, books, log, m),
	}
}
