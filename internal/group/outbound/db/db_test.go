package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/finsetu/backend/internal/group/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/finsetu/backend/internal/pkg/instrument"
)

var (
	testPool *pgxpool.Pool
	idSeq    int64
	idMu     sync.Mutex
)

func nextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	idSeq++
	return idSeq
}

func TestMain(m *testing.M) {
	if os.Getenv("FINSETU_DB_TESTS") == "" {
		fmt.Fprintln(os.Stderr, "skipping db tests, set FINSETU_DB_TESTS=1 to run them (requires docker)")
		os.Exit(0)
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finsetu_test"),
		postgres.WithUsername("finsetu"),
		postgres.WithPassword("finsetu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "container connection string: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}

	schema, err := os.ReadFile("../../../../db/schema.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read schema: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}

	testPool = pool
	code := m.Run()

	pool.Close()
	if err := testcontainers.TerminateContainer(container); err != nil {
		fmt.Fprintf(os.Stderr, "terminate container: %v\n", err)
	}

	os.Exit(code)
}

func newTestDB() *DB {
	return NewDB(testPool, instrument.NewNoop())
}

func seedUser(t *testing.T, username, phone string) int64 {
	t.Helper()

	id := nextID()
	if _, err := testPool.Exec(context.Background(),
		`INSERT INTO auth_users (id, username, phone_number, password, verified)
		 VALUES ($1, $2, $3, 'hashed-password', true)`,
		id, username, phone); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return id
}

func TestNewGroupAndList(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	admin := seedUser(t, "grp-admin", "+6282220000001")
	member := seedUser(t, "grp-member", "+6282220000002")

	groupID := nextID()
	err := s.NewGroup(ctx, entity.NewGroup{
		ID:          groupID,
		Name:        "Trip to Bali",
		Description: "Beach house split",
		CreatedBy:   admin,
		MemberIDs:   []int64{member},
	})
	if err != nil {
		t.Fatalf("new group: %v", err)
	}

	groups, err := s.GetGroupsByMember(ctx, member)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.ID != groupID || g.Name != "Trip to Bali" {
		t.Fatalf("unexpected group: %+v", g.Group)
	}
	if len(g.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(g.Members))
	}
	for _, m := range g.Members {
		if m.UserID == admin && !m.IsAdmin {
			t.Fatal("creator must be admin")
		}
		if m.UserID == member && m.IsAdmin {
			t.Fatal("plain member must not be admin")
		}
	}
}

func TestNewGroupUnknownMember(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	admin := seedUser(t, "grp-ghost-admin", "+6282220000003")

	err := s.NewGroup(ctx, entity.NewGroup{
		ID:        nextID(),
		Name:      "Ghost Group",
		CreatedBy: admin,
		MemberIDs: []int64{-42},
	})
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found from fk violation, got %v", err)
	}
}

func TestGetMember(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	admin := seedUser(t, "grp-gm-admin", "+6282220000004")
	outsider := seedUser(t, "grp-gm-out", "+6282220000005")

	groupID := nextID()
	if err := s.NewGroup(ctx, entity.NewGroup{
		ID: groupID, Name: "Members Only", CreatedBy: admin,
	}); err != nil {
		t.Fatalf("new group: %v", err)
	}

	m, err := s.GetMember(ctx, groupID, admin)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if !m.IsAdmin || m.Username != "grp-gm-admin" {
		t.Fatalf("unexpected member: %+v", m)
	}

	if _, err := s.GetMember(ctx, groupID, outsider); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found for outsider, got %v", err)
	}
}

func TestDeleteGroup(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	admin := seedUser(t, "grp-del-admin", "+6282220000006")

	groupID := nextID()
	if err := s.NewGroup(ctx, entity.NewGroup{
		ID: groupID, Name: "Short Lived", CreatedBy: admin,
	}); err != nil {
		t.Fatalf("new group: %v", err)
	}

	if err := s.DeleteGroup(ctx, groupID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	groups, err := s.GetGroupsByMember(ctx, admin)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	for _, g := range groups {
		if g.ID == groupID {
			t.Fatal("group must be gone, members cascade with it")
		}
	}

	if err := s.DeleteGroup(ctx, groupID); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}
}
