package kvrepo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/infrastructure/db/memory"
)

func TestUserRepository_AppendAndList(t *testing.T) {
	store := memory.NewKVStore()
	repo := NewUserRepository(store)
	ctx := context.Background()

	users, err := repo.List(ctx)
	if err != nil || users != nil {
		t.Fatalf("empty store should list nothing, got (%v, %v)", users, err)
	}

	u := domain.User{ID: "u1", Email: "a@x.com", Name: "A X", CreatedAt: time.Now().UTC()}
	if err := repo.Append(ctx, u); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := repo.Append(ctx, domain.User{ID: "u2", Email: "b@x.com"}); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	users, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 || users[0].Email != "a@x.com" || users[1].Email != "b@x.com" {
		t.Fatalf("unexpected list: %+v", users)
	}
}

func TestUserRepository_CorruptRecord(t *testing.T) {
	store := memory.NewKVStore()
	_ = store.Set(context.Background(), ports.UserListKey, "{not json")

	_, err := NewUserRepository(store).List(context.Background())
	var parseErr *domain.StorageParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected StorageParseError, got %v", err)
	}
	if parseErr.Key != ports.UserListKey {
		t.Fatalf("unexpected key in parse error: %q", parseErr.Key)
	}
}

func TestSessionRepository_PutGetClear(t *testing.T) {
	repo := NewSessionRepository(memory.NewKVStore())
	ctx := context.Background()

	session, err := repo.Get(ctx)
	if err != nil || session != nil {
		t.Fatalf("expected no session, got (%v, %v)", session, err)
	}

	if err := repo.Put(ctx, domain.Session{User: domain.User{ID: "u1", Email: "a@x.com"}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	session, err = repo.Get(ctx)
	if err != nil || session == nil || session.User.ID != "u1" {
		t.Fatalf("unexpected session: (%+v, %v)", session, err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	session, err = repo.Get(ctx)
	if err != nil || session != nil {
		t.Fatalf("session survived clear: (%+v, %v)", session, err)
	}
}

func TestSessionRepository_CorruptRecord(t *testing.T) {
	store := memory.NewKVStore()
	_ = store.Set(context.Background(), ports.SessionKey, `"just a string"`)

	_, err := NewSessionRepository(store).Get(context.Background())
	var parseErr *domain.StorageParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected StorageParseError, got %v", err)
	}
}

func TestTaskRepository_SaveAndLoad(t *testing.T) {
	repo := NewTaskRepository(memory.NewKVStore())
	ctx := context.Background()

	record, err := repo.Load(ctx, "u1")
	if err != nil || record != nil {
		t.Fatalf("expected no record, got (%v, %v)", record, err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	saved := domain.TaskRecord{
		UserID:      "u1",
		LastUpdated: now,
		Tasks: []domain.Task{
			{ID: "t1", UserID: "u1", Title: "x", Priority: domain.PriorityHigh, CreatedAt: now},
		},
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	record, err = repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if record.UserID != "u1" || len(record.Tasks) != 1 || record.Tasks[0].Title != "x" {
		t.Fatalf("round trip mismatch: %+v", record)
	}
	if !record.LastUpdated.Equal(now) {
		t.Fatalf("lastUpdated mismatch: %v != %v", record.LastUpdated, now)
	}

	// Records are per user: another user sees nothing.
	other, err := repo.Load(ctx, "u2")
	if err != nil || other != nil {
		t.Fatalf("records leaked across users: (%+v, %v)", other, err)
	}
}

func TestTaskRepository_CorruptRecord(t *testing.T) {
	store := memory.NewKVStore()
	_ = store.Set(context.Background(), ports.TasksKey("u1"), "[1,2,3")

	_, err := NewTaskRepository(store).Load(context.Background(), "u1")
	var parseErr *domain.StorageParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected StorageParseError, got %v", err)
	}
}

func TestActivityRepository_NewestFirstAndCapped(t *testing.T) {
	repo := NewActivityRepository(memory.NewKVStore())
	ctx := context.Background()

	for i := 0; i < activityCap+10; i++ {
		err := repo.Insert(ctx, domain.ActivityEvent{
			UserID:    "u1",
			TaskID:    fmt.Sprintf("t%d", i),
			Action:    domain.ActivityCreated,
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	all, err := repo.Recent(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(all) != activityCap {
		t.Fatalf("cap not enforced: %d events", len(all))
	}
	if all[0].TaskID != fmt.Sprintf("t%d", activityCap+9) {
		t.Fatalf("expected newest first, got %s", all[0].TaskID)
	}

	limited, err := repo.Recent(ctx, "u1", 5)
	if err != nil || len(limited) != 5 {
		t.Fatalf("limit not applied: (%d, %v)", len(limited), err)
	}
}
