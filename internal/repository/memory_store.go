package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"complaint-desk/internal/model"
)

// MemoryStore is a Store kept entirely in process memory. Transactions are
// serialized and work on a copy that replaces the live state only on commit.
type MemoryStore struct {
	mu    sync.Mutex
	state memoryState
	now   func() time.Time
}

type memoryState struct {
	users           map[int64]model.User
	complaints      map[int64]model.Complaint
	nextUserID      int64
	nextComplaintID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: memoryState{
			users:      map[int64]model.User{},
			complaints: map[int64]model.Complaint{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := memoryState{
		users:           maps.Clone(s.state.users),
		complaints:      maps.Clone(s.state.complaints),
		nextUserID:      s.state.nextUserID,
		nextComplaintID: s.state.nextComplaintID,
	}

	if err := fn(memoryTx{state: &work, now: s.now}); err != nil {
		return err
	}

	s.state = work
	return nil
}

type memoryTx struct {
	state *memoryState
	now   func() time.Time
}

func (t memoryTx) Users() UserRepository {
	return memoryUsers(t)
}

func (t memoryTx) Complaints() ComplaintRepository {
	return memoryComplaints(t)
}

type memoryUsers memoryTx

func (r memoryUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.state.users {
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
	}

	r.state.nextUserID++
	u.ID = r.state.nextUserID
	u.CreatedAt = r.now()
	r.state.users[u.ID] = *u
	return nil
}

func (r memoryUsers) FindByID(_ context.Context, id int64) (model.User, error) {
	u, ok := r.state.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range r.state.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (r memoryUsers) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.state.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.state.users[id] = u
	return nil
}

type memoryComplaints memoryTx

func (r memoryComplaints) Create(_ context.Context, c *model.Complaint) error {
	if _, ok := r.state.users[c.ComplainerID]; !ok {
		return model.ErrComplainerMissing
	}

	r.state.nextComplaintID++
	c.ID = r.state.nextComplaintID
	c.CreatedOn = r.now()
	r.state.complaints[c.ID] = *c
	return nil
}

func (r memoryComplaints) FindByID(_ context.Context, id int64) (model.Complaint, error) {
	c, ok := r.state.complaints[id]
	if !ok {
		return model.Complaint{}, model.ErrComplaintNotFound
	}
	return c, nil
}

func (r memoryComplaints) List(_ context.Context) ([]model.Complaint, error) {
	return r.sorted(func(model.Complaint) bool { return true }), nil
}

func (r memoryComplaints) ListByComplainer(_ context.Context, complainerID int64) ([]model.Complaint, error) {
	return r.sorted(func(c model.Complaint) bool { return c.ComplainerID == complainerID }), nil
}

func (r memoryComplaints) UpdateStatus(_ context.Context, id int64, status model.Status) error {
	c, ok := r.state.complaints[id]
	if !ok {
		return model.ErrComplaintNotFound
	}
	c.Status = status
	r.state.complaints[id] = c
	return nil
}

func (r memoryComplaints) sorted(keep func(model.Complaint) bool) []model.Complaint {
	out := make([]model.Complaint, 0, len(r.state.complaints))
	for _, id := range slices.Sorted(maps.Keys(r.state.complaints)) {
		if c := r.state.complaints[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}
