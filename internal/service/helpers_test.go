package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"complaint-desk/internal/event"
	"complaint-desk/internal/model"
	"complaint-desk/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) last() event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func testHasher() *BcryptHasher {
	return NewBcryptHasher(bcrypt.MinCost)
}

func testCodec(t *testing.T) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)
	return codec
}

// seedAccount inserts a user with the given role and password directly into store.
func seedAccount(t *testing.T, store repository.Store, email string, role model.Role, password string) model.User {
	t.Helper()

	hash, err := testHasher().Hash(password)
	require.NoError(t, err)

	u := model.User{Email: email, PasswordHash: hash, FirstName: "Test", LastName: "User", Role: role}
	require.NoError(t, store.InTx(context.Background(), func(tx repository.Tx) error {
		return tx.Users().Create(context.Background(), &u)
	}))
	return u
}
