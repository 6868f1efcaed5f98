package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"complaint-desk/internal/model"
)

func seedUser(t *testing.T, store *MemoryStore, email string) model.User {
	t.Helper()

	u := model.User{Email: email, PasswordHash: "hash", FirstName: "Ann", LastName: "Lee", Role: model.RoleComplainer}
	require.NoError(t, store.InTx(context.Background(), func(tx Tx) error {
		return tx.Users().Create(context.Background(), &u)
	}))
	return u
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns ids and enforces unique email", func(t *testing.T) {
		store := NewMemoryStore()
		first := seedUser(t, store, "a@example.com")
		second := seedUser(t, store, "b@example.com")
		require.Equal(t, int64(1), first.ID)
		require.Equal(t, int64(2), second.ID)
		require.False(t, first.CreatedAt.IsZero())

		err := store.InTx(ctx, func(tx Tx) error {
			return tx.Users().Create(ctx, &model.User{Email: "a@example.com"})
		})
		require.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("rolls back every write when fn fails", func(t *testing.T) {
		store := NewMemoryStore()
		owner := seedUser(t, store, "owner@example.com")
		boom := errors.New("boom")

		err := store.InTx(ctx, func(tx Tx) error {
			c := model.Complaint{Title: "t", ComplainerID: owner.ID, Status: model.StatusPending}
			require.NoError(t, tx.Complaints().Create(ctx, &c))
			require.NoError(t, tx.Users().UpdatePassword(ctx, owner.ID, "other"))
			return boom
		})
		require.ErrorIs(t, err, boom)

		require.NoError(t, store.InTx(ctx, func(tx Tx) error {
			all, err := tx.Complaints().List(ctx)
			require.NoError(t, err)
			require.Empty(t, all)

			u, err := tx.Users().FindByID(ctx, owner.ID)
			require.NoError(t, err)
			require.Equal(t, "hash", u.PasswordHash)
			return nil
		}))
	})

	t.Run("rejects complaints for unknown complainers", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.InTx(ctx, func(tx Tx) error {
			return tx.Complaints().Create(ctx, &model.Complaint{ComplainerID: 42})
		})
		require.ErrorIs(t, err, model.ErrComplainerMissing)
	})

	t.Run("filters and orders complaints", func(t *testing.T) {
		store := NewMemoryStore()
		a := seedUser(t, store, "a@example.com")
		b := seedUser(t, store, "b@example.com")

		require.NoError(t, store.InTx(ctx, func(tx Tx) error {
			for _, owner := range []int64{a.ID, b.ID, a.ID} {
				c := model.Complaint{Title: "t", ComplainerID: owner, Status: model.StatusPending}
				if err := tx.Complaints().Create(ctx, &c); err != nil {
					return err
				}
			}
			return nil
		}))

		require.NoError(t, store.InTx(ctx, func(tx Tx) error {
			mine, err := tx.Complaints().ListByComplainer(ctx, a.ID)
			require.NoError(t, err)
			require.Len(t, mine, 2)
			require.Equal(t, int64(1), mine[0].ID)
			require.Equal(t, int64(3), mine[1].ID)

			require.ErrorIs(t, tx.Complaints().UpdateStatus(ctx, 99, model.StatusApproved), model.ErrComplaintNotFound)
			return nil
		}))
	})

	t.Run("honours a cancelled context", func(t *testing.T) {
		store := NewMemoryStore()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		called := false
		err := store.InTx(cancelled, func(Tx) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.False(t, called)
	})
}
