package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/internal/domain"
)

func TestIDAllocator(t *testing.T) {
	ids := NewIDAllocator()

	t.Run("starts at 1 per kind", func(t *testing.T) {
		assert.Equal(t, int64(1), ids.Next(KindUser))
		assert.Equal(t, int64(1), ids.Next(KindGame))
		assert.Equal(t, int64(1), ids.Next(KindRental))
	})

	t.Run("strictly increasing per kind", func(t *testing.T) {
		prev := ids.Next(KindUser)
		for i := 0; i < 100; i++ {
			next := ids.Next(KindUser)
			assert.Greater(t, next, prev)
			prev = next
		}
		// Other kinds are unaffected.
		assert.Equal(t, int64(1), ids.Last(KindGame))
	})
}

func TestUserRepository(t *testing.T) {
	store := NewStore()

	t.Run("create assigns ids and preserves creation order", func(t *testing.T) {
		for _, name := range []string{"alice", "bob", "carol"} {
			user := &domain.User{Name: name}
			require.NoError(t, store.Users.Create(user))
		}
		users := store.Users.List()
		require.Len(t, users, 3)
		assert.Equal(t, []string{"alice", "bob", "carol"}, []string{users[0].Name, users[1].Name, users[2].Name})
		assert.Equal(t, int64(1), users[0].ID)
		assert.Equal(t, int64(3), users[2].ID)
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := store.Users.GetByID(99)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("delete removes without disturbing order", func(t *testing.T) {
		require.NoError(t, store.Users.Delete(2))
		users := store.Users.List()
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Name)
		assert.Equal(t, "carol", users[1].Name)

		assert.ErrorIs(t, store.Users.Delete(2), domain.ErrUserNotFound)
	})

	t.Run("ids are never reused after deletion", func(t *testing.T) {
		user := &domain.User{Name: "dave"}
		require.NoError(t, store.Users.Create(user))
		assert.Equal(t, int64(4), user.ID)
	})
}

func TestGameRepository(t *testing.T) {
	store := NewStore()

	game := &domain.Game{Title: "Chess", Stock: 2}
	require.NoError(t, store.Games.Create(game))
	require.Equal(t, int64(1), game.ID)

	t.Run("availability derived at creation", func(t *testing.T) {
		assert.True(t, game.Available)

		empty := &domain.Game{Title: "Go", Stock: 0}
		require.NoError(t, store.Games.Create(empty))
		assert.False(t, empty.Available)
	})

	t.Run("decrement recomputes availability", func(t *testing.T) {
		require.NoError(t, store.Games.DecrementStock(game.ID))
		require.NoError(t, store.Games.DecrementStock(game.ID))

		got, err := store.Games.GetByID(game.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)
		assert.False(t, got.Available)
	})

	t.Run("decrement at zero fails without mutation", func(t *testing.T) {
		err := store.Games.DecrementStock(game.ID)
		assert.ErrorIs(t, err, domain.ErrOutOfStock)

		got, err := store.Games.GetByID(game.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)
	})

	t.Run("increment recomputes availability", func(t *testing.T) {
		require.NoError(t, store.Games.IncrementStock(game.ID))
		got, err := store.Games.GetByID(game.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Stock)
		assert.True(t, got.Available)
	})

	t.Run("set stock overrides and recomputes", func(t *testing.T) {
		require.NoError(t, store.Games.SetStock(game.ID, 0))
		got, err := store.Games.GetByID(game.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)

		require.NoError(t, store.Games.SetStock(game.ID, 5))
		got, err = store.Games.GetByID(game.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Stock)
		assert.True(t, got.Available)
	})

	t.Run("mutations on a missing game", func(t *testing.T) {
		assert.ErrorIs(t, store.Games.DecrementStock(42), domain.ErrGameNotFound)
		assert.ErrorIs(t, store.Games.IncrementStock(42), domain.ErrGameNotFound)
		assert.ErrorIs(t, store.Games.SetStock(42, 1), domain.ErrGameNotFound)
		assert.ErrorIs(t, store.Games.Delete(42), domain.ErrGameNotFound)
	})

	t.Run("game ids keep increasing after deletion", func(t *testing.T) {
		require.NoError(t, store.Games.Delete(game.ID))
		next := &domain.Game{Title: "Backgammon", Stock: 1}
		require.NoError(t, store.Games.Create(next))
		assert.Greater(t, next.ID, game.ID)
	})
}

func TestRentalRepository(t *testing.T) {
	store := NewStore()

	rental := &domain.Rental{UserID: 1, GameID: 1}
	require.NoError(t, store.Rentals.Create(rental))
	require.Equal(t, int64(1), rental.ID)

	t.Run("get returns a private copy", func(t *testing.T) {
		got, err := store.Rentals.GetByID(rental.ID)
		require.NoError(t, err)
		got.Returned = true

		again, err := store.Rentals.GetByID(rental.ID)
		require.NoError(t, err)
		assert.False(t, again.Returned, "mutating a fetched record must not touch the store")
	})

	t.Run("update writes back", func(t *testing.T) {
		got, err := store.Rentals.GetByID(rental.ID)
		require.NoError(t, err)
		got.Returned = true
		require.NoError(t, store.Rentals.Update(got))

		again, err := store.Rentals.GetByID(rental.ID)
		require.NoError(t, err)
		assert.True(t, again.Returned)
	})

	t.Run("missing rental", func(t *testing.T) {
		_, err := store.Rentals.GetByID(9)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
		assert.ErrorIs(t, store.Rentals.Update(&domain.Rental{ID: 9}), domain.ErrRentalNotFound)
	})
}
