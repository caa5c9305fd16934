package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/internal/domain"
	"gamehub/internal/repository/memory"
	"gamehub/internal/service"
)

const (
	loanDays  = 7
	feePerDay = 2
)

type fixture struct {
	hub   *service.Hub
	store *memory.Store
	now   time.Time
	mu    sync.Mutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		now:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.hub = service.NewHub(
		f.store.Users, f.store.Games, f.store.Rentals,
		loanDays, feePerDay,
		service.WithClock(func() time.Time {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.now
		}),
	)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// checkInvariants asserts the ledger-wide invariants that must hold after
// every command: stock is never negative, availability always mirrors stock,
// and the copies missing from each game's shelf equal its outstanding loans.
func checkInvariants(t *testing.T, f *fixture, initialStock map[int64]int) {
	t.Helper()
	snapshot, err := f.hub.Dashboard(context.Background())
	require.NoError(t, err)

	outstanding := make(map[int64]int)
	for _, r := range snapshot.Rentals {
		if !r.Returned {
			outstanding[r.GameID]++
		}
	}
	for _, g := range snapshot.Games {
		assert.GreaterOrEqual(t, g.Stock, 0, "game %d stock must never be negative", g.ID)
		assert.Equal(t, g.Stock > 0, g.Available, "game %d availability must mirror stock", g.ID)
		if initial, ok := initialStock[g.ID]; ok {
			assert.Equal(t, initial-g.Stock, outstanding[g.ID],
				"game %d: copies off the shelf must equal outstanding loans", g.ID)
		}
	}
}

func TestHub_AddUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user, err := f.hub.AddUser(ctx, "alice", "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Name)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := f.hub.AddUser(ctx, "", "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		_, err := f.hub.AddUser(ctx, "bob", "not-an-email")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("email is optional", func(t *testing.T) {
		_, err := f.hub.AddUser(ctx, "bob", "")
		assert.NoError(t, err)
	})

	t.Run("rejected commands allocate no identifier", func(t *testing.T) {
		_, err := f.hub.AddUser(ctx, "", "")
		require.Error(t, err)
		user, err := f.hub.AddUser(ctx, "carol", "")
		require.NoError(t, err)
		// alice=1, bob=2; the two rejections in between burned nothing.
		assert.Equal(t, int64(3), user.ID)
	})
}

func TestHub_AddGame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("success with stock", func(t *testing.T) {
		game, err := f.hub.AddGame(ctx, "Chess", 2)
		require.NoError(t, err)
		assert.Equal(t, 2, game.Stock)
		assert.True(t, game.Available)
	})

	t.Run("zero stock means unavailable", func(t *testing.T) {
		game, err := f.hub.AddGame(ctx, "Go", 0)
		require.NoError(t, err)
		assert.False(t, game.Available)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := f.hub.AddGame(ctx, "", 1)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		_, err := f.hub.AddGame(ctx, "Checkers", -1)
		assert.True(t, domain.IsValidation(err))
	})
}

func TestHub_UpdateStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	game, err := f.hub.AddGame(ctx, "Chess", 1)
	require.NoError(t, err)

	t.Run("absolute override recomputes availability", func(t *testing.T) {
		updated, err := f.hub.UpdateStock(ctx, game.ID, 0)
		require.NoError(t, err)
		assert.False(t, updated.Available)

		updated, err = f.hub.UpdateStock(ctx, game.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, updated.Stock)
		assert.True(t, updated.Available)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		_, err := f.hub.UpdateStock(ctx, game.ID, -5)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("missing game", func(t *testing.T) {
		_, err := f.hub.UpdateStock(ctx, 99, 1)
		assert.ErrorIs(t, err, domain.ErrGameNotFound)
	})
}

func TestHub_CreateRental(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.hub.AddUser(ctx, "alice", "")
	require.NoError(t, err)
	game, err := f.hub.AddGame(ctx, "Chess", 1)
	require.NoError(t, err)

	t.Run("user is checked before game", func(t *testing.T) {
		_, err := f.hub.CreateRental(ctx, 99, 98)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("missing game", func(t *testing.T) {
		_, err := f.hub.CreateRental(ctx, user.ID, 99)
		assert.ErrorIs(t, err, domain.ErrGameNotFound)
	})

	t.Run("success sets due date and takes a copy", func(t *testing.T) {
		rental, err := f.hub.CreateRental(ctx, user.ID, game.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusActive, rental.Status())
		assert.Equal(t, rental.RentalDate.Add(loanDays*24*time.Hour), rental.DueDate)
		assert.Zero(t, rental.LateFee)

		snapshot, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snapshot.Games[0].Stock)
		assert.False(t, snapshot.Games[0].Available)
	})

	t.Run("out of stock performs no mutation", func(t *testing.T) {
		before, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)

		_, err = f.hub.CreateRental(ctx, user.ID, game.ID)
		assert.ErrorIs(t, err, domain.ErrOutOfStock)

		after, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(before.Rentals), len(after.Rentals))
		assert.Equal(t, before.Games[0].Stock, after.Games[0].Stock)
	})

	checkInvariants(t, f, map[int64]int{game.ID: 1})
}

func TestHub_ReturnRental(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *domain.Rental) {
		f := newFixture(t)
		user, err := f.hub.AddUser(ctx, "alice", "")
		require.NoError(t, err)
		game, err := f.hub.AddGame(ctx, "Chess", 1)
		require.NoError(t, err)
		rental, err := f.hub.CreateRental(ctx, user.ID, game.ID)
		require.NoError(t, err)
		return f, rental
	}

	t.Run("on-time return owes nothing", func(t *testing.T) {
		f, rental := setup(t)
		f.advance(loanDays * 24 * time.Hour) // exactly on the due date

		returned, err := f.hub.ReturnRental(ctx, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), returned.LateFee)
		assert.Equal(t, domain.RentalStatusReturned, returned.Status())
		require.NotNil(t, returned.ReturnDate)

		snapshot, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Games[0].Stock)
		assert.True(t, snapshot.Games[0].Available)
	})

	t.Run("three days late owes six", func(t *testing.T) {
		f, rental := setup(t)
		f.advance((loanDays + 3) * 24 * time.Hour)

		returned, err := f.hub.ReturnRental(ctx, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), returned.LateFee)
	})

	t.Run("early return owes nothing", func(t *testing.T) {
		f, rental := setup(t)
		f.advance(24 * time.Hour)

		returned, err := f.hub.ReturnRental(ctx, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), returned.LateFee)
	})

	t.Run("second return is rejected, not reprocessed", func(t *testing.T) {
		f, rental := setup(t)
		_, err := f.hub.ReturnRental(ctx, rental.ID)
		require.NoError(t, err)

		_, err = f.hub.ReturnRental(ctx, rental.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyReturned)

		// Stock was incremented exactly once.
		snapshot, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Games[0].Stock)
	})

	t.Run("missing rental", func(t *testing.T) {
		f, _ := setup(t)
		_, err := f.hub.ReturnRental(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})

	t.Run("return against a deleted game still succeeds", func(t *testing.T) {
		f, rental := setup(t)
		require.NoError(t, f.hub.DeleteGame(ctx, rental.GameID))

		returned, err := f.hub.ReturnRental(ctx, rental.ID)
		require.NoError(t, err)
		assert.True(t, returned.Returned)
	})
}

func TestHub_DeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.hub.AddUser(ctx, "alice", "")
	require.NoError(t, err)

	require.NoError(t, f.hub.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, f.hub.DeleteUser(ctx, user.ID), domain.ErrUserNotFound)

	t.Run("user ids are never reused", func(t *testing.T) {
		next, err := f.hub.AddUser(ctx, "bob", "")
		require.NoError(t, err)
		assert.Greater(t, next.ID, user.ID)
	})
}

// TestHub_DashboardRoundTrip walks the add → rent → rent → return sequence
// and checks stock and availability at each step.
func TestHub_DashboardRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.hub.AddUser(ctx, "alice", "")
	require.NoError(t, err)
	game, err := f.hub.AddGame(ctx, "Chess", 2)
	require.NoError(t, err)

	snapshot, err := f.hub.Dashboard(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Games, 1)
	assert.Equal(t, 2, snapshot.Games[0].Stock)
	assert.True(t, snapshot.Games[0].Available)

	first, err := f.hub.CreateRental(ctx, user.ID, game.ID)
	require.NoError(t, err)
	_, err = f.hub.CreateRental(ctx, user.ID, game.ID)
	require.NoError(t, err)

	snapshot, err = f.hub.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, snapshot.Games[0].Stock)
	assert.False(t, snapshot.Games[0].Available)

	_, err = f.hub.ReturnRental(ctx, first.ID)
	require.NoError(t, err)

	snapshot, err = f.hub.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Games[0].Stock)
	assert.True(t, snapshot.Games[0].Available)

	checkInvariants(t, f, map[int64]int{game.ID: 2})
}

func TestHub_ConcurrentCreateRental(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.hub.AddUser(ctx, "alice", "")
	require.NoError(t, err)

	t.Run("two renters, one copy", func(t *testing.T) {
		game, err := f.hub.AddGame(ctx, "Chess", 1)
		require.NoError(t, err)

		start := make(chan struct{})
		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				<-start
				_, err := f.hub.CreateRental(ctx, user.ID, game.ID)
				results <- err
			}()
		}
		close(start)

		var successes, outOfStock int
		for i := 0; i < 2; i++ {
			switch err := <-results; {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, domain.ErrOutOfStock):
				outOfStock++
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, outOfStock)

		snapshot, err := f.hub.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, snapshot.Games[0].Stock)
		checkInvariants(t, f, map[int64]int{game.ID: 1})
	})

	t.Run("many renters, limited copies", func(t *testing.T) {
		const renters = 50
		const copies = 10
		game, err := f.hub.AddGame(ctx, "Go", copies)
		require.NoError(t, err)

		start := make(chan struct{})
		results := make(chan error, renters)
		var wg sync.WaitGroup
		for i := 0; i < renters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := f.hub.CreateRental(ctx, user.ID, game.ID)
				results <- err
			}()
		}
		close(start)
		wg.Wait()
		close(results)

		var successes, outOfStock int
		for err := range results {
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, domain.ErrOutOfStock) {
				outOfStock++
			}
		}
		assert.Equal(t, copies, successes)
		assert.Equal(t, renters-copies, outOfStock)
		checkInvariants(t, f, map[int64]int{game.ID: copies})
	})
}

func TestHub_ConcurrentReturnRental(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.hub.AddUser(ctx, "alice", "")
	require.NoError(t, err)
	game, err := f.hub.AddGame(ctx, "Chess", 1)
	require.NoError(t, err)
	rental, err := f.hub.CreateRental(ctx, user.ID, game.ID)
	require.NoError(t, err)

	start := make(chan struct{})
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			_, err := f.hub.ReturnRental(ctx, rental.ID)
			results <- err
		}()
	}
	close(start)

	var successes, alreadyReturned int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrAlreadyReturned):
			alreadyReturned++
		}
	}
	assert.Equal(t, 1, successes, "exactly one return wins")
	assert.Equal(t, 1, alreadyReturned)

	// The copy went back on the shelf exactly once.
	snapshot, err := f.hub.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Games[0].Stock)
	checkInvariants(t, f, map[int64]int{game.ID: 1})
}
