package memory

import (
	"gamehub/internal/domain"
	"gamehub/internal/repository"
)

type gameRepository struct {
	ids   *IDAllocator
	games map[int64]domain.Game
	order []int64
}

func NewGameRepository(ids *IDAllocator) repository.GameRepository {
	return &gameRepository{
		ids:   ids,
		games: make(map[int64]domain.Game),
	}
}

func (r *gameRepository) Create(game *domain.Game) error {
	game.ID = r.ids.Next(KindGame)
	game.Available = game.Stock > 0
	r.games[game.ID] = *game
	r.order = append(r.order, game.ID)
	return nil
}

func (r *gameRepository) GetByID(id int64) (*domain.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &game, nil
}

func (r *gameRepository) List() []domain.Game {
	out := make([]domain.Game, 0, len(r.games))
	for _, id := range r.order {
		if game, ok := r.games[id]; ok {
			out = append(out, game)
		}
	}
	return out
}

func (r *gameRepository) DecrementStock(id int64) error {
	game, ok := r.games[id]
	if !ok {
		return domain.ErrGameNotFound
	}
	if game.Stock <= 0 {
		return domain.ErrOutOfStock
	}
	game.Stock--
	game.Available = game.Stock > 0
	r.games[id] = game
	return nil
}

func (r *gameRepository) IncrementStock(id int64) error {
	game, ok := r.games[id]
	if !ok {
		return domain.ErrGameNotFound
	}
	game.Stock++
	game.Available = game.Stock > 0
	r.games[id] = game
	return nil
}

func (r *gameRepository) SetStock(id int64, stock int) error {
	game, ok := r.games[id]
	if !ok {
		return domain.ErrGameNotFound
	}
	game.Stock = stock
	game.Available = game.Stock > 0
	r.games[id] = game
	return nil
}

func (r *gameRepository) Delete(id int64) error {
	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}
