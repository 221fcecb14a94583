package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// ingredientColumns is the ordered list of columns selected in ingredient
// queries. Must match the scan order in scanIngredient.
const ingredientColumns = `id, user_id, name`

func scanIngredient(scanner interface{ Scan(dest ...any) error }) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := scanner.Scan(&ing.ID, &ing.UserID, &ing.Name); err != nil {
		return nil, err
	}
	return &ing, nil
}

// CreateIngredient inserts a new ingredient for a user.
// Returns store.ErrAlreadyExists when the user already has one of that name.
func (s *Store) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (user_id, name) VALUES (?, ?)`,
		ing.UserID,
		ing.Name,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	ing.ID, err = result.LastInsertId()
	return err
}

// GetIngredient retrieves one of a user's ingredients by ID. Other users'
// ingredients are invisible and report store.ErrNotFound.
func (s *Store) GetIngredient(ctx context.Context, userID string, ingredientID int64) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE id = ? AND user_id = ?`,
		ingredientID, userID)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// GetIngredientByName retrieves a user's ingredient by exact name.
// Returns store.ErrNotFound if the user has no such ingredient.
func (s *Store) GetIngredientByName(ctx context.Context, userID, name string) (*domain.Ingredient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE user_id = ? AND name = ?`,
		userID, name)

	ing, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// ListIngredients returns all of a user's ingredients ordered by name descending.
func (s *Store) ListIngredients(ctx context.Context, userID string) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE user_id = ? ORDER BY name DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ingredients == nil {
		ingredients = []*domain.Ingredient{}
	}

	return ingredients, nil
}

// FindOrCreateIngredient finds a user's ingredient by name or creates it.
// Returns (ingredient, created, error).
func (s *Store) FindOrCreateIngredient(ctx context.Context, userID, name string) (*domain.Ingredient, bool, error) {
	existing, err := s.GetIngredientByName(ctx, userID, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	ing := &domain.Ingredient{UserID: userID, Name: name}
	if err := s.CreateIngredient(ctx, ing); err != nil {
		if err == store.ErrAlreadyExists {
			// Race: another request created it between the lookup and insert.
			existing, err := s.GetIngredientByName(ctx, userID, name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return ing, true, nil
}
