package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cookeryapp/cookery-server/internal/domain"
	"github.com/cookeryapp/cookery-server/internal/store"
)

// recipeColumns is the ordered list of columns selected in recipe queries.
// Must match the scan order in scanRecipe.
const recipeColumns = `id, user_id, title, time_minutes, price_cents, link, description,
	created_at, updated_at`

// scanRecipe scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Recipe. Tag and ingredient associations are loaded separately.
func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var r domain.Recipe

	var (
		priceCents int64
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&r.ID,
		&r.UserID,
		&r.Title,
		&r.TimeMinutes,
		&priceCents,
		&r.Link,
		&r.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Price = domain.PriceFromHundredths(priceCents)

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts a new recipe row together with its tag and ingredient
// associations in one transaction, and assigns the generated ID. A failure
// anywhere rolls back the whole write, so a recipe is never visible with a
// partial association set.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe, tagIDs, ingredientIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (
			user_id, title, time_minutes, price_cents, link, description,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UserID,
		r.Title,
		r.TimeMinutes,
		r.Price.Hundredths(),
		r.Link,
		r.Description,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
	)
	if err != nil {
		return err
	}

	r.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}

	if len(tagIDs) > 0 {
		if err := reconcileAssociations(ctx, tx, "recipe_tags", "tag_id", r.ID, tagIDs); err != nil {
			return err
		}
	}
	if len(ingredientIDs) > 0 {
		if err := reconcileAssociations(ctx, tx, "recipe_ingredients", "ingredient_id", r.ID, ingredientIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecipe retrieves one of a user's recipes by ID with its tag and
// ingredient associations loaded. Recipes owned by other users are invisible
// and report store.ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, userID string, recipeID int64) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ? AND user_id = ?`,
		recipeID, userID)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadRecipeAssociations(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns all of a user's recipes, newest first, with
// associations loaded.
func (s *Store) ListRecipes(ctx context.Context, userID string) ([]*domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		if err := s.loadRecipeAssociations(ctx, r); err != nil {
			return nil, err
		}
	}

	if recipes == nil {
		recipes = []*domain.Recipe{}
	}

	return recipes, nil
}

// UpdateRecipe performs a full row update on an existing recipe, scoped to
// its owner, and replaces its tag and ingredient sets in the same
// transaction. A nil tagIDs or ingredientIDs leaves that set untouched; a
// non-nil empty slice clears it. Returns store.ErrNotFound if the recipe
// does not exist or belongs to another user.
func (s *Store) UpdateRecipe(ctx context.Context, r *domain.Recipe, tagIDs, ingredientIDs *[]int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE recipes SET
			title = ?,
			time_minutes = ?,
			price_cents = ?,
			link = ?,
			description = ?,
			updated_at = ?
		WHERE id = ? AND user_id = ?`,
		r.Title,
		r.TimeMinutes,
		r.Price.Hundredths(),
		r.Link,
		r.Description,
		formatTime(r.UpdatedAt),
		r.ID,
		r.UserID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if tagIDs != nil {
		if err := reconcileAssociations(ctx, tx, "recipe_tags", "tag_id", r.ID, *tagIDs); err != nil {
			return err
		}
	}
	if ingredientIDs != nil {
		if err := reconcileAssociations(ctx, tx, "recipe_ingredients", "ingredient_id", r.ID, *ingredientIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteRecipe removes one of a user's recipes. Junction rows cascade;
// tags and ingredients themselves survive. Returns store.ErrNotFound if the
// recipe does not exist or belongs to another user.
func (s *Store) DeleteRecipe(ctx context.Context, userID string, recipeID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, recipeID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetRecipeTags replaces all tag associations for a recipe in a single
// transaction. The new set is diffed against the current rows so only the
// associations that actually changed are written. An empty slice clears them.
func (s *Store) SetRecipeTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	return s.setAssociations(ctx, "recipe_tags", "tag_id", recipeID, tagIDs)
}

// SetRecipeIngredients replaces all ingredient associations for a recipe in a
// single transaction, diffing against the current rows like SetRecipeTags.
func (s *Store) SetRecipeIngredients(ctx context.Context, recipeID int64, ingredientIDs []int64) error {
	return s.setAssociations(ctx, "recipe_ingredients", "ingredient_id", recipeID, ingredientIDs)
}

// setAssociations runs a single junction reconciliation in its own
// transaction.
func (s *Store) setAssociations(ctx context.Context, table, column string, recipeID int64, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := reconcileAssociations(ctx, tx, table, column, recipeID, ids); err != nil {
		return err
	}
	return tx.Commit()
}

// reconcileAssociations reconciles a recipe junction table against a target
// id set inside the caller's transaction: rows missing from the target are
// deleted, new ids are inserted, and rows already present are left
// untouched. Duplicate ids in the input collapse.
func reconcileAssociations(ctx context.Context, tx *sql.Tx, table, column string, recipeID int64, ids []int64) error {
	rows, err := tx.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE recipe_id = ?`, column, table), recipeID)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	current := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan %s: %w", table, err)
		}
		current[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate %s: %w", table, err)
	}
	rows.Close()

	target := make(map[int64]bool, len(ids))
	for _, id := range ids {
		target[id] = true
	}

	for id := range current {
		if target[id] {
			continue
		}
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = ? AND %s = ?`, table, column),
			recipeID, id)
		if err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	for id := range target {
		if current[id] {
			continue
		}
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (recipe_id, %s) VALUES (?, ?)`, table, column),
			recipeID, id)
		if err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	return nil
}

// loadRecipeAssociations populates a recipe's Tags and Ingredients slices.
func (s *Store) loadRecipeAssociations(ctx context.Context, r *domain.Recipe) error {
	tags, err := s.getRecipeTags(ctx, r.ID)
	if err != nil {
		return err
	}
	r.Tags = tags

	ingredients, err := s.getRecipeIngredients(ctx, r.ID)
	if err != nil {
		return err
	}
	r.Ingredients = ingredients

	return nil
}

func (s *Store) getRecipeTags(ctx context.Context, recipeID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.name
		FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = ?
		ORDER BY t.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe_tags: %w", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) getRecipeIngredients(ctx context.Context, recipeID int64) ([]*domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.user_id, i.name
		FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = ?
		ORDER BY i.name DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe_ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []*domain.Ingredient{}
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
