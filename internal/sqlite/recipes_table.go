// Recipe operations: CRUD over the recipe table. The composition list is
// stored as the newline-delimited "bag?filter" recipe string.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// RecipeGet hydrates the named recipe with its composition list and
// policy. Returns ErrRecipeNotFound if no recipe row exists.
func (s *Store) RecipeGet(name string) (*types.Recipe, error) {
	recipe := types.NewRecipe(name)

	var recipeString string
	err := s.db.QueryRow(
		"SELECT description, recipe_string FROM recipe WHERE name = ?", name,
	).Scan(&recipe.Desc, &recipeString)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrRecipeNotFound, name, err)
		}
		return nil, fmt.Errorf("getting recipe %s: %w", name, err)
	}

	recipe.Items, err = types.ParseRecipeString(recipeString)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", name, err)
	}

	recipe.Policy, err = s.loadPolicy(name)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// RecipePut upserts the recipe row and rewrites its policy rows in one
// transaction.
func (s *Store) RecipePut(recipe *types.Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	recipeString := recipe.String()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM recipe WHERE name = ?", recipe.Name).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking recipe existence: %w", err)
	}

	if exists {
		_, err = tx.Exec(
			"UPDATE recipe SET description = ?, recipe_string = ? WHERE name = ?",
			recipe.Desc, recipeString, recipe.Name,
		)
	} else {
		_, err = tx.Exec(
			"INSERT INTO recipe (name, description, recipe_string) VALUES (?, ?, ?)",
			recipe.Name, recipe.Desc, recipeString,
		)
	}
	if err != nil {
		return fmt.Errorf("persisting recipe %s: %w", recipe.Name, err)
	}

	if err := storePolicy(tx, recipe.Name, &recipe.Policy); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing recipe %s: %w", recipe.Name, err)
	}
	return nil
}

// RecipeDelete removes the recipe and its policy rows in one transaction.
// Returns ErrRecipeNotFound if no recipe row exists.
func (s *Store) RecipeDelete(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM recipe WHERE name = ?", name).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s: %v", types.ErrRecipeNotFound, name, err)
		}
		return fmt.Errorf("checking recipe existence: %w", err)
	}

	if err := deletePolicy(tx, name); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM recipe WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting recipe %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing recipe deletion %s: %w", name, err)
	}
	return nil
}

// ListRecipes returns every stored recipe, fully hydrated. Order
// unspecified.
func (s *Store) ListRecipes() ([]*types.Recipe, error) {
	rows, err := s.db.Query("SELECT name FROM recipe")
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning recipe name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}

	recipes := make([]*types.Recipe, 0, len(names))
	for _, name := range names {
		recipe, err := s.RecipeGet(name)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
