package models

// IngredientEdge links an item to one of its ingredients. Quantity is
// expressed in the ingredient item's own unit.
type IngredientEdge struct {
	ItemToCreateID   int     `json:"item_to_create_id" db:"item_to_create_id"`
	IngredientItemID int     `json:"ingredient_item_id" db:"ingredient_item_id"`
	Quantity         float64 `json:"quantity" db:"quantity"`
}

// BOMGraph maps an item id to its ingredient item ids, in the order the
// edges were read from the store. Derived data: always reconstructible
// from the item_ingredients table.
type BOMGraph map[int][]int

// Ingredients returns the ingredient list for an item. A missing key means
// the item has no ingredients.
func (g BOMGraph) Ingredients(itemID int) []int {
	return g[itemID]
}

// HasEdge reports whether itemID already lists ingredientID directly.
func (g BOMGraph) HasEdge(itemID, ingredientID int) bool {
	for _, id := range g[itemID] {
		if id == ingredientID {
			return true
		}
	}
	return false
}

// Reaches reports whether target is reachable from start by following
// ingredient edges. Used to reject edges that would close a cycle.
func (g BOMGraph) Reaches(start, target int) bool {
	if start == target {
		return true
	}
	visited := map[int]bool{start: true}
	stack := append([]int(nil), g[start]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, g[n]...)
	}
	return false
}

type AddIngredientRequest struct {
	IngredientItemID int     `json:"ingredient_item_id" binding:"required"`
	Quantity         float64 `json:"quantity" binding:"required,gt=0"`
}

type UpdateIngredientRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}
