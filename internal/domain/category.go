package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Category groups menu items. Order defines display sequence and must stay a
// dense 0-based sequence after any reorder, matching list position.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

// MoveDirection shifts a category up (towards 0) or down within the list.
type MoveDirection int

const (
	MoveUp   MoveDirection = -1
	MoveDown MoveDirection = 1
)

// CategoryOrder is one entry of the full ordering array submitted upstream.
type CategoryOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

var (
	ErrCategoryNotFound = errors.New("category not found in list")
	ErrMoveOutOfRange   = errors.New("move target out of range")
)

// MoveCategory swaps the category with its neighbor in the given direction and
// reassigns every Order field to its new index. The input slice is not
// modified; the returned slice is the full permutation to display and submit.
func MoveCategory(list []Category, id string, dir MoveDirection) ([]Category, error) {
	idx := -1
	for i, c := range list {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrCategoryNotFound
	}
	swap := idx + int(dir)
	if swap < 0 || swap >= len(list) {
		return nil, ErrMoveOutOfRange
	}
	out := make([]Category, len(list))
	copy(out, list)
	out[idx], out[swap] = out[swap], out[idx]
	for i := range out {
		out[i].Order = i
	}
	return out, nil
}

// OrderingOf projects a category list into the {id, order} array the upstream
// reorder endpoint expects.
func OrderingOf(list []Category) []CategoryOrder {
	out := make([]CategoryOrder, len(list))
	for i, c := range list {
		out[i] = CategoryOrder{ID: c.ID, Order: c.Order}
	}
	return out
}

// ValidateOrdering checks that a submitted ordering is a contiguous 0-based
// permutation with no duplicate ids.
func ValidateOrdering(ordering []CategoryOrder) error {
	seen := make(map[string]bool, len(ordering))
	positions := make([]int, 0, len(ordering))
	for _, o := range ordering {
		if o.ID == "" {
			return errors.New("ordering entry missing id")
		}
		if seen[o.ID] {
			return fmt.Errorf("duplicate category id %q in ordering", o.ID)
		}
		seen[o.ID] = true
		positions = append(positions, o.Order)
	}
	sort.Ints(positions)
	for i, p := range positions {
		if p != i {
			return fmt.Errorf("ordering is not a dense 0-based sequence at position %d", i)
		}
	}
	return nil
}

// SortByOrder returns the list sorted by its Order fields, for display.
func SortByOrder(list []Category) []Category {
	out := make([]Category, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
