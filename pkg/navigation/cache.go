package navigation

import "mymixes/domain"

// RecipeCache maps recipe id to a fully loaded recipe. Put and Remove return a
// new cache and never modify the receiver.
type RecipeCache struct {
	items map[uint]domain.RecipeDetail
}

func (c RecipeCache) Get(id uint) (domain.RecipeDetail, bool) {
	recipe, ok := c.items[id]
	return recipe, ok
}

func (c RecipeCache) Len() int {
	return len(c.items)
}

func (c RecipeCache) Put(recipe domain.RecipeDetail) RecipeCache {
	next := c.clone()
	next.items[recipe.ID] = recipe
	return next
}

func (c RecipeCache) Remove(id uint) RecipeCache {
	if _, ok := c.items[id]; !ok {
		return c
	}
	next := c.clone()
	delete(next.items, id)
	return next
}

func (c RecipeCache) clone() RecipeCache {
	items := make(map[uint]domain.RecipeDetail, len(c.items)+1)
	for id, recipe := range c.items {
		items[id] = recipe
	}
	return RecipeCache{items: items}
}
