package domain

// Recipe is an aggregate root: the recipe row together with its owned
// ingredient collection, loaded and stored as one consistency unit.
type Recipe struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	CookingTime int          `json:"cooking_time"`
	ViewsNumber int          `json:"views_number"`
	Body        string       `json:"recipe"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Ingredient belongs to exactly one Recipe and never outlives it.
type Ingredient struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}
