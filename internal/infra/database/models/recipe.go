package models

// Recipe is the parent row. Ingredients hang off it with a cascading
// foreign key so a parent delete can never leave orphan rows behind.
type Recipe struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string       `json:"title" gorm:"type:varchar(100);index"`
	CookingTime int          `json:"cooking_time" gorm:"not null"`
	ViewsNumber int          `json:"views_number" gorm:"not null"`
	Body        string       `json:"recipe" gorm:"column:recipe;type:text"`
	Ingredients []Ingredient `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE;"`
}

type Ingredient struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string `json:"title" gorm:"type:varchar(100);index"`
	RecipeID int64  `json:"recipe_id" gorm:"index;not null"`
}
