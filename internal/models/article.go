package models

import "time"

// Article.CategoryID and Image are pointers so an absent value is stored
// and served as JSON null, the way the original db.json was laid out.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Image      *string   `json:"image"`
	CategoryID *string   `json:"categoryId"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}
