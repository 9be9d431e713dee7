package model

// Book represents a book record in the catalog
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
}

// BookRequest is the payload for creating a book and for full replacement on update.
// Every field overwrites the stored value on update, absent fields included.
type BookRequest struct {
	Title       string `json:"title" binding:"required,max=50"`
	Author      string `json:"author" binding:"required,max=50"`
	Description string `json:"description" binding:"max=1000"`
	ISBN        string `json:"isbn" binding:"required"`
}

// BookResponse is the wire shape of a book
type BookResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
}
