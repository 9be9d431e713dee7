// Package mapper converts between stored entity shapes and wire DTOs.
// All conversions are pure field-for-field copies.
package mapper

import "books_api/internal/model"

// ToBookResponse maps a stored book to its wire shape
func ToBookResponse(b *model.Book) model.BookResponse {
	return model.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ISBN:        b.ISBN,
	}
}

// ToBookResponses maps a slice of stored books
func ToBookResponses(books []model.Book) []model.BookResponse {
	responses := make([]model.BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, ToBookResponse(&books[i]))
	}
	return responses
}

// FromBookRequest builds a book entity from a request payload. The ID is left
// zero; the store assigns it on first insert.
func FromBookRequest(req model.BookRequest) *model.Book {
	return &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		ISBN:        req.ISBN,
	}
}

// ToUserResponse maps a user to its wire shape. The password hash is dropped.
func ToUserResponse(u *model.User) model.UserResponse {
	return model.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Authority: u.Authority,
	}
}

// ToUserResponses maps a slice of users
func ToUserResponses(users []model.User) []model.UserResponse {
	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
