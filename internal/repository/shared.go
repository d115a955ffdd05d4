package repository

import "github.com/madpixels/lingocards/internal/entity"

// Page holds offset pagination parameters for listing entities.
type Page struct {
	Offset int
	Limit  int
}

// Validate rejects programmer errors before they reach storage.
func (p Page) Validate() error {
	if p.Limit <= 0 || p.Offset < 0 {
		return entity.ErrInvalidPagination
	}
	return nil
}
