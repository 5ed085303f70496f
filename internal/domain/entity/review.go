package entity

import "time"

// Review is a product rating owned by its author.
type Review struct {
	ID        string    `json:"_id"`
	Product   Ref       `json:"productId"`
	User      Ref       `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntityID implements the collection key.
func (r Review) EntityID() string {
	return r.ID
}

// OwnedBy reports whether userID authored the review.
func (r Review) OwnedBy(userID string) bool {
	return r.User.Is(userID)
}

// ReviewInput is the create form.
type ReviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment"`
}

// ReviewUpdate carries the only mutable review fields.
type ReviewUpdate struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment"`
}
