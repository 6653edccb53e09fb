package dto

type PostRequest struct {
	Content  string  `json:"content" binding:"required,max=3000"`
	ImageKey *string `json:"imageKey"`
}
