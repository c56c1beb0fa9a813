package models

// Review is feedback from one party of a delivered load about the
// other. AuthorID and SubjectID both reference users.
type Review struct {
	Model
	AuthorID  uint   `json:"author_id" gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID" json:"-"`
	SubjectID uint   `json:"subject_id" gorm:"not null;index"`
	Subject   User   `gorm:"foreignKey:SubjectID" json:"-"`
	LoadID    uint   `json:"load_id" gorm:"not null"`
	Load      Load   `gorm:"foreignKey:LoadID" json:"-"`
	Rating    int    `json:"rating" gorm:"not null"`
	Comment   string `json:"comment"`
}

type CreateReviewRequest struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	LoadID    uint   `json:"load_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" conform:"trim"`
}
