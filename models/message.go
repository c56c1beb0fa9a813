package models

// Message is a direct message between two users. Messages are
// append-only: there is no edit or delete, and a conversation is the
// set of messages between one unordered pair of user ids.
type Message struct {
	Model
	SenderID   uint   `json:"sender_id" gorm:"not null;index"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID uint   `json:"receiver_id" gorm:"not null;index"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"-"`
	Content    string `json:"content" gorm:"type:text;not null"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}
