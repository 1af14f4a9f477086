package models

// PitchRoomMessage is a persisted chat message. Messages are written before
// they are broadcast, so the table is the durable source of room history.
type PitchRoomMessage struct {
	Base
	PitchRoomID string `gorm:"index;not null" json:"pitchRoomId"`
	SenderID    string `gorm:"not null" json:"senderId"`
	Content     string `gorm:"type:text;not null" json:"content"`
}
