package model

type Hoax struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content string `gorm:"not null" json:"content"`
	// Unix millisecond timestamp
	Timestamp int64 `gorm:"not null" json:"timestamp"`
	UserID    uint  `gorm:"index;not null" json:"-"`

	User       User            `gorm:"foreignKey:UserID" json:"-"`
	Attachment *FileAttachment `gorm:"foreignKey:HoaxID;constraint:OnDelete:CASCADE" json:"-"`
}
