package model

import "time"

type FileAttachment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"-"`

	// Name the file is stored under on disk. Random, with the extension
	// inferred from content sniffing rather than whatever the client sent
	Filename string `gorm:"not null" json:"filename"`

	// Sniffed MIME type, nil when the content wasn't recognized
	FileType   *string   `json:"fileType,omitempty"`
	UploadDate time.Time `gorm:"not null" json:"-"`

	// Stays nil until the attachment is linked to a hoax. The link is
	// set once and never reassigned
	HoaxID *uint `gorm:"index" json:"-"`
}
