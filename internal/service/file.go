package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hoaxify/social-api/internal/model"
	"hoaxify/social-api/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileStore owns the upload folders on disk and the attachment metadata
// rows. Disk and database are deliberately not transactional with each
// other, deletes are best-effort
type FileStore struct {
	DB *gorm.DB

	ProfileFolder    string
	AttachmentFolder string
}

// NewFileStore creates the upload folders from config if they don't
// exist yet
func NewFileStore(db *gorm.DB) (*FileStore, error) {
	uploadDir := viper.GetString("upload.dir")

	f := &FileStore{
		DB:               db,
		ProfileFolder:    filepath.Join(uploadDir, viper.GetString("upload.profile_dir")),
		AttachmentFolder: filepath.Join(uploadDir, viper.GetString("upload.attachment_dir")),
	}

	for _, dir := range []string{f.ProfileFolder, f.AttachmentFolder} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload folder %v, %w", dir, err)
		}
	}

	return f, nil
}

// SaveAttachment sniffs the content type from the bytes themselves,
// writes the file under a random name with the sniffed extension
// appended when known, and persists the metadata row
func (f *FileStore) SaveAttachment(buf []byte) (*model.FileAttachment, error) {
	filename, err := util.RandomString(32)
	if err != nil {
		return nil, err
	}

	attachment := model.FileAttachment{
		UploadDate: time.Now(),
	}

	mime := mimetype.Detect(buf)
	if ext := mime.Extension(); ext != "" {
		fileType := mime.String()
		attachment.FileType = &fileType
		filename += ext
	}
	attachment.Filename = filename

	err = os.WriteFile(filepath.Join(f.AttachmentFolder, filename), buf, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to write attachment, %w", err)
	}

	if err := f.DB.Create(&attachment).Error; err != nil {
		return nil, err
	}

	return &attachment, nil
}

// AssociateToHoax links an attachment to a hoax. The link is set once:
// a missing attachment or one that already belongs to a hoax makes this
// a no-op, never an error
func (f *FileStore) AssociateToHoax(attachmentID, hoaxID uint) error {
	var attachment model.FileAttachment

	err := f.DB.First(&attachment, attachmentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}

		return err
	}

	if attachment.HoaxID != nil {
		return nil
	}

	return f.DB.
		Model(&attachment).
		Update("hoax_id", hoaxID).
		Error
}

// SaveProfileImage stores already-validated image bytes under a random
// filename and returns that name
func (f *FileStore) SaveProfileImage(buf []byte) (string, error) {
	filename, err := util.RandomString(32)
	if err != nil {
		return "", err
	}

	err = os.WriteFile(filepath.Join(f.ProfileFolder, filename), buf, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to write profile image, %w", err)
	}

	return filename, nil
}

// DeleteProfileImage removes a stored profile image. Failures (for
// example a file that's already gone) are logged, not raised
func (f *FileStore) DeleteProfileImage(filename string) {
	err := os.Remove(filepath.Join(f.ProfileFolder, filename))
	if err != nil && !os.IsNotExist(err) {
		zap.L().Error("Failed to delete profile image", zap.Error(err), zap.String("filename", filename))
	}
}

// DeleteAttachmentFile removes an attachment from disk, best-effort
func (f *FileStore) DeleteAttachmentFile(filename string) {
	err := os.Remove(filepath.Join(f.AttachmentFolder, filename))
	if err != nil && !os.IsNotExist(err) {
		zap.L().Error("Failed to delete attachment", zap.Error(err), zap.String("filename", filename))
	}
}

// DeleteUserFiles removes everything a user owns on disk: their profile
// image and the files of every attachment on their hoaxes. Rows are
// left to the database cascade
func (f *FileStore) DeleteUserFiles(user *model.User) error {
	if user.Image != nil {
		f.DeleteProfileImage(*user.Image)
	}

	var filenames []string
	err := f.DB.
		Model(model.FileAttachment{}).
		Joins("JOIN hoaxes ON hoaxes.id = file_attachments.hoax_id").
		Where("hoaxes.user_id = ?", user.ID).
		Pluck("file_attachments.filename", &filenames).
		Error
	if err != nil {
		return err
	}

	for _, filename := range filenames {
		f.DeleteAttachmentFile(filename)
	}

	return nil
}
