package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AttachmentUpload stores a multipart file for later association with a
// hoax. Responds with the attachment id the client echoes back when
// submitting the hoax
func (a *API) AttachmentUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		a.fail(c, http.StatusBadRequest, "attachment_size_limit")
		return
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		a.fail(c, http.StatusBadRequest, "attachment_size_limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "attachment_size_limit")

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "attachment_size_limit")

		zap.L().Error("Failed to read uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	attachment, err := a.Files.SaveAttachment(buf)
	if err != nil {
		a.fail(c, http.StatusInternalServerError, "attachment_size_limit")

		zap.L().Error("Failed to save attachment", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id": attachment.ID,
	})
}
