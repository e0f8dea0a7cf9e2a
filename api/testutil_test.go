package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hoaxify/social-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMailer records sent mails and can be told to fail the next send
type fakeMailer struct {
	activations []sentMail
	resets      []sentMail
	failNext    bool
}

type sentMail struct {
	To    string
	Token string
}

var errSMTPDown = errors.New("smtp down")

func (m *fakeMailer) SendAccountActivation(to, token string) error {
	if m.failNext {
		m.failNext = false
		return errSMTPDown
	}

	m.activations = append(m.activations, sentMail{To: to, Token: token})
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	if m.failNext {
		m.failNext = false
		return errSMTPDown
	}

	m.resets = append(m.resets, sentMail{To: to, Token: token})
	return nil
}

func newTestAPI(t *testing.T) (*API, *fakeMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("upload.dir", t.TempDir())
	viper.Set("upload.profile_dir", "profile")
	viper.Set("upload.attachment_dir", "attachment")
	viper.Set("upload.max_size", int64(5<<20))
	viper.Set("upload.max_image_size", int64(2<<20))

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = database.AutoMigrate(model.User{}, model.Token{}, model.Hoax{}, model.FileAttachment{})
	require.NoError(t, err)

	mail := &fakeMailer{}
	a, err := NewRouterWith(database, mail)
	require.NoError(t, err)

	return a, mail
}

type requestOpts struct {
	token string
	lang  string
}

func (a *API) doJSON(t *testing.T, method, path string, body any, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.lang != "" {
		req.Header.Set("Accept-Language", opts.lang)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func (a *API) uploadFile(t *testing.T, content []byte, opts requestOpts) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "original-name.bin")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/1.0/hoaxes/attachments", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func newMultipartWithoutFile(t *testing.T) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("unrelated", "field"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/1.0/hoaxes/attachments", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serveRaw(a *API, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// createActiveUser puts an already activated user straight into the
// database, skipping the registration flow
func createActiveUser(t *testing.T, a *API, username string) *model.User {
	t.Helper()

	hash, err := a.Hasher.GenerateFromPassword("P4ssword")
	require.NoError(t, err)

	user := model.User{
		Username:     username,
		Email:        fmt.Sprintf("%v@mail.com", username),
		PasswordHash: hash,
		Inactive:     false,
	}
	require.NoError(t, a.DB.Create(&user).Error)

	return &user
}

// login authenticates a user created by createActiveUser and returns
// the issued bearer token
func login(t *testing.T, a *API, user *model.User) string {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/api/1.0/auth", gin.H{
		"email":    user.Email,
		"password": "P4ssword",
	}, requestOpts{})
	require.Equal(t, http.StatusOK, w.Code)

	return decodeBody(t, w)["token"].(string)
}
