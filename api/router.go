// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"hoaxify/social-api/db"
	"hoaxify/social-api/internal/service"
	"hoaxify/social-api/middleware"
	"hoaxify/social-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Hasher *security.PasswordHasher
	Mail   service.Mailer
	Tokens *service.TokenService
	Files  *service.FileStore

	TokenSweep      *service.TokenCleanup
	AttachmentSweep *service.AttachmentCleanup
}

func NewRouter() (*API, error) {
	makeLogger()

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	return NewRouterWith(db, service.NewSMTPMailer())
}

// NewRouterWith wires the full API around an existing database handle
// and mailer. Split from NewRouter so tests can plug in their own
func NewRouterWith(database *gorm.DB, mail service.Mailer) (*API, error) {
	files, err := service.NewFileStore(database)
	if err != nil {
		return nil, err
	}

	a := &API{
		DB:     database,
		Hasher: security.New(),
		Mail:   mail,
		Tokens: service.NewTokenService(database),
		Files:  files,

		TokenSweep:      service.NewTokenCleanup(database, time.Hour),
		AttachmentSweep: service.NewAttachmentCleanup(files, 24*time.Hour),
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
		middleware.NewAuthMiddleware(a.Tokens),
	)

	router.HandleMethodNotAllowed = true
	a.Router.MaxMultipartMemory = 5 << 20

	maxUploadSize := viper.GetInt64("upload.max_size")

	// Static files, served with a year-long cache header
	{
		// GET /images/:filename		-> Serves a profile image
		router.GET("/images/:filename", a.ServeStatic(a.Files.ProfileFolder))

		// GET /attachments/:filename		-> Serves a hoax attachment
		router.GET("/attachments/:filename", a.ServeStatic(a.Files.AttachmentFolder))
	}

	main := router.Group("/api/1.0")

	auth := main.Group("/auth")
	{
		// POST /api/1.0/auth			-> Logs in a user and returns a bearer token
		auth.POST("", a.AuthLogin)

		// POST /api/1.0/auth/logout		-> Deletes the caller's token if present
		auth.POST("/logout", a.AuthLogout)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(3<<20))
	{
		// GET /api/1.0/users			-> Paginated listing of active users
		users.GET("", a.UserList)

		// GET /api/1.0/users/:id		-> Returns a single active user
		users.GET("/:id", a.UserFetch)

		// POST /api/1.0/users			-> Registers a new user
		users.POST("", a.UserRegister)

		// POST /api/1.0/users/token/:token	-> Activates an account
		users.POST("/token/:token", a.UserActivate)

		// PUT /api/1.0/users/:id		-> Updates username and profile image
		users.PUT("/:id", a.UserUpdate)

		// DELETE /api/1.0/users/:id		-> Deletes a user and everything they own
		users.DELETE("/:id", a.UserDelete)

		// POST /api/1.0/users/password		-> Requests a password reset mail
		users.POST("/password", a.PasswordResetRequest)

		// PUT /api/1.0/users/password		-> Sets a new password with a reset token
		users.PUT("/password", a.PasswordUpdate)

		// GET /api/1.0/users/:id/hoaxes	-> Paginated hoaxes of one user
		users.GET("/:id/hoaxes", a.HoaxList)
	}

	hoaxes := main.Group("/hoaxes")
	{
		// POST /api/1.0/hoaxes			-> Submits a new hoax
		hoaxes.POST("", a.HoaxCreate)

		// GET /api/1.0/hoaxes			-> Paginated listing of all hoaxes
		hoaxes.GET("", a.HoaxList)

		// DELETE /api/1.0/hoaxes/:id		-> Deletes an owned hoax
		hoaxes.DELETE("/:id", a.HoaxDelete)

		// POST /api/1.0/hoaxes/attachments	-> Uploads a file to attach to a hoax later
		// The limiter leaves headroom for multipart framing, the exact
		// file size cap is enforced in the handler
		hoaxes.POST("/attachments", middleware.BodySizeLimiter(maxUploadSize+1<<20), a.AttachmentUpload)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
