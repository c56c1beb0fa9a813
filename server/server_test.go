package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/models"
	"github.com/haulmatch/loadboard/services"
	"github.com/haulmatch/loadboard/services/jwt"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  string          `json:"errors"`
}

func setupTestServer(t *testing.T) (*Server, *gin.Engine, *db.GormDB) {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on
	// the same in-memory store, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	gormDB := &db.GormDB{DB: gdb}

	conf := &config.Config{JWTSecret: "test-secret"}

	authRepo := db.NewAuthRepo(gormDB)
	loadRepo := db.NewLoadRepo(gormDB)
	truckRepo := db.NewTruckRepo(gormDB)
	applicationRepo := db.NewApplicationRepo(gormDB)
	reviewRepo := db.NewReviewRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)

	s := &Server{
		Config:             conf,
		AuthRepository:     authRepo,
		AuthService:        services.NewAuthService(authRepo, conf),
		LoadService:        services.NewLoadService(loadRepo, conf),
		TruckService:       services.NewTruckService(truckRepo, conf),
		ApplicationService: services.NewApplicationService(applicationRepo, loadRepo, nil, conf),
		ReviewService:      services.NewReviewService(reviewRepo, loadRepo, applicationRepo, authRepo, conf),
		MessageService:     services.NewMessageService(messageRepo, authRepo, nil, conf),
	}

	return s, s.SetupTestRouter(), gormDB
}

func seedUserWithToken(t *testing.T, s *Server, gdb *db.GormDB, email, roleName string, approved bool) (*models.User, string) {
	t.Helper()
	var role models.Role
	require.NoError(t, gdb.DB.Where("name = ?", roleName).First(&role).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Fullname:       "Test " + email,
		Email:          email,
		HashedPassword: string(hashed),
		RoleID:         role.ID,
		Approved:       approved,
	}
	require.NoError(t, gdb.DB.Create(user).Error)
	user.Role = role

	token, err := jwt.GenerateToken(user.ID, user.Email, s.Config.JWTSecret)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}
