package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisight/agrisight-backend/internal/logger"
	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/services"
	"github.com/agrisight/agrisight-backend/internal/types"
)

type memUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (m *memUserRepo) UpsertByEmail(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) SetRefreshToken(ctx context.Context, tx *gorm.DB, userID uuid.UUID, token *string) error {
	if u, ok := m.users[userID]; ok {
		u.RefreshToken = token
	}
	return nil
}

func setupAuthRouter(t *testing.T, role types.UserRole) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	repo := &memUserRepo{users: map[uuid.UUID]*types.User{}}
	authService := services.NewAuthService(log, repo, "access", "refresh", time.Minute, time.Hour)
	_, tokens, err := authService.ManualLogin(context.Background(), services.ManualLoginInput{
		Email: "user@example.com",
		Role:  string(role),
	})
	if err != nil {
		t.Fatalf("ManualLogin: %v", err)
	}

	am := NewAuthMiddleware(log, authService)
	router := gin.New()
	router.GET("/open", am.OptionalAuth(), func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": rd.Email})
	})
	router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin", am.RequireAuth(), am.RequireRoles(types.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/sensor", am.RequireAuth(), am.RequireRoles(types.RoleAgriIndustry, types.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens.AccessToken
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	router, _ := setupAuthRouter(t, types.RoleFarmer)

	if w := doRequest(router, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status=%d, want 401", w.Code)
	}
	if w := doRequest(router, "/protected", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status=%d, want 401", w.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router, token := setupAuthRouter(t, types.RoleFarmer)

	if w := doRequest(router, "/protected", token); w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200: %s", w.Code, w.Body)
	}
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	router, token := setupAuthRouter(t, types.RoleFarmer)

	if w := doRequest(router, "/protected?token="+token, ""); w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200: %s", w.Code, w.Body)
	}
}

func TestRequireRolesGating(t *testing.T) {
	tests := []struct {
		name       string
		role       types.UserRole
		path       string
		wantStatus int
	}{
		{"farmer blocked from admin", types.RoleFarmer, "/admin", http.StatusForbidden},
		{"admin allowed on admin", types.RoleAdmin, "/admin", http.StatusOK},
		{"farmer blocked from sensor", types.RoleFarmer, "/sensor", http.StatusForbidden},
		{"agri allowed on sensor", types.RoleAgriIndustry, "/sensor", http.StatusOK},
		{"admin allowed on sensor", types.RoleAdmin, "/sensor", http.StatusOK},
		{"pharma blocked from sensor", types.RolePharmaIndustry, "/sensor", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, token := setupAuthRouter(t, tt.role)
			if w := doRequest(router, tt.path, token); w.Code != tt.wantStatus {
				t.Fatalf("status=%d, want %d: %s", w.Code, tt.wantStatus, w.Body)
			}
		})
	}
}

func TestOptionalAuthPassesAnonymousAndIdentified(t *testing.T) {
	router, token := setupAuthRouter(t, types.RoleFarmer)

	w := doRequest(router, "/open", "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous status=%d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"anonymous":true}` {
		t.Fatalf("anonymous body=%s", body)
	}

	w = doRequest(router, "/open", token)
	if w.Code != http.StatusOK {
		t.Fatalf("identified status=%d, want 200", w.Code)
	}
	if body := w.Body.String(); body != `{"email":"user@example.com"}` {
		t.Fatalf("identified body=%s", body)
	}

	// An invalid token degrades to anonymous rather than failing the request.
	w = doRequest(router, "/open", "garbage")
	if w.Code != http.StatusOK || w.Body.String() != `{"anonymous":true}` {
		t.Fatalf("garbage token: status=%d body=%s", w.Code, w.Body)
	}
}
