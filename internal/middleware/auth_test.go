package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"haramaya.com/pharmatrack/internal/dto"
	"haramaya.com/pharmatrack/internal/entity"
	"haramaya.com/pharmatrack/pkg/response"
	"haramaya.com/pharmatrack/pkg/token"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*entity.User
	findErr error
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) Create(context.Context, *entity.User, []entity.Role) error { return nil }
func (r *stubUserRepo) FindByUsernameOrEmail(context.Context, string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUserRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubUserRepo) FindAll(context.Context, dto.UserFilter) ([]*entity.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) Update(context.Context, *entity.User, *[]entity.Role) error { return nil }
func (r *stubUserRepo) Delete(context.Context, uuid.UUID) error                    { return nil }
func (r *stubUserRepo) FindRolesByIDs(context.Context, []uint) ([]entity.Role, error) {
	return nil, nil
}

type authFixture struct {
	middleware *AuthMiddleware
	issuer     *token.Issuer
	repo       *stubUserRepo
}

func newAuthFixture() *authFixture {
	gin.SetMode(gin.TestMode)
	issuer := token.NewIssuer("test-secret", time.Hour)
	repo := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	return &authFixture{
		middleware: NewAuthMiddleware(repo, issuer),
		issuer:     issuer,
		repo:       repo,
	}
}

func (f *authFixture) addUser(active bool, roles ...string) *entity.User {
	user := &entity.User{
		ID:       uuid.New(),
		Username: "tester",
		IsActive: active,
	}
	for i, name := range roles {
		user.Roles = append(user.Roles, entity.Role{ID: uint(i + 1), Name: name})
	}
	f.repo.users[user.ID] = user
	return user
}

func (f *authFixture) router(extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{f.middleware.RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := response.GetUserID(c)
		roles, _ := response.GetUserRoles(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "roles": roles})
	})
	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	f := newAuthFixture()

	rec := doRequest(f.router(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	f := newAuthFixture()

	rec := doRequest(f.router(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
}

func TestRequireAuthInvalidToken(t *testing.T) {
	f := newAuthFixture()

	rec := doRequest(f.router(), "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

// A token may outlive its account; the holder must be shut out once the user
// row is gone.
func TestRequireAuthUnknownUser(t *testing.T) {
	f := newAuthFixture()

	signed, _, err := f.issuer.Issue(uuid.NewString())
	require.NoError(t, err)

	rec := doRequest(f.router(), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

// Infrastructure failures during the user load must not masquerade as an
// authentication problem.
func TestRequireAuthRepositoryFailure(t *testing.T) {
	f := newAuthFixture()
	f.repo.findErr = errors.New("connection refused")

	signed, _, err := f.issuer.Issue(uuid.NewString())
	require.NoError(t, err)

	rec := doRequest(f.router(), "Bearer "+signed)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestRequireAuthDeactivatedUser(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(false, entity.RolePharmacist)

	signed, _, err := f.issuer.Issue(user.ID.String())
	require.NoError(t, err)

	rec := doRequest(f.router(), "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Account deactivated"}`, rec.Body.String())
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(true, entity.RolePharmacist, entity.RoleWardNurse)

	signed, _, err := f.issuer.Issue(user.ID.String())
	require.NoError(t, err)

	rec := doRequest(f.router(), "Bearer "+signed)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID.String())
	assert.Contains(t, rec.Body.String(), entity.RoleWardNurse)
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(true, entity.RolePharmacist)

	signed, _, err := f.issuer.Issue(user.ID.String())
	require.NoError(t, err)

	router := f.router(f.middleware.RequireRoles(entity.RoleSystemAdministrator, entity.RolePharmacist))
	rec := doRequest(router, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesDeniesOtherRoles(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(true, entity.RoleWardNurse)

	signed, _, err := f.issuer.Issue(user.ID.String())
	require.NoError(t, err)

	router := f.router(f.middleware.RequireRoles(entity.RoleSystemAdministrator))
	rec := doRequest(router, "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t,
		`{"message":"Access denied. Required role: System Administrator"}`,
		rec.Body.String())
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	f := newAuthFixture()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected",
		f.middleware.RequireRoles(entity.RoleSystemAdministrator),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}
