package usuario

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/auth"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) *Handler {
	t.Helper()
	t.Setenv("AUTH_JWT_SECRET", "segredo-de-teste")
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&Usuario{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewHandler(db)
}

func TestCriarUsuarioELogin(t *testing.T) {
	h := setupHandler(t)

	body := `{"nome":"Admin","email":"admin@loja.com","senha":"s3nh4","isAdmin":true}`
	rr := httptest.NewRecorder()
	h.CriarUsuario(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	// A senha nunca volta em claro na resposta
	require.NotContains(t, rr.Body.String(), "s3nh4")

	rr = httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"admin@loja.com","password":"s3nh4"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	claims, err := auth.ParseAndValidate(resp["token"])
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)
}

func TestLoginSenhaErrada(t *testing.T) {
	h := setupHandler(t)

	body := `{"nome":"Op","email":"op@loja.com","senha":"certa"}`
	rr := httptest.NewRecorder()
	h.CriarUsuario(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"op@loja.com","password":"errada"}`)))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"ninguem@loja.com","password":"x"}`)))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCriarUsuarioEmailDuplicado(t *testing.T) {
	h := setupHandler(t)

	body := `{"nome":"Um","email":"dup@loja.com","senha":"a"}`
	rr := httptest.NewRecorder()
	h.CriarUsuario(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	h.CriarUsuario(rr, httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "e-mail já cadastrado")
}
