package auth

import (
	"context"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxIsAdmin   ctxKey = "isAdmin"
	CtxEmpresaID ctxKey = "empresaID"
)

// MiddlewareAutenticacao exige um bearer JWT válido (painel admin).
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UsuarioID)
		ctx = context.WithValue(ctx, CtxIsAdmin, claims.IsAdmin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin restringe a rota a usuários administradores.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Context().Value(CtxIsAdmin)
		if ok, _ := v.(bool); !ok {
			http.Error(w, "Forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MiddlewareSuperToken autentica a superfície client pelo cabeçalho
// X-Super-Token da empresa, colocando o ID da empresa no contexto.
func MiddlewareSuperToken(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			token := r.Header.Get("X-Super-Token")
			if token == "" {
				http.Error(w, "Super token ausente", http.StatusUnauthorized)
				return
			}
			var empresaID uint
			err := db.Table("empresas").
				Select("id").
				Where("super_token = ? AND deleted_at IS NULL AND ativa = ?", token, true).
				Scan(&empresaID).Error
			if err != nil || empresaID == 0 {
				http.Error(w, "Super token inválido", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), CtxEmpresaID, empresaID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmpresaDoContexto extrai o ID da empresa autenticada pela superfície client.
func EmpresaDoContexto(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxEmpresaID).(uint)
	return id, ok
}
