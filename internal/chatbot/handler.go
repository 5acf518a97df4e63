package chatbot

import (
	"encoding/json"
	"net/http"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/auth"
	"gorm.io/gorm"
)

type mensagemRequest struct {
	Telefone string `json:"telefone"`
	Texto    string `json:"texto"`
}

type Handler struct {
	DB    *gorm.DB
	Fluxo *Fluxo
}

func NewHandler(db *gorm.DB, fluxo *Fluxo) *Handler {
	return &Handler{DB: db, Fluxo: fluxo}
}

// Mensagem processa uma mensagem recebida do cliente e devolve a resposta
// do fluxo de venda.
func (h *Handler) Mensagem(w http.ResponseWriter, r *http.Request) {
	empresaID, ok := auth.EmpresaDoContexto(r.Context())
	if !ok {
		http.Error(w, "empresa não autenticada", http.StatusUnauthorized)
		return
	}

	var req mensagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Telefone == "" {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	resposta, err := h.Fluxo.Processar(r.Context(), empresaID, req.Telefone, req.Texto)
	if err != nil {
		http.Error(w, "erro ao processar mensagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"resposta": resposta})
}
