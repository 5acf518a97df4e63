package regiao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type criarRegiaoRequest struct {
	EmpresaID uint            `json:"empresaId"`
	Nome      string          `json:"nome"`
	KmMin     decimal.Decimal `json:"kmMin"`
	KmMax     decimal.Decimal `json:"kmMax"`
	Taxa      decimal.Decimal `json:"taxa"`
	Ativa     bool            `json:"ativa"`
}

type Handler struct {
	DB          *gorm.DB
	Repository  *Repository
	empresaRepo empresa.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(db),
		empresaRepo: empresa.NewRepository(),
	}
}

func (h *Handler) CriarRegiao(w http.ResponseWriter, r *http.Request) {
	var req criarRegiaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	reg := RegiaoEntrega{
		EmpresaID: req.EmpresaID,
		Nome:      req.Nome,
		KmMin:     req.KmMin,
		KmMax:     req.KmMax,
		Taxa:      req.Taxa,
		Ativa:     req.Ativa,
	}
	if err := h.Repository.Criar(&reg); err != nil {
		if errors.Is(err, ErrFaixaInvalida) || errors.Is(err, ErrFaixaSobreposta) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao salvar região", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(reg)
}

func (h *Handler) ListarRegioes(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	regioes, err := h.Repository.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar regiões", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(regioes)
}

func (h *Handler) AtualizarRegiao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	reg, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Região não encontrada", http.StatusNotFound)
		return
	}

	var req criarRegiaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	reg.Nome = req.Nome
	reg.KmMin = req.KmMin
	reg.KmMax = req.KmMax
	reg.Taxa = req.Taxa
	reg.Ativa = req.Ativa

	if err := h.Repository.Atualizar(reg); err != nil {
		if errors.Is(err, ErrFaixaInvalida) || errors.Is(err, ErrFaixaSobreposta) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao atualizar região", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(reg)
}

func (h *Handler) DeletarRegiao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir região", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("região excluída com sucesso"))
}
