package vitrine

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarVitrineRequest struct {
	EmpresaID uint   `json:"empresaId"`
	Titulo    string `json:"titulo"`
	Posicao   int    `json:"posicao"`
	Ativa     bool   `json:"ativa"`
}

type itemRequest struct {
	Tipo    vinculo.Tipo `json:"tipo"`
	RefID   uint         `json:"refId"`
	Posicao int          `json:"posicao"`
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

func (h *Handler) CriarVitrine(w http.ResponseWriter, r *http.Request) {
	var req criarVitrineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	v := Vitrine{
		EmpresaID: req.EmpresaID,
		Titulo:    req.Titulo,
		Posicao:   req.Posicao,
		Ativa:     req.Ativa,
	}
	if err := h.Repository.Criar(&v); err != nil {
		http.Error(w, "erro ao salvar vitrine", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) ListarVitrines(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	vitrines, err := h.Repository.ListarPorEmpresa(uint(empresaID), false)
	if err != nil {
		http.Error(w, "erro ao listar vitrines", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(vitrines)
}

func (h *Handler) AtualizarVitrine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Vitrine não encontrada", http.StatusNotFound)
		return
	}

	var req criarVitrineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	v.Titulo = req.Titulo
	v.Posicao = req.Posicao
	v.Ativa = req.Ativa

	if err := h.Repository.Atualizar(v); err != nil {
		http.Error(w, "erro ao atualizar vitrine", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) DeletarVitrine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir vitrine", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("vitrine excluída com sucesso"))
}

func (h *Handler) AdicionarItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	v, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Vitrine não encontrada", http.StatusNotFound)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	item := VitrineItem{Tipo: req.Tipo, RefID: req.RefID, Posicao: req.Posicao}
	if err := h.Repository.AdicionarItem(v.EmpresaID, v.ID, &item); err != nil {
		switch {
		case errors.Is(err, ErrTipoInvalido):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrAlvoNaoEncontrado):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "erro ao adicionar item", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) RemoverItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	itemID, err2 := strconv.Atoi(vars["itemId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.RemoverItem(uint(id), uint(itemID)); err != nil {
		http.Error(w, "erro ao remover item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("item removido com sucesso"))
}
