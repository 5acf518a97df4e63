package categoria

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarCategoriaRequest struct {
	EmpresaID uint   `json:"empresaId"`
	Nome      string `json:"nome"`
	Imagem    string `json:"imagem"`
	Posicao   int    `json:"posicao"`
	Ativa     bool   `json:"ativa"`
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

func (h *Handler) CriarCategoria(w http.ResponseWriter, r *http.Request) {
	var req criarCategoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	c := CategoriaDelivery{
		EmpresaID: req.EmpresaID,
		Nome:      req.Nome,
		Slug:      utils.Slugify(req.Nome),
		Imagem:    req.Imagem,
		Posicao:   req.Posicao,
		Ativa:     req.Ativa,
	}
	if err := h.Repository.Criar(&c); err != nil {
		http.Error(w, "erro ao salvar categoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) ListarCategorias(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	categorias, err := h.Repository.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar categorias", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(categorias)
}

func (h *Handler) AtualizarCategoria(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Categoria não encontrada", http.StatusNotFound)
		return
	}

	var req criarCategoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c.Nome = req.Nome
	c.Imagem = req.Imagem
	c.Posicao = req.Posicao
	c.Ativa = req.Ativa

	if err := h.Repository.Atualizar(c); err != nil {
		http.Error(w, "erro ao atualizar categoria", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) DeletarCategoria(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir categoria", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("categoria excluída com sucesso"))
}
