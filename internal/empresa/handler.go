package empresa

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarEmpresaRequest struct {
	Nome     string `json:"nome"`
	CNPJ     string `json:"cnpj"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// CriarEmpresa cadastra um novo tenant; slug e super-token são gerados aqui.
func (h *Handler) CriarEmpresa(w http.ResponseWriter, r *http.Request) {
	var req criarEmpresaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Nome == "" {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}

	token, err := utils.GerarTokenAleatorio(32)
	if err != nil {
		http.Error(w, "erro ao gerar super token", http.StatusInternalServerError)
		return
	}

	e := Empresa{
		Nome:       req.Nome,
		CNPJ:       req.CNPJ,
		Slug:       utils.Slugify(req.Nome),
		Telefone:   req.Telefone,
		Endereco:   req.Endereco,
		SuperToken: token,
		Ativa:      true,
	}

	if err := h.Repository.Criar(h.DB, &e); err != nil {
		if utils.EViolacaoUnicidade(err) {
			http.Error(w, utils.MensagemViolacao(err, "empresa já cadastrada"), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao salvar empresa", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) ListarEmpresas(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar empresas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(empresas)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) AtualizarEmpresa(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var dados Empresa
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, uint(id), &dados); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "Empresa não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar empresa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("empresa atualizada com sucesso"))
}

func (h *Handler) DeletarEmpresa(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		if utils.EViolacaoChaveEstrangeira(err) {
			http.Error(w, "empresa possui registros vinculados", http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao excluir empresa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("empresa excluída com sucesso"))
}
