package complemento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type criarComplementoRequest struct {
	EmpresaID uint   `json:"empresaId"`
	Nome      string `json:"nome"`
}

type itemRequest struct {
	Tipo             vinculo.Tipo     `json:"tipo"`
	RefID            uint             `json:"refId"`
	PrecoComplemento *decimal.Decimal `json:"precoComplemento,omitempty"`
}

// vincularRequest aceita a lista simples de ids ou a lista detalhada com
// flags explícitas; a detalhada prevalece quando não vazia.
type vincularRequest struct {
	EmpresaID     uint            `json:"empresaId"`
	DonoTipo      vinculo.Tipo    `json:"donoTipo"`
	DonoID        uint            `json:"donoId"`
	Complementos  []uint          `json:"complementos"`
	Configuracoes []ConfigVinculo `json:"configuracoes"`
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

func (h *Handler) CriarComplemento(w http.ResponseWriter, r *http.Request) {
	var req criarComplementoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	c := Complemento{EmpresaID: req.EmpresaID, Nome: req.Nome}
	if err := h.Repository.Criar(&c); err != nil {
		http.Error(w, "erro ao salvar complemento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) ListarComplementos(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	complementos, err := h.Repository.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar complementos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(complementos)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Complemento não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) AtualizarComplemento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Complemento não encontrado", http.StatusNotFound)
		return
	}

	var req criarComplementoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c.Nome = req.Nome
	if err := h.Repository.Atualizar(c); err != nil {
		http.Error(w, "erro ao atualizar complemento", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) DeletarComplemento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		if errors.Is(err, ErrComplementoEmUso) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao excluir complemento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("complemento excluído com sucesso"))
}

func (h *Handler) AdicionarItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	item := ComplementoItem{
		Tipo:             req.Tipo,
		RefID:            req.RefID,
		PrecoComplemento: req.PrecoComplemento,
	}
	if err := h.Repository.AdicionarItem(uint(id), &item); err != nil {
		switch {
		case errors.Is(err, ErrComplementoInexistente):
			http.Error(w, "Complemento não encontrado", http.StatusNotFound)
		case errors.Is(err, ErrAlvoItemNaoEncontrado):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrItemTipoNaoSuportado):
			http.Error(w, err.Error(), http.StatusBadRequest)
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

// Vincular aplica a vinculação replace-all de complementos a um dono.
func (h *Handler) Vincular(w http.ResponseWriter, r *http.Request) {
	var req vincularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	err := h.Repository.Vincular(req.EmpresaID, req.DonoTipo, req.DonoID, req.Complementos, req.Configuracoes)
	if err != nil {
		switch {
		case errors.Is(err, ErrDonoNaoEncontrado), errors.Is(err, ErrComplementoInexistente):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrDonoTipoNaoSuportado):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "erro ao vincular complementos", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("vinculação aplicada com sucesso"))
}

// ResolverPorDono lista os complementos do dono com preços efetivos.
func (h *Handler) ResolverPorDono(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	empresaID, err1 := strconv.Atoi(q.Get("empresaId"))
	donoID, err2 := strconv.Atoi(q.Get("donoId"))
	donoTipo := vinculo.Tipo(q.Get("donoTipo"))
	if err1 != nil || err2 != nil || !donoTipo.Valido() {
		http.Error(w, "parâmetros inválidos", http.StatusBadRequest)
		return
	}

	resolvidos, err := h.Repository.ResolverPorDono(uint(empresaID), donoTipo, uint(donoID))
	if err != nil {
		http.Error(w, "erro ao resolver complementos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resolvidos)
}
