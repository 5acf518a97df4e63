package combo

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

type criarComboRequest struct {
	EmpresaID  uint            `json:"empresaId"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao"`
	Imagem     string          `json:"imagem"`
	PrecoTotal decimal.Decimal `json:"precoTotal"`
	Disponivel bool            `json:"disponivel"`
}

type criarSecaoRequest struct {
	Titulo      string `json:"titulo"`
	MinimoItens int    `json:"minimoItens"`
	MaximoItens int    `json:"maximoItens"`
	Posicao     int    `json:"posicao"`
}

type itemRequest struct {
	Tipo       vinculo.Tipo `json:"tipo"`
	RefID      uint         `json:"refId"`
	Quantidade int          `json:"quantidade"`
	Posicao    int          `json:"posicao"`
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

func (h *Handler) CriarCombo(w http.ResponseWriter, r *http.Request) {
	var req criarComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	c := Combo{
		EmpresaID:  req.EmpresaID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Imagem:     req.Imagem,
		PrecoTotal: req.PrecoTotal,
		Disponivel: req.Disponivel,
	}
	if err := h.Repository.Criar(&c); err != nil {
		http.Error(w, "erro ao salvar combo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) ListarCombos(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	combos, err := h.Repository.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar combos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(combos)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Combo não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) AtualizarCombo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Combo não encontrado", http.StatusNotFound)
		return
	}

	var req criarComboRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c.Nome = req.Nome
	c.Descricao = req.Descricao
	c.Imagem = req.Imagem
	c.PrecoTotal = req.PrecoTotal
	c.Disponivel = req.Disponivel

	if err := h.Repository.Atualizar(c); err != nil {
		http.Error(w, "erro ao atualizar combo", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) DeletarCombo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		if errors.Is(err, ErrComboEmUso) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao excluir combo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("combo excluído com sucesso"))
}

func (h *Handler) CriarSecao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.BuscarPorID(uint(id)); err != nil {
		http.Error(w, "Combo não encontrado", http.StatusNotFound)
		return
	}

	var req criarSecaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	s := ComboSecao{
		Titulo:      req.Titulo,
		MinimoItens: req.MinimoItens,
		MaximoItens: req.MaximoItens,
		Posicao:     req.Posicao,
	}
	if err := h.Repository.CriarSecao(uint(id), &s); err != nil {
		if errors.Is(err, ErrLimitesInvalidos) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao criar seção", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

func (h *Handler) DeletarSecao(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	secaoID, err2 := strconv.Atoi(vars["secaoId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.DeletarSecao(uint(id), uint(secaoID)); err != nil {
		http.Error(w, "erro ao excluir seção", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("seção excluída com sucesso"))
}

func (h *Handler) AdicionarItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	secaoID, err2 := strconv.Atoi(vars["secaoId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Combo não encontrado", http.StatusNotFound)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	item := ComboItem{
		Tipo:       req.Tipo,
		RefID:      req.RefID,
		Quantidade: req.Quantidade,
		Posicao:    req.Posicao,
	}
	if item.Quantidade <= 0 {
		item.Quantidade = 1
	}
	if err := h.Repository.AdicionarItem(c.EmpresaID, uint(secaoID), &item); err != nil {
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
	secaoID, err1 := strconv.Atoi(vars["secaoId"])
	itemID, err2 := strconv.Atoi(vars["itemId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.RemoverItem(uint(secaoID), uint(itemID)); err != nil {
		http.Error(w, "erro ao remover item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("item removido com sucesso"))
}
