package receita

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

type criarReceitaRequest struct {
	EmpresaID  uint            `json:"empresaId"`
	Nome       string          `json:"nome"`
	Descricao  string          `json:"descricao"`
	Imagem     string          `json:"imagem"`
	PrecoVenda decimal.Decimal `json:"precoVenda"`
	Disponivel bool            `json:"disponivel"`
}

type linhaRequest struct {
	Tipo       vinculo.Tipo    `json:"tipo"`
	RefID      uint            `json:"refId"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

type criarIngredienteRequest struct {
	EmpresaID uint            `json:"empresaId"`
	Nome      string          `json:"nome"`
	Unidade   string          `json:"unidade"`
	Custo     decimal.Decimal `json:"custo"`
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

func (h *Handler) CriarReceita(w http.ResponseWriter, r *http.Request) {
	var req criarReceitaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	rec := Receita{
		EmpresaID:  req.EmpresaID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Imagem:     req.Imagem,
		PrecoVenda: req.PrecoVenda,
		Disponivel: req.Disponivel,
	}
	if err := h.Repository.Criar(&rec); err != nil {
		http.Error(w, "erro ao salvar receita", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(MontarReceitaDTO(rec, decimal.New(0, -2)))
}

func (h *Handler) ListarReceitas(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	receitas, err := h.Repository.ListarPorEmpresa(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar receitas", http.StatusInternalServerError)
		return
	}

	dtos := make([]ReceitaDTO, 0, len(receitas))
	for _, rec := range receitas {
		dtos = append(dtos, MontarReceitaDTO(rec, CalcularCustoReceita(h.DB, rec.ID)))
	}
	json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	rec, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Receita não encontrada", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(MontarReceitaDTO(*rec, CalcularCustoReceita(h.DB, rec.ID)))
}

func (h *Handler) AtualizarReceita(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	rec, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Receita não encontrada", http.StatusNotFound)
		return
	}

	var req criarReceitaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	rec.Nome = req.Nome
	rec.Descricao = req.Descricao
	rec.Imagem = req.Imagem
	rec.PrecoVenda = req.PrecoVenda
	rec.Disponivel = req.Disponivel

	if err := h.Repository.Atualizar(rec); err != nil {
		http.Error(w, "erro ao atualizar receita", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(MontarReceitaDTO(*rec, CalcularCustoReceita(h.DB, rec.ID)))
}

func (h *Handler) DeletarReceita(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		if errors.Is(err, ErrReceitaEmUso) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao excluir receita", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("receita excluída com sucesso"))
}

// AdicionarLinha acrescenta uma linha polimórfica (ingrediente, sub-receita,
// produto ou combo) à receita.
func (h *Handler) AdicionarLinha(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req linhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	linha := ReceitaIngrediente{
		Tipo:       req.Tipo,
		RefID:      req.RefID,
		Quantidade: req.Quantidade,
	}
	if err := h.Repository.AdicionarLinha(uint(id), &linha); err != nil {
		switch {
		case errors.Is(err, ErrReceitaInexistente):
			http.Error(w, "Receita não encontrada", http.StatusNotFound)
		case errors.Is(err, ErrAlvoNaoEncontrado):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrTipoInvalido):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "erro ao adicionar linha", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(linha)
}

func (h *Handler) RemoverLinha(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err1 := strconv.Atoi(vars["id"])
	linhaID, err2 := strconv.Atoi(vars["linhaId"])
	if err1 != nil || err2 != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.RemoverLinha(uint(id), uint(linhaID)); err != nil {
		http.Error(w, "erro ao remover linha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("linha removida com sucesso"))
}

// --- ingredientes básicos ---

func (h *Handler) CriarIngrediente(w http.ResponseWriter, r *http.Request) {
	var req criarIngredienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	i := Ingrediente{
		EmpresaID: req.EmpresaID,
		Nome:      req.Nome,
		Unidade:   req.Unidade,
		Custo:     req.Custo,
	}
	if err := h.Repository.CriarIngrediente(&i); err != nil {
		http.Error(w, "erro ao salvar ingrediente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(i)
}

func (h *Handler) ListarIngredientes(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}

	ingredientes, err := h.Repository.ListarIngredientes(uint(empresaID))
	if err != nil {
		http.Error(w, "erro ao listar ingredientes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(ingredientes)
}

func (h *Handler) AtualizarIngrediente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	i, err := h.Repository.BuscarIngrediente(uint(id))
	if err != nil {
		http.Error(w, "Ingrediente não encontrado", http.StatusNotFound)
		return
	}

	var req criarIngredienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	i.Nome = req.Nome
	i.Unidade = req.Unidade
	i.Custo = req.Custo

	if err := h.Repository.AtualizarIngrediente(i); err != nil {
		http.Error(w, "erro ao atualizar ingrediente", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(i)
}

func (h *Handler) DeletarIngrediente(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.DeletarIngrediente(uint(id)); err != nil {
		if errors.Is(err, ErrIngredienteEmUso) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao excluir ingrediente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ingrediente excluído com sucesso"))
}
