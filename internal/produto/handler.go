package produto

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type criarProdutoRequest struct {
	CodBarras string `json:"codBarras"`
	Descricao string `json:"descricao"`
	Imagem    string `json:"imagem"`
	Ativo     bool   `json:"ativo"`
}

type vinculoEmpresaRequest struct {
	EmpresaID      uint            `json:"empresaId"`
	PrecoVenda     decimal.Decimal `json:"precoVenda"`
	Custo          decimal.Decimal `json:"custo"`
	Disponivel     bool            `json:"disponivel"`
	ExibirDelivery bool            `json:"exibirDelivery"`
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

func (h *Handler) CriarProduto(w http.ResponseWriter, r *http.Request) {
	var req criarProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.CodBarras == "" || req.Descricao == "" {
		http.Error(w, "código de barras e descrição são obrigatórios", http.StatusBadRequest)
		return
	}

	p := Produto{
		CodBarras: req.CodBarras,
		Descricao: req.Descricao,
		Imagem:    req.Imagem,
		Ativo:     req.Ativo,
	}
	if err := h.Repository.Criar(&p); err != nil {
		if utils.EViolacaoUnicidade(err) {
			http.Error(w, utils.MensagemViolacao(err, "produto já cadastrado"), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao salvar produto", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

// ListarProdutos lista os produtos vinculados a uma empresa, paginado.
func (h *Handler) ListarProdutos(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}
	limite, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limite <= 0 || limite > 100 {
		limite = 30
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	produtos, err := h.Repository.ListarPorEmpresa(uint(empresaID), limite, offset)
	if err != nil {
		http.Error(w, "erro ao listar produtos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(produtos)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) AtualizarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}

	var req criarProdutoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	p.CodBarras = req.CodBarras
	p.Descricao = req.Descricao
	p.Imagem = req.Imagem
	p.Ativo = req.Ativo

	if err := h.Repository.Atualizar(p); err != nil {
		http.Error(w, "erro ao atualizar produto", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// DeletarProduto remove um produto desde que não esteja em uso no catálogo.
func (h *Handler) DeletarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if h.Repository.EmUso(uint(id)) {
		http.Error(w, "produto em uso em receitas, combos, complementos ou pedidos", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir produto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("produto excluído com sucesso"))
}

// VincularEmpresa define preço/custo/disponibilidade do produto em uma empresa.
func (h *Handler) VincularEmpresa(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req vinculoEmpresaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if !h.empresaRepo.Existe(h.DB, req.EmpresaID) {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}
	if _, err := h.Repository.BuscarPorID(uint(id)); err != nil {
		http.Error(w, "Produto não encontrado", http.StatusNotFound)
		return
	}

	pe := ProdutoEmp{
		EmpresaID:      req.EmpresaID,
		ProdutoID:      uint(id),
		PrecoVenda:     req.PrecoVenda,
		Custo:          req.Custo,
		Disponivel:     req.Disponivel,
		ExibirDelivery: req.ExibirDelivery,
	}
	if err := h.Repository.SalvarVinculoEmpresa(&pe); err != nil {
		http.Error(w, "erro ao salvar vínculo", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pe)
}
