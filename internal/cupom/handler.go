package cupom

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type criarCupomRequest struct {
	Codigo             string           `json:"codigo"`
	DescontoPercentual *decimal.Decimal `json:"descontoPercentual,omitempty"`
	DescontoFixo       *decimal.Decimal `json:"descontoFixo,omitempty"`
	ValidoDe           time.Time        `json:"validoDe"`
	ValidoAte          time.Time        `json:"validoAte"`
	Ativo              bool             `json:"ativo"`
	ParceiroID         *uint            `json:"parceiroId,omitempty"`
}

type vincularEmpresasRequest struct {
	Empresas []uint `json:"empresas"`
}

type criarParceiroRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Ativo    bool   `json:"ativo"`
}

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

func (h *Handler) CriarCupom(w http.ResponseWriter, r *http.Request) {
	var req criarCupomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Codigo == "" {
		http.Error(w, "código é obrigatório", http.StatusBadRequest)
		return
	}
	if req.DescontoPercentual == nil && req.DescontoFixo == nil {
		http.Error(w, "informe desconto percentual ou fixo", http.StatusBadRequest)
		return
	}
	if req.ParceiroID != nil {
		var n int64
		h.DB.Model(&Parceiro{}).Where("id = ?", *req.ParceiroID).Count(&n)
		if n == 0 {
			http.Error(w, "Parceiro não encontrado", http.StatusNotFound)
			return
		}
	}

	c := CupomDesconto{
		Codigo:             req.Codigo,
		DescontoPercentual: req.DescontoPercentual,
		DescontoFixo:       req.DescontoFixo,
		ValidoDe:           req.ValidoDe,
		ValidoAte:          req.ValidoAte,
		Ativo:              req.Ativo,
		ParceiroID:         req.ParceiroID,
	}
	if err := h.Repository.Criar(&c); err != nil {
		if err == ErrCodigoEmUso || utils.EViolacaoUnicidade(err) {
			http.Error(w, "código de cupom já em uso", http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao salvar cupom", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) ListarCupons(w http.ResponseWriter, r *http.Request) {
	cupons, err := h.Repository.ListarTodos()
	if err != nil {
		http.Error(w, "erro ao listar cupons", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cupons)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Cupom não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) AtualizarCupom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Cupom não encontrado", http.StatusNotFound)
		return
	}

	var req criarCupomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	c.Codigo = req.Codigo
	c.DescontoPercentual = req.DescontoPercentual
	c.DescontoFixo = req.DescontoFixo
	c.ValidoDe = req.ValidoDe
	c.ValidoAte = req.ValidoAte
	c.Ativo = req.Ativo
	c.ParceiroID = req.ParceiroID

	if err := h.Repository.Atualizar(c); err != nil {
		http.Error(w, "erro ao atualizar cupom", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(c)
}

func (h *Handler) DeletarCupom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir cupom", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("cupom excluído com sucesso"))
}

// VincularEmpresas substitui o conjunto de empresas em que o cupom vale.
func (h *Handler) VincularEmpresas(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req vincularEmpresasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.VincularEmpresas(uint(id), req.Empresas); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "cupom ou empresa não encontrada", http.StatusNotFound)
			return
		}
		if err == ErrCodigoEmUso {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "erro ao vincular empresas", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("empresas vinculadas com sucesso"))
}

// --- parceiros ---

func (h *Handler) CriarParceiro(w http.ResponseWriter, r *http.Request) {
	var req criarParceiroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	p := Parceiro{Nome: req.Nome, Telefone: req.Telefone, Ativo: req.Ativo}
	if err := h.DB.Create(&p).Error; err != nil {
		http.Error(w, "erro ao salvar parceiro", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) ListarParceiros(w http.ResponseWriter, r *http.Request) {
	var parceiros []Parceiro
	if err := h.DB.Order("nome").Find(&parceiros).Error; err != nil {
		http.Error(w, "erro ao listar parceiros", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(parceiros)
}

func (h *Handler) DeletarParceiro(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var n int64
	h.DB.Model(&CupomDesconto{}).Where("parceiro_id = ?", id).Count(&n)
	if n > 0 {
		http.Error(w, "parceiro possui cupons vinculados", http.StatusBadRequest)
		return
	}

	if err := h.DB.Delete(&Parceiro{}, id).Error; err != nil {
		http.Error(w, "erro ao excluir parceiro", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("parceiro excluído com sucesso"))
}
