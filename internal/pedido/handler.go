package pedido

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/auth"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/cupom"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pagamento"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/regiao"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type itemPedidoRequest struct {
	Tipo       vinculo.Tipo `json:"tipo"`
	RefID      uint         `json:"refId"`
	Quantidade int          `json:"quantidade"`
}

type criarPedidoRequest struct {
	ClienteNome     string              `json:"clienteNome"`
	ClienteTelefone string              `json:"clienteTelefone"`
	EnderecoEntrega string              `json:"enderecoEntrega"`
	DistanciaKm     decimal.Decimal     `json:"distanciaKm"`
	CupomCodigo     string              `json:"cupomCodigo,omitempty"`
	Itens           []itemPedidoRequest `json:"itens"`
}

type mudarStatusRequest struct {
	Status string `json:"status"`
}

type atribuirEntregadorRequest struct {
	EntregadorID uint `json:"entregadorId"`
}

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	cupomRepo  *cupom.Repository
	regiaoRepo *regiao.Repository
	gateway    pagamento.Gateway
}

func NewHandler(db *gorm.DB, gateway pagamento.Gateway) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
		cupomRepo:  cupom.NewRepository(db),
		regiaoRepo: regiao.NewRepository(db),
		gateway:    gateway,
	}
}

// CriarPedido monta o pedido da superfície client: precifica itens pelo
// preço autoritativo, aplica cupom, resolve taxa de entrega pela faixa de
// distância e dispara a cobrança PIX no gateway.
func (h *Handler) CriarPedido(w http.ResponseWriter, r *http.Request) {
	empresaID, ok := auth.EmpresaDoContexto(r.Context())
	if !ok {
		http.Error(w, "empresa não autenticada", http.StatusUnauthorized)
		return
	}

	var req criarPedidoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if len(req.Itens) == 0 {
		http.Error(w, "pedido sem itens", http.StatusBadRequest)
		return
	}

	subtotal := decimal.New(0, -2)
	itens := make([]PedidoItem, 0, len(req.Itens))
	for _, item := range req.Itens {
		qtd := item.Quantidade
		if qtd <= 0 {
			qtd = 1
		}
		preco, descricao, err := h.Repository.PrecificarItem(empresaID, item.Tipo, item.RefID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		itens = append(itens, PedidoItem{
			Tipo:          item.Tipo,
			RefID:         item.RefID,
			Descricao:     descricao,
			Quantidade:    qtd,
			PrecoUnitario: preco,
		})
		subtotal = subtotal.Add(preco.Mul(decimal.NewFromInt(int64(qtd))))
	}

	desconto := decimal.New(0, -2)
	var cupomID *uint
	if req.CupomCodigo != "" {
		d, c, err := h.cupomRepo.CalcularDesconto(empresaID, req.CupomCodigo, subtotal, time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		desconto = d
		cupomID = &c.ID
	}

	taxa, _ := h.regiaoRepo.TaxaParaDistancia(empresaID, req.DistanciaKm)
	total := subtotal.Sub(desconto).Add(taxa)

	p := Pedido{
		EmpresaID:       empresaID,
		ClienteNome:     req.ClienteNome,
		ClienteTelefone: req.ClienteTelefone,
		EnderecoEntrega: req.EnderecoEntrega,
		Subtotal:        subtotal,
		Desconto:        desconto,
		TaxaEntrega:     taxa,
		ValorTotal:      total,
		CupomID:         cupomID,
		Status:          StatusPendente,
		Itens:           itens,
	}
	if err := h.Repository.Criar(&p); err != nil {
		http.Error(w, "erro ao salvar pedido", http.StatusInternalServerError)
		return
	}

	cob, err := h.gateway.CobrarPix(r.Context(), p.ID, total)
	if err != nil {
		log.Printf("pedido %d: cobrança pix falhou: %v", p.ID, err)
	} else {
		t := TransacaoPagamento{
			PedidoID: p.ID,
			Status:   cob.Status,
			Valor:    cob.Valor,
			Gateway:  "pix",
			QRCode:   cob.QRCode,
		}
		if err := h.Repository.RegistrarTransacao(&t); err != nil {
			log.Printf("pedido %d: erro ao registrar transação: %v", p.ID, err)
		} else {
			p.Transacoes = append(p.Transacoes, t)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) ListarPedidos(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil {
		http.Error(w, "empresaId inválido", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")
	limite, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limite <= 0 || limite > 100 {
		limite = 30
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	pedidos, err := h.Repository.ListarPorEmpresa(uint(empresaID), status, limite, offset)
	if err != nil {
		http.Error(w, "erro ao listar pedidos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pedidos)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Pedido não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

func (h *Handler) MudarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req mudarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.MudarStatus(uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, ErrStatusInvalido):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, gorm.ErrRecordNotFound):
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
		default:
			http.Error(w, "erro ao mudar status", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("status atualizado com sucesso"))
}

func (h *Handler) AtribuirEntregador(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atribuirEntregadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	var n int64
	h.DB.Table("entregadors").Where("id = ? AND deleted_at IS NULL", req.EntregadorID).Count(&n)
	if n == 0 {
		http.Error(w, "Entregador não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repository.AtribuirEntregador(uint(id), req.EntregadorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Pedido não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atribuir entregador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("entregador atribuído com sucesso"))
}
