package chatbot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/cardapio"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pagamento"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pedido"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fluxo é a máquina de estados da venda conversacional:
// BOAS_VINDAS → BUSCA_PRODUTO → ENDERECO → PAGAMENTO → CONFIRMACAO.
type Fluxo struct {
	DB           *gorm.DB
	cardapioRepo *cardapio.Repository
	pedidoRepo   *pedido.Repository
	gateway      pagamento.Gateway
	redator      *Redator
}

func NovoFluxo(db *gorm.DB, temUnaccent bool, gateway pagamento.Gateway) *Fluxo {
	return &Fluxo{
		DB:           db,
		cardapioRepo: cardapio.NewRepository(db, temUnaccent),
		pedidoRepo:   pedido.NewRepository(db),
		gateway:      gateway,
		redator:      NovoRedator(),
	}
}

func (f *Fluxo) carregarConversa(empresaID uint, telefone string) (*Conversa, error) {
	var c Conversa
	err := f.DB.Where("empresa_id = ? AND telefone = ?", empresaID, telefone).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		c = Conversa{EmpresaID: empresaID, Telefone: telefone, Etapa: EtapaBoasVindas, Carrinho: []ItemCarrinho{}}
		if err := f.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (f *Fluxo) salvar(c *Conversa) error {
	return f.DB.Save(c).Error
}

func totalCarrinho(itens []ItemCarrinho) decimal.Decimal {
	total := decimal.New(0, -2)
	for _, item := range itens {
		total = total.Add(item.Preco.Mul(decimal.NewFromInt(int64(item.Quantidade))))
	}
	return total
}

// Processar recebe uma mensagem do cliente e devolve a resposta, avançando
// a conversa. Toda resposta passa pelo redator antes de sair.
func (f *Fluxo) Processar(ctx context.Context, empresaID uint, telefone, texto string) (string, error) {
	c, err := f.carregarConversa(empresaID, telefone)
	if err != nil {
		return "", err
	}

	resposta, err := f.avancar(ctx, c, strings.TrimSpace(texto))
	if err != nil {
		return "", err
	}
	if err := f.salvar(c); err != nil {
		return "", err
	}
	return f.redator.Reescrever(ctx, resposta), nil
}

func (f *Fluxo) avancar(ctx context.Context, c *Conversa, texto string) (string, error) {
	switch c.Etapa {
	case EtapaBoasVindas:
		c.Etapa = EtapaBuscaProduto
		return "Olá! Bem-vindo. O que você gostaria de pedir hoje?", nil

	case EtapaBuscaProduto:
		if strings.EqualFold(texto, "finalizar") {
			if len(c.Carrinho) == 0 {
				return "Seu carrinho está vazio. Me diga o que você procura.", nil
			}
			c.Etapa = EtapaEndereco
			return "Qual o endereço de entrega?", nil
		}

		itens, err := f.cardapioRepo.Buscar(c.EmpresaID, texto, 5)
		if err != nil {
			return "", err
		}
		if len(itens) == 0 {
			return fmt.Sprintf("Não encontrei %q no cardápio. Quer tentar outro nome?", texto), nil
		}

		escolhido := itens[0]
		c.Carrinho = append(c.Carrinho, ItemCarrinho{
			Tipo:       escolhido.Tipo,
			RefID:      escolhido.RefID,
			Nome:       escolhido.Nome,
			Preco:      escolhido.Preco,
			Quantidade: 1,
		})
		return fmt.Sprintf("Adicionei %s (R$ %s) ao carrinho. Peça mais alguma coisa ou diga 'finalizar'.",
			escolhido.Nome, escolhido.Preco.StringFixed(2)), nil

	case EtapaEndereco:
		if texto == "" {
			return "Preciso do endereço de entrega para continuar.", nil
		}
		c.Endereco = texto
		c.Etapa = EtapaPagamento
		return "Por enquanto aceitamos PIX. Confirma o pagamento por PIX?", nil

	case EtapaPagamento:
		if !strings.EqualFold(texto, "sim") && !strings.EqualFold(texto, "pix") {
			return "Só temos PIX no momento. Responda 'sim' para pagar por PIX.", nil
		}
		c.Etapa = EtapaConfirmacao
		total := totalCarrinho(c.Carrinho)
		return fmt.Sprintf("Seu pedido dá R$ %s com entrega em %s. Confirma? (sim/não)",
			total.StringFixed(2), c.Endereco), nil

	case EtapaConfirmacao:
		if strings.EqualFold(texto, "não") || strings.EqualFold(texto, "nao") {
			c.Etapa = EtapaBuscaProduto
			c.Carrinho = []ItemCarrinho{}
			return "Sem problemas, pedido cancelado. O que você gostaria de pedir?", nil
		}
		if !strings.EqualFold(texto, "sim") {
			return "Responda 'sim' para confirmar ou 'não' para cancelar.", nil
		}

		p, err := f.fecharPedido(ctx, c)
		if err != nil {
			return "", err
		}
		c.Etapa = EtapaBoasVindas
		c.Carrinho = []ItemCarrinho{}
		c.Endereco = ""
		return fmt.Sprintf("Pedido #%d confirmado! Total R$ %s. Obrigado!",
			p.ID, p.ValorTotal.StringFixed(2)), nil
	}

	c.Etapa = EtapaBoasVindas
	return "Vamos começar de novo. O que você gostaria de pedir?", nil
}

// fecharPedido converte o carrinho da conversa em um pedido pago via PIX.
func (f *Fluxo) fecharPedido(ctx context.Context, c *Conversa) (*pedido.Pedido, error) {
	itens := make([]pedido.PedidoItem, 0, len(c.Carrinho))
	subtotal := decimal.New(0, -2)
	for _, item := range c.Carrinho {
		itens = append(itens, pedido.PedidoItem{
			Tipo:          item.Tipo,
			RefID:         item.RefID,
			Descricao:     item.Nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.Preco,
		})
		subtotal = subtotal.Add(item.Preco.Mul(decimal.NewFromInt(int64(item.Quantidade))))
	}

	p := pedido.Pedido{
		EmpresaID:       c.EmpresaID,
		ClienteTelefone: c.Telefone,
		EnderecoEntrega: c.Endereco,
		Subtotal:        subtotal,
		Desconto:        decimal.New(0, -2),
		TaxaEntrega:     decimal.New(0, -2),
		ValorTotal:      subtotal,
		Status:          pedido.StatusPendente,
		Itens:           itens,
	}
	if err := f.pedidoRepo.Criar(&p); err != nil {
		return nil, err
	}

	cob, err := f.gateway.CobrarPix(ctx, p.ID, p.ValorTotal)
	if err != nil {
		log.Printf("pedido %d: cobrança pix falhou: %v", p.ID, err)
		return &p, nil
	}
	t := pedido.TransacaoPagamento{
		PedidoID: p.ID,
		Status:   cob.Status,
		Valor:    cob.Valor,
		Gateway:  "pix",
		QRCode:   cob.QRCode,
	}
	if err := f.pedidoRepo.RegistrarTransacao(&t); err != nil {
		log.Printf("pedido %d: erro ao registrar transação: %v", p.ID, err)
	}
	return &p, nil
}
