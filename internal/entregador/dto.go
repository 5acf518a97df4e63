package entregador

import "github.com/shopspring/decimal"

// RelatorioDTO agrega o desempenho do entregador no período: contagens,
// receita, ticket médio, tempo médio de entrega e os totais de acerto.
type RelatorioDTO struct {
	EntregadorID uint   `json:"entregadorId"`
	Nome         string `json:"nome"`

	QtdPedidos    int64           `json:"qtdPedidos"`
	QtdEntregues  int64           `json:"qtdEntregues"`
	Receita       decimal.Decimal `json:"receita"`
	TicketMedio   decimal.Decimal `json:"ticketMedio"`
	TempoMedioMin decimal.Decimal `json:"tempoMedioEntregaMinutos"`

	// Acerto: apenas a taxa de entrega compõe os totais.
	TotalAcertado decimal.Decimal `json:"totalAcertado"`
	TotalPendente decimal.Decimal `json:"totalPendente"`

	PorDia     []LinhaDiaDTO     `json:"porDia"`
	PorEmpresa []LinhaEmpresaDTO `json:"porEmpresa"`
}

type LinhaDiaDTO struct {
	Dia        string          `json:"dia"`
	QtdPedidos int64           `json:"qtdPedidos"`
	Receita    decimal.Decimal `json:"receita"`
	Taxas      decimal.Decimal `json:"taxas"`
}

type LinhaEmpresaDTO struct {
	EmpresaID  uint            `json:"empresaId"`
	QtdPedidos int64           `json:"qtdPedidos"`
	Receita    decimal.Decimal `json:"receita"`
	Taxas      decimal.Decimal `json:"taxas"`
}
