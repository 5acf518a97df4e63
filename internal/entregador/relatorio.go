package entregador

import (
	"sort"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pedido"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NormalizarFim converte o fim do período no limite superior EXCLUSIVO:
// fim exatamente à meia-noite vira fim + 1 dia (inclui o dia inteiro);
// qualquer outro horário vira fim + 1 microssegundo.
func NormalizarFim(fim time.Time) time.Time {
	if fim.Hour() == 0 && fim.Minute() == 0 && fim.Second() == 0 && fim.Nanosecond() == 0 {
		return fim.AddDate(0, 0, 1)
	}
	return fim.Add(time.Microsecond)
}

// pagoExiste é a condição correlacionada de "pedido pago": existe transação
// em PAGO ou AUTORIZADO. Não há flag persistida no pedido.
const pagoExiste = `EXISTS (SELECT 1 FROM transacao_pagamentos t WHERE t.pedido_id = pedidos.id AND t.status IN (?, ?))`

// GerarRelatorio agrega o desempenho e o acerto do entregador no período
// [inicio, NormalizarFim(fim)). empresaID zero significa todas as empresas.
func GerarRelatorio(db *gorm.DB, e *Entregador, empresaID uint, inicio, fim time.Time) (*RelatorioDTO, error) {
	limite := NormalizarFim(fim)

	base := db.Model(&pedido.Pedido{}).
		Where("entregador_id = ?", e.ID).
		Where("pedidos.created_at >= ? AND pedidos.created_at < ?", inicio, limite)
	if empresaID != 0 {
		base = base.Where("empresa_id = ?", empresaID)
	}

	var pedidos []pedido.Pedido
	if err := base.Where(pagoExiste, pedido.TransacaoPago, pedido.TransacaoAutorizado).
		Find(&pedidos).Error; err != nil {
		return nil, err
	}

	rel := &RelatorioDTO{
		EntregadorID:  e.ID,
		Nome:          e.Nome,
		Receita:       decimal.New(0, -2),
		TicketMedio:   decimal.New(0, -2),
		TempoMedioMin: decimal.New(0, -2),
		TotalAcertado: decimal.New(0, -2),
		TotalPendente: decimal.New(0, -2),
		PorDia:        []LinhaDiaDTO{},
		PorEmpresa:    []LinhaEmpresaDTO{},
	}

	porDia := map[string]*LinhaDiaDTO{}
	porEmpresa := map[uint]*LinhaEmpresaDTO{}

	for i := range pedidos {
		p := &pedidos[i]
		rel.QtdPedidos++
		rel.Receita = rel.Receita.Add(p.ValorTotal)
		if p.Status == pedido.StatusEntregue {
			rel.QtdEntregues++
		}

		dia := p.CreatedAt.Format("2006-01-02")
		ld, ok := porDia[dia]
		if !ok {
			ld = &LinhaDiaDTO{Dia: dia, Receita: decimal.New(0, -2), Taxas: decimal.New(0, -2)}
			porDia[dia] = ld
		}
		ld.QtdPedidos++
		ld.Receita = ld.Receita.Add(p.ValorTotal)
		ld.Taxas = ld.Taxas.Add(p.TaxaEntrega)

		le, ok := porEmpresa[p.EmpresaID]
		if !ok {
			le = &LinhaEmpresaDTO{EmpresaID: p.EmpresaID, Receita: decimal.New(0, -2), Taxas: decimal.New(0, -2)}
			porEmpresa[p.EmpresaID] = le
		}
		le.QtdPedidos++
		le.Receita = le.Receita.Add(p.ValorTotal)
		le.Taxas = le.Taxas.Add(p.TaxaEntrega)

		// Pendente: taxa de pedidos criados no período ainda não acertados.
		if !p.AcertadoEntregador {
			rel.TotalPendente = rel.TotalPendente.Add(p.TaxaEntrega)
		}
	}

	if rel.QtdPedidos > 0 {
		rel.TicketMedio = rel.Receita.Div(decimal.NewFromInt(rel.QtdPedidos)).Round(2)
	}

	// Acertado: taxa de pedidos cujo acerto caiu dentro do período,
	// independentemente de quando o pedido foi criado.
	acertadoQ := db.Model(&pedido.Pedido{}).
		Where("entregador_id = ?", e.ID).
		Where("acertado_entregador = ?", true).
		Where("acertado_entregador_em >= ? AND acertado_entregador_em < ?", inicio, limite)
	if empresaID != 0 {
		acertadoQ = acertadoQ.Where("empresa_id = ?", empresaID)
	}
	var acertados []pedido.Pedido
	if err := acertadoQ.Find(&acertados).Error; err != nil {
		return nil, err
	}
	for _, p := range acertados {
		rel.TotalAcertado = rel.TotalAcertado.Add(p.TaxaEntrega)
	}

	rel.TempoMedioMin = tempoMedioEntrega(db, pedidos)

	for _, ld := range porDia {
		rel.PorDia = append(rel.PorDia, *ld)
	}
	sort.Slice(rel.PorDia, func(i, j int) bool { return rel.PorDia[i].Dia < rel.PorDia[j].Dia })
	for _, le := range porEmpresa {
		rel.PorEmpresa = append(rel.PorEmpresa, *le)
	}
	sort.Slice(rel.PorEmpresa, func(i, j int) bool { return rel.PorEmpresa[i].EmpresaID < rel.PorEmpresa[j].EmpresaID })

	return rel, nil
}

// tempoMedioEntrega varre o histórico de cada pedido entregue atrás da
// primeira transição para SAIU_PARA_ENTREGA e da primeira para ENTREGUE e
// faz a média dos deltas. Pedidos sem um dos dois carimbos ficam fora da
// média, sem aviso.
func tempoMedioEntrega(db *gorm.DB, pedidos []pedido.Pedido) decimal.Decimal {
	var somaMin decimal.Decimal
	var n int64

	for _, p := range pedidos {
		if p.Status != pedido.StatusEntregue {
			continue
		}
		var historico []pedido.PedidoStatusHistorico
		if err := db.Where("pedido_id = ?", p.ID).Order("criado_em").Find(&historico).Error; err != nil {
			continue
		}

		var saiu, entregue *time.Time
		for i := range historico {
			h := &historico[i]
			if saiu == nil && h.Status == pedido.StatusSaiuParaEntrega {
				saiu = &h.CriadoEm
			}
			if entregue == nil && h.Status == pedido.StatusEntregue {
				entregue = &h.CriadoEm
			}
		}
		if saiu == nil || entregue == nil {
			continue
		}

		delta := entregue.Sub(*saiu).Minutes()
		somaMin = somaMin.Add(decimal.NewFromFloat(delta))
		n++
	}

	if n == 0 {
		return decimal.New(0, -2)
	}
	return somaMin.Div(decimal.NewFromInt(n)).Round(2)
}

// AcertarPedidos marca os pedidos do entregador como acertados agora.
func AcertarPedidos(db *gorm.DB, entregadorID uint, pedidoIDs []uint) (int64, error) {
	agora := time.Now()
	res := db.Model(&pedido.Pedido{}).
		Where("entregador_id = ? AND id IN ? AND acertado_entregador = ?", entregadorID, pedidoIDs, false).
		Updates(map[string]interface{}{
			"acertado_entregador":    true,
			"acertado_entregador_em": agora,
		})
	return res.RowsAffected, res.Error
}
