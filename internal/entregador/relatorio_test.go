package entregador

import (
	"testing"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pedido"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&Entregador{},
		&pedido.Pedido{},
		&pedido.PedidoItem{},
		&pedido.PedidoStatusHistorico{},
		&pedido.TransacaoPagamento{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func criarEntregador(t *testing.T, db *gorm.DB, nome string) *Entregador {
	t.Helper()
	e := Entregador{Nome: nome, Ativo: true}
	require.NoError(t, db.Create(&e).Error)
	return &e
}

// criarPedido grava um pedido entregue do entregador na data dada, com a
// transação de pagamento no status pedido.
func criarPedido(t *testing.T, db *gorm.DB, entregadorID, empresaID uint, criadoEm time.Time, valor, taxa string, statusTransacao string) *pedido.Pedido {
	t.Helper()
	p := pedido.Pedido{
		EmpresaID:    empresaID,
		EntregadorID: &entregadorID,
		Subtotal:     decimal.RequireFromString(valor),
		ValorTotal:   decimal.RequireFromString(valor),
		TaxaEntrega:  decimal.RequireFromString(taxa),
		Status:       pedido.StatusEntregue,
	}
	p.CreatedAt = criadoEm
	require.NoError(t, db.Create(&p).Error)
	if statusTransacao != "" {
		tr := pedido.TransacaoPagamento{PedidoID: p.ID, Status: statusTransacao, Valor: p.ValorTotal, Gateway: "pix"}
		require.NoError(t, db.Create(&tr).Error)
	}
	return &p
}

func TestNormalizarFim(t *testing.T) {
	meiaNoite := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), NormalizarFim(meiaNoite))

	tarde := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	require.Equal(t, tarde.Add(time.Microsecond), NormalizarFim(tarde))
}

func TestGerarRelatorioSoContaPedidosPagos(t *testing.T) {
	db := setupDB(t)
	e := criarEntregador(t, db, "João")

	dia := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	criarPedido(t, db, e.ID, 1, dia, "50.00", "8.00", pedido.TransacaoPago)
	criarPedido(t, db, e.ID, 1, dia, "30.00", "8.00", pedido.TransacaoAutorizado)
	criarPedido(t, db, e.ID, 1, dia, "99.00", "8.00", pedido.TransacaoPendente)
	criarPedido(t, db, e.ID, 1, dia, "77.00", "8.00", "")

	rel, err := GerarRelatorio(db, e, 0, dia.AddDate(0, 0, -1), dia.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Equal(t, int64(2), rel.QtdPedidos)
	require.True(t, rel.Receita.Equal(decimal.RequireFromString("80.00")), "receita = %s", rel.Receita)
	require.True(t, rel.TicketMedio.Equal(decimal.RequireFromString("40.00")), "ticket = %s", rel.TicketMedio)
}

func TestGerarRelatorioAgrupaPorDiaEEmpresa(t *testing.T) {
	db := setupDB(t)
	e := criarEntregador(t, db, "Maria")

	dia1 := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	dia2 := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	criarPedido(t, db, e.ID, 1, dia1, "20.00", "5.00", pedido.TransacaoPago)
	criarPedido(t, db, e.ID, 2, dia1, "10.00", "7.00", pedido.TransacaoPago)
	criarPedido(t, db, e.ID, 1, dia2, "40.00", "5.00", pedido.TransacaoPago)

	rel, err := GerarRelatorio(db, e, 0, dia1.AddDate(0, 0, -1), dia2)
	require.NoError(t, err)

	require.Len(t, rel.PorDia, 2)
	require.Equal(t, "2024-03-05", rel.PorDia[0].Dia)
	require.Equal(t, int64(2), rel.PorDia[0].QtdPedidos)
	require.True(t, rel.PorDia[0].Taxas.Equal(decimal.RequireFromString("12.00")))

	require.Len(t, rel.PorEmpresa, 2)
	require.Equal(t, uint(1), rel.PorEmpresa[0].EmpresaID)
	require.True(t, rel.PorEmpresa[0].Receita.Equal(decimal.RequireFromString("60.00")))

	// Filtro por empresa restringe o agregado
	rel1, err := GerarRelatorio(db, e, 2, dia1.AddDate(0, 0, -1), dia2)
	require.NoError(t, err)
	require.Equal(t, int64(1), rel1.QtdPedidos)
	require.True(t, rel1.Receita.Equal(decimal.RequireFromString("10.00")))
}

func TestGerarRelatorioAcertadoEPendenteDisjuntos(t *testing.T) {
	db := setupDB(t)
	e := criarEntregador(t, db, "Pedro")

	// O acerto carimba time.Now(), então o período precisa conter o agora.
	agora := time.Now()
	inicio := agora.AddDate(0, 0, -7)
	fim := agora.AddDate(0, 0, 1)
	dentro := agora.AddDate(0, 0, -1)

	acertado := criarPedido(t, db, e.ID, 1, dentro, "50.00", "6.00", pedido.TransacaoPago)
	pendente := criarPedido(t, db, e.ID, 1, dentro, "40.00", "9.00", pedido.TransacaoPago)

	// Pedido antigo, criado fora do período, mas acertado dentro dele
	antigo := criarPedido(t, db, e.ID, 1, agora.AddDate(0, -2, 0), "30.00", "4.00", pedido.TransacaoPago)

	n, err := AcertarPedidos(db, e.ID, []uint{acertado.ID, antigo.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	rel, err := GerarRelatorio(db, e, 0, inicio, fim)
	require.NoError(t, err)

	// Acertado soma só taxas acertadas no período, criado quando for;
	// pendente soma só taxas de criados no período ainda não acertados.
	require.True(t, rel.TotalAcertado.Equal(decimal.RequireFromString("10.00")), "acertado = %s", rel.TotalAcertado)
	require.True(t, rel.TotalPendente.Equal(decimal.RequireFromString("9.00")), "pendente = %s", rel.TotalPendente)
	_ = pendente
}

func TestTempoMedioEntregaIgnoraHistoricoIncompleto(t *testing.T) {
	db := setupDB(t)
	e := criarEntregador(t, db, "Ana")

	dia := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	completo := criarPedido(t, db, e.ID, 1, dia, "25.00", "5.00", pedido.TransacaoPago)
	incompleto := criarPedido(t, db, e.ID, 1, dia, "25.00", "5.00", pedido.TransacaoPago)

	saiu := dia.Add(10 * time.Minute)
	entregue := saiu.Add(30 * time.Minute)
	require.NoError(t, db.Create(&pedido.PedidoStatusHistorico{PedidoID: completo.ID, Status: pedido.StatusSaiuParaEntrega, CriadoEm: saiu}).Error)
	require.NoError(t, db.Create(&pedido.PedidoStatusHistorico{PedidoID: completo.ID, Status: pedido.StatusEntregue, CriadoEm: entregue}).Error)

	// Só o carimbo de entregue: fica fora da média, sem erro
	require.NoError(t, db.Create(&pedido.PedidoStatusHistorico{PedidoID: incompleto.ID, Status: pedido.StatusEntregue, CriadoEm: entregue}).Error)

	rel, err := GerarRelatorio(db, e, 0, dia.AddDate(0, 0, -1), dia.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.True(t, rel.TempoMedioMin.Equal(decimal.RequireFromString("30.00")), "tempo = %s", rel.TempoMedioMin)
}

func TestAcertarPedidosNaoReacerta(t *testing.T) {
	db := setupDB(t)
	e := criarEntregador(t, db, "Rui")

	dia := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p := criarPedido(t, db, e.ID, 1, dia, "10.00", "3.00", pedido.TransacaoPago)

	n, err := AcertarPedidos(db, e.ID, []uint{p.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// Segundo acerto do mesmo pedido não afeta nada
	n, err = AcertarPedidos(db, e.ID, []uint{p.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	// Pedido de outro entregador não é tocado
	outro := criarEntregador(t, db, "Zé")
	n, err = AcertarPedidos(db, outro.ID, []uint{p.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}
