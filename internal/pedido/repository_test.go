package pedido

import (
	"testing"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&produto.Produto{}, &produto.ProdutoEmp{},
		&receita.Receita{}, &receita.ReceitaIngrediente{}, &receita.Ingrediente{},
		&combo.Combo{}, &combo.ComboSecao{}, &combo.ComboItem{},
		&Pedido{}, &PedidoItem{}, &PedidoStatusHistorico{}, &TransacaoPagamento{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db)
}

func seedProduto(t *testing.T, db *gorm.DB, empresaID uint, descricao, preco string, disponivel bool) *produto.Produto {
	t.Helper()
	p := produto.Produto{CodBarras: descricao, Descricao: descricao, Ativo: true}
	require.NoError(t, db.Create(&p).Error)
	pe := produto.ProdutoEmp{EmpresaID: empresaID, ProdutoID: p.ID, PrecoVenda: decimal.RequireFromString(preco), Disponivel: disponivel}
	if !disponivel {
		// default:true exige escrita explícita do false
		require.NoError(t, db.Create(&pe).Error)
		require.NoError(t, db.Model(&pe).Update("disponivel", false).Error)
		return &p
	}
	require.NoError(t, db.Create(&pe).Error)
	return &p
}

func TestPrecificarItemProduto(t *testing.T) {
	r := setupRepo(t)
	p := seedProduto(t, r.DB, 1, "X-Burger", "12.50", true)

	preco, descricao, err := r.PrecificarItem(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Equal(t, "X-Burger", descricao)
	require.True(t, preco.Equal(decimal.RequireFromString("12.50")))
}

func TestPrecificarItemIndisponivel(t *testing.T) {
	r := setupRepo(t)
	p := seedProduto(t, r.DB, 1, "Esgotado", "9.90", false)

	_, _, err := r.PrecificarItem(1, vinculo.TipoProduto, p.ID)
	require.ErrorIs(t, err, ErrItemIndisponivel)

	// Produto de outra empresa também não precifica
	_, _, err = r.PrecificarItem(2, vinculo.TipoProduto, p.ID)
	require.ErrorIs(t, err, ErrItemIndisponivel)

	_, _, err = r.PrecificarItem(1, vinculo.TipoProduto, 9999)
	require.ErrorIs(t, err, ErrItemIndisponivel)

	_, _, err = r.PrecificarItem(1, vinculo.TipoIngrediente, 1)
	require.ErrorIs(t, err, ErrItemIndisponivel)
}

func TestPrecificarItemReceitaECombo(t *testing.T) {
	r := setupRepo(t)

	rec := receita.Receita{EmpresaID: 1, Nome: "Yakisoba", PrecoVenda: decimal.RequireFromString("28.00"), Disponivel: true}
	require.NoError(t, r.DB.Create(&rec).Error)
	c := combo.Combo{EmpresaID: 1, Nome: "Combo Casal", PrecoTotal: decimal.RequireFromString("55.00"), Disponivel: true}
	require.NoError(t, r.DB.Create(&c).Error)

	preco, nome, err := r.PrecificarItem(1, vinculo.TipoReceita, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "Yakisoba", nome)
	require.True(t, preco.Equal(decimal.RequireFromString("28.00")))

	preco, nome, err = r.PrecificarItem(1, vinculo.TipoCombo, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Combo Casal", nome)
	require.True(t, preco.Equal(decimal.RequireFromString("55.00")))

	// Receita de outra empresa não aparece
	_, _, err = r.PrecificarItem(2, vinculo.TipoReceita, rec.ID)
	require.ErrorIs(t, err, ErrItemIndisponivel)
}

func TestCriarGravaItensEHistorico(t *testing.T) {
	r := setupRepo(t)

	p := Pedido{
		EmpresaID:   1,
		ClienteNome: "Cliente",
		Subtotal:    decimal.RequireFromString("25.00"),
		ValorTotal:  decimal.RequireFromString("25.00"),
		Status:      StatusPendente,
		Itens: []PedidoItem{
			{Tipo: vinculo.TipoProduto, RefID: 1, Descricao: "X-Burger", Quantidade: 2, PrecoUnitario: decimal.RequireFromString("12.50")},
		},
	}
	require.NoError(t, r.Criar(&p))
	require.NotZero(t, p.ID)

	salvo, err := r.BuscarPorID(p.ID)
	require.NoError(t, err)
	require.Len(t, salvo.Itens, 1)
	require.True(t, salvo.Itens[0].PrecoUnitario.Equal(decimal.RequireFromString("12.50")))

	require.Len(t, salvo.Historico, 1)
	require.Equal(t, StatusPendente, salvo.Historico[0].Status)
}

func TestCriarRejeitaPedidoVazio(t *testing.T) {
	r := setupRepo(t)
	p := Pedido{EmpresaID: 1, Status: StatusPendente}
	require.ErrorIs(t, r.Criar(&p), ErrPedidoVazio)
}

func TestMudarStatusRegistraTransicao(t *testing.T) {
	r := setupRepo(t)

	p := Pedido{
		EmpresaID: 1, Status: StatusPendente,
		Itens: []PedidoItem{{Tipo: vinculo.TipoProduto, RefID: 1, Quantidade: 1, PrecoUnitario: decimal.RequireFromString("10.00")}},
	}
	require.NoError(t, r.Criar(&p))

	require.NoError(t, r.MudarStatus(p.ID, StatusEmPreparo))
	require.NoError(t, r.MudarStatus(p.ID, StatusSaiuParaEntrega))
	require.NoError(t, r.MudarStatus(p.ID, StatusEntregue))

	require.ErrorIs(t, r.MudarStatus(p.ID, "INVENTADO"), ErrStatusInvalido)
	require.ErrorIs(t, r.MudarStatus(9999, StatusEntregue), gorm.ErrRecordNotFound)

	salvo, err := r.BuscarPorID(p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusEntregue, salvo.Status)
	require.Len(t, salvo.Historico, 4)
	require.Equal(t, StatusPendente, salvo.Historico[0].Status)
	require.Equal(t, StatusEntregue, salvo.Historico[3].Status)
}

func TestAtribuirEntregador(t *testing.T) {
	r := setupRepo(t)

	p := Pedido{
		EmpresaID: 1, Status: StatusPendente,
		Itens: []PedidoItem{{Tipo: vinculo.TipoProduto, RefID: 1, Quantidade: 1, PrecoUnitario: decimal.RequireFromString("10.00")}},
	}
	require.NoError(t, r.Criar(&p))

	require.NoError(t, r.AtribuirEntregador(p.ID, 7))
	require.ErrorIs(t, r.AtribuirEntregador(9999, 7), gorm.ErrRecordNotFound)

	salvo, err := r.BuscarPorID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, salvo.EntregadorID)
	require.Equal(t, uint(7), *salvo.EntregadorID)
}
