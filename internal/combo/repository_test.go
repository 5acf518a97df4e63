package combo

import (
	"testing"

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
		&Combo{}, &ComboSecao{}, &ComboItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, tabela := range []string{"complemento_items", "vitrine_items", "pedido_items"} {
		require.NoError(t, db.Exec("CREATE TABLE "+tabela+" (id INTEGER PRIMARY KEY, tipo TEXT, ref_id INTEGER)").Error)
	}
	return NewRepository(db)
}

func criarCombo(t *testing.T, r *Repository, nome string) *Combo {
	t.Helper()
	c := Combo{EmpresaID: 1, Nome: nome, PrecoTotal: decimal.RequireFromString("49.90"), Disponivel: true}
	require.NoError(t, r.Criar(&c))
	return &c
}

func TestCriarSecaoValidaLimites(t *testing.T) {
	r := setupRepo(t)
	c := criarCombo(t, r, "Combo Família")

	require.NoError(t, r.CriarSecao(c.ID, &ComboSecao{Titulo: "Escolha a pizza", MinimoItens: 1, MaximoItens: 2}))
	require.NoError(t, r.CriarSecao(c.ID, &ComboSecao{Titulo: "Sem limite", MinimoItens: 0, MaximoItens: 0}))

	require.ErrorIs(t, r.CriarSecao(c.ID, &ComboSecao{Titulo: "Ruim", MinimoItens: -1}), ErrLimitesInvalidos)
	require.ErrorIs(t, r.CriarSecao(c.ID, &ComboSecao{Titulo: "Ruim", MinimoItens: 3, MaximoItens: 2}), ErrLimitesInvalidos)
}

func TestAdicionarItemValidaPosse(t *testing.T) {
	r := setupRepo(t)
	c := criarCombo(t, r, "Combo Casal")
	secao := ComboSecao{Titulo: "Bebidas"}
	require.NoError(t, r.CriarSecao(c.ID, &secao))

	p := produto.Produto{CodBarras: "1", Descricao: "Refri", Ativo: true}
	require.NoError(t, r.DB.Create(&p).Error)
	require.NoError(t, r.DB.Create(&produto.ProdutoEmp{
		EmpresaID: 1, ProdutoID: p.ID, PrecoVenda: decimal.RequireFromString("8.00"), Disponivel: true,
	}).Error)

	require.NoError(t, r.AdicionarItem(1, secao.ID, &ComboItem{Tipo: vinculo.TipoProduto, RefID: p.ID, Quantidade: 1}))

	// Produto sem vínculo na empresa 2
	require.ErrorIs(t, r.AdicionarItem(2, secao.ID, &ComboItem{Tipo: vinculo.TipoProduto, RefID: p.ID}), ErrAlvoNaoEncontrado)

	// Combo dentro de combo não existe
	require.ErrorIs(t, r.AdicionarItem(1, secao.ID, &ComboItem{Tipo: vinculo.TipoCombo, RefID: c.ID}), ErrTipoInvalido)
}

func TestDeletarComboCascateiaSecoesEItens(t *testing.T) {
	r := setupRepo(t)
	c := criarCombo(t, r, "Combo Kids")
	secao := ComboSecao{Titulo: "Brinde"}
	require.NoError(t, r.CriarSecao(c.ID, &secao))

	rec := receita.Receita{EmpresaID: 1, Nome: "Mini Burger", Disponivel: true}
	require.NoError(t, r.DB.Create(&rec).Error)
	require.NoError(t, r.AdicionarItem(1, secao.ID, &ComboItem{Tipo: vinculo.TipoReceita, RefID: rec.ID}))

	require.NoError(t, r.Deletar(c.ID))

	var nSecoes, nItens int64
	r.DB.Model(&ComboSecao{}).Count(&nSecoes)
	r.DB.Model(&ComboItem{}).Count(&nItens)
	require.Zero(t, nSecoes)
	require.Zero(t, nItens)
}

func TestDeletarComboEmUso(t *testing.T) {
	r := setupRepo(t)
	c := criarCombo(t, r, "Combo Promo")

	require.NoError(t, r.DB.Exec(
		"INSERT INTO vitrine_items (tipo, ref_id) VALUES (?, ?)", string(vinculo.TipoCombo), c.ID).Error)
	require.ErrorIs(t, r.Deletar(c.ID), ErrComboEmUso)
}
