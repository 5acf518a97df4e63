package complemento

import (
	"testing"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
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
		&empresa.Empresa{},
		&produto.Produto{}, &produto.ProdutoEmp{},
		&receita.Receita{}, &receita.ReceitaIngrediente{}, &receita.Ingrediente{},
		&combo.Combo{}, &combo.ComboSecao{}, &combo.ComboItem{},
		&Complemento{}, &ComplementoItem{}, &ComplementoVinculo{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db)
}

func criarProdutoComPreco(t *testing.T, db *gorm.DB, empresaID uint, descricao, preco string) *produto.Produto {
	t.Helper()
	p := produto.Produto{CodBarras: descricao, Descricao: descricao, Ativo: true}
	require.NoError(t, db.Create(&p).Error)
	pe := produto.ProdutoEmp{
		EmpresaID:      empresaID,
		ProdutoID:      p.ID,
		PrecoVenda:     decimal.RequireFromString(preco),
		Disponivel:     true,
		ExibirDelivery: true,
	}
	require.NoError(t, db.Create(&pe).Error)
	return &p
}

func criarComplemento(t *testing.T, r *Repository, empresaID uint, nome string) *Complemento {
	t.Helper()
	c := Complemento{EmpresaID: empresaID, Nome: nome}
	require.NoError(t, r.Criar(&c))
	return &c
}

func TestVincularSubstituiConjuntoAnterior(t *testing.T) {
	r := setupRepo(t)
	p := criarProdutoComPreco(t, r.DB, 1, "X-Salada", "18.00")

	c1 := criarComplemento(t, r, 1, "Molhos")
	c2 := criarComplemento(t, r, 1, "Bebidas")
	c3 := criarComplemento(t, r, 1, "Sobremesas")

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c1.ID, c2.ID}, nil))

	resolvidos, err := r.ResolverPorDono(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Len(t, resolvidos, 2)

	// O novo conjunto vale por inteiro: c1 sai, c3 entra
	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c2.ID, c3.ID}, nil))
	resolvidos, err = r.ResolverPorDono(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Len(t, resolvidos, 2)
	require.Equal(t, c2.ID, resolvidos[0].ComplementoID)
	require.Equal(t, c3.ID, resolvidos[1].ComplementoID)
}

func TestVincularListaVaziaLimpaVinculos(t *testing.T) {
	r := setupRepo(t)
	p := criarProdutoComPreco(t, r.DB, 1, "X-Bacon", "22.00")
	c := criarComplemento(t, r, 1, "Adicionais")

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c.ID}, nil))
	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, nil, nil))

	resolvidos, err := r.ResolverPorDono(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Empty(t, resolvidos)
}

func TestVincularDetalhadoVenceSimples(t *testing.T) {
	r := setupRepo(t)
	p := criarProdutoComPreco(t, r.DB, 1, "Prato", "30.00")
	c1 := criarComplemento(t, r, 1, "Guarnições")
	c2 := criarComplemento(t, r, 1, "Bordas")

	detalhado := []ConfigVinculo{{ComplementoID: c2.ID, Obrigatorio: true, Quantitativo: true, MinimoItens: 1, MaximoItens: 3}}
	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c1.ID}, detalhado))

	resolvidos, err := r.ResolverPorDono(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Len(t, resolvidos, 1)
	require.Equal(t, c2.ID, resolvidos[0].ComplementoID)
	require.True(t, resolvidos[0].Obrigatorio)
	require.True(t, resolvidos[0].Quantitativo)
	require.Equal(t, 1, resolvidos[0].MinimoItens)
	require.Equal(t, 3, resolvidos[0].MaximoItens)
}

func TestVincularValidaAntesDeEscrever(t *testing.T) {
	r := setupRepo(t)
	p := criarProdutoComPreco(t, r.DB, 1, "Lanche", "15.00")
	c := criarComplemento(t, r, 1, "Molhos")

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c.ID}, nil))

	// Complemento inexistente rejeita a operação inteira e o conjunto
	// anterior permanece intacto
	err := r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c.ID, 9999}, nil)
	require.ErrorIs(t, err, ErrComplementoInexistente)

	resolvidos, err := r.ResolverPorDono(1, vinculo.TipoProduto, p.ID)
	require.NoError(t, err)
	require.Len(t, resolvidos, 1)
	require.Equal(t, c.ID, resolvidos[0].ComplementoID)
}

func TestVincularDonoInexistente(t *testing.T) {
	r := setupRepo(t)
	c := criarComplemento(t, r, 1, "Molhos")

	err := r.Vincular(1, vinculo.TipoProduto, 9999, []uint{c.ID}, nil)
	require.ErrorIs(t, err, ErrDonoNaoEncontrado)

	err = r.Vincular(1, vinculo.TipoIngrediente, 1, []uint{c.ID}, nil)
	require.ErrorIs(t, err, ErrDonoTipoNaoSuportado)
}

func TestResolverPrecoEfetivoPrefereOverride(t *testing.T) {
	r := setupRepo(t)
	dono := criarProdutoComPreco(t, r.DB, 1, "Combo do Dia", "35.00")
	alvo := criarProdutoComPreco(t, r.DB, 1, "Coca Lata", "6.00")
	alvo2 := criarProdutoComPreco(t, r.DB, 1, "Suco", "8.00")

	c := criarComplemento(t, r, 1, "Bebidas")
	override := decimal.RequireFromString("4.50")
	require.NoError(t, r.AdicionarItem(c.ID, &ComplementoItem{Tipo: vinculo.TipoProduto, RefID: alvo.ID, PrecoComplemento: &override}))
	require.NoError(t, r.AdicionarItem(c.ID, &ComplementoItem{Tipo: vinculo.TipoProduto, RefID: alvo2.ID}))

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, dono.ID, []uint{c.ID}, nil))

	resolvidos, err := r.ResolverPorDono(1, vinculo.TipoProduto, dono.ID)
	require.NoError(t, err)
	require.Len(t, resolvidos, 1)
	require.Len(t, resolvidos[0].Itens, 2)

	// Com override vale o override; sem, vale o preço do vínculo
	// produto×empresa
	require.True(t, resolvidos[0].Itens[0].PrecoEfetivo.Equal(override))
	require.True(t, resolvidos[0].Itens[1].PrecoEfetivo.Equal(decimal.RequireFromString("8.00")))
}

func TestDeletarComplementoVinculadoFalha(t *testing.T) {
	r := setupRepo(t)
	p := criarProdutoComPreco(t, r.DB, 1, "Burrito", "25.00")
	c := criarComplemento(t, r, 1, "Pimentas")

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, []uint{c.ID}, nil))
	require.ErrorIs(t, r.Deletar(c.ID), ErrComplementoEmUso)

	require.NoError(t, r.Vincular(1, vinculo.TipoProduto, p.ID, nil, nil))
	require.NoError(t, r.Deletar(c.ID))
}
