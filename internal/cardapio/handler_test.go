package cardapio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/categoria"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vitrine"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&empresa.Empresa{},
		&categoria.CategoriaDelivery{},
		&produto.Produto{}, &produto.ProdutoEmp{},
		&receita.Receita{}, &receita.ReceitaIngrediente{}, &receita.Ingrediente{},
		&combo.Combo{}, &combo.ComboSecao{}, &combo.ComboItem{},
		&vitrine.Vitrine{}, &vitrine.VitrineItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewHandler(db, false), db
}

func rotasPublicas(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/public/{slug}/cardapio", h.Cardapio).Methods("GET")
	r.HandleFunc("/api/public/{slug}/busca", h.Buscar).Methods("GET")
	return r
}

func seedCardapio(t *testing.T, db *gorm.DB) *empresa.Empresa {
	t.Helper()
	e := empresa.Empresa{Nome: "Lanchonete da Praça", CNPJ: "11222333000144", Slug: "lanchonete-da-praca", SuperToken: "tok", Ativa: true}
	require.NoError(t, db.Create(&e).Error)

	require.NoError(t, db.Create(&categoria.CategoriaDelivery{EmpresaID: e.ID, Nome: "Lanches", Slug: "lanches", Posicao: 1, Ativa: true}).Error)

	p := produto.Produto{CodBarras: "111", Descricao: "Açaí 500ml", Ativo: true}
	require.NoError(t, db.Create(&p).Error)
	require.NoError(t, db.Create(&produto.ProdutoEmp{
		EmpresaID: e.ID, ProdutoID: p.ID,
		PrecoVenda: decimal.RequireFromString("14.00"), Disponivel: true, ExibirDelivery: true,
	}).Error)

	esgotado := produto.Produto{CodBarras: "222", Descricao: "Esgotado", Ativo: true}
	require.NoError(t, db.Create(&esgotado).Error)
	pe := produto.ProdutoEmp{EmpresaID: e.ID, ProdutoID: esgotado.ID, PrecoVenda: decimal.RequireFromString("9.00"), Disponivel: true}
	require.NoError(t, db.Create(&pe).Error)
	require.NoError(t, db.Model(&pe).Update("disponivel", false).Error)

	v := vitrine.Vitrine{EmpresaID: e.ID, Titulo: "Destaques", Posicao: 1, Ativa: true}
	require.NoError(t, db.Create(&v).Error)
	require.NoError(t, db.Create(&vitrine.VitrineItem{VitrineID: v.ID, Tipo: vinculo.TipoProduto, RefID: p.ID, Posicao: 1}).Error)
	require.NoError(t, db.Create(&vitrine.VitrineItem{VitrineID: v.ID, Tipo: vinculo.TipoProduto, RefID: esgotado.ID, Posicao: 2}).Error)

	return &e
}

func TestCardapioPublicoPorSlug(t *testing.T) {
	h, db := setupHandler(t)
	seedCardapio(t, db)
	router := rotasPublicas(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/lanchonete-da-praca/cardapio", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var dto CardapioDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
	require.Equal(t, "Lanchonete da Praça", dto.Empresa)
	require.Len(t, dto.Categorias, 1)
	require.Len(t, dto.Vitrines, 1)

	// O produto indisponível some da vitrine sem quebrar a resposta
	require.Len(t, dto.Vitrines[0].Itens, 1)
	require.Equal(t, "Açaí 500ml", dto.Vitrines[0].Itens[0].Nome)
	require.True(t, dto.Vitrines[0].Itens[0].Preco.Equal(decimal.RequireFromString("14.00")))
}

func TestCardapioSlugDesconhecido(t *testing.T) {
	h, _ := setupHandler(t)
	router := rotasPublicas(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/nao-existe/cardapio", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuscaPublicaCaseInsensitive(t *testing.T) {
	h, db := setupHandler(t)
	seedCardapio(t, db)
	router := rotasPublicas(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/lanchonete-da-praca/busca?q=aça", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var itens []ItemCardapioDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&itens))
	require.Len(t, itens, 1)
	require.Equal(t, "Açaí 500ml", itens[0].Nome)

	// Maiúsculas não mudam o resultado
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/lanchonete-da-praca/busca?q=500ML", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	itens = nil
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&itens))
	require.Len(t, itens, 1)
}

func TestBuscaSemTermo(t *testing.T) {
	h, db := setupHandler(t)
	seedCardapio(t, db)
	router := rotasPublicas(h)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/lanchonete-da-praca/busca", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBuscaIncluiReceitas(t *testing.T) {
	h, db := setupHandler(t)
	e := seedCardapio(t, db)
	router := rotasPublicas(h)

	rec := receita.Receita{EmpresaID: e.ID, Nome: "Açaí da casa", PrecoVenda: decimal.RequireFromString("18.00"), Disponivel: true}
	require.NoError(t, db.Create(&rec).Error)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/lanchonete-da-praca/busca?q=açaí", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var itens []ItemCardapioDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&itens))
	require.Len(t, itens, 2)
}
