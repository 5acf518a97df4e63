package empresa

import (
	"strings"
	"testing"

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
	if err := db.AutoMigrate(&Empresa{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCriarDesambiguaSlugDuplicado(t *testing.T) {
	db := setupDB(t)
	r := NewRepository()

	a := Empresa{Nome: "Pizzaria Bella", CNPJ: "1", Slug: "pizzaria-bella", SuperToken: "tok-a", Ativa: true}
	require.NoError(t, r.Criar(db, &a))

	b := Empresa{Nome: "Pizzaria Bella Filial", CNPJ: "2", Slug: "pizzaria-bella", SuperToken: "tok-b", Ativa: true}
	require.NoError(t, r.Criar(db, &b))

	require.NotEqual(t, a.Slug, b.Slug)
	require.True(t, strings.HasPrefix(b.Slug, "pizzaria-bella-"), "slug = %s", b.Slug)
}

func TestCriarNaoMascaraCNPJDuplicado(t *testing.T) {
	db := setupDB(t)
	r := NewRepository()

	a := Empresa{Nome: "Matriz", CNPJ: "11222333000144", Slug: "matriz", SuperToken: "tok-a"}
	require.NoError(t, r.Criar(db, &a))

	// A segunda tentativa troca o slug, mas o CNPJ continua colidindo
	b := Empresa{Nome: "Clone", CNPJ: "11222333000144", Slug: "matriz", SuperToken: "tok-b"}
	require.Error(t, r.Criar(db, &b))
}

func TestBuscarPorSlug(t *testing.T) {
	db := setupDB(t)
	r := NewRepository()

	e := Empresa{Nome: "Sushi Ya", CNPJ: "3", Slug: "sushi-ya", SuperToken: "tok"}
	require.NoError(t, r.Criar(db, &e))

	achada, err := r.BuscarPorSlug(db, "sushi-ya")
	require.NoError(t, err)
	require.Equal(t, e.ID, achada.ID)

	_, err = r.BuscarPorSlug(db, "nao-existe")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAtualizarPreservaSlugQuandoVazio(t *testing.T) {
	db := setupDB(t)
	r := NewRepository()

	e := Empresa{Nome: "Café Central", CNPJ: "4", Slug: "cafe-central", SuperToken: "tok"}
	require.NoError(t, r.Criar(db, &e))

	require.NoError(t, r.Atualizar(db, e.ID, &Empresa{Nome: "Café Central Novo", CNPJ: "4", Ativa: true}))

	salva, err := r.BuscarPorID(db, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Café Central Novo", salva.Nome)
	require.Equal(t, "cafe-central", salva.Slug)
}
