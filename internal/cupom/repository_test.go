package cupom

import (
	"testing"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
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
	if err := db.AutoMigrate(&empresa.Empresa{}, &Parceiro{}, &CupomDesconto{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepository(db)
}

func criarEmpresa(t *testing.T, db *gorm.DB, nome string) *empresa.Empresa {
	t.Helper()
	e := empresa.Empresa{Nome: nome, CNPJ: nome, Slug: nome, SuperToken: nome, Ativa: true}
	require.NoError(t, db.Create(&e).Error)
	return &e
}

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func criarCupom(t *testing.T, r *Repository, codigo string, percentual, fixo *decimal.Decimal, empresas ...empresa.Empresa) *CupomDesconto {
	t.Helper()
	c := CupomDesconto{
		Codigo:             codigo,
		DescontoPercentual: percentual,
		DescontoFixo:       fixo,
		ValidoDe:           time.Now().AddDate(0, 0, -1),
		ValidoAte:          time.Now().AddDate(0, 0, 7),
		Ativo:              true,
		Empresas:           empresas,
	}
	require.NoError(t, r.Criar(&c))
	return &c
}

func TestCalcularDescontoPercentual(t *testing.T) {
	r := setupRepo(t)
	e := criarEmpresa(t, r.DB, "lanchonete")
	criarCupom(t, r, "PROMO10", ptr("10"), nil, *e)

	desc, c, err := r.CalcularDesconto(e.ID, "PROMO10", decimal.RequireFromString("50.00"), time.Now())
	require.NoError(t, err)
	require.NotNil(t, c)
	require.True(t, desc.Equal(decimal.RequireFromString("5.00")), "desconto = %s", desc)
}

func TestCalcularDescontoFixoLimitadoAoSubtotal(t *testing.T) {
	r := setupRepo(t)
	e := criarEmpresa(t, r.DB, "pizzaria")
	criarCupom(t, r, "MENOS20", nil, ptr("20.00"), *e)

	desc, _, err := r.CalcularDesconto(e.ID, "MENOS20", decimal.RequireFromString("80.00"), time.Now())
	require.NoError(t, err)
	require.True(t, desc.Equal(decimal.RequireFromString("20.00")))

	// Desconto fixo nunca passa do subtotal
	desc, _, err = r.CalcularDesconto(e.ID, "MENOS20", decimal.RequireFromString("12.00"), time.Now())
	require.NoError(t, err)
	require.True(t, desc.Equal(decimal.RequireFromString("12.00")))
}

func TestCalcularDescontoForaDaValidade(t *testing.T) {
	r := setupRepo(t)
	e := criarEmpresa(t, r.DB, "padaria")
	criarCupom(t, r, "VELHO", ptr("10"), nil, *e)

	antes := time.Now().AddDate(0, -1, 0)
	_, _, err := r.CalcularDesconto(e.ID, "VELHO", decimal.RequireFromString("50.00"), antes)
	require.ErrorIs(t, err, ErrCupomInvalido)

	depois := time.Now().AddDate(0, 1, 0)
	_, _, err = r.CalcularDesconto(e.ID, "VELHO", decimal.RequireFromString("50.00"), depois)
	require.ErrorIs(t, err, ErrCupomInvalido)
}

func TestCalcularDescontoCupomInativoOuInexistente(t *testing.T) {
	r := setupRepo(t)
	e := criarEmpresa(t, r.DB, "mercado")

	_, _, err := r.CalcularDesconto(e.ID, "NAOEXISTE", decimal.RequireFromString("50.00"), time.Now())
	require.ErrorIs(t, err, ErrCupomInvalido)

	c := criarCupom(t, r, "DESATIVADO", ptr("10"), nil, *e)
	c.Ativo = false
	require.NoError(t, r.Atualizar(c))
	_, _, err = r.CalcularDesconto(e.ID, "DESATIVADO", decimal.RequireFromString("50.00"), time.Now())
	require.ErrorIs(t, err, ErrCupomInvalido)
}

func TestCalcularDescontoEmpresaNaoVinculada(t *testing.T) {
	r := setupRepo(t)
	dona := criarEmpresa(t, r.DB, "dona")
	outra := criarEmpresa(t, r.DB, "outra")
	criarCupom(t, r, "SOPARAUMA", ptr("10"), nil, *dona)

	_, _, err := r.CalcularDesconto(outra.ID, "SOPARAUMA", decimal.RequireFromString("50.00"), time.Now())
	require.ErrorIs(t, err, ErrCupomOutraEmpresa)
}

func TestCodigoPodeRepetirEntreEmpresas(t *testing.T) {
	r := setupRepo(t)
	norte := criarEmpresa(t, r.DB, "norte")
	sul := criarEmpresa(t, r.DB, "sul")
	criarCupom(t, r, "BEMVINDO", ptr("10"), nil, *norte)
	criarCupom(t, r, "BEMVINDO", ptr("20"), nil, *sul)

	// Cada empresa resolve o próprio cupom para o mesmo código
	desc, _, err := r.CalcularDesconto(norte.ID, "BEMVINDO", decimal.RequireFromString("100.00"), time.Now())
	require.NoError(t, err)
	require.True(t, desc.Equal(decimal.RequireFromString("10.00")), "desconto = %s", desc)

	desc, _, err = r.CalcularDesconto(sul.ID, "BEMVINDO", decimal.RequireFromString("100.00"), time.Now())
	require.NoError(t, err)
	require.True(t, desc.Equal(decimal.RequireFromString("20.00")), "desconto = %s", desc)
}

func TestCodigoDuplicadoNaMesmaEmpresa(t *testing.T) {
	r := setupRepo(t)
	centro := criarEmpresa(t, r.DB, "centro")
	bairro := criarEmpresa(t, r.DB, "bairro")
	criarCupom(t, r, "DEZ", ptr("10"), nil, *centro)

	dup := CupomDesconto{
		Codigo:             "DEZ",
		DescontoPercentual: ptr("15"),
		ValidoDe:           time.Now().AddDate(0, 0, -1),
		ValidoAte:          time.Now().AddDate(0, 0, 7),
		Ativo:              true,
		Empresas:           []empresa.Empresa{*centro},
	}
	require.ErrorIs(t, r.Criar(&dup), ErrCodigoEmUso)

	// Vincular também não pode levar o código repetido para a empresa
	c2 := criarCupom(t, r, "DEZ", ptr("15"), nil, *bairro)
	require.ErrorIs(t, r.VincularEmpresas(c2.ID, []uint{centro.ID}), ErrCodigoEmUso)
}

func TestVincularEmpresasSubstituiConjunto(t *testing.T) {
	r := setupRepo(t)
	e1 := criarEmpresa(t, r.DB, "um")
	e2 := criarEmpresa(t, r.DB, "dois")
	c := criarCupom(t, r, "TROCA", ptr("5"), nil, *e1)

	require.NoError(t, r.VincularEmpresas(c.ID, []uint{e2.ID}))

	_, _, err := r.CalcularDesconto(e1.ID, "TROCA", decimal.RequireFromString("10.00"), time.Now())
	require.ErrorIs(t, err, ErrCupomOutraEmpresa)
	_, _, err = r.CalcularDesconto(e2.ID, "TROCA", decimal.RequireFromString("10.00"), time.Now())
	require.NoError(t, err)
}
