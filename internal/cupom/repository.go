package cupom

import (
	"errors"
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCupomInvalido     = errors.New("cupom inválido ou fora da validade")
	ErrCupomOutraEmpresa = errors.New("cupom não vale para esta empresa")
	ErrCodigoEmUso       = errors.New("código de cupom já usado em uma das empresas")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *CupomDesconto) error {
	ids := make([]uint, 0, len(c.Empresas))
	for _, e := range c.Empresas {
		ids = append(ids, e.ID)
	}
	if r.codigoEmUso(0, c.Codigo, ids) {
		return ErrCodigoEmUso
	}
	return r.DB.Create(c).Error
}

// codigoEmUso verifica se alguma das empresas já tem outro cupom com o mesmo
// código. O código é único por empresa, não globalmente.
func (r *Repository) codigoEmUso(cupomID uint, codigo string, empresaIDs []uint) bool {
	if len(empresaIDs) == 0 {
		return false
	}
	var n int64
	r.DB.Table("cupom_descontos").
		Joins("JOIN cupom_empresas ce ON ce.cupom_desconto_id = cupom_descontos.id").
		Where("cupom_descontos.codigo = ? AND cupom_descontos.id <> ? AND cupom_descontos.deleted_at IS NULL", codigo, cupomID).
		Where("ce.empresa_id IN ?", empresaIDs).
		Count(&n)
	return n > 0
}

func (r *Repository) BuscarPorID(id uint) (*CupomDesconto, error) {
	var c CupomDesconto
	if err := r.DB.Preload("Parceiro").Preload("Empresas").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListarTodos() ([]CupomDesconto, error) {
	var cupons []CupomDesconto
	err := r.DB.Preload("Parceiro").Order("codigo").Find(&cupons).Error
	return cupons, err
}

func (r *Repository) Atualizar(c *CupomDesconto) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Select("Empresas").Delete(&CupomDesconto{Model: gorm.Model{ID: id}}).Error
}

// VincularEmpresas substitui o conjunto de empresas do cupom.
func (r *Repository) VincularEmpresas(cupomID uint, empresaIDs []uint) error {
	c, err := r.BuscarPorID(cupomID)
	if err != nil {
		return err
	}
	empresas := make([]empresa.Empresa, 0, len(empresaIDs))
	for _, id := range empresaIDs {
		var e empresa.Empresa
		if err := r.DB.First(&e, id).Error; err != nil {
			return err
		}
		empresas = append(empresas, e)
	}
	if r.codigoEmUso(c.ID, c.Codigo, empresaIDs) {
		return ErrCodigoEmUso
	}
	return r.DB.Model(c).Association("Empresas").Replace(empresas)
}

// CalcularDesconto valida o cupom para a empresa na data dada e devolve o
// desconto sobre o subtotal: percentual quando configurado, senão o valor
// fixo limitado ao subtotal.
func (r *Repository) CalcularDesconto(empresaID uint, codigo string, subtotal decimal.Decimal, quando time.Time) (decimal.Decimal, *CupomDesconto, error) {
	var c CupomDesconto
	err := r.DB.Preload("Empresas").
		Joins("JOIN cupom_empresas ce ON ce.cupom_desconto_id = cupom_descontos.id").
		Where("cupom_descontos.codigo = ? AND ce.empresa_id = ?", codigo, empresaID).
		First(&c).Error
	if err != nil {
		var n int64
		r.DB.Model(&CupomDesconto{}).Where("codigo = ?", codigo).Count(&n)
		if n > 0 {
			return decimal.Zero, nil, ErrCupomOutraEmpresa
		}
		return decimal.Zero, nil, ErrCupomInvalido
	}
	if !c.Ativo || quando.Before(c.ValidoDe) || quando.After(c.ValidoAte) {
		return decimal.Zero, nil, ErrCupomInvalido
	}

	if c.DescontoPercentual != nil {
		cem := decimal.NewFromInt(100)
		return subtotal.Mul(*c.DescontoPercentual).Div(cem), &c, nil
	}
	if c.DescontoFixo != nil {
		if c.DescontoFixo.GreaterThan(subtotal) {
			return subtotal, &c, nil
		}
		return *c.DescontoFixo, &c, nil
	}
	return decimal.Zero, &c, nil
}
