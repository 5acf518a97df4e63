package regiao

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrFaixaInvalida   = errors.New("faixa de distância inválida")
	ErrFaixaSobreposta = errors.New("faixa de distância sobrepõe outra região da empresa")
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// sobrepoe checa se [kmMin, kmMax) intersecta alguma faixa existente da
// empresa, ignorando a própria região em atualizações.
func (r *Repository) sobrepoe(empresaID uint, kmMin, kmMax decimal.Decimal, ignorarID uint) bool {
	var n int64
	r.DB.Model(&RegiaoEntrega{}).
		Where("empresa_id = ? AND id <> ?", empresaID, ignorarID).
		Where("km_min < ? AND km_max > ?", kmMax, kmMin).
		Count(&n)
	return n > 0
}

func (r *Repository) Criar(reg *RegiaoEntrega) error {
	if reg.KmMax.LessThanOrEqual(reg.KmMin) || reg.KmMin.IsNegative() {
		return ErrFaixaInvalida
	}
	if r.sobrepoe(reg.EmpresaID, reg.KmMin, reg.KmMax, 0) {
		return ErrFaixaSobreposta
	}
	return r.DB.Create(reg).Error
}

func (r *Repository) Atualizar(reg *RegiaoEntrega) error {
	if reg.KmMax.LessThanOrEqual(reg.KmMin) || reg.KmMin.IsNegative() {
		return ErrFaixaInvalida
	}
	if r.sobrepoe(reg.EmpresaID, reg.KmMin, reg.KmMax, reg.ID) {
		return ErrFaixaSobreposta
	}
	return r.DB.Save(reg).Error
}

func (r *Repository) BuscarPorID(id uint) (*RegiaoEntrega, error) {
	var reg RegiaoEntrega
	if err := r.DB.First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]RegiaoEntrega, error) {
	var regioes []RegiaoEntrega
	err := r.DB.Where("empresa_id = ?", empresaID).Order("km_min").Find(&regioes).Error
	return regioes, err
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&RegiaoEntrega{}, id).Error
}

// TaxaParaDistancia resolve a taxa de entrega da faixa que contém a
// distância; sem faixa, devolve zero e false.
func (r *Repository) TaxaParaDistancia(empresaID uint, km decimal.Decimal) (decimal.Decimal, bool) {
	var reg RegiaoEntrega
	err := r.DB.Where("empresa_id = ? AND ativa = ? AND km_min <= ? AND km_max > ?", empresaID, true, km, km).
		First(&reg).Error
	if err != nil {
		return decimal.Zero, false
	}
	return reg.Taxa, true
}
