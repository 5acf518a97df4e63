package complemento

import (
	"errors"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTipoInvalido           = errors.New("tipo de vínculo inválido")
	ErrDonoNaoEncontrado      = errors.New("dono do vínculo não encontrado na empresa")
	ErrComplementoInexistente = errors.New("complemento não encontrado na empresa")
	ErrAlvoItemNaoEncontrado  = errors.New("alvo do item não encontrado na empresa")
	ErrComplementoEmUso       = errors.New("complemento vinculado a produtos, receitas ou combos")
	ErrDonoTipoNaoSuportado   = errors.New("dono deve ser produto, receita ou combo")
	ErrItemTipoNaoSuportado   = errors.New("item deve apontar para produto, receita ou combo")
	errPrecoAlvoIndisponivel  = errors.New("preço do alvo indisponível")
)

type Repository struct {
	DB          *gorm.DB
	produtoRepo *produto.Repository
	receitaRepo *receita.Repository
	comboRepo   *combo.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:          db,
		produtoRepo: produto.NewRepository(db),
		receitaRepo: receita.NewRepository(db),
		comboRepo:   combo.NewRepository(db),
	}
}

func (r *Repository) Criar(c *Complemento) error {
	return r.DB.Create(c).Error
}

func (r *Repository) BuscarPorID(id uint) (*Complemento, error) {
	var c Complemento
	if err := r.DB.Preload("Itens").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListarPorEmpresa(empresaID uint) ([]Complemento, error) {
	var complementos []Complemento
	err := r.DB.Preload("Itens").
		Where("empresa_id = ?", empresaID).
		Order("nome").
		Find(&complementos).Error
	return complementos, err
}

func (r *Repository) Atualizar(c *Complemento) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	var n int64
	r.DB.Model(&ComplementoVinculo{}).Where("complemento_id = ?", id).Count(&n)
	if n > 0 {
		return ErrComplementoEmUso
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complemento_id = ?", id).Delete(&ComplementoItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Complemento{}, id).Error
	})
}

func (r *Repository) existeNaEmpresa(empresaID, complementoID uint) bool {
	var n int64
	r.DB.Model(&Complemento{}).Where("id = ? AND empresa_id = ?", complementoID, empresaID).Count(&n)
	return n > 0
}

func (r *Repository) validarAlvo(empresaID uint, tipo vinculo.Tipo, refID uint) error {
	switch tipo {
	case vinculo.TipoProduto:
		if !r.produtoRepo.ExisteNaEmpresa(empresaID, refID) {
			return ErrAlvoItemNaoEncontrado
		}
	case vinculo.TipoReceita:
		if !r.receitaRepo.ExisteNaEmpresa(empresaID, refID) {
			return ErrAlvoItemNaoEncontrado
		}
	case vinculo.TipoCombo:
		if !r.comboRepo.ExisteNaEmpresa(empresaID, refID) {
			return ErrAlvoItemNaoEncontrado
		}
	default:
		return ErrItemTipoNaoSuportado
	}
	return nil
}

// AdicionarItem insere um item no complemento, com override de preço opcional.
func (r *Repository) AdicionarItem(complementoID uint, item *ComplementoItem) error {
	c, err := r.BuscarPorID(complementoID)
	if err != nil {
		return ErrComplementoInexistente
	}
	if err := r.validarAlvo(c.EmpresaID, item.Tipo, item.RefID); err != nil {
		return err
	}
	item.ComplementoID = complementoID
	return r.DB.Create(item).Error
}

func (r *Repository) RemoverItem(complementoID, itemID uint) error {
	return r.DB.Where("complemento_id = ?", complementoID).Delete(&ComplementoItem{}, itemID).Error
}

// Vincular aplica a vinculação replace-all: todos os vínculos anteriores do
// dono são removidos e o novo conjunto é inserido em uma transação. Lista
// vazia é a forma válida de limpar os vínculos. A forma detalhada sempre
// vence quando presente e não vazia; ids simples recebem os defaults
// (não obrigatório, não quantitativo, sem limites).
func (r *Repository) Vincular(empresaID uint, donoTipo vinculo.Tipo, donoID uint, simples []uint, detalhado []ConfigVinculo) error {
	switch donoTipo {
	case vinculo.TipoProduto:
		if !r.produtoRepo.ExisteNaEmpresa(empresaID, donoID) {
			return ErrDonoNaoEncontrado
		}
	case vinculo.TipoReceita:
		if !r.receitaRepo.ExisteNaEmpresa(empresaID, donoID) {
			return ErrDonoNaoEncontrado
		}
	case vinculo.TipoCombo:
		if !r.comboRepo.ExisteNaEmpresa(empresaID, donoID) {
			return ErrDonoNaoEncontrado
		}
	default:
		return ErrDonoTipoNaoSuportado
	}

	configs := detalhado
	if len(configs) == 0 {
		configs = make([]ConfigVinculo, 0, len(simples))
		for _, id := range simples {
			configs = append(configs, ConfigVinculo{ComplementoID: id})
		}
	}

	// Toda referência é conferida antes de qualquer escrita.
	for _, cfg := range configs {
		if !r.existeNaEmpresa(empresaID, cfg.ComplementoID) {
			return ErrComplementoInexistente
		}
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dono_tipo = ? AND dono_id = ?", donoTipo, donoID).
			Delete(&ComplementoVinculo{}).Error; err != nil {
			return err
		}
		for _, cfg := range configs {
			v := ComplementoVinculo{
				DonoTipo:      donoTipo,
				DonoID:        donoID,
				ComplementoID: cfg.ComplementoID,
				Obrigatorio:   cfg.Obrigatorio,
				Quantitativo:  cfg.Quantitativo,
				MinimoItens:   cfg.MinimoItens,
				MaximoItens:   cfg.MaximoItens,
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// precoAlvo lê o preço autoritativo da entidade apontada.
func (r *Repository) precoAlvo(empresaID uint, tipo vinculo.Tipo, refID uint) (decimal.Decimal, error) {
	switch tipo {
	case vinculo.TipoProduto:
		pe, err := r.produtoRepo.BuscarVinculoEmpresa(empresaID, refID)
		if err != nil {
			return decimal.Zero, errPrecoAlvoIndisponivel
		}
		return pe.PrecoVenda, nil
	case vinculo.TipoReceita:
		rec, err := r.receitaRepo.BuscarPorID(refID)
		if err != nil {
			return decimal.Zero, errPrecoAlvoIndisponivel
		}
		return rec.PrecoVenda, nil
	case vinculo.TipoCombo:
		c, err := r.comboRepo.BuscarPorID(refID)
		if err != nil {
			return decimal.Zero, errPrecoAlvoIndisponivel
		}
		return c.PrecoTotal, nil
	}
	return decimal.Zero, errPrecoAlvoIndisponivel
}

// ResolverPorDono devolve os complementos vinculados a um dono com a
// configuração do vínculo e cada item com o preço efetivo: override quando
// presente, senão o preço autoritativo do alvo.
func (r *Repository) ResolverPorDono(empresaID uint, donoTipo vinculo.Tipo, donoID uint) ([]ComplementoResolvidoDTO, error) {
	var vinculos []ComplementoVinculo
	err := r.DB.Where("dono_tipo = ? AND dono_id = ?", donoTipo, donoID).
		Order("id").
		Find(&vinculos).Error
	if err != nil {
		return nil, err
	}

	resolvidos := make([]ComplementoResolvidoDTO, 0, len(vinculos))
	for _, v := range vinculos {
		c, err := r.BuscarPorID(v.ComplementoID)
		if err != nil {
			continue
		}
		dto := ComplementoResolvidoDTO{
			ComplementoID: c.ID,
			Nome:          c.Nome,
			Obrigatorio:   v.Obrigatorio,
			Quantitativo:  v.Quantitativo,
			MinimoItens:   v.MinimoItens,
			MaximoItens:   v.MaximoItens,
			Itens:         make([]ItemResolvidoDTO, 0, len(c.Itens)),
		}
		for _, item := range c.Itens {
			preco := decimal.Zero
			if item.PrecoComplemento != nil {
				preco = *item.PrecoComplemento
			} else if p, err := r.precoAlvo(c.EmpresaID, item.Tipo, item.RefID); err == nil {
				preco = p
			}
			dto.Itens = append(dto.Itens, ItemResolvidoDTO{
				ID:           item.ID,
				Tipo:         item.Tipo,
				RefID:        item.RefID,
				PrecoEfetivo: preco,
			})
		}
		resolvidos = append(resolvidos, dto)
	}
	return resolvidos, nil
}
