package cardapio

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vitrine"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository monta o cardápio público. TemUnaccent vem da sonda feita na
// subida do processo; quando falso a busca cai para LOWER/LIKE portátil.
type Repository struct {
	DB          *gorm.DB
	TemUnaccent bool

	produtoRepo *produto.Repository
	receitaRepo *receita.Repository
	comboRepo   *combo.Repository
}

func NewRepository(db *gorm.DB, temUnaccent bool) *Repository {
	return &Repository{
		DB:          db,
		TemUnaccent: temUnaccent,
		produtoRepo: produto.NewRepository(db),
		receitaRepo: receita.NewRepository(db),
		comboRepo:   combo.NewRepository(db),
	}
}

// ResolverItem materializa nome e preço de exibição de um item de vitrine.
func (r *Repository) ResolverItem(empresaID uint, tipo vinculo.Tipo, refID uint) (string, decimal.Decimal, bool) {
	switch tipo {
	case vinculo.TipoProduto:
		pe, err := r.produtoRepo.BuscarVinculoEmpresa(empresaID, refID)
		if err != nil || !pe.Disponivel || !pe.ExibirDelivery {
			return "", decimal.Zero, false
		}
		p, err := r.produtoRepo.BuscarPorID(refID)
		if err != nil || !p.Ativo {
			return "", decimal.Zero, false
		}
		return p.Descricao, pe.PrecoVenda, true
	case vinculo.TipoReceita:
		rec, err := r.receitaRepo.BuscarPorID(refID)
		if err != nil || rec.EmpresaID != empresaID || !rec.Disponivel {
			return "", decimal.Zero, false
		}
		return rec.Nome, rec.PrecoVenda, true
	case vinculo.TipoCombo:
		c, err := r.comboRepo.BuscarPorID(refID)
		if err != nil || c.EmpresaID != empresaID || !c.Disponivel {
			return "", decimal.Zero, false
		}
		return c.Nome, c.PrecoTotal, true
	}
	return "", decimal.Zero, false
}

// MontarVitrines resolve as vitrines ativas da empresa com itens
// materializados; itens indisponíveis são omitidos.
func (r *Repository) MontarVitrines(empresaID uint) ([]VitrineDTO, error) {
	repo := vitrine.NewRepository(r.DB)
	vitrines, err := repo.ListarPorEmpresa(empresaID, true)
	if err != nil {
		return nil, err
	}

	dtos := make([]VitrineDTO, 0, len(vitrines))
	for _, v := range vitrines {
		dto := VitrineDTO{Titulo: v.Titulo, Posicao: v.Posicao, Itens: []ItemCardapioDTO{}}
		for _, item := range v.Itens {
			nome, preco, ok := r.ResolverItem(empresaID, item.Tipo, item.RefID)
			if !ok {
				continue
			}
			dto.Itens = append(dto.Itens, ItemCardapioDTO{
				Tipo:  item.Tipo,
				RefID: item.RefID,
				Nome:  nome,
				Preco: preco,
			})
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// Buscar procura produtos e receitas da empresa por texto. Com unaccent
// disponível a comparação ignora acentos via unaccent(...) ILIKE.
func (r *Repository) Buscar(empresaID uint, q string, limite int) ([]ItemCardapioDTO, error) {
	padrao := "%" + q + "%"
	itens := []ItemCardapioDTO{}

	var produtos []produto.Produto
	pq := r.DB.Model(&produto.Produto{}).
		Joins("JOIN produto_emps pe ON pe.produto_id = produtos.id AND pe.empresa_id = ?", empresaID).
		Where("produtos.ativo = ? AND pe.disponivel = ?", true, true)
	if r.TemUnaccent {
		pq = pq.Where("unaccent(produtos.descricao) ILIKE unaccent(?)", padrao)
	} else {
		pq = pq.Where("LOWER(produtos.descricao) LIKE LOWER(?)", padrao)
	}
	if err := pq.Limit(limite).Find(&produtos).Error; err != nil {
		return nil, err
	}
	for _, p := range produtos {
		preco := r.produtoRepo.PrecoVendaEmpresa(empresaID, p.ID)
		itens = append(itens, ItemCardapioDTO{Tipo: vinculo.TipoProduto, RefID: p.ID, Nome: p.Descricao, Preco: preco})
	}

	var receitas []receita.Receita
	rq := r.DB.Model(&receita.Receita{}).
		Where("empresa_id = ? AND disponivel = ?", empresaID, true)
	if r.TemUnaccent {
		rq = rq.Where("unaccent(nome) ILIKE unaccent(?)", padrao)
	} else {
		rq = rq.Where("LOWER(nome) LIKE LOWER(?)", padrao)
	}
	if err := rq.Limit(limite).Find(&receitas).Error; err != nil {
		return nil, err
	}
	for _, rec := range receitas {
		itens = append(itens, ItemCardapioDTO{Tipo: vinculo.TipoReceita, RefID: rec.ID, Nome: rec.Nome, Preco: rec.PrecoVenda})
	}

	return itens, nil
}
