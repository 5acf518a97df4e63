package complemento

import (
	"time"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vinculo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Complemento é um grupo de adicionais ("Escolha o molho"). A configuração
// comportamental (obrigatório, quantitativo, limites) não mora aqui: ela é
// dada por vínculo, então o mesmo complemento pode ser obrigatório em um
// produto e opcional em outro.
type Complemento struct {
	gorm.Model
	EmpresaID uint   `json:"empresaId" gorm:"not null;index"`
	Nome      string `json:"nome"`

	Itens []ComplementoItem `gorm:"foreignKey:ComplementoID;constraint:OnDelete:CASCADE" json:"itens"`
}

// ComplementoItem aponta para um produto, receita ou combo. O preço exibido
// é o override PrecoComplemento quando presente, senão o preço autoritativo
// da entidade apontada.
type ComplementoItem struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ComplementoID uint `gorm:"not null;index" json:"complementoId"`

	Tipo  vinculo.Tipo `gorm:"size:16;not null" json:"tipo"`
	RefID uint         `gorm:"not null" json:"refId"`

	PrecoComplemento *decimal.Decimal `json:"precoComplemento,omitempty" gorm:"type:numeric(12,2)"`
}

// ComplementoVinculo liga um complemento a um dono (produto, receita ou
// combo) carregando a configuração por vínculo.
type ComplementoVinculo struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DonoTipo vinculo.Tipo `gorm:"size:16;not null;index:idx_vinculo_dono" json:"donoTipo"`
	DonoID   uint         `gorm:"not null;index:idx_vinculo_dono" json:"donoId"`

	ComplementoID uint `gorm:"not null;index" json:"complementoId"`

	Obrigatorio  bool `json:"obrigatorio" gorm:"default:false"`
	Quantitativo bool `json:"quantitativo" gorm:"default:false"`
	MinimoItens  int  `json:"minimoItens" gorm:"default:0"`
	MaximoItens  int  `json:"maximoItens" gorm:"default:0"`

	CreatedAt time.Time `json:"createdAt"`
}
