package entregador

import (
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"gorm.io/gorm"
)

// Entregador presta serviço para uma ou mais empresas.
type Entregador struct {
	gorm.Model
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Veiculo  string `json:"veiculo"`
	Ativo    bool   `json:"ativo" gorm:"default:true"`

	Empresas []empresa.Empresa `gorm:"many2many:entregador_empresas" json:"empresas,omitempty"`
}
