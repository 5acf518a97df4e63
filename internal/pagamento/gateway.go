package pagamento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Cobranca é a resposta do gateway para uma cobrança PIX.
type Cobranca struct {
	TransacaoExterna string          `json:"transacaoExterna"`
	Status           string          `json:"status"`
	Valor            decimal.Decimal `json:"valor"`
	QRCode           string          `json:"qrCode"`
	CopiaECola       string          `json:"copiaECola"`
}

// Gateway abstrai o provedor de pagamento.
type Gateway interface {
	CobrarPix(ctx context.Context, pedidoID uint, valor decimal.Decimal) (*Cobranca, error)
}

// NovoGateway escolhe o provedor pela variável PAYMENT_GATEWAY; o modo mock
// é o default e sempre aprova.
func NovoGateway() Gateway {
	if os.Getenv("PAYMENT_GATEWAY") == "http" {
		return &httpGateway{
			baseURL: os.Getenv("PAYMENT_GATEWAY_URL"),
			client:  &http.Client{Timeout: 10 * time.Second},
		}
	}
	return &MockGateway{}
}

// MockGateway aprova toda cobrança de forma síncrona, com um payload PIX
// fabricado.
type MockGateway struct{}

func (g *MockGateway) CobrarPix(ctx context.Context, pedidoID uint, valor decimal.Decimal) (*Cobranca, error) {
	id := fmt.Sprintf("mock-%d-%d", pedidoID, time.Now().UnixNano())
	return &Cobranca{
		TransacaoExterna: id,
		Status:           "PAGO",
		Valor:            valor,
		QRCode:           fmt.Sprintf("00020126580014br.gov.bcb.pix0136%s5204000053039865802BR", id),
		CopiaECola:       fmt.Sprintf("pix-copia-e-cola-%s", id),
	}, nil
}

// httpGateway chama um provedor real. Caminho ainda incompleto: só a
// cobrança está coberta, sem consulta nem estorno.
type httpGateway struct {
	baseURL string
	client  *http.Client
}

func (g *httpGateway) CobrarPix(ctx context.Context, pedidoID uint, valor decimal.Decimal) (*Cobranca, error) {
	if g.baseURL == "" {
		return nil, errors.New("PAYMENT_GATEWAY_URL não configurada")
	}

	payload := map[string]interface{}{
		"pedidoId": pedidoID,
		"valor":    valor,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/pix/cobrancas", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway respondeu %d", resp.StatusCode)
	}

	var cob Cobranca
	if err := json.NewDecoder(resp.Body).Decode(&cob); err != nil {
		return nil, err
	}
	return &cob, nil
}
