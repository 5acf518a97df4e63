package chatbot

import (
	"context"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Redator reescreve respostas prontas em tom de atendente. Sem chave de API
// configurada, devolve o texto original.
type Redator struct {
	client *openai.Client
}

func NovoRedator() *Redator {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return &Redator{}
	}
	client := openai.NewClient(option.WithAPIKey(key))
	return &Redator{client: &client}
}

// Reescrever pede ao modelo uma versão mais natural da resposta; qualquer
// falha devolve o texto original para o fluxo nunca travar na LLM.
func (r *Redator) Reescrever(ctx context.Context, resposta string) string {
	if r.client == nil {
		return resposta
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	prompt := "Você é um atendente simpático de delivery por WhatsApp. " +
		"Reescreva a mensagem abaixo em uma frase curta e cordial, em português, " +
		"sem mudar informações, números ou valores:\n\n" + resposta

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4oMini),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}

	resp, err := r.client.Responses.New(ctx, params)
	if err != nil {
		return resposta
	}
	texto := resp.OutputText()
	if texto == "" {
		return resposta
	}
	return texto
}
