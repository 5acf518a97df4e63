package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/auth"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/cardapio"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/categoria"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/chatbot"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/combo"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/complemento"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/cupom"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/entregador"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pagamento"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/pedido"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/produto"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/receita"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/regiao"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/usuario"
	utilsdb "github.com/gustavochimanski/mensura-api-solo-sub000/internal/utils/db"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/vitrine"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	db, err := utilsdb.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := db.AutoMigrate(
		&usuario.Usuario{},
		&empresa.Empresa{},
		&produto.Produto{},
		&produto.ProdutoEmp{},
		&categoria.CategoriaDelivery{},
		&receita.Ingrediente{},
		&receita.Receita{},
		&receita.ReceitaIngrediente{},
		&combo.Combo{},
		&combo.ComboSecao{},
		&combo.ComboItem{},
		&complemento.Complemento{},
		&complemento.ComplementoItem{},
		&complemento.ComplementoVinculo{},
		&vitrine.Vitrine{},
		&vitrine.VitrineItem{},
		&cupom.Parceiro{},
		&cupom.CupomDesconto{},
		&regiao.RegiaoEntrega{},
		&entregador.Entregador{},
		&pedido.Pedido{},
		&pedido.PedidoItem{},
		&pedido.PedidoStatusHistorico{},
		&pedido.TransacaoPagamento{},
		&chatbot.Conversa{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	temUnaccent := utilsdb.TemUnaccent(db)
	gateway := pagamento.NovoGateway()

	// Handlers
	usuarioHandler := usuario.NewHandler(db)
	empresaHandler := empresa.NewHandler(db)
	produtoHandler := produto.NewHandler(db)
	categoriaHandler := categoria.NewHandler(db)
	receitaHandler := receita.NewHandler(db)
	comboHandler := combo.NewHandler(db)
	complementoHandler := complemento.NewHandler(db)
	vitrineHandler := vitrine.NewHandler(db)
	cupomHandler := cupom.NewHandler(db)
	regiaoHandler := regiao.NewHandler(db)
	entregadorHandler := entregador.NewHandler(db)
	pedidoHandler := pedido.NewHandler(db, gateway)
	cardapioHandler := cardapio.NewHandler(db, temUnaccent)
	chatbotHandler := chatbot.NewHandler(db, chatbot.NovoFluxo(db, temUnaccent, gateway))

	// Router
	r := mux.NewRouter()

	// Login e cadastro inicial ficam fora dos middlewares
	r.HandleFunc("/api/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/api/usuarios", usuarioHandler.CriarUsuario).Methods("POST")

	// Painel administrativo: bearer JWT
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.MiddlewareAutenticacao)

	admin.HandleFunc("/me", usuarioHandler.Me).Methods("GET")

	soAdmin := admin.NewRoute().Subrouter()
	soAdmin.Use(auth.RequireAdmin)
	soAdmin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	soAdmin.HandleFunc("/usuarios/{id}", usuarioHandler.DeletarUsuario).Methods("DELETE")

	// Rotas de empresas
	admin.HandleFunc("/empresas", empresaHandler.CriarEmpresa).Methods("POST")
	admin.HandleFunc("/empresas", empresaHandler.ListarEmpresas).Methods("GET")
	admin.HandleFunc("/empresas/{id}", empresaHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/empresas/{id}", empresaHandler.AtualizarEmpresa).Methods("PUT")
	admin.HandleFunc("/empresas/{id}", empresaHandler.DeletarEmpresa).Methods("DELETE")

	// Rotas de produtos
	admin.HandleFunc("/produtos", produtoHandler.CriarProduto).Methods("POST")
	admin.HandleFunc("/produtos", produtoHandler.ListarProdutos).Methods("GET")
	admin.HandleFunc("/produtos/{id}", produtoHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/produtos/{id}", produtoHandler.AtualizarProduto).Methods("PUT")
	admin.HandleFunc("/produtos/{id}", produtoHandler.DeletarProduto).Methods("DELETE")
	admin.HandleFunc("/produtos/{id}/empresas", produtoHandler.VincularEmpresa).Methods("POST")

	// Rotas de categorias
	admin.HandleFunc("/categorias", categoriaHandler.CriarCategoria).Methods("POST")
	admin.HandleFunc("/categorias", categoriaHandler.ListarCategorias).Methods("GET")
	admin.HandleFunc("/categorias/{id}", categoriaHandler.AtualizarCategoria).Methods("PUT")
	admin.HandleFunc("/categorias/{id}", categoriaHandler.DeletarCategoria).Methods("DELETE")

	// Rotas de receitas e ingredientes
	admin.HandleFunc("/receitas", receitaHandler.CriarReceita).Methods("POST")
	admin.HandleFunc("/receitas", receitaHandler.ListarReceitas).Methods("GET")
	admin.HandleFunc("/receitas/{id}", receitaHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/receitas/{id}", receitaHandler.AtualizarReceita).Methods("PUT")
	admin.HandleFunc("/receitas/{id}", receitaHandler.DeletarReceita).Methods("DELETE")
	admin.HandleFunc("/receitas/{id}/linhas", receitaHandler.AdicionarLinha).Methods("POST")
	admin.HandleFunc("/receitas/{id}/linhas/{linhaId}", receitaHandler.RemoverLinha).Methods("DELETE")
	admin.HandleFunc("/ingredientes", receitaHandler.CriarIngrediente).Methods("POST")
	admin.HandleFunc("/ingredientes", receitaHandler.ListarIngredientes).Methods("GET")
	admin.HandleFunc("/ingredientes/{id}", receitaHandler.AtualizarIngrediente).Methods("PUT")
	admin.HandleFunc("/ingredientes/{id}", receitaHandler.DeletarIngrediente).Methods("DELETE")

	// Rotas de combos
	admin.HandleFunc("/combos", comboHandler.CriarCombo).Methods("POST")
	admin.HandleFunc("/combos", comboHandler.ListarCombos).Methods("GET")
	admin.HandleFunc("/combos/{id}", comboHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/combos/{id}", comboHandler.AtualizarCombo).Methods("PUT")
	admin.HandleFunc("/combos/{id}", comboHandler.DeletarCombo).Methods("DELETE")
	admin.HandleFunc("/combos/{id}/secoes", comboHandler.CriarSecao).Methods("POST")
	admin.HandleFunc("/combos/{id}/secoes/{secaoId}", comboHandler.DeletarSecao).Methods("DELETE")
	admin.HandleFunc("/combos/{id}/secoes/{secaoId}/itens", comboHandler.AdicionarItem).Methods("POST")
	admin.HandleFunc("/combos/{id}/secoes/{secaoId}/itens/{itemId}", comboHandler.RemoverItem).Methods("DELETE")

	// Rotas de complementos e vinculação
	admin.HandleFunc("/complementos", complementoHandler.CriarComplemento).Methods("POST")
	admin.HandleFunc("/complementos", complementoHandler.ListarComplementos).Methods("GET")
	admin.HandleFunc("/complementos/{id}", complementoHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/complementos/{id}", complementoHandler.AtualizarComplemento).Methods("PUT")
	admin.HandleFunc("/complementos/{id}", complementoHandler.DeletarComplemento).Methods("DELETE")
	admin.HandleFunc("/complementos/{id}/itens", complementoHandler.AdicionarItem).Methods("POST")
	admin.HandleFunc("/complementos/{id}/itens/{itemId}", complementoHandler.RemoverItem).Methods("DELETE")
	admin.HandleFunc("/vinculacoes", complementoHandler.Vincular).Methods("POST")
	admin.HandleFunc("/vinculacoes", complementoHandler.ResolverPorDono).Methods("GET")

	// Rotas de vitrines
	admin.HandleFunc("/vitrines", vitrineHandler.CriarVitrine).Methods("POST")
	admin.HandleFunc("/vitrines", vitrineHandler.ListarVitrines).Methods("GET")
	admin.HandleFunc("/vitrines/{id}", vitrineHandler.AtualizarVitrine).Methods("PUT")
	admin.HandleFunc("/vitrines/{id}", vitrineHandler.DeletarVitrine).Methods("DELETE")
	admin.HandleFunc("/vitrines/{id}/itens", vitrineHandler.AdicionarItem).Methods("POST")
	admin.HandleFunc("/vitrines/{id}/itens/{itemId}", vitrineHandler.RemoverItem).Methods("DELETE")

	// Rotas de cupons e parceiros
	admin.HandleFunc("/cupons", cupomHandler.CriarCupom).Methods("POST")
	admin.HandleFunc("/cupons", cupomHandler.ListarCupons).Methods("GET")
	admin.HandleFunc("/cupons/{id}", cupomHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/cupons/{id}", cupomHandler.AtualizarCupom).Methods("PUT")
	admin.HandleFunc("/cupons/{id}", cupomHandler.DeletarCupom).Methods("DELETE")
	admin.HandleFunc("/cupons/{id}/empresas", cupomHandler.VincularEmpresas).Methods("POST")
	admin.HandleFunc("/parceiros", cupomHandler.CriarParceiro).Methods("POST")
	admin.HandleFunc("/parceiros", cupomHandler.ListarParceiros).Methods("GET")
	admin.HandleFunc("/parceiros/{id}", cupomHandler.DeletarParceiro).Methods("DELETE")

	// Rotas de regiões de entrega
	admin.HandleFunc("/regioes", regiaoHandler.CriarRegiao).Methods("POST")
	admin.HandleFunc("/regioes", regiaoHandler.ListarRegioes).Methods("GET")
	admin.HandleFunc("/regioes/{id}", regiaoHandler.AtualizarRegiao).Methods("PUT")
	admin.HandleFunc("/regioes/{id}", regiaoHandler.DeletarRegiao).Methods("DELETE")

	// Rotas de entregadores, relatório e acerto
	admin.HandleFunc("/entregadores", entregadorHandler.CriarEntregador).Methods("POST")
	admin.HandleFunc("/entregadores", entregadorHandler.ListarEntregadores).Methods("GET")
	admin.HandleFunc("/entregadores/{id}", entregadorHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/entregadores/{id}", entregadorHandler.AtualizarEntregador).Methods("PUT")
	admin.HandleFunc("/entregadores/{id}", entregadorHandler.DeletarEntregador).Methods("DELETE")
	admin.HandleFunc("/entregadores/{id}/empresas", entregadorHandler.VincularEmpresas).Methods("POST")
	admin.HandleFunc("/entregadores/{id}/relatorio", entregadorHandler.Relatorio).Methods("GET")
	admin.HandleFunc("/entregadores/{id}/acertos", entregadorHandler.Acertar).Methods("POST")

	// Rotas de pedidos (gestão)
	admin.HandleFunc("/pedidos", pedidoHandler.ListarPedidos).Methods("GET")
	admin.HandleFunc("/pedidos/{id}", pedidoHandler.BuscarPorID).Methods("GET")
	admin.HandleFunc("/pedidos/{id}/status", pedidoHandler.MudarStatus).Methods("PUT")
	admin.HandleFunc("/pedidos/{id}/entregador", pedidoHandler.AtribuirEntregador).Methods("PUT")

	// Superfície de cliente: super-token da empresa
	client := r.PathPrefix("/api/client").Subrouter()
	client.Use(auth.MiddlewareSuperToken(db))
	client.HandleFunc("/pedidos", pedidoHandler.CriarPedido).Methods("POST")
	client.HandleFunc("/chatbot/mensagens", chatbotHandler.Mensagem).Methods("POST")

	// Superfície pública: cardápio e busca por slug da empresa
	r.HandleFunc("/api/public/{slug}/cardapio", cardapioHandler.Cardapio).Methods("GET")
	r.HandleFunc("/api/public/{slug}/busca", cardapioHandler.Buscar).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Super-Token"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
