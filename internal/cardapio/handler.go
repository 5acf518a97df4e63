package cardapio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/categoria"
	"github.com/gustavochimanski/mensura-api-solo-sub000/internal/empresa"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB            *gorm.DB
	Repository    *Repository
	empresaRepo   empresa.Repository
	categoriaRepo *categoria.Repository
}

func NewHandler(db *gorm.DB, temUnaccent bool) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(db, temUnaccent),
		empresaRepo:   empresa.NewRepository(),
		categoriaRepo: categoria.NewRepository(db),
	}
}

// Cardapio devolve o cardápio público de uma empresa pelo slug: categorias
// ordenadas e vitrines com itens e preços resolvidos.
func (h *Handler) Cardapio(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	e, err := h.empresaRepo.BuscarPorSlug(h.DB, slug)
	if err != nil || !e.Ativa {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	categorias, err := h.categoriaRepo.ListarPorEmpresa(e.ID)
	if err != nil {
		http.Error(w, "erro ao montar cardápio", http.StatusInternalServerError)
		return
	}
	ativas := categorias[:0]
	for _, c := range categorias {
		if c.Ativa {
			ativas = append(ativas, c)
		}
	}

	vitrines, err := h.Repository.MontarVitrines(e.ID)
	if err != nil {
		http.Error(w, "erro ao montar cardápio", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(CardapioDTO{
		Empresa:    e.Nome,
		Slug:       e.Slug,
		Categorias: ativas,
		Vitrines:   vitrines,
	})
}

// Buscar é a busca pública de produtos e receitas por texto.
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "parâmetro q é obrigatório", http.StatusBadRequest)
		return
	}
	limite, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limite <= 0 || limite > 50 {
		limite = 20
	}

	e, err := h.empresaRepo.BuscarPorSlug(h.DB, slug)
	if err != nil || !e.Ativa {
		http.Error(w, "Empresa não encontrada", http.StatusNotFound)
		return
	}

	itens, err := h.Repository.Buscar(e.ID, q, limite)
	if err != nil {
		http.Error(w, "erro na busca", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(itens)
}
