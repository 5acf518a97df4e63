package entregador

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarEntregadorRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Veiculo  string `json:"veiculo"`
	Ativo    bool   `json:"ativo"`
}

type vincularEmpresasRequest struct {
	Empresas []uint `json:"empresas"`
}

type acertarRequest struct {
	Pedidos []uint `json:"pedidos"`
}

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

func (h *Handler) CriarEntregador(w http.ResponseWriter, r *http.Request) {
	var req criarEntregadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	e := Entregador{Nome: req.Nome, Telefone: req.Telefone, Veiculo: req.Veiculo, Ativo: req.Ativo}
	if err := h.Repository.Criar(&e); err != nil {
		http.Error(w, "erro ao salvar entregador", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) ListarEntregadores(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("empresaId"); v != "" {
		empresaID, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "empresaId inválido", http.StatusBadRequest)
			return
		}
		entregadores, err := h.Repository.ListarPorEmpresa(uint(empresaID))
		if err != nil {
			http.Error(w, "erro ao listar entregadores", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(entregadores)
		return
	}

	entregadores, err := h.Repository.ListarTodos()
	if err != nil {
		http.Error(w, "erro ao listar entregadores", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(entregadores)
}

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregador não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) AtualizarEntregador(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregador não encontrado", http.StatusNotFound)
		return
	}

	var req criarEntregadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	e.Nome = req.Nome
	e.Telefone = req.Telefone
	e.Veiculo = req.Veiculo
	e.Ativo = req.Ativo

	if err := h.Repository.Atualizar(e); err != nil {
		http.Error(w, "erro ao atualizar entregador", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(e)
}

func (h *Handler) DeletarEntregador(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "erro ao excluir entregador", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("entregador excluído com sucesso"))
}

func (h *Handler) VincularEmpresas(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req vincularEmpresasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.VincularEmpresas(uint(id), req.Empresas); err != nil {
		if err == gorm.ErrRecordNotFound {
			http.Error(w, "entregador ou empresa não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao vincular empresas", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("empresas vinculadas com sucesso"))
}

// Relatorio produz o relatório de desempenho e acerto do período. Parâmetros
// inicio/fim aceitam data pura (2024-01-10) ou timestamp RFC 3339.
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	e, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Entregador não encontrado", http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	inicio, err := parsePeriodo(q.Get("inicio"))
	if err != nil {
		http.Error(w, "inicio inválido", http.StatusBadRequest)
		return
	}
	fim, err := parsePeriodo(q.Get("fim"))
	if err != nil {
		http.Error(w, "fim inválido", http.StatusBadRequest)
		return
	}

	var empresaID uint
	if v := q.Get("empresaId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "empresaId inválido", http.StatusBadRequest)
			return
		}
		empresaID = uint(n)
	}

	rel, err := GerarRelatorio(h.DB, e, empresaID, inicio, fim)
	if err != nil {
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(rel)
}

// Acertar marca um conjunto de pedidos do entregador como acertados.
func (h *Handler) Acertar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req acertarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Pedidos) == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	afetados, err := AcertarPedidos(h.DB, uint(id), req.Pedidos)
	if err != nil {
		http.Error(w, "erro ao acertar pedidos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"pedidosAcertados": afetados})
}

func parsePeriodo(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
