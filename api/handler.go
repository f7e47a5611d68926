// Package api - HTTP handlers.
// Handlers decode, delegate to core packages and encode. They hold no pricing logic.
package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/engine"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// handleGenerate handles POST /quotes
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if !s.decode(w, r, &req) {
		return
	}

	params := req.Params
	if params.Complexity.IsZero() {
		params.Complexity = decimal.NewFromInt(1)
	}
	if params.NumDocuments == 0 {
		params.NumDocuments = 1
	}

	quote, err := s.deps.Engine.Generate(r.Context(), req.Service, params)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.respondQuote(w, r, quote, req.Save, http.StatusCreated)
}

// handleRecalculate handles POST /quotes/recalculate
func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	var req RecalculateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Quote == nil {
		s.writeError(w, string(qerrors.TypeValidation), "is required", "quote", http.StatusBadRequest)
		return
	}

	tasks := req.Tasks
	if tasks == nil {
		var err error
		tasks, err = engine.ApplyEdits(req.Quote, req.Edits)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	quote, err := s.deps.Engine.Recalculate(req.Quote, tasks)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.respondQuote(w, r, quote, req.Save, http.StatusOK)
}

// handleGetQuote handles GET /quotes/{id}
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	if s.deps.Quotes == nil {
		s.writeError(w, "NOT_CONFIGURED", "quote history is disabled", "", http.StatusNotImplemented)
		return
	}
	quote, err := s.deps.Quotes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.respondQuote(w, r, quote, false, http.StatusOK)
}

func (s *Server) respondQuote(w http.ResponseWriter, r *http.Request, quote *types.Quote, save bool, status int) {
	if save {
		if s.deps.Quotes == nil {
			s.writeError(w, "NOT_CONFIGURED", "quote history is disabled", "save", http.StatusNotImplemented)
			return
		}
		if err := s.deps.Quotes.Save(r.Context(), quote); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}

	resp := QuoteResponse{Quote: quote}
	if s.deps.Rates != nil {
		snapshot, err := s.deps.Rates.Rates(r.Context())
		if err != nil {
			// display conversion is best-effort; the quote is already priced
			s.log.Warn("rates unavailable", zap.Error(err))
		} else if _, ok := snapshot.Rate(quote.Currency); ok {
			cost, _ := snapshot.Convert(quote.FinalCost, quote.Currency)
			vat, _ := snapshot.Convert(quote.VATAmount, quote.Currency)
			resp.Display = &Display{
				Currency:  quote.Currency.String(),
				RateHash:  snapshot.Hash(),
				FinalCost: validation.FormatCurrency(cost, quote.Currency.String()),
				VATAmount: validation.FormatCurrency(vat, quote.Currency.String()),
			}
		}
	}
	s.writeJSON(w, resp, status)
}

// handleListServices handles GET /services
func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	list := s.deps.Catalog.List()
	resp := ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(list)),
		Stats:    s.deps.Catalog.Stats(),
	}
	for _, svc := range list {
		resp.Services = append(resp.Services, ServiceResponse{Service: svc, Custom: s.deps.Catalog.IsCustom(svc.Name)})
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleGetService handles GET /services/{name}
func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	svc, err := s.deps.Catalog.Lookup(name)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, ServiceResponse{Service: svc, Custom: s.deps.Catalog.IsCustom(name)}, http.StatusOK)
}

// handlePutService handles PUT /services/{name}; the path name wins over the body
func (s *Server) handlePutService(w http.ResponseWriter, r *http.Request) {
	var svc types.Service
	if !s.decode(w, r, &svc) {
		return
	}
	svc.Name = pathParam(r, "name")

	stored, err := s.deps.Catalog.UpsertCustom(r.Context(), svc)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, ServiceResponse{Service: stored, Custom: true}, http.StatusOK)
}

// handleDeleteService handles DELETE /services/{name}
func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Catalog.DeleteCustom(r.Context(), pathParam(r, "name")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListClients handles GET /clients
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	if s.deps.Clients == nil {
		s.writeJSON(w, map[string][]types.Client{"clients": {}}, http.StatusOK)
		return
	}
	list, err := s.deps.Clients.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []types.Client{}
	}
	s.writeJSON(w, map[string][]types.Client{"clients": list}, http.StatusOK)
}

// handleSaveClient handles POST /clients
func (s *Server) handleSaveClient(w http.ResponseWriter, r *http.Request) {
	if s.deps.Clients == nil {
		s.writeError(w, "NOT_CONFIGURED", "client registry is disabled", "", http.StatusNotImplemented)
		return
	}
	var c types.Client
	if !s.decode(w, r, &c) {
		return
	}
	saved, err := s.deps.Clients.Save(r.Context(), c)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, saved, http.StatusOK)
}

// handleTemplates handles GET /templates/{service}
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	service := pathParam(r, "service")
	list := s.deps.Templates.ByService(service)
	if list == nil {
		s.writeDomainError(w, qerrors.NotFound("templates for service", service))
		return
	}
	s.writeJSON(w, map[string]interface{}{
		"service":   service,
		"templates": list,
	}, http.StatusOK)
}

// pathParam returns a decoded URL parameter; service names contain spaces
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
