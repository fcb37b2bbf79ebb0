package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/modules/portfolio/infrastructure/persistence"
	"github.com/immodash/immodash/modules/portfolio/presentation/controllers/dtos"
	"github.com/immodash/immodash/modules/portfolio/presentation/mappers"
	"github.com/immodash/immodash/modules/portfolio/presentation/viewmodels"
	"github.com/immodash/immodash/modules/portfolio/services"
	"github.com/immodash/immodash/pkg/htmx"
	"github.com/immodash/immodash/pkg/identity"
	"github.com/immodash/immodash/pkg/mapping"
)

// PortfolioController is the view-router boundary: it hands the client a
// reconciled, validated selection plus the property list, and serves the
// per-entry chart data. When the selection is empty the payload says
// "render a selection prompt"; the client never resolves detail data on
// its own.
type PortfolioController struct {
	basePath string
	repo     property.Repository
	service  *services.PropertyService
	log      *logrus.Logger
}

func NewPortfolioController(
	basePath string,
	repo property.Repository,
	service *services.PropertyService,
	log *logrus.Logger,
) *PortfolioController {
	return &PortfolioController{
		basePath: basePath,
		repo:     repo,
		service:  service,
		log:      log,
	}
}

func (c *PortfolioController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/energy", c.EnergyChart).Methods(http.MethodGet)
	router.HandleFunc("/{id}/rent", c.RentChart).Methods(http.MethodGet)
}

// List loads the portfolio and reconciles the propertyId query parameter
// against it. The possibly rewritten query string is mirrored back to
// the address bar via replace-in-place, so selection changes never
// pollute the browser history.
func (c *PortfolioController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mirror := services.NewValuesMirror(query)

	sel := services.NewSelectionController(c.repo, mirror, c.log)
	defer sel.Teardown()
	sel.Load(r.Context())
	state := sel.State()

	if htmx.IsHxRequest(r) {
		target := c.basePath
		if enc := query.Encode(); enc != "" {
			target += "?" + enc
		}
		htmx.ReplaceURL(w, target)
	}

	page := &viewmodels.PortfolioPage{
		Properties:      mapping.MapViewModels(state.Properties, mappers.PropertyToViewModel),
		Loading:         state.Loading,
		Error:           state.Error,
		SelectedID:      state.SafeSelection,
		SelectionPrompt: state.SafeSelection == "",
	}
	if state.Selected != nil {
		page.Selected = mappers.PropertyToViewModel(state.Selected)
	}
	writeJSON(w, http.StatusOK, page)
}

func (c *PortfolioController) EnergyChart(w http.ResponseWriter, r *http.Request) {
	id, err := identity.Required(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	readings, err := c.service.EnergyReadings(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapping.MapViewModels(readings, mappers.EnergyReadingToChartPoint))
}

func (c *PortfolioController) RentChart(w http.ResponseWriter, r *http.Request) {
	id, err := identity.Required(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	payments, err := c.service.RentalPayments(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapping.MapViewModels(payments, mappers.RentalPaymentToChartPoint))
}

func (c *PortfolioController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.PropertyCreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrs)
		return
	}
	saved, err := c.service.Create(r.Context(), dto.ToEntity())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, mappers.PropertyToViewModel(saved))
}

func (c *PortfolioController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := identity.Required(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	dto := &dtos.PropertyUpdateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrs)
		return
	}
	existing, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, persistence.ErrPropertyNotFound) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	saved, err := c.service.Update(r.Context(), dto.ToEntity(id, existing))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mappers.PropertyToViewModel(saved))
}

func (c *PortfolioController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := identity.Required(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, persistence.ErrPropertyNotFound) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
