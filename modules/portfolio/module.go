package portfolio

import (
	"embed"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/immodash/immodash/modules/portfolio/infrastructure/persistence"
	"github.com/immodash/immodash/modules/portfolio/presentation/controllers"
	"github.com/immodash/immodash/modules/portfolio/services"
	"github.com/immodash/immodash/pkg/eventbus"
	"github.com/immodash/immodash/pkg/migrations"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

const BasePath = "/portfolio"

type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Register(router *mux.Router, manager *migrations.Manager, log *logrus.Logger) error {
	manager.RegisterSchema(&MigrationFiles)
	publisher := eventbus.NewEventPublisher(log)
	repo := persistence.NewPropertyRepository()
	service := services.NewPropertyService(repo, publisher)
	controllers.NewPortfolioController(BasePath, repo, service, log).Register(router)
	return nil
}
