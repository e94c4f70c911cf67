package cmd

import (
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.Cache
	carriers   shipment.CarrierDirectory
	config     Config
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, cache ports.Cache) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		carriers:   shipment.NewCarrierDirectory(config.Carriers),
		config:     config,
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.carriers)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkShipmentDeliveredCommandHandler() commands.MarkShipmentDeliveredCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShipmentDeliveredCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkShipmentReturnedCommandHandler() commands.MarkShipmentReturnedCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShipmentReturnedCommandHandler(f)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	// The detail query reads the full aggregate outside any transaction.
	repo := c.uowFactory.Create().ShipmentRepository()
	return queries.NewGetShipmentQueryHandler(repo)
}

func (c *CompositionRoot) CreateGetShipmentsByStatusQueryHandler() queries.GetShipmentsByStatusQueryHandler {
	return queries.NewGetShipmentsByStatusQueryHandler(c.gormDB, c.cache, c.config.CacheTTL)
}

func (c *CompositionRoot) CreateGetShipmentsByCarrierQueryHandler() queries.GetShipmentsByCarrierQueryHandler {
	return queries.NewGetShipmentsByCarrierQueryHandler(c.gormDB, c.cache, c.config.CacheTTL)
}

func (c *CompositionRoot) CreateGetShipmentsDueBeforeQueryHandler() queries.GetShipmentsDueBeforeQueryHandler {
	return queries.NewGetShipmentsDueBeforeQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
