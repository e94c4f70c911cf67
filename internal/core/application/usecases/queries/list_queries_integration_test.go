package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/rediscache"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// ListQueriesIntegrationTestSuite tests the list query handlers against a
// real PostgreSQL database, with a miniredis instance standing in for the
// summary cache.
type ListQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *shipmentrepo.GormShipmentRepository
	redis     *miniredis.Miniredis
	cache     *rediscache.RedisAdapter
}

func (suite *ListQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.HistoryEventDTO{})
	suite.Require().NoError(err)

	suite.repo = shipmentrepo.NewGormShipmentRepository(db, noopTracker{})

	mr, err := miniredis.Run()
	suite.Require().NoError(err)
	suite.redis = mr

	cache, err := rediscache.NewRedisAdapter("redis://" + mr.Addr())
	suite.Require().NoError(err)
	suite.cache = cache
}

func (suite *ListQueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, shipment_history").Error
	suite.Require().NoError(err)
	suite.redis.FlushAll()
}

func (suite *ListQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.cache != nil {
		_ = suite.cache.Close()
	}
	if suite.redis != nil {
		suite.redis.Close()
	}
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListQueriesIntegrationTestSuite) newShipment(
	carrierName, carrierCode, trackingNumber string,
	estimatedDelivery time.Time,
) *shipment.Shipment {
	carrier, err := shipment.NewCarrier(carrierName, carrierCode, shipment.NewCarrierContact("", ""))
	suite.Require().NoError(err)
	tracking, err := shipment.NewTracking(trackingNumber, "https://track.example.com/"+trackingNumber, "")
	suite.Require().NoError(err)
	schedule, err := shipment.NewSchedule(nil,
		estimatedDelivery.Truncate(time.Microsecond), shipment.TimeSlotAnytime)
	suite.Require().NoError(err)
	recipient, err := shipment.NewRecipient("Jane Smith", "+31 6 1234 5678")
	suite.Require().NoError(err)
	location, err := shipment.NewLocation("Keizersgracht 1", "Amsterdam", "1015 CD", "", "NL")
	suite.Require().NoError(err)
	address, err := shipment.NewAddress(recipient, location, "", shipment.AbsenteeRedelivery)
	suite.Require().NoError(err)
	cost, err := shipment.NewCost(1500, 250)
	suite.Require().NoError(err)
	insurance, err := shipment.NewInsurance(false, 0)
	suite.Require().NoError(err)
	options, err := shipment.NewOptions(shipment.MethodStandard, nil, insurance)
	suite.Require().NoError(err)

	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(),
		carrier, tracking, schedule, address, cost, options)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *ListQueriesIntegrationTestSuite) seedInTransit(
	carrierName, carrierCode, trackingNumber string,
	estimatedDelivery time.Time,
) *shipment.Shipment {
	aggregate := suite.newShipment(carrierName, carrierCode, trackingNumber, estimatedDelivery)
	err := aggregate.ChangeStatus(shipment.InTransit, "Utrecht hub", "", time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsByStatus_FiltersAndOrders() {
	ctx := context.Background()
	eta := time.Now().UTC().Add(48 * time.Hour)
	first := suite.seedInTransit("DHL", "dhl", "ST000000001NL", eta)
	second := suite.seedInTransit("PostNL", "postnl", "ST000000002NL", eta)

	preparing := suite.newShipment("DHL", "dhl", "ST000000003NL", eta)
	suite.Require().NoError(suite.repo.Add(ctx, preparing))

	query, err := queries.NewGetShipmentsByStatusQuery("in_transit")
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsByStatusQueryHandler(suite.db, nil, 0)
	summaries, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal(first.ID().String(), summaries[0].ID)
	suite.Equal(second.ID().String(), summaries[1].ID)
	suite.Equal("in_transit", summaries[0].Status)
	suite.Equal("DHL", summaries[0].CarrierName)
	suite.Equal("ST000000001NL", summaries[0].TrackingNumber)
	suite.False(summaries[0].IsDelayed)
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsByStatus_ServesFromCache() {
	ctx := context.Background()
	eta := time.Now().UTC().Add(48 * time.Hour)
	suite.seedInTransit("DHL", "dhl", "SC000000001NL", eta)

	query, err := queries.NewGetShipmentsByStatusQuery("in_transit")
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsByStatusQueryHandler(suite.db, suite.cache, time.Minute)

	summaries, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(suite.redis.Exists("shipments:status:in_transit"))

	// A row added after the cache was populated stays invisible until the
	// entry expires.
	suite.seedInTransit("DHL", "dhl", "SC000000002NL", eta)

	cached, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(cached, 1)

	suite.redis.FastForward(2 * time.Minute)

	fresh, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(fresh, 2)
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsByStatus_CacheFailureFallsThrough() {
	ctx := context.Background()
	eta := time.Now().UTC().Add(48 * time.Hour)
	suite.seedInTransit("DHL", "dhl", "SF000000001NL", eta)

	suite.redis.SetError("connection refused")
	defer suite.redis.SetError("")

	query, err := queries.NewGetShipmentsByStatusQuery("in_transit")
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsByStatusQueryHandler(suite.db, suite.cache, time.Minute)
	summaries, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(summaries, 1)
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsByCarrier_FiltersByName() {
	ctx := context.Background()
	eta := time.Now().UTC().Add(48 * time.Hour)
	dhl := suite.seedInTransit("DHL", "dhl", "CR000000001NL", eta)
	suite.seedInTransit("PostNL", "postnl", "CR000000002NL", eta)

	query, err := queries.NewGetShipmentsByCarrierQuery("DHL")
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsByCarrierQueryHandler(suite.db, suite.cache, time.Minute)
	summaries, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal(dhl.ID().String(), summaries[0].ID)
	suite.Equal("DHL", summaries[0].CarrierName)
	suite.True(suite.redis.Exists("shipments:carrier:DHL"))
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsDueBefore_ExcludesTerminalAndDelivered() {
	ctx := context.Background()
	now := time.Now().UTC()

	overdueFar := suite.seedInTransit("DHL", "dhl", "DB000000001NL", now.Add(-72*time.Hour))
	overdueNear := suite.seedInTransit("DHL", "dhl", "DB000000002NL", now.Add(-24*time.Hour))
	suite.seedInTransit("DHL", "dhl", "DB000000003NL", now.Add(48*time.Hour))

	delivered := suite.newShipment("DHL", "dhl", "DB000000004NL", now.Add(-48*time.Hour))
	suite.Require().NoError(delivered.MarkDelivered("Jane Smith", shipment.ConfirmationSignature, now))
	suite.Require().NoError(suite.repo.Add(ctx, delivered))

	returned := suite.newShipment("DHL", "dhl", "DB000000005NL", now.Add(-48*time.Hour))
	suite.Require().NoError(returned.MarkReturned("refused at door", "", nil, now))
	suite.Require().NoError(suite.repo.Add(ctx, returned))

	query, err := queries.NewGetShipmentsDueBeforeQuery(now)
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsDueBeforeQueryHandler(suite.db)
	summaries, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 2)
	suite.Equal(overdueFar.ID().String(), summaries[0].ID)
	suite.Equal(overdueNear.ID().String(), summaries[1].ID)
	suite.True(summaries[0].IsDelayed)
	suite.True(summaries[1].IsDelayed)

	// The due-before listing is never cached.
	suite.Empty(suite.redis.Keys())
}

func TestListQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ListQueriesIntegrationTestSuite))
}

func (suite *ListQueriesIntegrationTestSuite) TestGetShipmentsByStatus_EmptyResult() {
	query, err := queries.NewGetShipmentsByStatusQuery("out_for_delivery")
	suite.Require().NoError(err)

	handler := queries.NewGetShipmentsByStatusQueryHandler(suite.db, nil, 0)
	summaries, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(summaries)
}
