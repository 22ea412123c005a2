package raterepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/raterepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipping"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RateRepositoryIntegrationTestSuite provides integration tests for
// GormRateRepository using PostgreSQL containers.
type RateRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *raterepo.GormRateRepository

	zoneID    uuid.UUID
	carrierID uuid.UUID
}

func (suite *RateRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&raterepo.RateDTO{}, &raterepo.WeightTierDTO{}))
}

func (suite *RateRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE rate_weight_tiers, rates").Error)
	suite.repository = raterepo.NewGormRateRepository(suite.db)
	suite.zoneID = uuid.New()
	suite.carrierID = uuid.New()
}

func (suite *RateRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

type tierSeed struct {
	fromGrams int
	toGrams   int
	price     float64
}

func (suite *RateRepositoryIntegrationTestSuite) seedRate(
	zoneID, carrierID uuid.UUID, priority int, active bool, tiers ...tierSeed,
) uuid.UUID {
	rate := raterepo.RateDTO{
		ID:              uuid.New(),
		ZoneID:          zoneID,
		CarrierID:       carrierID,
		PricePerKg:      3.20,
		Priority:        priority,
		DeliveryDaysMin: priority,
		DeliveryDaysMax: priority + 2,
		IsActive:        active,
	}
	suite.Require().NoError(suite.db.Create(&rate).Error)

	for _, tier := range tiers {
		tierDTO := raterepo.WeightTierDTO{
			ID:        uuid.New(),
			RateID:    rate.ID,
			FromGrams: tier.fromGrams,
			ToGrams:   tier.toGrams,
			Price:     tier.price,
		}
		suite.Require().NoError(suite.db.Create(&tierDTO).Error)
	}

	return rate.ID
}

func (suite *RateRepositoryIntegrationTestSuite) laneIDs() (kernel.UUID, kernel.UUID) {
	zoneID, err := kernel.UUIDFromBytes(suite.zoneID[:])
	suite.Require().NoError(err)
	carrierID, err := kernel.UUIDFromBytes(suite.carrierID[:])
	suite.Require().NoError(err)
	return zoneID, carrierID
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_ReturnsRatesOrderedByPriority() {
	ctx := context.Background()

	suite.seedRate(suite.zoneID, suite.carrierID, 2, true, tierSeed{0, 1000, 15.90}, tierSeed{1001, 5000, 22.50})
	suite.seedRate(suite.zoneID, suite.carrierID, 1, true, tierSeed{0, 1000, 28.00})

	zoneID, carrierID := suite.laneIDs()
	rates, err := suite.repository.GetActiveRates(ctx, zoneID, carrierID)
	suite.Require().NoError(err)

	suite.Require().Len(rates, 2)
	suite.Equal(1, rates[0].Priority())
	suite.Equal(shipping.ModalityExpress, rates[0].Modality())
	suite.Equal(2, rates[1].Priority())
	suite.Equal(shipping.ModalityStandard, rates[1].Modality())
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_LoadsTiersInAscendingOrder() {
	ctx := context.Background()

	// Seed tiers out of order; the preload must sort them.
	suite.seedRate(suite.zoneID, suite.carrierID, 1, true, tierSeed{1001, 5000, 22.50}, tierSeed{0, 1000, 15.90})

	zoneID, carrierID := suite.laneIDs()
	rates, err := suite.repository.GetActiveRates(ctx, zoneID, carrierID)
	suite.Require().NoError(err)

	suite.Require().Len(rates, 1)
	tiers := rates[0].Tiers()
	suite.Require().Len(tiers, 2)
	suite.Equal(0, tiers[0].FromGrams())
	suite.Equal(1001, tiers[1].FromGrams())
	suite.InDelta(22.50, rates[0].BasePrice(3000), 1e-9)
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_FiltersByLane() {
	ctx := context.Background()

	suite.seedRate(suite.zoneID, suite.carrierID, 1, true, tierSeed{0, 1000, 15.90})
	suite.seedRate(uuid.New(), suite.carrierID, 1, true, tierSeed{0, 1000, 99.00})
	suite.seedRate(suite.zoneID, uuid.New(), 1, true, tierSeed{0, 1000, 99.00})

	zoneID, carrierID := suite.laneIDs()
	rates, err := suite.repository.GetActiveRates(ctx, zoneID, carrierID)
	suite.Require().NoError(err)

	suite.Require().Len(rates, 1)
	suite.InDelta(15.90, rates[0].BasePrice(500), 1e-9)
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_ExcludesInactiveRates() {
	ctx := context.Background()

	suite.seedRate(suite.zoneID, suite.carrierID, 1, false, tierSeed{0, 1000, 15.90})

	zoneID, carrierID := suite.laneIDs()
	rates, err := suite.repository.GetActiveRates(ctx, zoneID, carrierID)
	suite.Require().NoError(err)

	suite.Empty(rates)
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_MalformedTierTableFailsFast() {
	ctx := context.Background()

	// A gap between tiers is invalid in the domain.
	suite.seedRate(suite.zoneID, suite.carrierID, 1, true, tierSeed{0, 1000, 15.90}, tierSeed{2000, 5000, 22.50})

	zoneID, carrierID := suite.laneIDs()
	_, err := suite.repository.GetActiveRates(ctx, zoneID, carrierID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "contiguous")
}

func (suite *RateRepositoryIntegrationTestSuite) TestGetActiveRates_RejectsUnconstructedIDs() {
	ctx := context.Background()

	var zero kernel.UUID
	zoneID, _ := suite.laneIDs()

	_, err := suite.repository.GetActiveRates(ctx, zoneID, zero)
	suite.Require().Error(err)

	_, err = suite.repository.GetActiveRates(ctx, zero, zoneID)
	suite.Require().Error(err)
}

func TestRateRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RateRepositoryIntegrationTestSuite))
}
