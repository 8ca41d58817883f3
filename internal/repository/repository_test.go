package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/gommon/log"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/lunchly/internal/model"
)

const connectionTimeout = 3 * time.Second

const (
	pgContainerName = "pg-test-lunchly"
	pgPort          = "5432"
	pgTestUser      = "test"
	pgTestPassword  = "test"
	pgTestDB        = "lunchly"
)

var pgPool *pgxpool.Pool

func TestMain(m *testing.M) {
	// build docker pool
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("failed to create pool - %v", err)
	}

	if err := dockerPool.Client.Ping(); err != nil {
		log.Fatalf("failed to connect to docker - %v", err)
	}

	// create network for containers
	network, err := dockerPool.Client.CreateNetwork(docker.CreateNetworkOptions{Name: "lunchly-test-net"})
	if err != nil {
		log.Fatalf("failed to create network - %v", err)
	}

	// start postgres
	postgres, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Name:       pgContainerName,
		Repository: "postgres",
		Tag:        "latest",
		NetworkID:  network.ID,
		Env: []string{
			fmt.Sprintf("POSTGRES_USER=%s", pgTestUser),
			fmt.Sprintf("POSTGRES_PASSWORD=%s", pgTestPassword),
			fmt.Sprintf("POSTGRES_DB=%s", pgTestDB),
		},
		PortBindings: map[docker.Port][]docker.PortBinding{
			"5432/tcp": {{HostIP: "localhost", HostPort: fmt.Sprintf("%s/tcp", pgPort)}},
		},
	})
	if err != nil {
		log.Fatalf("failed to start postgresql - %v", err)
	}

	// run migrations
	flywayCmd := []string{
		fmt.Sprintf("-url=jdbc:postgresql://%s:%s/%s", pgContainerName, pgPort, pgTestDB),
		fmt.Sprintf("-user=%s", pgTestUser),
		fmt.Sprintf("-password=%s", pgTestPassword),
		"-connectRetries=5",
		"migrate",
	}

	migrationsPath, err := filepath.Abs("../../migrations")
	if err != nil {
		log.Fatalf("failed to find migrations path - %v", err)
	}

	flywayMounts := []string{
		fmt.Sprintf("%s:/flyway/sql", migrationsPath),
	}

	flyway, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "flyway/flyway",
		Tag:        "latest",
		NetworkID:  network.ID,
		Cmd:        flywayCmd,
		Mounts:     flywayMounts,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		log.Fatalf("failed to start flyway migrations - %v", err)
	}

	// waiting for flyway container to be destroyed
	err = dockerPool.Retry(func() error {
		if _, ok := dockerPool.ContainerByName(flyway.Container.Name); ok {
			return errors.New("flyway migrations are still in progress")
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to await flyway migrations - %v", err)
	}

	// connect to postgres
	pgURI := fmt.Sprintf("postgres://%s:%s@localhost:%s/%s?sslmode=disable", pgTestUser, pgTestPassword, pgPort, pgTestDB)
	err = dockerPool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		defer cancel()

		var err error
		pgPool, err = pgxpool.Connect(ctx, pgURI)
		if err != nil {
			return err
		}
		return pgPool.Ping(ctx)
	})
	if err != nil {
		log.Fatalf("failed to establish connection to postgresql - %v", err)
	}

	// start tests
	code := m.Run()

	// purge postgresql
	if err := dockerPool.Purge(postgres); err != nil {
		log.Fatalf("failed to purge postgresql - %v", err)
	}

	// remove network
	if err := dockerPool.Client.RemoveNetwork(network.ID); err != nil {
		log.Fatalf("failed to remove network - %v", err)
	}

	os.Exit(code)
}

func createCustomer(ctx context.Context, t *testing.T, rps CustomerRepository, firstName, lastName string, phone, notes *string) *model.Customer {
	c := model.NewCustomer(0, firstName, lastName, phone, notes)
	err := rps.Create(ctx, c)
	require.NoError(t, err, "failed to create customer %s %s", firstName, lastName)
	require.NotZero(t, c.ID, "store-assigned id must be adopted on insert")
	return c
}

func createReservations(ctx context.Context, t *testing.T, rps ReservationRepository, customerID int64, count int) {
	for i := 0; i < count; i++ {
		startAt := time.Date(2022, time.August, 27, 12+i, 0, 0, 0, time.UTC)
		rsv, err := model.NewReservation(0, customerID, 2, startAt, nil)
		require.NoError(t, err, "failed to build reservation")
		require.NoError(t, rps.Create(ctx, rsv), "failed to create reservation for customer %d", customerID)
	}
}

func positionOf(customers []*model.Customer, id int64) int {
	for i, c := range customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func TestCustomerRps(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerRps := NewPostgresCustomerRepository(pgPool)

	phone := "555-1111"
	ada := createCustomer(ctx, t, customerRps, "Ada", "Lovelace", &phone, nil)
	grace := createCustomer(ctx, t, customerRps, "Grace", "Hopper", nil, nil)

	t.Log("find customer by id and verify round-trip")
	{
		dbAda, err := customerRps.FindByID(ctx, ada.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.NotNil(t, dbAda, "customer was created recently but not found by id")
		require.Equal(t, ada, dbAda, "customer read from database is not the same it was saved")
		require.Equal(t, "", dbAda.Notes, "absent notes must come back as empty string")
	}

	t.Log("find customer by nonexistent id")
	{
		dbCustomer, err := customerRps.FindByID(ctx, 999999)
		require.NoError(t, err, "missing row must not be an error on repository level")
		require.Nil(t, dbCustomer, "no customer must be found")
	}

	t.Log("update rewrites all mutable fields")
	{
		newPhone := "555-2222"
		ada.Phone = &newPhone
		ada.SetNotes(nil)
		ada.FirstName = "Augusta"
		require.NoError(t, customerRps.Update(ctx, ada), "failed to update customer")

		dbAda, err := customerRps.FindByID(ctx, ada.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.Equal(t, ada, dbAda, "customer is in database but wasn't updated correctly")
	}

	t.Log("find all is ordered by last name then first name")
	{
		customers, err := customerRps.FindAll(ctx)
		require.NoError(t, err, "failed to read customers")

		gracePos := positionOf(customers, grace.ID)
		adaPos := positionOf(customers, ada.ID)
		require.NotEqual(t, -1, gracePos, "customer %d must be present", grace.ID)
		require.NotEqual(t, -1, adaPos, "customer %d must be present", ada.ID)
		require.Less(t, gracePos, adaPos, "Hopper must be ordered before Lovelace")
	}
}

func TestCustomerSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerRps := NewPostgresCustomerRepository(pgPool)

	johnathan := createCustomer(ctx, t, customerRps, "Johnathan", "Quincy", nil, nil)
	smithers := createCustomer(ctx, t, customerRps, "Alice", "Smithers", nil, nil)
	createCustomer(ctx, t, customerRps, "Bob", "Brown", nil, nil)

	t.Log("multi-token search is a union across tokens, not intersection")
	{
		customers, err := customerRps.SearchByName(ctx, "John Smith")
		require.NoError(t, err, "failed to search customers")
		require.Len(t, customers, 2, "exactly two customers must match")
		require.NotEqual(t, -1, positionOf(customers, johnathan.ID), "first name containing John must match")
		require.NotEqual(t, -1, positionOf(customers, smithers.ID), "last name containing Smith must match")
	}

	t.Log("search is case-insensitive")
	{
		customers, err := customerRps.SearchByName(ctx, "sMiThErS")
		require.NoError(t, err, "failed to search customers")
		require.Len(t, customers, 1, "exactly one customer must match")
		require.Equal(t, smithers.ID, customers[0].ID)
	}

	t.Log("search matching nothing returns empty sequence on repository level")
	{
		customers, err := customerRps.SearchByName(ctx, "zzzznobody")
		require.NoError(t, err, "failed to search customers")
		require.Empty(t, customers, "no customers must match")
	}
}

func TestReservationRps(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customerRps := NewPostgresCustomerRepository(pgPool)
	reservationRps := NewPostgresReservationRepository(pgPool)

	guest := createCustomer(ctx, t, customerRps, "Res", "Tester", nil, nil)
	lonely := createCustomer(ctx, t, customerRps, "No", "Bookings", nil, nil)

	windowSeat := "window seat"
	startAt := time.Date(2022, time.August, 27, 18, 0, 0, 0, time.UTC)

	first, err := model.NewReservation(0, guest.ID, 4, startAt, &windowSeat)
	require.NoError(t, err, "failed to build reservation")

	second, err := model.NewReservation(0, guest.ID, 2, startAt.Add(2*time.Hour), nil)
	require.NoError(t, err, "failed to build reservation")

	t.Log("insert adopts store-assigned id and echoed start time and notes")
	{
		require.NoError(t, reservationRps.Create(ctx, first), "failed to create reservation")
		require.NotZero(t, first.ID, "store-assigned id must be adopted")
		require.True(t, first.StartAt().Equal(startAt), "echoed start time must match the saved one")
		require.NotNil(t, first.Notes, "echoed notes must be present")
		require.Equal(t, windowSeat, *first.Notes)

		require.NoError(t, reservationRps.Create(ctx, second), "failed to create reservation")
		require.NotZero(t, second.ID, "store-assigned id must be adopted")
	}

	t.Log("find reservations for customer")
	{
		reservations, err := reservationRps.FindByCustomerID(ctx, guest.ID)
		require.NoError(t, err, "failed to read reservations")
		require.Len(t, reservations, 2, "2 reservations were created for customer %d", guest.ID)
	}

	t.Log("update persists against the correct row and leaves siblings untouched")
	{
		first.NumGuests = 6
		updatedNotes := "moved to terrace"
		first.Notes = &updatedNotes
		require.NoError(t, first.SetStartAt(startAt.Add(time.Hour)), "failed to set start time")
		require.NoError(t, reservationRps.Update(ctx, first), "failed to update reservation")

		reservations, err := reservationRps.FindByCustomerID(ctx, guest.ID)
		require.NoError(t, err, "failed to read reservations")

		var dbFirst, dbSecond *model.Reservation
		for _, rsv := range reservations {
			switch rsv.ID {
			case first.ID:
				dbFirst = rsv
			case second.ID:
				dbSecond = rsv
			}
		}

		require.NotNil(t, dbFirst, "updated reservation must be present")
		require.Equal(t, 6, dbFirst.NumGuests, "guest count must be updated")
		require.NotNil(t, dbFirst.Notes, "notes must be updated")
		require.Equal(t, updatedNotes, *dbFirst.Notes)
		require.True(t, dbFirst.StartAt().Equal(startAt.Add(time.Hour)), "start time must be updated")

		require.NotNil(t, dbSecond, "sibling reservation must be present")
		require.Equal(t, 2, dbSecond.NumGuests, "sibling reservation must stay untouched")
		require.Nil(t, dbSecond.Notes, "sibling reservation notes must stay untouched")
	}

	t.Log("customer without reservations gets empty sequence, not error")
	{
		reservations, err := reservationRps.FindByCustomerID(ctx, lonely.ID)
		require.NoError(t, err, "failed to read reservations")
		require.Empty(t, reservations, "no reservations were created for customer %d", lonely.ID)
	}
}

func TestBestCustomers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	customerRps := NewPostgresCustomerRepository(pgPool)
	reservationRps := NewPostgresReservationRepository(pgPool)

	frequent := createCustomer(ctx, t, customerRps, "Fiona", "Frequent", nil, nil)
	regularOne := createCustomer(ctx, t, customerRps, "Rita", "Regular", nil, nil)
	regularTwo := createCustomer(ctx, t, customerRps, "Ron", "Regular", nil, nil)
	newcomer := createCustomer(ctx, t, customerRps, "Nick", "Newcomer", nil, nil)

	createReservations(ctx, t, reservationRps, frequent.ID, 5)
	createReservations(ctx, t, reservationRps, regularOne.ID, 3)
	createReservations(ctx, t, reservationRps, regularTwo.ID, 3)

	t.Log("customers are ordered by descending reservation count, zero-count included")
	{
		customers, err := customerRps.FindBest(ctx, 20)
		require.NoError(t, err, "failed to read best customers")

		for i := 1; i < len(customers); i++ {
			require.GreaterOrEqual(t, customers[i-1].NumReservations, customers[i].NumReservations,
				"reservation counts must never increase down the list")
		}

		frequentPos := positionOf(customers, frequent.ID)
		regularOnePos := positionOf(customers, regularOne.ID)
		regularTwoPos := positionOf(customers, regularTwo.ID)
		newcomerPos := positionOf(customers, newcomer.ID)

		require.NotEqual(t, -1, frequentPos, "customer with 5 reservations must be present")
		require.NotEqual(t, -1, newcomerPos, "customer with 0 reservations must be present too")

		require.Less(t, frequentPos, regularOnePos, "5 reservations must rank above 3")
		require.Less(t, regularOnePos, regularTwoPos, "equal counts must be tie-broken by customer id")
		require.Less(t, regularTwoPos, newcomerPos, "3 reservations must rank above 0")

		require.EqualValues(t, 5, customers[frequentPos].NumReservations)
		require.EqualValues(t, 3, customers[regularOnePos].NumReservations)
		require.EqualValues(t, 3, customers[regularTwoPos].NumReservations)
		require.EqualValues(t, 0, customers[newcomerPos].NumReservations)
	}

	t.Log("limit truncates the list keeping the most frequent on top")
	{
		customers, err := customerRps.FindBest(ctx, 1)
		require.NoError(t, err, "failed to read best customers")
		require.Len(t, customers, 1, "limit of 1 must return single customer")
		require.Equal(t, frequent.ID, customers[0].ID, "customer with most reservations must be first")
	}
}
