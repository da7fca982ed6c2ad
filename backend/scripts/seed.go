package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"eventnet/backend/internal/constants"
	"eventnet/backend/internal/graph"
	"eventnet/backend/internal/model"
	"eventnet/backend/pkg/config"
	"eventnet/backend/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "Delete existing users and events before seeding")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver, graph.WithDatabase(cfg.Neo4jDatabase))

	if *reset {
		legacy, err := repo.RemoveLegacyEvents(ctx)
		if err != nil {
			log.Fatal("Failed to remove legacy events", zap.Error(err))
		}
		removed, err := repo.Reset(ctx)
		if err != nil {
			log.Fatal("Failed to reset graph", zap.Error(err))
		}
		log.Info("Graph reset", zap.Int("legacy_events", legacy), zap.Int("nodes", removed))
	}

	log.Info("Creating constraints...")
	if err := repo.EnsureConstraints(ctx); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}

	users, events, relationships := seedData()
	res, err := repo.BulkLoad(ctx, users, events, relationships)
	if err != nil {
		log.Fatal("Bulk load failed (use -reset to start from an empty graph)", zap.Error(err))
	}
	log.Info("Seed data loaded",
		zap.Int("users", res.Users),
		zap.Int("events", res.Events),
		zap.Int("relationships", res.Relationships),
	)

	stats, err := repo.Stats(ctx)
	if err != nil {
		log.Fatal("Failed to read graph stats", zap.Error(err))
	}

	fmt.Println("\nSeeding complete!")
	fmt.Printf("Users: %d\n", stats.Users)
	fmt.Printf("Events: %d\n", stats.Events)
	fmt.Printf("Friendships: %d\n", stats.Friendships)
	fmt.Printf("Event attendances: %d\n", stats.Attendances)
}

func seedData() ([]*model.User, []*model.Event, []graph.Relationship) {
	people := []struct {
		name, gender, city, phone, email string
		born                             *time.Time
	}{
		{"John Doe", "male", "New York", "+1234567890", "john@example.com", model.Date(1990, time.January, 1)},
		{"Jane Smith", "female", "Los Angeles", "+1987654321", "jane@example.com", model.Date(1992, time.May, 15)},
		{"Bob Wilson", "male", "Chicago", "+1122334455", "bob@example.com", model.Date(1988, time.November, 30)},
		{"Alice Johnson", "female", "Seattle", "+1555666777", "alice@example.com", model.Date(1995, time.March, 22)},
		{"Michael Brown", "male", "Boston", "+1444333222", "michael@example.com", model.Date(1985, time.July, 10)},
		{"Emily Davis", "female", "Austin", "+1777888999", "emily@example.com", model.Date(1993, time.September, 18)},
		{"David Lee", "male", "San Francisco", "+1666555444", "david@example.com", model.Date(1991, time.December, 5)},
		{"Sarah Miller", "female", "Denver", "+1888999000", "sarah@example.com", model.Date(1994, time.April, 30)},
		{"James Wilson", "male", "Miami", "+1222111333", "james@example.com", model.Date(1987, time.August, 15)},
		{"Olivia Taylor", "female", "Portland", "+1999888777", "olivia@example.com", model.Date(1996, time.February, 28)},
	}
	users := make([]*model.User, 0, len(people))
	for i, p := range people {
		person := model.NewPerson(p.name, p.born, p.gender, model.Place(p.city, "USA", ""), p.phone, p.email)
		users = append(users, model.NewUser(int64(i+1), person, nil, nil))
	}

	happenings := []struct {
		name, city, venue, description string
		month                          time.Month
		day                            int
	}{
		{"Tech Conference 2024", "San Francisco", "Convention Center", "Annual technology conference featuring the latest innovations", time.June, 15},
		{"Music Festival", "Austin", "Zilker Park", "Summer music festival with top artists", time.July, 20},
		{"Startup Summit", "New York", "Marriott Marquis", "Networking event for startup founders and investors", time.May, 10},
		{"Art Exhibition", "Los Angeles", "LACMA", "Contemporary art exhibition featuring emerging artists", time.August, 15},
		{"Food Fair", "Chicago", "Grant Park", "International food festival with culinary delights", time.September, 5},
		{"Marathon", "Boston", "Downtown", "Annual city marathon with thousands of participants", time.April, 21},
		{"Film Festival", "Seattle", "SIFF Cinema", "Independent film festival showcasing new directors", time.October, 12},
		{"Book Fair", "Denver", "Convention Center", "Annual book fair with author signings and readings", time.November, 3},
		{"Tech Workshop", "Miami", "Wynwood Labs", "Hands-on workshop for developers and engineers", time.March, 18},
		{"Charity Gala", "Portland", "Hilton Hotel", "Annual charity event to support local communities", time.December, 10},
	}
	events := make([]*model.Event, 0, len(happenings))
	for i, h := range happenings {
		date := time.Date(2024, h.month, h.day, 0, 0, 0, 0, time.UTC)
		events = append(events, model.NewEvent(int64(i+1), h.name, model.Place(h.city, "", h.venue), date, h.description))
	}

	friendships := [][2]int64{
		{1, 2}, {2, 3}, {1, 3}, {4, 5}, {6, 7}, {8, 9}, {10, 1},
		{2, 4}, {3, 6}, {5, 8}, {7, 10}, {9, 2}, {4, 7}, {6, 9},
	}
	attendances := [][2]int64{
		{1, 1}, {2, 1}, {3, 2}, {4, 3}, {5, 4}, {6, 5}, {7, 6}, {8, 7}, {9, 8}, {10, 9},
		{1, 10}, {2, 3}, {3, 5}, {4, 7}, {5, 9}, {6, 2}, {7, 4}, {8, 6}, {9, 1}, {10, 8},
	}
	relationships := make([]graph.Relationship, 0, len(friendships)+len(attendances))
	for _, f := range friendships {
		relationships = append(relationships, graph.Relationship{Type: constants.RelFriendsWith, From: f[0], To: f[1]})
	}
	for _, a := range attendances {
		relationships = append(relationships, graph.Relationship{Type: constants.RelAttended, From: a[0], To: a[1]})
	}

	return users, events, relationships
}
