package main

import (
	"crypto/sha256"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"mentormatch/internal/config"
	"mentormatch/internal/database"
	"mentormatch/internal/logger"
	"mentormatch/internal/models"

	"github.com/joho/godotenv"
)

var (
	clearExisting = flag.Bool("clear", false, "Clear existing data before seeding")
	dryRun        = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
	mentorCount   = flag.Int("mentors", 5, "Number of mentors to create")
	menteeCount   = flag.Int("mentees", 20, "Number of mentees to create")
)

type Seeder struct {
	db *database.DB
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting seeder...")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	seeder := &Seeder{db: db}

	if err := seeder.Run(); err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) Run() error {
	if *clearExisting {
		if *dryRun {
			slog.Info("Would clear reservations, offerings and users")
		} else if err := s.clear(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	mentors, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.seedOfferings(mentors); err != nil {
		return fmt.Errorf("failed to seed offerings: %w", err)
	}

	return nil
}

func (s *Seeder) clear() error {
	for _, table := range []string{"reservations", "offerings", "users"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		slog.Info("Cleared table", "table", table)
	}
	return nil
}

// seedUsers creates one admin, the requested mentors and mentees.
// Everyone gets the password "password123".
func (s *Seeder) seedUsers() ([]string, error) {
	passwordHash := fmt.Sprintf("%x", sha256.Sum256([]byte("password123")))

	if _, err := s.createUser("admin@mentormatch.dev", "Admin", models.RoleAdmin, passwordHash); err != nil {
		return nil, err
	}

	skills := []string{"Go", "Distributed systems", "Product design", "Data engineering", "Career coaching"}
	locations := []string{"Almaty", "Berlin", "Lisbon", "Austin", "Singapore"}

	mentorIDs := make([]string, 0, *mentorCount)
	for i := 0; i < *mentorCount; i++ {
		email := fmt.Sprintf("mentor%d@mentormatch.dev", i+1)
		id, err := s.createUser(email, fmt.Sprintf("Mentor %d", i+1), models.RoleMentor, passwordHash)
		if err != nil {
			return nil, err
		}
		if id != "" {
			query := `UPDATE users SET skills = $1, location = $2, about = $3 WHERE id = $4`
			about := fmt.Sprintf("Practicing %s for %d years.", skills[i%len(skills)], 3+rand.Intn(15))
			if _, err := s.db.Exec(query, skills[i%len(skills)], locations[i%len(locations)], about, id); err != nil {
				return nil, fmt.Errorf("failed to fill mentor profile: %w", err)
			}
		}
		mentorIDs = append(mentorIDs, id)
	}

	for i := 0; i < *menteeCount; i++ {
		email := fmt.Sprintf("mentee%d@mentormatch.dev", i+1)
		if _, err := s.createUser(email, fmt.Sprintf("Mentee %d", i+1), models.RoleMentee, passwordHash); err != nil {
			return nil, err
		}
	}

	slog.Info("Seeded users", "mentors", *mentorCount, "mentees", *menteeCount)
	return mentorIDs, nil
}

func (s *Seeder) createUser(email, name, role, passwordHash string) (string, error) {
	if *dryRun {
		slog.Info("Would create user", "email", email, "role", role)
		return "", nil
	}

	query := `
		INSERT INTO users (email, password_hash, name, user_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET user_type = EXCLUDED.user_type
		RETURNING id`

	var id string
	if err := s.db.QueryRow(query, email, passwordHash, name, role).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to create user %s: %w", email, err)
	}
	return id, nil
}

// seedOfferings gives each mentor one class and one session, already
// verified and open for booking.
func (s *Seeder) seedOfferings(mentorIDs []string) error {
	if *dryRun {
		slog.Info("Would create offerings", "count", len(mentorIDs)*2)
		return nil
	}

	query := `
		INSERT INTO offerings (mentor_id, kind, name, description, price, max_participants,
			is_available, is_verified, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE, $7, $8)`

	created := 0
	for i, mentorID := range mentorIDs {
		if mentorID == "" {
			continue
		}

		classStart := time.Now().AddDate(0, 0, 7+rand.Intn(21)).Truncate(time.Hour)
		classEnd := classStart.AddDate(0, 0, 28)
		price := int64((10 + rand.Intn(40)) * 1000)

		if _, err := s.db.Exec(query, mentorID, models.OfferingClass,
			fmt.Sprintf("Cohort class %d", i+1), "Four week group program.",
			price, 5+rand.Intn(20), classStart, classEnd); err != nil {
			return fmt.Errorf("failed to create class: %w", err)
		}

		sessionStart := time.Now().AddDate(0, 0, 1+rand.Intn(14)).Truncate(time.Hour)
		if _, err := s.db.Exec(query, mentorID, models.OfferingSession,
			fmt.Sprintf("1:1 session with mentor %d", i+1), "One hour private session.",
			price/4, 1, sessionStart, nil); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		created += 2
	}

	slog.Info("Seeded offerings", "count", created)
	return nil
}
