package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emrekaya/clubsphere/internal/app/models"
	appRepos "github.com/emrekaya/clubsphere/internal/app/repositories"
)

const defaultAdminEmail = "admin@clubsphere.app"

// CreateDefaultData creates the default admin account and a handful of demo
// events if the database is empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	memberRepo := appRepos.NewMemberRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default Admin Account --- //
	var adminID int64
	exists, err := memberRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Member{
				Email:        defaultAdminEmail,
				PasswordHash: string(hashedPassword),
				FirstName:    "Club",
				LastName:     "Admin",
				RoleType:     appModels.RoleAdmin,
			}
			if err := memberRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				adminID = admin.ID
				lgr.Info().Int64("adminID", adminID).Msg("Default admin account created")
			}
		}
	} else {
		admin, err := memberRepo.GetByEmail(ctx, defaultAdminEmail)
		if err != nil {
			lgr.Error().Err(err).Msg("Error loading existing admin account")
			finalErr = errors.Join(finalErr, err)
		} else {
			adminID = admin.ID
		}
	}

	// --- Demo Events --- //
	if adminID > 0 {
		count, err := eventRepo.CountAll(ctx)
		if err != nil {
			lgr.Error().Err(err).Msg("Error counting events")
			finalErr = errors.Join(finalErr, err)
		} else if count == 0 {
			lgr.Info().Msg("Creating demo events...")
			for _, event := range demoEvents(adminID) {
				if err := eventRepo.Create(ctx, event); err != nil {
					lgr.Error().Err(err).Str("title", event.Title).Msg("Error creating demo event")
					finalErr = errors.Join(finalErr, err)
				}
			}
		}
	}

	return finalErr
}

func demoEvents(createdBy int64) []*appModels.Event {
	now := time.Now().UTC()

	return []*appModels.Event{
		{
			Title:       "Campus Hack Night",
			Date:        now.AddDate(0, 0, 14),
			TimeLabel:   "18:00",
			Location:    "Engineering Building, Lab 3",
			Category:    appModels.CategoryHackathon,
			Description: "An overnight build sprint. Bring a team or find one on the spot.",
			Spots:       40,
			Organizer: appModels.Organizer{
				Name: "Club Admin",
				Role: "Organizer",
			},
			Agenda: []appModels.AgendaItem{
				{Time: "18:00", Title: "Kickoff and team formation", Duration: "30m"},
				{Time: "18:30", Title: "Hacking begins", Duration: "10h"},
			},
			Requirements: []string{"Laptop", "Student ID"},
			CreatedBy:    createdBy,
		},
		{
			Title:       "Intro to Go Workshop",
			Date:        now.AddDate(0, 0, 7),
			TimeLabel:   "14:00",
			Location:    "Library, Room 210",
			Category:    appModels.CategoryWorkshop,
			Description: "A hands-on session covering the basics of the Go programming language.",
			Spots:       25,
			Organizer: appModels.Organizer{
				Name: "Club Admin",
				Role: "Instructor",
			},
			Requirements: []string{"Laptop with Go installed"},
			CreatedBy:    createdBy,
		},
		{
			Title:       "Science Museum Field Trip",
			Date:        now.AddDate(0, 1, 0),
			TimeLabel:   "09:00",
			Location:    "Main Gate (bus departure)",
			Category:    appModels.CategoryFieldTrip,
			Description: "A guided day trip to the city science museum. Transport included.",
			Spots:       30,
			Organizer: appModels.Organizer{
				Name: "Club Admin",
				Role: "Coordinator",
			},
			CreatedBy: createdBy,
		},
	}
}
