// Command createuser bootstraps an account, and optionally its staff record,
// in the configured database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/config"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/leave-backend-go/internal/repository/sqlite"
	serviceAuth "github.com/cmlabs-hris/leave-backend-go/internal/service/auth"
)

func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	admin := flag.Bool("admin", false, "grant administrator rights")
	startWork := flag.String("start-work-date", "", "create a staff record starting on this date (YYYY-MM-DD)")
	flag.Parse()

	if validator.IsEmpty(*name) || !validator.IsValidEmail(*email) || len(*password) < 8 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		users     user.UserRepository
		staffRepo staff.StaffRepository
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Error migrating database: ", err)
		}
		users, staffRepo = postgresql.NewUserRepository(db), postgresql.NewStaffRepository(db)
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatal("Error opening database: ", err)
		}
		defer store.Close()
		users, staffRepo = store.Users(), store.Staff()
	default:
		log.Fatal("Unsupported database driver: ", cfg.Database.Driver)
	}

	hash, err := serviceAuth.HashPassword(*password)
	if err != nil {
		log.Fatal("Error hashing password: ", err)
	}

	created, err := users.Create(ctx, user.User{Name: *name, Email: *email, PasswordHash: &hash, IsAdmin: *admin})
	if err != nil {
		log.Fatal("Error creating user: ", err)
	}
	log.Printf("created user %s (%s) admin=%t", created.ID, created.Email, created.IsAdmin)

	if *startWork == "" {
		return
	}
	date, ok := validator.IsValidDate(*startWork)
	if !ok {
		log.Fatal("Invalid start-work-date: ", *startWork)
	}
	s, err := staffRepo.Create(ctx, staff.Staff{UserID: created.ID, StartWorkDate: date})
	if err != nil {
		log.Fatal("Error creating staff record: ", err)
	}
	log.Printf("created staff %s", s.ID)
}
