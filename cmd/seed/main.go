// cmd/seed/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/konnethq/konnet/internal/auth"
	"github.com/konnethq/konnet/internal/config"
	"github.com/konnethq/konnet/internal/model"
	"github.com/konnethq/konnet/internal/repository"
	"github.com/konnethq/konnet/internal/service"
)

var dataDir string

func main() {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Seed or wipe the konnet data store",
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import organizations, members and admins from JSON fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context())
		},
	}
	importCmd.Flags().StringVarP(&dataDir, "dir", "i", "./data", "directory holding the JSON fixtures")

	destroyCmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete all seeded data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(cmd.Context())
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			return db.AutoMigrate(&model.Organization{}, &model.Member{}, &model.Admin{})
		},
	}

	root.AddCommand(importCmd, destroyCmd, migrateCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type organizationFixture struct {
	service.RegisterOrganizationInput
}

type memberBatchFixture struct {
	Organization string                      `json:"organization"`
	Members      []service.CreateMemberInput `json:"members"`
}

type adminFixture struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func runImport(ctx context.Context) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&model.Organization{}, &model.Member{}, &model.Admin{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	orgRepo := repository.NewOrganizationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	hasher := auth.NewPasswordHasher()

	var admins []adminFixture
	if err := readFixture(filepath.Join(dataDir, "admins.json"), &admins); err == nil {
		for _, a := range admins {
			hash, err := hasher.Hash(a.Password)
			if err != nil {
				return err
			}
			admin := &model.Admin{Email: a.Email, Role: model.RoleAdmin, PasswordHash: hash}
			if err := adminRepo.Create(ctx, admin); err != nil {
				return fmt.Errorf("seeding admin %s: %w", a.Email, err)
			}
			fmt.Printf("admin %s\n", a.Email)
		}
	}

	var orgs []organizationFixture
	if err := readFixture(filepath.Join(dataDir, "organizations.json"), &orgs); err != nil {
		return err
	}
	orgIDs := make(map[string]*model.Organization, len(orgs))
	for _, o := range orgs {
		hash, err := hasher.Hash(o.Password)
		if err != nil {
			return err
		}
		org := &model.Organization{
			Name:         o.Name,
			Username:     o.Username,
			Email:        o.Email,
			Address:      o.Address,
			State:        o.State,
			City:         o.City,
			Country:      o.Country,
			Phone:        o.Phone,
			Role:         model.RoleOrganization,
			PasswordHash: hash,
		}
		if err := orgRepo.Create(ctx, org); err != nil {
			return fmt.Errorf("seeding organization %s: %w", o.Name, err)
		}
		orgIDs[o.Name] = org
		fmt.Printf("organization %s\n", o.Name)
	}

	memberService := service.NewMemberService(memberRepo, orgRepo, hasher, nil, nil)

	var batches []memberBatchFixture
	if err := readFixture(filepath.Join(dataDir, "members.json"), &batches); err != nil {
		return err
	}
	for _, batch := range batches {
		org, ok := orgIDs[batch.Organization]
		if !ok {
			return fmt.Errorf("members fixture references unknown organization %q", batch.Organization)
		}
		report, err := memberService.BulkImport(ctx, org.ID, batch.Members)
		if err != nil {
			return fmt.Errorf("seeding members for %s: %w", batch.Organization, err)
		}
		fmt.Printf("organization %s: %d created, %d linked, %d rejected\n",
			batch.Organization, report.Created, report.Linked, report.Rejected)
	}

	return nil
}

func runDestroy(ctx context.Context) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}

	for _, m := range []interface{}{&model.Member{}, &model.Organization{}, &model.Admin{}} {
		if err := db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("wiping table: %w", err)
		}
	}

	fmt.Println("data destroyed")
	return nil
}

func readFixture(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing fixture %s: %w", path, err)
	}
	return nil
}

func openDatabase() (*gorm.DB, error) {
	cfg := config.Load()
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
