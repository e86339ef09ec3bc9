package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/maintenance-management/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGormDB(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"maintenance_requests", "team_technicians", "equipment", "maintenance_teams", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

		seedUsers := []struct {
			Email      string
			Name       string
			Role       string
			Department string
		}{
			{"admin@plant.local", "Ava Admin", auth.RoleAdmin, "Operations"},
			{"manager@plant.local", "Mira Manager", auth.RoleManager, "Operations"},
			{"tech@plant.local", "Theo Technician", auth.RoleTechnician, "Maintenance"},
			{"employee@plant.local", "Eli Employee", auth.RoleEmployee, "Assembly"},
		}

		for _, u := range seedUsers {
			if seedUserExists(db, u.Email) {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}
			err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash), u.Role, u.Department,
			).Error
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		var teamID int64
		row := db.Raw("SELECT id FROM maintenance_teams WHERE name = ?", "Mechanical Crew").Row()
		if err := row.Scan(&teamID); err != nil {
			err := db.Raw(
				"INSERT INTO maintenance_teams (name, description, specialization, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now()) RETURNING id",
				"Mechanical Crew", "Pumps, presses and conveyors", "MECHANICAL",
			).Row().Scan(&teamID)
			if err != nil {
				log.Fatalf("failed to insert team: %v", err)
			}
			fmt.Println("Seeded team: Mechanical Crew")
		}

		var techID, employeeID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "tech@plant.local").Row().Scan(&techID); err != nil {
			log.Fatalf("failed to look up technician: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "employee@plant.local").Row().Scan(&employeeID); err != nil {
			log.Fatalf("failed to look up employee: %v", err)
		}

		var onRoster int
		if err := db.Raw("SELECT 1 FROM team_technicians WHERE user_id = ?", techID).Row().Scan(&onRoster); err != nil {
			if err := db.Exec("INSERT INTO team_technicians (team_id, user_id, created_at) VALUES (?, ?, now())", teamID, techID).Error; err != nil {
				log.Fatalf("failed to add technician to roster: %v", err)
			}
			if err := db.Exec("UPDATE users SET maintenance_team_id = ? WHERE id = ?", teamID, techID).Error; err != nil {
				log.Fatalf("failed to set technician team: %v", err)
			}
			fmt.Println("Added technician to Mechanical Crew")
		}

		var equipmentCount int64
		db.Raw("SELECT COUNT(*) FROM equipment WHERE serial_number = ?", "PMP-0001").Row().Scan(&equipmentCount)
		if equipmentCount == 0 {
			err := db.Exec(
				`INSERT INTO equipment (name, serial_number, category, purchase_date, warranty_expiry, location, department, assigned_employee_id, maintenance_team_id, status, created_at, updated_at)
				 VALUES (?, ?, ?, now() - interval '2 years', now() + interval '1 year', ?, ?, ?, ?, 'ACTIVE', now(), now())`,
				"Hydraulic Pump A", "PMP-0001", "MACHINERY", "Hall 2", "Assembly", employeeID, teamID,
			).Error
			if err != nil {
				log.Fatalf("failed to insert equipment: %v", err)
			}
			fmt.Println("Seeded equipment: Hydraulic Pump A")
		}

		fmt.Println("Seeding complete")
	},
}

func seedUserExists(db *gorm.DB, email string) bool {
	var one int
	err := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row().Scan(&one)
	return err == nil
}
