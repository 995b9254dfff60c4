package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{
				"notifications", "certificates", "project_requests",
				"course_requests", "projects", "courses", "users",
			} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		users := []struct {
			Name         string
			Email        string
			Role         string
			Department   string
			Position     string
			Competencies string
		}{
			{"Anna Admin", "admin@talenthub.io", "admin", "HR", "HR Director", `[]`},
			{"Mark Manager", "manager@talenthub.io", "manager", "Engineering", "Engineering Manager", `["leadership"]`},
			{"Eve Employee", "eve@talenthub.io", "employee", "Engineering", "Backend Developer", `["go","sql"]`},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE email = $1", u.Email).Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}

			_, err := db.Exec(
				`INSERT INTO users (name, email, password_hash, role, department, position, competencies, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
				u.Name, u.Email, string(hash), u.Role, u.Department, u.Position, u.Competencies,
			)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		var courseCount int
		if err := db.QueryRow("SELECT count(*) FROM courses").Scan(&courseCount); err == nil && courseCount == 0 {
			_, err := db.Exec(
				`INSERT INTO courses (title, description, start_date, end_date, cost, departments, competencies, created_at, updated_at)
				 VALUES ($1, $2, now() + interval '7 days', now() + interval '14 days', $3, $4, $5, now(), now())`,
				"Advanced Go", "Concurrency, generics and production patterns.", 499.0,
				`["Engineering"]`, `["go-advanced"]`,
			)
			if err != nil {
				log.Fatalf("failed to insert course: %v", err)
			}
			fmt.Println("Seeded course: Advanced Go")
		}

		fmt.Println("Seeding complete. Default password:", password)
	},
}
