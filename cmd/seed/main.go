package main

import (
	"context"
	"log"
	"time"

	"messenger-backend/internal/config"
	"messenger-backend/internal/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx := context.Background()

	// Create demo users
	users := []struct {
		Email    string
		Password string
		Name     string
	}{
		{"alice@example.com", "password123", "Alice Martin"},
		{"bob@example.com", "password123", "Bob Dupont"},
		{"carol@example.com", "password123", "Carol Lambert"},
	}

	ids := make(map[string]int64)
	for _, u := range users {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)

		var id int64
		err := db.Pool.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, u.Email, string(hashedPassword), u.Name, time.Now()).Scan(&id)

		if err != nil {
			log.Printf("Failed to create user %s: %v\n", u.Email, err)
			continue
		}
		ids[u.Email] = id
		log.Printf("User %s ready (id %d)\n", u.Email, id)
	}

	// Seed a short conversation between Alice and Bob
	alice, bob := ids["alice@example.com"], ids["bob@example.com"]
	if alice != 0 && bob != 0 {
		conversation := []struct {
			From, To int64
			Content  string
		}{
			{alice, bob, "Salut Bob!"},
			{bob, alice, "Salut Alice, ça va?"},
			{alice, bob, "Oui très bien, et toi?"},
		}
		for _, m := range conversation {
			_, err := db.Pool.Exec(ctx, `
				INSERT INTO messages (sender_id, receiver_id, content, message_type)
				VALUES ($1, $2, $3, 'text')
			`, m.From, m.To, m.Content)
			if err != nil {
				log.Printf("Failed to seed message: %v\n", err)
			}
		}
		log.Println("Seeded demo conversation between Alice and Bob")
	}
}
