// cmd/adduser/main.go
// Creates or updates an account in the database.
//
// Usage:
//
//	go run ./cmd/adduser -email admin@club.example -password testing123
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/poloapi/config"
	bundb "github.com/padraicbc/poloapi/db"
	"github.com/padraicbc/poloapi/models"
)

func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(*email)),
		Password: string(hash),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (email) DO UPDATE SET password = EXCLUDED.password").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("account %q saved\n", user.Email)
}
