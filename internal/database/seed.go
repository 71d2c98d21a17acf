package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// devAPIKey is the plaintext API key seeded for local development.
// Only its bcrypt hash is stored.
const devAPIKey = "sp_dev_0000000000000000"

// demoSlides is a five-slide starter template in the canvas editor's
// element schema: hook, three content slides, CTA.
const demoSlides = `[
  {"id":"s1","backgroundColor":"#0F172A","elements":[
    {"id":"s1-title","type":"text","x":60,"y":420,"width":960,"height":300,"text":"Your hook goes here","fontSize":72,"color":"#F8FAFC"},
    {"id":"s1-num","type":"text","x":60,"y":80,"width":200,"height":120,"text":"01","fontSize":64,"color":"#38BDF8"}]},
  {"id":"s2","backgroundColor":"#F8FAFC","elements":[
    {"id":"s2-heading","type":"text","x":60,"y":120,"width":960,"height":160,"text":"First point","fontSize":56,"color":"#0F172A"},
    {"id":"s2-body","type":"text","x":60,"y":340,"width":960,"height":600,"text":"Explain the first point here","fontSize":32,"color":"#334155"}]},
  {"id":"s3","backgroundColor":"#F8FAFC","elements":[
    {"id":"s3-heading","type":"text","x":60,"y":120,"width":960,"height":160,"text":"Second point","fontSize":56,"color":"#0F172A"},
    {"id":"s3-body","type":"text","x":60,"y":340,"width":960,"height":600,"text":"Explain the second point here","fontSize":32,"color":"#334155"}]},
  {"id":"s4","backgroundColor":"#F8FAFC","elements":[
    {"id":"s4-heading","type":"text","x":60,"y":120,"width":960,"height":160,"text":"Third point","fontSize":56,"color":"#0F172A"},
    {"id":"s4-body","type":"text","x":60,"y":340,"width":960,"height":600,"text":"Explain the third point here","fontSize":32,"color":"#334155"}]},
  {"id":"s5","backgroundColor":"#0F172A","elements":[
    {"id":"s5-cta","type":"text","x":60,"y":480,"width":960,"height":240,"text":"Follow for more","fontSize":56,"color":"#F8FAFC"}]}
]`

// Seed populates the database with initial development data: one account
// with a known API key, a starter template, and a few posts so style
// analysis has something to chew on. Safe to call on every boot.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return fmt.Errorf("seed check accounts: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(devAPIKey), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var accountID string
	err = db.QueryRow(`
		INSERT INTO accounts (email, name, plan, api_key_hash, api_key_prefix)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "dev@slidepress.local", "Dev Account", "pro", string(hash), devAPIKey[:11]).Scan(&accountID)
	if err != nil {
		return fmt.Errorf("seed insert account: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO templates (name, category, slides, brand_colors, fonts)
		VALUES ($1, $2, $3, $4, $5)
	`, "Bold Numbered List", "educational", demoSlides,
		`["#0F172A","#38BDF8","#F8FAFC"]`, `["Inter"]`)
	if err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	posts := []struct {
		content string
		source  string
	}{
		{"I spent 6 months building a product nobody wanted. Here is what I learned about validating ideas before writing code.", "own"},
		{"Most founders overthink their tech stack. Ship with boring technology and spend the saved time talking to customers.", "own"},
		{"What would you build if you only had one weekend? Constraints are the best product manager I ever had.", "own"},
		{"Stop optimizing your morning routine and start optimizing your calendar. Deep work beats early alarms.", "saved"},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO posts (account_id, content, source)
			VALUES ($1, $2, $3)
		`, accountID, p.content, p.source); err != nil {
			return fmt.Errorf("seed insert post: %w", err)
		}
	}

	slog.Info("database seeded with dev account",
		"email", "dev@slidepress.local",
		"api_key", devAPIKey,
	)

	return nil
}
