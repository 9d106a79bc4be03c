package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"cluetrainer/internal/abbrev"
	"cluetrainer/internal/database"
	"cluetrainer/internal/models"
	"cluetrainer/internal/repository"
	"cluetrainer/internal/security"
	"cluetrainer/internal/service"
)

// newTestServer wires the full API over a fresh SQLite database.
func newTestServer(t *testing.T) (*httptest.Server, *database.DB) {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	clueRepo := repository.NewClueRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	savedClueRepo := repository.NewSavedClueRepository(db)

	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens)
	clueService := service.NewClueService(clueRepo)
	statsService := service.NewStatsService(attemptRepo)

	authHandler := NewAuthHandler(authService, nil)
	clueHandler := NewClueHandler(clueService)
	statsHandler := NewStatsHandler(statsService)
	savedClueHandler := NewSavedClueHandler(savedClueRepo)
	abbreviationHandler := NewAbbreviationHandler(&abbrev.Dataset{Entries: []abbrev.Entry{
		{Meaning: "about", Abbreviations: []string{"c", "ca", "re"}},
	}})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", RequireAuth(authService, authHandler.Me))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/clues/types", clueHandler.Types)
	mux.HandleFunc("GET /api/clues/random", clueHandler.Random)
	mux.HandleFunc("GET /api/clues/by-id", clueHandler.ByID)
	mux.HandleFunc("POST /api/clues/check", clueHandler.Check)
	mux.HandleFunc("POST /api/clues/hint", clueHandler.Hint)
	mux.HandleFunc("POST /api/clues/letter-hint", clueHandler.LetterHint)
	mux.HandleFunc("POST /api/stats/attempt", RequireAuth(authService, statsHandler.RecordAttempt))
	mux.HandleFunc("GET /api/stats/summary", RequireAuth(authService, statsHandler.Summary))
	mux.HandleFunc("GET /api/stats/history", RequireAuth(authService, statsHandler.History))
	mux.HandleFunc("POST /api/saved-clues", RequireAuth(authService, savedClueHandler.Save))
	mux.HandleFunc("GET /api/saved-clues", RequireAuth(authService, savedClueHandler.List))
	mux.HandleFunc("DELETE /api/saved-clues/{clueRowid}", RequireAuth(authService, savedClueHandler.Delete))
	mux.HandleFunc("GET /api/abbreviations", abbreviationHandler.List)

	srv := httptest.NewServer(CORS(mux))
	t.Cleanup(srv.Close)

	return srv, db
}

func seedClue(t *testing.T, db *database.DB, clue, answer, definition, puzzleName string) int64 {
	t.Helper()

	c := &models.Clue{
		Clue:       clue,
		Answer:     answer,
		Definition: definition,
		PuzzleName: puzzleName,
	}
	if err := repository.NewClueRepository(db).Insert(c); err != nil {
		t.Fatalf("Failed to insert clue: %v", err)
	}
	return c.Rowid
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerUser(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Register returned %d: %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("Register returned no token")
	}
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, _ := newTestServer(t)

	token := registerUser(t, srv, "alice@example.com", "secret1")

	// Duplicate email is rejected
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 for duplicate email, got %d: %v", resp.StatusCode, body)
	}

	// Short password is rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "bob@example.com",
		"password": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for short password, got %d", resp.StatusCode)
	}

	// Malformed email is rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "not an email",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad email, got %d", resp.StatusCode)
	}

	// Login round trip
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login returned %d: %v", resp.StatusCode, body)
	}
	if body["token"] == "" {
		t.Error("Login returned no token")
	}

	// Wrong password gets the same generic 401 as unknown email
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpass",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong password, got %d", resp.StatusCode)
	}
	if body["error"] != "Invalid email or password" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	if resp.StatusCode != http.StatusUnauthorized || body["error"] != "Invalid email or password" {
		t.Errorf("Expected generic 401 for unknown email, got %d: %v", resp.StatusCode, body)
	}

	// Me with token
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Me returned %d: %v", resp.StatusCode, body)
	}
	user, _ := body["user"].(map[string]interface{})
	if user["email"] != "alice@example.com" {
		t.Errorf("Unexpected user: %v", user)
	}

	// Me without token
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestRandomClueWithholdsAnswer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, db := newTestServer(t)
	seedClue(t, db, "Capital fellow (6)", "LONDON", "Capital", "Times Cryptic No 1")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/clues/random?type=cryptic", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Random returned %d: %v", resp.StatusCode, body)
	}
	if _, present := body["answer"]; present {
		t.Error("Random clue response must not include the answer")
	}
	if body["answerLength"] != float64(6) {
		t.Errorf("Expected answerLength 6, got %v", body["answerLength"])
	}
	if body["answerLetterCount"] != float64(6) {
		t.Errorf("Expected answerLetterCount 6, got %v", body["answerLetterCount"])
	}

	// Unknown type
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/clues/random?type=acrostic", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid type, got %d", resp.StatusCode)
	}

	// Valid type with no clues
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/clues/random?type=mephisto", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for empty type, got %d", resp.StatusCode)
	}
}

func TestCheckAnswer(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, db := newTestServer(t)
	rowid := seedClue(t, db, "Capital fellow (6)", "LONDON", "Capital", "Times Cryptic No 1")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/clues/check", "", map[string]interface{}{
		"rowid":      rowid,
		"userAnswer": "london",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Check returned %d: %v", resp.StatusCode, body)
	}
	if body["correct"] != true {
		t.Error("Expected case-insensitive match to be correct")
	}
	if body["answer"] != "LONDON" {
		t.Errorf("Expected answer in check response, got %v", body["answer"])
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/clues/check", "", map[string]interface{}{
		"rowid":      rowid,
		"userAnswer": "PARIS",
	})
	if resp.StatusCode != http.StatusOK || body["correct"] != false {
		t.Errorf("Expected incorrect answer, got %d: %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/clues/check", "", map[string]interface{}{
		"rowid":      99999,
		"userAnswer": "LONDON",
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown clue, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/clues/check", "", map[string]interface{}{
		"rowid": rowid,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing userAnswer, got %d", resp.StatusCode)
	}
}

func TestHints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, db := newTestServer(t)
	rowid := seedClue(t, db, "Capital fellow (6)", "NEW YORK", "Capital fellow", "Times Cryptic No 1")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/clues/hint", "", map[string]interface{}{
		"rowid": rowid,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Hint returned %d: %v", resp.StatusCode, body)
	}
	if body["definitionStart"] != float64(0) {
		t.Errorf("Expected definitionStart 0, got %v", body["definitionStart"])
	}
	if body["definitionLength"] != float64(14) {
		t.Errorf("Expected definitionLength 14, got %v", body["definitionLength"])
	}

	// Letter hints are uppercased; spaces pass through
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/clues/letter-hint", "", map[string]interface{}{
		"rowid":    rowid,
		"position": 0,
	})
	if resp.StatusCode != http.StatusOK || body["letter"] != "N" {
		t.Errorf("Expected letter N, got %d: %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/clues/letter-hint", "", map[string]interface{}{
		"rowid":    rowid,
		"position": 3,
	})
	if resp.StatusCode != http.StatusOK || body["letter"] != " " {
		t.Errorf("Expected space letter, got %d: %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/clues/letter-hint", "", map[string]interface{}{
		"rowid":    rowid,
		"position": 8,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range position, got %d", resp.StatusCode)
	}
}

func TestSavedCluesFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, db := newTestServer(t)
	rowid := seedClue(t, db, "Capital fellow (6)", "LONDON", "Capital", "Times Cryptic No 1")
	token := registerUser(t, srv, "saver@example.com", "secret1")

	// Requires auth
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/saved-clues", "", map[string]interface{}{
		"clueRowid": rowid,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/saved-clues", token, map[string]interface{}{
		"clueRowid": rowid,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Save returned %d: %v", resp.StatusCode, body)
	}
	firstID := body["savedClueId"]

	// Saving again returns the same record
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/saved-clues", token, map[string]interface{}{
		"clueRowid": rowid,
	})
	if resp.StatusCode != http.StatusOK || body["savedClueId"] != firstID {
		t.Errorf("Expected idempotent save, got %d: %v", resp.StatusCode, body)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/saved-clues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("List request failed: %v", err)
	}
	defer listResp.Body.Close()

	var saved []map[string]interface{}
	if err := json.NewDecoder(listResp.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("Expected 1 saved clue, got %d", len(saved))
	}
	if saved[0]["type"] != "Times Cryptic No 1" {
		t.Errorf("Expected puzzle name under 'type', got %v", saved[0]["type"])
	}
	if saved[0]["answerLength"] != float64(6) {
		t.Errorf("Expected answerLength 6, got %v", saved[0]["answerLength"])
	}

	resp, body = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/saved-clues/%d", srv.URL, rowid), token, nil)
	if resp.StatusCode != http.StatusOK || body["success"] != true {
		t.Errorf("Delete returned %d: %v", resp.StatusCode, body)
	}
}

func TestStatsFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, db := newTestServer(t)
	rowid := seedClue(t, db, "Capital fellow (6)", "LONDON", "Capital", "Times Cryptic No 1")
	token := registerUser(t, srv, "solver@example.com", "secret1")

	// Empty summary is all zeroes, never NaN
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/stats/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Summary returned %d: %v", resp.StatusCode, body)
	}
	if body["totalAttempts"] != float64(0) || body["successRate"] != float64(0) || body["avgLettersRevealedPct"] != float64(0) {
		t.Errorf("Expected zeroed summary, got %v", body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/stats/attempt", token, map[string]interface{}{
		"clueRowid":       rowid,
		"lettersRevealed": 3,
		"totalLetters":    6,
		"correct":         true,
		"puzzleType":      "cryptic",
	})
	if resp.StatusCode != http.StatusOK || body["success"] != true {
		t.Fatalf("Attempt returned %d: %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/stats/attempt", token, map[string]interface{}{
		"clueRowid":    rowid,
		"totalLetters": 6,
		"correct":      false,
		"puzzleType":   "cryptic",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Attempt returned %d: %v", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/stats/attempt", token, map[string]interface{}{
		"clueRowid": rowid,
		"correct":   true,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing totalLetters, got %d", resp.StatusCode)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/stats/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Summary returned %d: %v", resp.StatusCode, body)
	}
	if body["totalAttempts"] != float64(2) || body["correctAnswers"] != float64(1) {
		t.Errorf("Unexpected totals: %v", body)
	}
	if body["successRate"] != float64(50) {
		t.Errorf("Expected successRate 50, got %v", body["successRate"])
	}
	if body["avgLettersRevealedPct"] != float64(25) {
		t.Errorf("Expected avgLettersRevealedPct 25, got %v", body["avgLettersRevealedPct"])
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/stats/history?limit=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	histResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("History request failed: %v", err)
	}
	defer histResp.Body.Close()

	var history []map[string]interface{}
	if err := json.NewDecoder(histResp.Body).Decode(&history); err != nil {
		t.Fatalf("Failed to decode history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected history limit to apply, got %d rows", len(history))
	}
}

func TestTypesAndAbbreviations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/clues/types", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Types returned %d", resp.StatusCode)
	}
	types, _ := body["types"].([]interface{})
	if len(types) != 4 {
		t.Errorf("Expected 4 puzzle types, got %v", types)
	}
	labels, _ := body["labels"].(map[string]interface{})
	if labels["quick_cryptic"] != "Times Quick Cryptic" {
		t.Errorf("Unexpected labels: %v", labels)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/abbreviations", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Abbreviations returned %d", resp.StatusCode)
	}
	entries, _ := body["entries"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("Expected 1 abbreviation entry, got %v", body)
	}
	entry, _ := entries[0].(map[string]interface{})
	if entry["meaning"] != "about" {
		t.Errorf("Unexpected abbreviation entry: %v", entry)
	}
}
