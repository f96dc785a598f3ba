package integration

import (
	"net/http"
	"strings"
	"testing"
)

func TestOnboardingFlow(t *testing.T) {
	t.Run("register, onboard and read back the dashboard", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "alice@example.com", "password123")

		// Before onboarding the profile reports it incomplete.
		rec := app.request("GET", "/api/v1/auth/me", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("me failed: %d %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["onboarding_completed"].(bool) {
			t.Fatal("expected onboarding_completed false before onboarding")
		}

		app.onboardUser(t, token, 3, 2025)

		// Profile now reports onboarding complete.
		rec = app.request("GET", "/api/v1/auth/me", "", token)
		if !parseJSON(t, rec)["onboarding_completed"].(bool) {
			t.Error("expected onboarding_completed true after onboarding")
		}

		// The dashboard for the onboarded month shows the three cards.
		rec = app.request("GET", "/api/v1/dashboard?month=3&year=2025", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["income"].(float64) != 400000 {
			t.Errorf("expected income 400000, got %v", result["income"])
		}
		cards := result["cards"].([]interface{})
		if len(cards) != 3 {
			t.Fatalf("expected 3 cards, got %d", len(cards))
		}
		first := cards[0].(map[string]interface{})
		if first["allocated"].(float64) != 120000 {
			t.Errorf("expected first card allocated 120000, got %v", first["allocated"])
		}
	})

	t.Run("allocation sum other than 100 is rejected", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "bob@example.com", "password123")

		body := `{
			"income": 400000,
			"month": 3,
			"year": 2025,
			"categories": [
				{"name":"Spending","type":"spending","allocation_pct":30},
				{"name":"Savings","type":"saving","allocation_pct":30}
			]
		}`
		rec := app.request("POST", "/api/v1/onboarding", body, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "ALLOCATION_SUM") {
			t.Errorf("expected ALLOCATION_SUM code, got %s", rec.Body.String())
		}
	})

	t.Run("a second onboarding is a conflict", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "carol@example.com", "password123")
		app.onboardUser(t, token, 3, 2025)

		body := `{
			"income": 100000,
			"month": 4,
			"year": 2025,
			"categories": [{"name":"Other","type":"custom","allocation_pct":100}]
		}`
		rec := app.request("POST", "/api/v1/onboarding", body, token)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "ALREADY_ONBOARDED") {
			t.Errorf("expected ALREADY_ONBOARDED code, got %s", rec.Body.String())
		}
	})

	t.Run("protected routes require a token", func(t *testing.T) {
		app := setupApp(t)
		rec := app.request("GET", "/api/v1/dashboard", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
