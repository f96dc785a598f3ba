package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow(t *testing.T) {
	t.Run("entries move the month's spending figures", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "dave@example.com", "password123")
		ids := app.onboardUser(t, token, 3, 2025)
		spendingID := ids["Spending"]

		// Log 40000 cents against the 120000-cent spending allocation.
		body := fmt.Sprintf(`{"category_id":%.0f,"amount":40000,"date":"2025-03-05","description":"groceries"}`, spendingID)
		rec := app.request("POST", "/api/v1/entries", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create entry failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", fmt.Sprintf("/api/v1/categories/%.0f/progress?month=3&year=2025", spendingID), "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("progress failed: %d %s", rec.Code, rec.Body.String())
		}
		card := parseJSON(t, rec)
		spending := card["spending"].(map[string]interface{})
		if spending["spent"].(float64) != 40000 {
			t.Errorf("expected spent 40000, got %v", spending["spent"])
		}
		if spending["used_pct"].(float64) != 33 {
			t.Errorf("expected 33%% used, got %v", spending["used_pct"])
		}
	})

	t.Run("a new month inherits income and allocations", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "erin@example.com", "password123")
		app.onboardUser(t, token, 3, 2025)

		// Viewing April for the first time bootstraps it from March.
		rec := app.request("GET", "/api/v1/budgets?month=4&year=2025", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("get budget failed: %d %s", rec.Code, rec.Body.String())
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["income"].(float64) != 400000 {
			t.Errorf("expected income inherited (400000), got %v", budget["income"])
		}
		allocations := budget["allocations"].([]interface{})
		if len(allocations) != 3 {
			t.Errorf("expected 3 inherited allocations, got %d", len(allocations))
		}
	})

	t.Run("income update changes allocated amounts without touching percentages", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "frank@example.com", "password123")
		ids := app.onboardUser(t, token, 3, 2025)
		spendingID := ids["Spending"]

		rec := app.request("PUT", "/api/v1/budgets/income?month=3&year=2025", `{"income":600000}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("update income failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", fmt.Sprintf("/api/v1/categories/%.0f/progress?month=3&year=2025", spendingID), "", token)
		card := parseJSON(t, rec)
		if card["allocation_pct"].(float64) != 30 {
			t.Errorf("expected percentage unchanged (30), got %v", card["allocation_pct"])
		}
		if card["allocated"].(float64) != 180000 {
			t.Errorf("expected allocated rescaled to 180000, got %v", card["allocated"])
		}
	})

	t.Run("goal and tracker round-trip through their category", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "grace@example.com", "password123")
		ids := app.onboardUser(t, token, 3, 2025)
		savingsID := ids["Savings"]

		rec := app.request("PUT", fmt.Sprintf("/api/v1/categories/%.0f/goal", savingsID),
			`{"name":"Emergency fund","target_amount":1000000}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("upsert goal failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("PUT", fmt.Sprintf("/api/v1/categories/%.0f/tracker", savingsID),
			`{"card_name":"Sapphire","spend_target":400000,"bonus_points":60000,"start_date":"2025-03-01"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("upsert tracker failed: %d %s", rec.Code, rec.Body.String())
		}
		tracker := parseJSON(t, rec)["tracker"].(map[string]interface{})
		// Default window: 90 days from the start date.
		if end := tracker["end_date"].(string); end[:10] != "2025-05-30" {
			t.Errorf("expected default end date 2025-05-30, got %s", end)
		}

		// Both show up on the category's progress card.
		rec = app.request("GET", fmt.Sprintf("/api/v1/categories/%.0f/progress?month=3&year=2025", savingsID), "", token)
		card := parseJSON(t, rec)
		if card["goal"] == nil {
			t.Error("expected goal attached to card")
		}
		if card["tracker"] == nil {
			t.Error("expected tracker attached to card")
		}
	})

	t.Run("deleting a category removes it from the dashboard", func(t *testing.T) {
		app := setupApp(t)
		token := app.registerUser(t, "heidi@example.com", "password123")
		ids := app.onboardUser(t, token, 3, 2025)

		rec := app.request("DELETE", fmt.Sprintf("/api/v1/categories/%.0f", ids["Investments"]), "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete category failed: %d %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/dashboard?month=3&year=2025", "", token)
		cards := parseJSON(t, rec)["cards"].([]interface{})
		if len(cards) != 2 {
			t.Errorf("expected 2 cards after deletion, got %d", len(cards))
		}
	})
}
