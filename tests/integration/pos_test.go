//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func TestLoginRejectsBadPassword(t *testing.T) {
	requireServer(t)

	resp := doJSON(t, http.MethodPost, "/api/login", "", loginRequest{Username: "admin", Password: "nope"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	requireServer(t)

	resp := doGet(t, "/api/cart", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestOrderLifecycle(t *testing.T) {
	requireServer(t)

	admin := login(t, "admin", "admin123")
	if admin.Role != "admin" {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}

	item := createMenuItem(t, admin.Token, menuItemRequest{
		Name:            uniqueName("latte"),
		Price:           "45000",
		Size:            "M",
		TemperatureType: "hot",
	})

	// Add the same line twice; it must merge.
	for range 2 {
		resp := doJSON(t, http.MethodPost, "/api/cart/items", admin.Token,
			cartAddRequest{ItemID: item.ItemID, Size: "M", Quantity: 1})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("add to cart: expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := doGet(t, "/api/cart", admin.Token)
	crt := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(crt.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(crt.Lines))
	}
	if crt.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", crt.Lines[0].Quantity)
	}
	if crt.Total != "90000" {
		t.Fatalf("expected total 90000, got %q", crt.Total)
	}

	resp = doJSON(t, http.MethodPost, "/api/orders", admin.Token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit order: expected 201, got %d", resp.StatusCode)
	}
	placed := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()
	if placed.Total != "90000" {
		t.Fatalf("expected order total 90000, got %q", placed.Total)
	}

	// Cart is empty after submission.
	resp = doGet(t, "/api/cart", admin.Token)
	crt = decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if len(crt.Lines) != 0 {
		t.Fatalf("expected empty cart after order, got %d lines", len(crt.Lines))
	}

	// Submitting again with an empty cart is rejected.
	resp = doJSON(t, http.MethodPost, "/api/orders", admin.Token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cart: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The order shows up in daily sales.
	resp = doGet(t, "/api/sales/daily", admin.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("daily sales: expected 200, got %d", resp.StatusCode)
	}
	rows := decodeJSON[[]salesRow](t, resp)
	resp.Body.Close()
	if len(rows) == 0 {
		t.Fatal("expected at least one daily sales row")
	}
}

func TestRecommendationsRespectTemperature(t *testing.T) {
	requireServer(t)

	admin := login(t, "admin", "admin123")

	hot := createMenuItem(t, admin.Token, menuItemRequest{
		Name:            uniqueName("espresso"),
		Price:           "30000",
		Size:            "S",
		TemperatureType: "hot",
	})

	resp := doGet(t, "/api/recommendations?temp=10", admin.Token)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[struct {
		Items []menuItemResponse `json:"items"`
	}](t, resp)

	found := false
	for _, it := range body.Items {
		if it.ItemID == hot.ItemID {
			found = true
		}
		if it.TemperatureType == "cold" {
			t.Fatalf("cold item %q recommended on a cold day", it.Name)
		}
	}
	if !found {
		t.Fatal("expected the hot item in cold-day recommendations")
	}
}
