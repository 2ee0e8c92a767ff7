package billing

import (
	"errors"
	"testing"
)

func TestCart_AddItemComputesTotal(t *testing.T) {
	var c Cart
	item, err := c.AddItem("Paracetamol 500mg", "12.50", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == "" {
		t.Error("expected item to get an id")
	}
	if item.UnitPrice != 12.50 {
		t.Errorf("unit price = %v, want 12.50", item.UnitPrice)
	}
	if item.Total != 50.00 {
		t.Errorf("total = %v, want 50.00", item.Total)
	}
	if c.Total() != 50.00 {
		t.Errorf("cart total = %v, want 50.00", c.Total())
	}
}

func TestCart_AddItemValidation(t *testing.T) {
	var c Cart

	cases := []struct {
		name      string
		itemName  string
		unitPrice string
	}{
		{"empty name", "   ", "10"},
		{"non-numeric price", "Syringe", "abc"},
		{"negative price", "Syringe", "-5"},
		{"empty price", "Syringe", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.AddItem(tc.itemName, tc.unitPrice, 1)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if c.Len() != 0 {
		t.Errorf("rejected items must not enter the cart, len = %d", c.Len())
	}
}

func TestCart_AddItemClampsQuantity(t *testing.T) {
	var c Cart
	item, err := c.AddItem("Bandage", "30", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
	if item.Total != 30 {
		t.Errorf("total = %v, want 30", item.Total)
	}
}

func TestCart_TotalInvariantAcrossOperations(t *testing.T) {
	var c Cart
	a, _ := c.AddItem("Amoxicillin", "150", 2)
	b, _ := c.AddItem("Paracetamol", "80", 1)
	if c.Total() != 380 {
		t.Fatalf("cart total = %v, want 380", c.Total())
	}

	check := func(want float64) {
		t.Helper()
		var sum float64
		for _, it := range c.Items() {
			if got := round2(it.UnitPrice * float64(it.Quantity)); it.Total != got {
				t.Errorf("item %s total = %v, want %v", it.Name, it.Total, got)
			}
			sum += it.Total
		}
		if c.Total() != round2(sum) || c.Total() != want {
			t.Errorf("cart total = %v, want %v", c.Total(), want)
		}
	}

	c.UpdateQuantity(a.ID, 1) // 2 -> 3
	check(530)
	c.RemoveItem(b.ID)
	check(450)
	c.UpdateQuantity(a.ID, -10) // clamps to 1
	check(150)
}

func TestCart_UpdateQuantityNeverBelowOne(t *testing.T) {
	var c Cart
	a, _ := c.AddItem("Amoxicillin", "150", 1)
	for _, delta := range []int{-1, -5, 0} {
		c.UpdateQuantity(a.ID, delta)
		if got := c.Items()[0].Quantity; got < 1 {
			t.Fatalf("delta %d drove quantity to %d", delta, got)
		}
	}
}

func TestCart_UnknownIDIsNoOp(t *testing.T) {
	var c Cart
	c.AddItem("Consultation", "250", 1)

	c.UpdateQuantity("nope", 5)
	c.RemoveItem("nope")

	if c.Len() != 1 || c.Total() != 250 {
		t.Errorf("cart changed: len=%d total=%v", c.Len(), c.Total())
	}
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	var c Cart
	c.AddItem("Consultation", "250", 1)

	items := c.Items()
	items[0].Quantity = 99
	items[0].Total = 0

	if got := c.Items()[0]; got.Quantity != 1 || got.Total != 250 {
		t.Errorf("cart mutated through returned slice: %+v", got)
	}
}
