package pharmacy

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medicare/hms/pkg/pagination"
)

func newTestService() *Service {
	return NewService(NewRepoMem(), NewInventoryRepoMem(), zerolog.Nop())
}

func TestService_ListSeededWorklist(t *testing.T) {
	svc := newTestService()
	items, total := svc.List(pagination.Params{Limit: 10})
	if total != 4 || len(items) != 4 {
		t.Fatalf("got %d items, want 4", total)
	}
	if items[0].ID != "RX001" {
		t.Errorf("first item = %s, want RX001", items[0].ID)
	}
}

func TestService_StatsCountByStatus(t *testing.T) {
	svc := newTestService()
	st := svc.Stats()
	want := Stats{Total: 4, Dispensed: 2, Preparing: 1, Pending: 1}
	if st != want {
		t.Errorf("stats = %+v, want %+v", st, want)
	}
}

func TestService_SetStatus(t *testing.T) {
	svc := newTestService()
	rx, err := svc.SetStatus("RX003", StatusPreparing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rx.Status != StatusPreparing {
		t.Errorf("status = %s, want Preparing", rx.Status)
	}

	st := svc.Stats()
	if st.Pending != 0 || st.Preparing != 2 {
		t.Errorf("stats not updated: %+v", st)
	}
}

func TestService_InventoryCRUD(t *testing.T) {
	svc := newTestService()

	_, total := svc.ListInventory(pagination.Params{Limit: 20})
	if total != 5 {
		t.Fatalf("seeded inventory = %d items, want 5", total)
	}

	created, err := svc.AddInventoryItem(InventoryItem{Name: "Ibuprofen 400mg", UnitPrice: 60, Stock: 200})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Error("expected created item to get an id")
	}

	updated, err := svc.UpdateInventoryItem(created.ID, 65, 180)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.UnitPrice != 65 || updated.Stock != 180 {
		t.Errorf("update not applied: %+v", updated)
	}

	if err := svc.DeleteInventoryItem(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, total := svc.ListInventory(pagination.Params{Limit: 20}); total != 5 {
		t.Errorf("inventory = %d items after delete, want 5", total)
	}
}

func TestService_InventoryValidation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.AddInventoryItem(InventoryItem{Name: " ", UnitPrice: 10, Stock: 1}); !errors.Is(err, ErrBadItem) {
		t.Errorf("got %v, want ErrBadItem", err)
	}
	if _, err := svc.AddInventoryItem(InventoryItem{Name: "Saline", UnitPrice: -1, Stock: 1}); !errors.Is(err, ErrBadItem) {
		t.Errorf("got %v, want ErrBadItem", err)
	}
	if _, err := svc.UpdateInventoryItem("nope", 10, 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("got %v, want ErrItemNotFound", err)
	}
}

func TestService_SetStatusValidation(t *testing.T) {
	svc := newTestService()
	if _, err := svc.SetStatus("RX001", "Shipped"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("got %v, want ErrUnknownStatus", err)
	}
	if _, err := svc.SetStatus("RX999", StatusPending); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
