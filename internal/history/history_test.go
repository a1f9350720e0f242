package history

import (
	"encoding/json"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coldreach/internal/email"
	"coldreach/internal/prospect"
	"coldreach/internal/research"
)

func setupStore(t *testing.T) *Store {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(&Record{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := dbConn.Exec("DELETE FROM records").Error; err != nil {
		t.Fatalf("failed to reset records table: %v", err)
	}
	return NewStore(dbConn)
}

func sampleProspect() *prospect.Prospect {
	return &prospect.Prospect{
		Name:    "Jane Doe",
		Company: "Acme",
		Role:    "CTO",
		Email:   "jane@acme.com",
		Website: "https://acme.com",
	}
}

func TestSave_SnapshotsFields(t *testing.T) {
	store := setupStore(t)

	res := &research.Result{
		URL:         "https://acme.com",
		Title:       "Acme",
		Description: "Rocket-powered gadgets",
		TechHints:   []string{"React"},
	}
	e := &email.Email{Subject: "Quick question", Body: "Hi Jane", FollowUp: "Bumping this"}

	rec, err := store.Save(sampleProspect(), e, "openai", res)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == 0 {
		t.Errorf("expected assigned ID")
	}
	if rec.Company != "Acme" || rec.Provider != "openai" || rec.Subject != "Quick question" {
		t.Errorf("fields not snapshotted: %+v", rec)
	}

	var stored research.Result
	if err := json.Unmarshal(rec.Research, &stored); err != nil {
		t.Fatalf("research snapshot not valid JSON: %v", err)
	}
	if stored.Description != "Rocket-powered gadgets" {
		t.Errorf("research snapshot lost data: %+v", stored)
	}
}

func TestSave_NilResearch(t *testing.T) {
	store := setupStore(t)

	e := &email.Email{Subject: "s", Body: "b"}
	rec, err := store.Save(sampleProspect(), e, "anthropic", nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(rec.Research) != 0 {
		t.Errorf("expected empty research snapshot, got %s", rec.Research)
	}
}

func TestRecent_NewestFirstAndLimit(t *testing.T) {
	store := setupStore(t)

	for i := 0; i < 3; i++ {
		e := &email.Email{Subject: "s", Body: "b"}
		if _, err := store.Save(sampleProspect(), e, "openai", nil); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	recs, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ID < recs[1].ID {
		t.Errorf("expected newest first, got IDs %d then %d", recs[0].ID, recs[1].ID)
	}

	all, err := store.Recent(0)
	if err != nil {
		t.Fatalf("Recent default: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected default limit to return all 3, got %d", len(all))
	}
}

func TestGet_Missing(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Get(9999); err == nil {
		t.Errorf("expected error for missing record")
	}
}
