package library

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
	"github.com/sirupsen/logrus"

	"github.com/steamlink-go/steamlink/internal/client"
	"github.com/steamlink-go/steamlink/internal/protocol"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store, err := Open(filepath.Join(t.TempDir(), "library.db"), logger, false)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSavesLicenses(t *testing.T) {
	store := openTestStore(t)
	h := store.Handlers()

	h.Licenses([]protocol.License{
		{PackageID: 100, OwnerID: 42, Flags: 0, Type: 1},
		{PackageID: 200, OwnerID: 42, Flags: 0, Type: 1},
	})
	// A re-import updates rather than duplicates.
	h.Licenses([]protocol.License{{PackageID: 100, OwnerID: 42, Flags: 4, Type: 1}})

	var records []License
	if err := store.db.Order("package_id").Find(&records).Error; err != nil {
		t.Fatalf("querying licenses: %v", err)
	}
	want := []License{
		{PackageID: 100, OwnerID: 42, Flags: 4, Type: 1},
		{PackageID: 200, OwnerID: 42, Flags: 0, Type: 1},
	}
	if diff := deep.Equal(want, records); diff != nil {
		t.Errorf("licenses mismatch: %v", diff)
	}
}

func TestStoreSavesApps(t *testing.T) {
	store := openTestStore(t)
	h := store.Handlers()

	title := "Counter-Strike 2"
	h.AppInfo(client.AppInfo{AppID: 730})
	h.AppInfo(client.AppInfo{AppID: 730, Title: &title, Game: true})

	var record App
	if err := store.db.First(&record, "app_id = ?", 730).Error; err != nil {
		t.Fatalf("querying app: %v", err)
	}
	if record.Title != title || !record.Game {
		t.Errorf("app record = %+v", record)
	}
}

func TestStoreSavesStatsAndPlaytime(t *testing.T) {
	store := openTestStore(t)
	h := store.Handlers()

	h.Stats(4000, []protocol.UserStat{{StatID: 2, Value: 600}}, []client.UnlockedAchievement{
		{ID: 5, UnlockTime: 1451606400, Name: "Head Hunter"},
		{ID: 32, UnlockTime: 1451606500, Name: "First Blood"},
	})
	h.PlayTime(4000, 5120)

	var achievements []Achievement
	if err := store.db.Order("achievement_id").Find(&achievements).Error; err != nil {
		t.Fatalf("querying achievements: %v", err)
	}
	want := []Achievement{
		{GameID: 4000, AchievementID: 5, Name: "Head Hunter", UnlockTime: 1451606400},
		{GameID: 4000, AchievementID: 32, Name: "First Blood", UnlockTime: 1451606500},
	}
	if diff := deep.Equal(want, achievements); diff != nil {
		t.Errorf("achievements mismatch: %v", diff)
	}

	var playtime Playtime
	if err := store.db.First(&playtime, "game_id = ?", 4000).Error; err != nil {
		t.Fatalf("querying playtime: %v", err)
	}
	if playtime.Minutes != 5120 {
		t.Errorf("playtime = %d minutes, want 5120", playtime.Minutes)
	}
}

func TestStoreTranslations(t *testing.T) {
	store := openTestStore(t)
	h := store.Handlers()

	h.Translations(570, []protocol.LocalizationTokenList{{
		Language: "english",
		Tokens: []protocol.LocalizationToken{
			{Name: "#DOTA_RP_PLAYING_AS", Value: "Playing as %param0%"},
		},
	}})

	if got, ok := store.Translation(570, "#DOTA_RP_PLAYING_AS"); !ok || got != "Playing as %param0%" {
		t.Errorf("Translation() = %q, %v", got, ok)
	}
	if _, ok := store.Translation(570, "#missing"); ok {
		t.Error("Translation() resolved an unknown token")
	}
	if _, ok := store.Translation(999, "#DOTA_RP_PLAYING_AS"); ok {
		t.Error("Translation() resolved a token for an unknown app")
	}
}
