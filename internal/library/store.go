// Package library is the handler layer that persists imported licenses,
// apps, achievements and playtime to a local database. The protocol
// client itself never touches storage; this package subscribes to its
// callbacks.
package library

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/steamlink-go/steamlink/internal/client"
	"github.com/steamlink-go/steamlink/internal/protocol"
)

// Token tables are small and refetched on demand; an hour of caching
// keeps repeated presence updates from hammering the service.
const translationTTL = time.Hour

// Store records decoded import events into a sqlite database.
type Store struct {
	db     *gorm.DB
	logger *logrus.Logger

	// Rich presence token tables keyed by stringified app id.
	translations *cache.Cache
}

// Open opens (or creates) the database file and migrates the schema.
func Open(filename string, logger *logrus.Logger, debug bool) (*Store, error) {
	log := gormlogger.Default.LogMode(gormlogger.Error)
	if debug {
		log = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("error opening library database: %w", err)
	}

	if err := db.AutoMigrate(&License{}, &App{}, &Achievement{}, &Playtime{}); err != nil {
		return nil, fmt.Errorf("error auto migrating library database: %w", err)
	}

	return &Store{
		db:           db,
		logger:       logger,
		translations: cache.New(translationTTL, translationTTL),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	database, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error getting database connection: %w", err)
	}
	return database.Close()
}

// Handlers returns the callback set that records events into the store.
// The caller may overwrite individual fields before registering it.
func (s *Store) Handlers() client.Handlers {
	return client.Handlers{
		Licenses:     s.saveLicenses,
		AppInfo:      s.saveApp,
		Translations: s.cacheTranslations,
		Stats:        s.saveStats,
		PlayTime:     s.savePlaytime,
	}
}

func (s *Store) saveLicenses(licenses []protocol.License) {
	for _, l := range licenses {
		record := License{PackageID: l.PackageID, OwnerID: l.OwnerID, Flags: l.Flags, Type: l.Type}
		if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
			s.logger.Warnf("error saving license for package %d: %v", l.PackageID, err)
		}
	}
	s.logger.Infof("imported %d licenses", len(licenses))
}

func (s *Store) saveApp(info client.AppInfo) {
	record := App{AppID: info.AppID, Game: info.Game}
	if info.Title != nil {
		record.Title = *info.Title
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		s.logger.Warnf("error saving app %d: %v", info.AppID, err)
	}
}

func (s *Store) saveStats(gameID uint64, stats []protocol.UserStat, achievements []client.UnlockedAchievement) {
	for _, a := range achievements {
		record := Achievement{
			GameID:        gameID,
			AchievementID: a.ID,
			Name:          a.Name,
			UnlockTime:    a.UnlockTime,
		}
		if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
			s.logger.Warnf("error saving achievement %d for game %d: %v", a.ID, gameID, err)
		}
	}
	s.logger.Infof("imported %d stats and %d achievements for game %d", len(stats), len(achievements), gameID)
}

func (s *Store) savePlaytime(correlationID uint64, minutes uint32) {
	record := Playtime{GameID: correlationID, Minutes: minutes}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error; err != nil {
		s.logger.Warnf("error saving playtime for game %d: %v", correlationID, err)
	}
}

func (s *Store) cacheTranslations(appID uint32, tokenLists []protocol.LocalizationTokenList) {
	tokens := make(map[string]string)
	for _, list := range tokenLists {
		for _, t := range list.Tokens {
			tokens[t.Name] = t.Value
		}
	}
	s.translations.SetDefault(strconv.FormatUint(uint64(appID), 10), tokens)
	s.logger.Infof("cached %d rich presence tokens for app %d", len(tokens), appID)
}

// Translation resolves a cached rich presence token for an app.
func (s *Store) Translation(appID uint32, token string) (string, bool) {
	v, ok := s.translations.Get(strconv.FormatUint(uint64(appID), 10))
	if !ok {
		return "", false
	}
	tokens, ok := v.(map[string]string)
	if !ok {
		return "", false
	}
	value, ok := tokens[token]
	return value, ok
}
