package library

// License is one owned package recorded from a license import.
type License struct {
	PackageID uint32 `gorm:"primaryKey"`
	OwnerID   uint32
	Flags     uint32
	Type      uint32
}

// App is the metadata recorded for one discovered app.
type App struct {
	AppID uint32 `gorm:"primaryKey"`
	Title string
	Game  bool
}

// Achievement is one unlocked achievement for a game.
type Achievement struct {
	GameID        uint64 `gorm:"primaryKey;autoIncrement:false"`
	AchievementID int32  `gorm:"primaryKey;autoIncrement:false"`
	Name          string
	UnlockTime    uint32
}

// Playtime is the recorded total playtime for one game.
type Playtime struct {
	GameID  uint64 `gorm:"primaryKey;autoIncrement:false"`
	Minutes uint32
}
