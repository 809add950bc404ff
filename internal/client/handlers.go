package client

import (
	"github.com/steamlink-go/steamlink/internal/protocol"
	"github.com/steamlink-go/steamlink/internal/steamlang"
)

// UserInfo is the presence record built from a persona state entry.
// Pointer fields were absent from the wire message when nil; absence is
// meaningful, a user can e.g. clear their game name.
type UserInfo struct {
	Name         *string
	AvatarHash   []byte
	State        *steamlang.EPersonaState
	GameID       *uint64
	GameName     *string
	RichPresence map[string]string
}

// AppInfo describes one app discovered through a product info response.
// Title is only known for entries whose metadata blob was parsed.
type AppInfo struct {
	AppID uint32
	Title *string
	Game  bool
}

// UnlockedAchievement is one unlocked achievement resolved against the
// schema that accompanied a stats response.
type UnlockedAchievement struct {
	ID         int32
	UnlockTime uint32
	Name       string
}

// Handlers is the capability set the surrounding system registers to
// receive decoded events. Every field is optional; a nil callback makes
// the dispatcher skip the corresponding branch entirely, including any
// side effects that branch would trigger. Callbacks run on the client's
// loop goroutine and must not block.
type Handlers struct {
	// LogOn receives the logon result code.
	LogOn func(result steamlang.EResult)
	// LogOff receives the result code when the server ends the session.
	LogOff func(result steamlang.EResult)
	// FriendsList receives a full or incremental relationship mapping,
	// restricted to individual accounts.
	FriendsList func(incremental bool, friends map[steamlang.SteamID]steamlang.EFriendRelationship)
	// UserInfo receives one presence record per user in a persona push.
	UserInfo func(id steamlang.SteamID, info *UserInfo)
	// Licenses receives the owned licenses after junk filtering.
	Licenses func(licenses []protocol.License)
	// AppInfo receives app metadata from product info responses.
	AppInfo func(info AppInfo)
	// PackageInfo receives the id of each package entry in a product
	// info response.
	PackageInfo func(packageID uint32)
	// Translations receives rich presence token tables for a game.
	Translations func(appID uint32, tokenLists []protocol.LocalizationTokenList)
	// Stats receives the raw stats and resolved unlocked achievements
	// for a game.
	Stats func(gameID uint64, stats []protocol.UserStat, achievements []UnlockedAchievement)
	// PlayTime receives total minutes played keyed by the caller's
	// correlation id (the app id for per game lookups).
	PlayTime func(correlationID uint64, minutes uint32)
}
