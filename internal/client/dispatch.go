package client

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	corebytes "github.com/steamlink-go/steamlink/internal/core/bytes"
	"github.com/steamlink-go/steamlink/internal/debug"
	"github.com/steamlink-go/steamlink/internal/keyvalues"
	"github.com/steamlink-go/steamlink/internal/protocol"
	"github.com/steamlink-go/steamlink/internal/steamlang"
)

// Licenses carrying this flags value are unidentified trash entries:
// games that are neither owned nor free.
const junkLicenseFlags = 520

// processPacket decodes one raw frame and dispatches it. Malformed
// frames are logged and dropped; only strict integrity and transport
// errors propagate to the loop.
func (c *Client) processPacket(packet []byte) error {
	c.logger.Debugf("processing packet of %d bytes", len(packet))
	if c.opts.PacketLogging {
		debug.DumpFrame(c.logger, "recv", packet)
	}

	emsg, header, body, err := protocol.DecodeFrame(packet)
	if err != nil {
		c.logger.Warnf("dropping packet: %v", err)
		return nil
	}

	if c.session.noteSessionID(header.SessionID) {
		c.logger.Infof("session id: %d", *header.SessionID)
	}

	return c.dispatch(emsg, header, body)
}

// dispatch routes a decoded frame to its message specific processor.
// Unknown message types are logged and ignored; they are never fatal.
func (c *Client) dispatch(emsg steamlang.EMsg, header *protocol.Header, body []byte) error {
	c.logger.Debugf("processing message %d", emsg)

	switch emsg {
	case steamlang.EMsgMulti:
		return c.processMulti(body)
	case steamlang.EMsgClientLogOnResponse:
		return c.processLogonResponse(body)
	case steamlang.EMsgClientLoggedOff:
		return c.processLoggedOff(body)
	case steamlang.EMsgClientFriendsList:
		return c.processFriendsList(body)
	case steamlang.EMsgClientPersonaState:
		return c.processPersonaState(body)
	case steamlang.EMsgClientLicenseList:
		return c.processLicenseList(body)
	case steamlang.EMsgPICSProductInfoResponse:
		return c.processProductInfoResponse(body)
	case steamlang.EMsgClientGetUserStatsResponse:
		return c.processUserStatsResponse(body)
	case steamlang.EMsgServiceMethod, steamlang.EMsgServiceMethodResponse:
		return c.processServiceMethodResponse(header, body)
	default:
		c.logger.Warnf("ignored message %d", emsg)
		return nil
	}
}

func (c *Client) processMulti(body []byte) error {
	c.logger.Debug("processing container message")
	err := protocol.UnpackMulti(body, c.processPacket)
	if errors.Is(err, protocol.ErrMalformedContainer) || errors.Is(err, protocol.ErrTruncatedContainer) {
		// The container itself was bad; inner frames already emitted
		// stand and the loop keeps going.
		c.logger.Warnf("dropping container remainder: %v", err)
		return nil
	}
	return err
}

func (c *Client) processLogonResponse(body []byte) error {
	var msg protocol.ClientLogonResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed logon response: %v", err)
		return nil
	}

	if msg.Result == steamlang.EResultOK {
		c.startHeartbeat(heartbeatInterval(msg.OutOfGameHeartbeatSeconds))
	}

	if c.handlers.LogOn != nil {
		c.handlers.LogOn(msg.Result)
	}
	return nil
}

func (c *Client) processLoggedOff(body []byte) error {
	var msg protocol.ClientLoggedOff
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed logoff message: %v", err)
		return nil
	}

	c.session.stopHeartbeat()

	if c.handlers.LogOff != nil {
		c.handlers.LogOff(msg.Result)
	}
	return nil
}

func (c *Client) processFriendsList(body []byte) error {
	if c.handlers.FriendsList == nil {
		return nil
	}

	var msg protocol.ClientFriendsList
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed friends list: %v", err)
		return nil
	}

	friends := make(map[steamlang.SteamID]steamlang.EFriendRelationship)
	for _, entry := range msg.Friends {
		id := steamlang.SteamID(entry.SteamID)
		if id.IsIndividual() {
			friends[id] = entry.Relationship
		}
	}

	c.handlers.FriendsList(msg.Incremental, friends)
	return nil
}

func (c *Client) processPersonaState(body []byte) error {
	if c.handlers.UserInfo == nil {
		return nil
	}

	var msg protocol.ClientPersonaState
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed persona state: %v", err)
		return nil
	}

	selfID, _, _ := c.session.identity()

	for i := range msg.Friends {
		friend := &msg.Friends[i]

		// Seeing ourselves playing something is the cue to fetch that
		// app's metadata.
		if selfID != nil && friend.FriendID == *selfID &&
			friend.GamePlayedAppID != nil && *friend.GamePlayedAppID != 0 {
			if err := c.requestAppInfoOnce(*friend.GamePlayedAppID); err != nil {
				return err
			}
		}

		info := &UserInfo{
			Name:       friend.PlayerName,
			AvatarHash: friend.AvatarHash,
			GameName:   friend.GameName,
			GameID:     friend.GameID,
		}
		if friend.PersonaState != nil {
			state := steamlang.EPersonaState(*friend.PersonaState)
			info.State = &state
		}
		if friend.GameID != nil {
			presence := make(map[string]string, len(friend.RichPresence))
			requested := false
			for _, kv := range friend.RichPresence {
				presence[kv.Key] = kv.Value
				// Values starting with '#' are localization keys; make
				// sure the token table is on its way before the record
				// is delivered.
				if !requested && strings.HasPrefix(kv.Value, "#") {
					if err := c.GetPresenceLocalization(uint32(*friend.GameID)); err != nil {
						return err
					}
					requested = true
				}
			}
			info.RichPresence = presence
		}

		c.handlers.UserInfo(steamlang.SteamID(friend.FriendID), info)
	}
	return nil
}

// requestAppInfoOnce issues a product info request for the app unless
// one was already sent recently.
func (c *Client) requestAppInfoOnce(appID uint32) error {
	key := strconv.FormatUint(uint64(appID), 10)
	if _, seen := c.requestedApps.Get(key); seen {
		return nil
	}
	c.requestedApps.SetDefault(key, struct{}{})
	return c.GetAppsInfo([]uint32{appID})
}

func (c *Client) processLicenseList(body []byte) error {
	if c.handlers.Licenses == nil {
		return nil
	}

	var msg protocol.ClientLicenseList
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed license list: %v", err)
		return nil
	}

	_, miniprofileID, _ := c.session.identity()

	var owned []protocol.License
	for _, license := range msg.Licenses {
		if miniprofileID == nil || uint64(license.OwnerID) != *miniprofileID {
			continue
		}
		if license.Flags == junkLicenseFlags {
			continue
		}
		owned = append(owned, license)
	}

	c.handlers.Licenses(owned)
	return nil
}

func (c *Client) processProductInfoResponse(body []byte) error {
	var msg protocol.PICSProductInfoResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed product info response: %v", err)
		return nil
	}

	var appsToParse []uint32

	for _, pkg := range msg.Packages {
		if c.handlers.PackageInfo != nil {
			c.handlers.PackageInfo(pkg.ID)
		}
		if pkg.ID == 0 {
			// Package 0 holds trash entries present on every account.
			c.logger.Info("skipping package 0")
			continue
		}
		if len(pkg.Buffer) < 4 {
			c.logger.Warnf("package %d: metadata blob too short", pkg.ID)
			continue
		}
		// The blob carries a four byte preamble before the binary
		// key-values document.
		content, err := keyvalues.ParseBinary(pkg.Buffer[4:])
		if err != nil {
			c.logger.Warnf("package %d: unparseable metadata: %v", pkg.ID, err)
			continue
		}

		appIDs, ok := content.Child(strconv.FormatUint(uint64(pkg.ID), 10), "appids")
		if !ok {
			continue
		}
		for _, appID := range objectAppIDs(appIDs) {
			if c.handlers.AppInfo != nil {
				c.handlers.AppInfo(AppInfo{AppID: appID})
			}
			appsToParse = append(appsToParse, appID)
		}
	}

	for _, app := range msg.Apps {
		content, err := keyvalues.ParseText(corebytes.StripPadding(app.Buffer))
		if err != nil {
			c.logger.Warnf("app %d: unparseable metadata: %v", app.ID, err)
			continue
		}
		if c.handlers.AppInfo == nil {
			continue
		}

		appID := app.ID
		if v, ok := content.Int("appinfo", "appid"); ok {
			appID = uint32(v)
		}

		// Anything without the expected type and name fields is not a
		// game; that is an answer, not an error.
		appType, typeOK := content.String("appinfo", "common", "type")
		title, titleOK := content.String("appinfo", "common", "name")
		if typeOK && titleOK && strings.EqualFold(appType, "game") {
			c.handlers.AppInfo(AppInfo{AppID: appID, Title: &title, Game: true})
		} else {
			c.handlers.AppInfo(AppInfo{AppID: appID, Game: false})
		}
	}

	if len(appsToParse) > 0 {
		c.logger.Infof("requesting info for %d apps discovered in packages", len(appsToParse))
		return c.GetAppsInfo(appsToParse)
	}
	return nil
}

// objectAppIDs collects the integer values of an appids block in key
// order. Keys are small decimal indexes, so they sort numerically.
func objectAppIDs(o keyvalues.Object) []uint32 {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})

	var ids []uint32
	for _, k := range keys {
		if v, ok := o.Int(k); ok {
			ids = append(ids, uint32(v))
		}
	}
	return ids
}

func (c *Client) processUserStatsResponse(body []byte) error {
	if c.handlers.Stats == nil {
		return nil
	}

	var msg protocol.ClientGetUserStatsResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed stats response: %v", err)
		return nil
	}
	c.logger.Infof("processing user stats response for game %d", msg.GameID)

	schema, err := keyvalues.ParseBinary(msg.Schema)
	if err != nil {
		return errors.Wrapf(ErrUnknownBackendResponse, "game %d: unparseable achievement schema: %v", msg.GameID, err)
	}

	gameKey := strconv.FormatUint(msg.GameID, 10)
	var unlocked []UnlockedAchievement

	for _, block := range msg.AchievementBlocks {
		blockEnum := 32 * (int32(block.AchievementID) - 1)
		blockKey := strconv.FormatUint(uint64(block.AchievementID), 10)

		for index, unlockTime := range block.UnlockTime {
			if unlockTime == 0 {
				continue
			}

			bits, ok := schema.Child(gameKey, "stats", blockKey, "bits")
			if !ok {
				return errors.Wrapf(ErrUnknownBackendResponse,
					"game %d: no schema for achievement block %d", msg.GameID, block.AchievementID)
			}
			// An unlocked bit the schema knows nothing about means we
			// are misreading the response; refusing beats guessing.
			indexKey := strconv.Itoa(index)
			if _, present := bits[indexKey]; !present {
				return errors.Wrapf(ErrUnknownBackendResponse,
					"game %d: unlocked achievement %d/%d missing from schema", msg.GameID, block.AchievementID, index)
			}

			name, err := achievementName(bits, indexKey)
			if err != nil {
				c.logger.Infof("unable to resolve achievement %d in block %d", index, block.AchievementID)
				return errors.Wrapf(ErrUnknownBackendResponse, "game %d: %v", msg.GameID, err)
			}

			unlocked = append(unlocked, UnlockedAchievement{
				ID:         blockEnum + int32(index),
				UnlockTime: unlockTime,
				Name:       name,
			})
		}
	}

	c.handlers.Stats(msg.GameID, msg.Stats, unlocked)
	return nil
}

// achievementName resolves the display name for one achievement bit,
// preferring the english localization when several exist. A bit that is
// present but cannot be named is a strict failure; guessing is worse
// than refusing.
func achievementName(bits keyvalues.Object, indexKey string) (string, error) {
	if name, ok := bits.String(indexKey, "display", "name"); ok {
		return name, nil
	}
	if name, ok := bits.String(indexKey, "display", "name", "english"); ok {
		return name, nil
	}
	return "", errors.Errorf("no display name for achievement bit %s", indexKey)
}

func (c *Client) processServiceMethodResponse(header *protocol.Header, body []byte) error {
	var name string
	if header.TargetJobName != nil {
		name = *header.TargetJobName
	}
	c.logger.Debugf("processing service method response %q", name)

	switch steamlang.MethodByName(name) {
	case steamlang.MethodRichPresenceLocalization:
		return c.processRichPresenceTranslations(body)
	case steamlang.MethodFriendsGameplayInfo:
		var correlationID uint64
		if header.TargetJobID != nil {
			correlationID = *header.TargetJobID
		}
		return c.processGameplayInfoResponse(correlationID, body)
	case steamlang.MethodCloudConfigDownload:
		return c.processCollectionsResponse(body)
	case steamlang.MethodRequestFriendPersonaStates:
		// The actual states arrive as persona state pushes.
		return nil
	default:
		c.logger.Warnf("no dispatch for service method %q", name)
		return nil
	}
}

func (c *Client) processRichPresenceTranslations(body []byte) error {
	var msg protocol.RichPresenceLocalizationResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed localization response: %v", err)
		return nil
	}

	c.logger.Infof("received rich presence translations for app %d", msg.AppID)
	if c.handlers.Translations != nil {
		c.handlers.Translations(msg.AppID, msg.TokenLists)
	}
	return nil
}

func (c *Client) processGameplayInfoResponse(correlationID uint64, body []byte) error {
	var msg protocol.FriendsGameplayInfoResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed gameplay info response: %v", err)
		return nil
	}

	c.logger.Debugf("received playtime for correlation id %d", correlationID)
	if c.handlers.PlayTime != nil {
		c.handlers.PlayTime(correlationID, msg.YourInfo.MinutesPlayedForever)
	}
	return nil
}

func (c *Client) processCollectionsResponse(body []byte) error {
	var msg protocol.CloudConfigDownloadResponse
	if err := msg.Unmarshal(body); err != nil {
		c.logger.Warnf("dropping malformed collections response: %v", err)
		return nil
	}

	c.collections.absorb(msg.Data)
	c.collections.finish()
	return nil
}
