package client

import (
	"context"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/pkg/errors"

	"github.com/steamlink-go/steamlink/internal/protocol"
	"github.com/steamlink-go/steamlink/internal/steamlang"
)

func u32p(v uint32) *uint32 { return &v }
func u64p(v uint64) *uint64 { return &v }
func i32p(v int32) *int32   { return &v }
func strp(v string) *string { return &v }

// binString and binObject assemble binary key-values schema blobs in
// the backend's encoding: 0x01 marks a string entry, 0x00 opens a
// nested object and 0x08 closes it.
func binString(name, value string) []byte {
	b := []byte{0x01}
	b = append(b, name...)
	b = append(b, 0)
	b = append(b, value...)
	b = append(b, 0)
	return b
}

func binObject(name string, entries ...[]byte) []byte {
	b := []byte{0x00}
	b = append(b, name...)
	b = append(b, 0)
	for _, e := range entries {
		b = append(b, e...)
	}
	return append(b, 0x08)
}

func frame(emsg steamlang.EMsg, header *protocol.Header, body []byte) []byte {
	if header == nil {
		header = &protocol.Header{}
	}
	return protocol.EncodeFrame(emsg, header, body)
}

func serviceResponse(method string, body []byte) []byte {
	return frame(steamlang.EMsgServiceMethodResponse,
		&protocol.Header{TargetJobName: protocol.String(method)}, body)
}

func TestProcessPacketDropsMalformedFrames(t *testing.T) {
	called := false
	c, ft := newTestClient(Handlers{LogOn: func(steamlang.EResult) { called = true }})

	tests := []struct {
		name   string
		packet []byte
	}{
		{"too short for the fixed header", []byte{0x01, 0x02, 0x03}},
		{"unstructured frame", func() []byte {
			// Type word without the protobuf flag.
			return []byte{0xEF, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.processPacket(tt.packet); err != nil {
				t.Errorf("processPacket() = %v, want nil (drop)", err)
			}
		})
	}
	if called {
		t.Error("handler invoked for a dropped frame")
	}
	if n := len(ft.sentFrames()); n != 0 {
		t.Errorf("dropped frames triggered %d sends", n)
	}
}

func TestDispatchIgnoresUnknownMessages(t *testing.T) {
	c, _ := newTestClient(Handlers{})
	packet := frame(steamlang.EMsg(9999), nil, []byte{0x08, 0x01})
	if err := c.processPacket(packet); err != nil {
		t.Errorf("processPacket() = %v for unknown message, want nil", err)
	}
}

func TestFriendsListKeepsOnlyIndividuals(t *testing.T) {
	var (
		gotIncremental bool
		gotFriends     map[steamlang.SteamID]steamlang.EFriendRelationship
	)
	c, _ := newTestClient(Handlers{
		FriendsList: func(incremental bool, friends map[steamlang.SteamID]steamlang.EFriendRelationship) {
			gotIncremental, gotFriends = incremental, friends
		},
	})

	self := individualID(1001)
	friend := individualID(2002)
	clan := steamlang.SteamID(uint64(555) | 7<<52 | 1<<56)

	msg := &protocol.ClientFriendsList{
		Incremental: true,
		Friends: []protocol.FriendEntry{
			{SteamID: uint64(friend), Relationship: steamlang.EFriendRelationshipFriend},
			{SteamID: uint64(clan), Relationship: steamlang.EFriendRelationshipFriend},
			{SteamID: uint64(self), Relationship: steamlang.EFriendRelationshipNone},
		},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientFriendsList, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	if !gotIncremental {
		t.Error("incremental flag lost")
	}
	want := map[steamlang.SteamID]steamlang.EFriendRelationship{
		friend: steamlang.EFriendRelationshipFriend,
		self:   steamlang.EFriendRelationshipNone,
	}
	if diff := deep.Equal(want, gotFriends); diff != nil {
		t.Errorf("friends mismatch: %v", diff)
	}
}

func TestLicenseListFiltering(t *testing.T) {
	var got []protocol.License
	c, _ := newTestClient(Handlers{Licenses: func(licenses []protocol.License) { got = licenses }})
	c.session.begin(uint64(individualID(1001)), 42)

	msg := &protocol.ClientLicenseList{
		Result: steamlang.EResultOK,
		Licenses: []protocol.License{
			{PackageID: 100, OwnerID: 42, Flags: 0},
			{PackageID: 101, OwnerID: 42, Flags: junkLicenseFlags},
			{PackageID: 102, OwnerID: 99, Flags: 0},
		},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientLicenseList, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	want := []protocol.License{{PackageID: 100, OwnerID: 42, Flags: 0}}
	if diff := deep.Equal(want, got); diff != nil {
		t.Errorf("licenses mismatch: %v", diff)
	}
}

func TestLicenseListWithoutHandlerIsSkipped(t *testing.T) {
	c, ft := newTestClient(Handlers{})
	c.session.begin(uint64(individualID(1001)), 42)

	msg := &protocol.ClientLicenseList{Licenses: []protocol.License{{PackageID: 100, OwnerID: 42}}}
	if err := c.processPacket(frame(steamlang.EMsgClientLicenseList, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}
	if n := len(ft.sentFrames()); n != 0 {
		t.Errorf("skipped branch sent %d frames", n)
	}
}

func TestPersonaStateDeliversUserInfo(t *testing.T) {
	var (
		gotID   steamlang.SteamID
		gotInfo *UserInfo
	)
	c, _ := newTestClient(Handlers{UserInfo: func(id steamlang.SteamID, info *UserInfo) {
		gotID, gotInfo = id, info
	}})

	friend := individualID(2002)
	msg := &protocol.ClientPersonaState{
		Friends: []protocol.PersonaStateFriend{{
			FriendID:     uint64(friend),
			PersonaState: i32p(int32(steamlang.EPersonaStateAway)),
			PlayerName:   strp("gooseberry"),
			GameID:       u64p(730),
			GameName:     strp("Counter-Strike 2"),
			RichPresence: []protocol.RichPresenceKV{{Key: "connect", Value: "+gc 1"}},
		}},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientPersonaState, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	if gotID != friend {
		t.Errorf("handler id = %d, want %d", gotID, friend)
	}
	if gotInfo == nil {
		t.Fatal("handler not invoked")
	}
	if gotInfo.Name == nil || *gotInfo.Name != "gooseberry" {
		t.Errorf("name = %v", gotInfo.Name)
	}
	if gotInfo.State == nil || *gotInfo.State != steamlang.EPersonaStateAway {
		t.Errorf("state = %v", gotInfo.State)
	}
	if gotInfo.GameID == nil || *gotInfo.GameID != 730 {
		t.Errorf("game id = %v", gotInfo.GameID)
	}
	if diff := deep.Equal(map[string]string{"connect": "+gc 1"}, gotInfo.RichPresence); diff != nil {
		t.Errorf("rich presence mismatch: %v", diff)
	}
}

func TestPersonaStateSelfInGameRequestsAppInfoOnce(t *testing.T) {
	c, ft := newTestClient(Handlers{UserInfo: func(steamlang.SteamID, *UserInfo) {}})
	self := individualID(1001)
	c.session.begin(uint64(self), 42)

	msg := &protocol.ClientPersonaState{
		Friends: []protocol.PersonaStateFriend{{
			FriendID:        uint64(self),
			GamePlayedAppID: u32p(730),
		}},
	}
	body := msg.Marshal()

	// The same update arriving repeatedly must not fan out into
	// repeated product info requests.
	for i := 0; i < 3; i++ {
		if err := c.processPacket(frame(steamlang.EMsgClientPersonaState, nil, body)); err != nil {
			t.Fatalf("processPacket() #%d returned error: %v", i, err)
		}
	}

	var picsRequests int
	for _, m := range ft.sentMessages(t) {
		if m.emsg == steamlang.EMsgPICSProductInfoRequest {
			picsRequests++
		}
	}
	if picsRequests != 1 {
		t.Errorf("sent %d product info requests, want 1", picsRequests)
	}
}

func TestPersonaStatePresenceTokenTriggersLocalization(t *testing.T) {
	c, ft := newTestClient(Handlers{UserInfo: func(steamlang.SteamID, *UserInfo) {}})

	msg := &protocol.ClientPersonaState{
		Friends: []protocol.PersonaStateFriend{{
			FriendID: uint64(individualID(2002)),
			GameID:   u64p(570),
			RichPresence: []protocol.RichPresenceKV{
				{Key: "status", Value: "#DOTA_RP_PLAYING_AS"},
				{Key: "param0", Value: "#npc_dota_hero_axe"},
			},
		}},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientPersonaState, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	var localizations int
	for _, m := range ft.sentMessages(t) {
		if m.header.TargetJobName != nil && *m.header.TargetJobName == steamlang.NameRichPresenceLocalization {
			localizations++
			var req protocol.RichPresenceLocalizationRequest
			if err := req.Unmarshal(m.body); err != nil {
				t.Fatalf("localization request does not decode: %v", err)
			}
			if req.AppID != 570 || req.Language != "english" {
				t.Errorf("localization request = %+v", req)
			}
		}
	}
	if localizations != 1 {
		t.Errorf("sent %d localization requests for one entry, want 1", localizations)
	}
}

func TestPersonaStateWithoutHandlerSkipsSideEffects(t *testing.T) {
	c, ft := newTestClient(Handlers{})
	self := individualID(1001)
	c.session.begin(uint64(self), 42)

	msg := &protocol.ClientPersonaState{
		Friends: []protocol.PersonaStateFriend{{
			FriendID:        uint64(self),
			GamePlayedAppID: u32p(730),
			GameID:          u64p(730),
			RichPresence:    []protocol.RichPresenceKV{{Key: "status", Value: "#token"}},
		}},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientPersonaState, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}
	if n := len(ft.sentFrames()); n != 0 {
		t.Errorf("skipped branch sent %d frames", n)
	}
}

func TestMultiDispatchesInnerFrames(t *testing.T) {
	var logonResults []steamlang.EResult
	c, _ := newTestClient(Handlers{LogOn: func(result steamlang.EResult) {
		logonResults = append(logonResults, result)
	}})

	inner1 := frame(steamlang.EMsgClientLogOnResponse, nil,
		(&protocol.ClientLogonResponse{Result: steamlang.EResultFail}).Marshal())
	inner2 := frame(steamlang.EMsgClientLogOnResponse, nil,
		(&protocol.ClientLogonResponse{Result: steamlang.EResultOK}).Marshal())

	var payload []byte
	for _, f := range [][]byte{inner1, inner2} {
		payload = append(payload, byte(len(f)), 0, 0, 0)
		payload = append(payload, f...)
	}
	container := frame(steamlang.EMsgMulti, nil, (&protocol.Multi{MessageBody: payload}).Marshal())

	if err := c.processPacket(container); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}
	want := []steamlang.EResult{steamlang.EResultFail, steamlang.EResultOK}
	if diff := deep.Equal(want, logonResults); diff != nil {
		t.Errorf("logon results mismatch: %v", diff)
	}
}

func TestMultiTruncatedRemainderIsDropped(t *testing.T) {
	var logonResults []steamlang.EResult
	c, _ := newTestClient(Handlers{LogOn: func(result steamlang.EResult) {
		logonResults = append(logonResults, result)
	}})

	inner := frame(steamlang.EMsgClientLogOnResponse, nil,
		(&protocol.ClientLogonResponse{Result: steamlang.EResultOK}).Marshal())

	payload := append([]byte{byte(len(inner)), 0, 0, 0}, inner...)
	// A record claiming more bytes than remain.
	payload = append(payload, 0xFF, 0x00, 0x00, 0x00, 0x01)
	container := frame(steamlang.EMsgMulti, nil, (&protocol.Multi{MessageBody: payload}).Marshal())

	if err := c.processPacket(container); err != nil {
		t.Fatalf("processPacket() = %v, want nil (drop remainder)", err)
	}
	if len(logonResults) != 1 {
		t.Errorf("frames emitted before the truncation point = %d, want 1", len(logonResults))
	}
}

func TestUserStatsResolvesUnlockedAchievements(t *testing.T) {
	var (
		gotGameID uint64
		gotStats  []protocol.UserStat
		gotAch    []UnlockedAchievement
	)
	c, _ := newTestClient(Handlers{
		Stats: func(gameID uint64, stats []protocol.UserStat, achievements []UnlockedAchievement) {
			gotGameID, gotStats, gotAch = gameID, stats, achievements
		},
	})

	schema := binObject("4000",
		binObject("stats",
			binObject("1",
				binObject("bits",
					binObject("5",
						binObject("display",
							binObject("name", binString("english", "Head Hunter")),
						),
					),
					binObject("7",
						binObject("display", binString("name", "SECRET_ACHIEVEMENT")),
					),
				),
			),
			binObject("2",
				binObject("bits",
					binObject("0",
						binObject("display", binString("name", "First Blood")),
					),
				),
			),
		),
	)

	msg := &protocol.ClientGetUserStatsResponse{
		GameID: 4000,
		Result: steamlang.EResultOK,
		Schema: schema,
		Stats:  []protocol.UserStat{{StatID: 2, Value: 600}},
		AchievementBlocks: []protocol.AchievementBlock{
			{AchievementID: 1, UnlockTime: []uint32{0, 0, 0, 0, 0, 1451606400, 0, 1454284800}},
			{AchievementID: 2, UnlockTime: []uint32{1451606500}},
		},
	}
	if err := c.processPacket(frame(steamlang.EMsgClientGetUserStatsResponse, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	if gotGameID != 4000 {
		t.Errorf("game id = %d, want 4000", gotGameID)
	}
	if diff := deep.Equal([]protocol.UserStat{{StatID: 2, Value: 600}}, gotStats); diff != nil {
		t.Errorf("stats mismatch: %v", diff)
	}
	want := []UnlockedAchievement{
		{ID: 5, UnlockTime: 1451606400, Name: "Head Hunter"},
		{ID: 7, UnlockTime: 1454284800, Name: "SECRET_ACHIEVEMENT"},
		{ID: 32, UnlockTime: 1451606500, Name: "First Blood"},
	}
	if diff := deep.Equal(want, gotAch); diff != nil {
		t.Errorf("achievements mismatch: %v", diff)
	}
}

func TestUserStatsUnknownAchievementIsFatal(t *testing.T) {
	c, _ := newTestClient(Handlers{
		Stats: func(uint64, []protocol.UserStat, []UnlockedAchievement) {},
	})

	// Schema knows block 1 bit 0; the response unlocks bit 5.
	schema := binObject("4000",
		binObject("stats",
			binObject("1",
				binObject("bits",
					binObject("0", binObject("display", binString("name", "Known"))),
				),
			),
		),
	)
	msg := &protocol.ClientGetUserStatsResponse{
		GameID: 4000,
		Schema: schema,
		AchievementBlocks: []protocol.AchievementBlock{
			{AchievementID: 1, UnlockTime: []uint32{0, 0, 0, 0, 0, 1451606400}},
		},
	}

	err := c.processPacket(frame(steamlang.EMsgClientGetUserStatsResponse, nil, msg.Marshal()))
	if !errors.Is(err, ErrUnknownBackendResponse) {
		t.Errorf("processPacket() = %v, want ErrUnknownBackendResponse", err)
	}
}

func TestUserStatsGarbageSchemaIsFatal(t *testing.T) {
	c, _ := newTestClient(Handlers{
		Stats: func(uint64, []protocol.UserStat, []UnlockedAchievement) {},
	})

	msg := &protocol.ClientGetUserStatsResponse{
		GameID: 4000,
		Schema: []byte{0x42, 0x42, 0x42},
	}
	err := c.processPacket(frame(steamlang.EMsgClientGetUserStatsResponse, nil, msg.Marshal()))
	if !errors.Is(err, ErrUnknownBackendResponse) {
		t.Errorf("processPacket() = %v, want ErrUnknownBackendResponse", err)
	}
}

func TestUserStatsWithoutHandlerSkipsValidation(t *testing.T) {
	c, _ := newTestClient(Handlers{})

	// Garbage schema that would be fatal if the branch ran.
	msg := &protocol.ClientGetUserStatsResponse{GameID: 4000, Schema: []byte{0x42}}
	if err := c.processPacket(frame(steamlang.EMsgClientGetUserStatsResponse, nil, msg.Marshal())); err != nil {
		t.Errorf("processPacket() = %v with no stats handler, want nil", err)
	}
}

func TestGameplayInfoCorrelation(t *testing.T) {
	var (
		gotCorrelation uint64
		gotMinutes     uint32
	)
	c, _ := newTestClient(Handlers{PlayTime: func(correlationID uint64, minutes uint32) {
		gotCorrelation, gotMinutes = correlationID, minutes
	}})

	body := (&protocol.FriendsGameplayInfoResponse{
		YourInfo: protocol.OwnGameplayInfo{MinutesPlayedForever: 5120},
	}).Marshal()
	packet := frame(steamlang.EMsgServiceMethodResponse, &protocol.Header{
		TargetJobName: protocol.String(steamlang.NameFriendsGameplayInfo),
		TargetJobID:   protocol.Uint64(730),
	}, body)

	if err := c.processPacket(packet); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}
	if gotCorrelation != 730 || gotMinutes != 5120 {
		t.Errorf("playtime = (%d, %d), want (730, 5120)", gotCorrelation, gotMinutes)
	}
}

func TestTranslationsHandler(t *testing.T) {
	var (
		gotAppID uint32
		gotLists []protocol.LocalizationTokenList
	)
	c, _ := newTestClient(Handlers{
		Translations: func(appID uint32, tokenLists []protocol.LocalizationTokenList) {
			gotAppID, gotLists = appID, tokenLists
		},
	})

	body := (&protocol.RichPresenceLocalizationResponse{
		AppID: 570,
		TokenLists: []protocol.LocalizationTokenList{{
			Language: "english",
			Tokens: []protocol.LocalizationToken{
				{Name: "#DOTA_RP_PLAYING_AS", Value: "Playing as %param0%"},
			},
		}},
	}).Marshal()

	if err := c.processPacket(serviceResponse(steamlang.NameRichPresenceLocalization, body)); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}
	if gotAppID != 570 {
		t.Errorf("app id = %d, want 570", gotAppID)
	}
	if len(gotLists) != 1 || gotLists[0].Language != "english" {
		t.Errorf("token lists = %+v", gotLists)
	}
}

func TestUnknownServiceMethodIgnored(t *testing.T) {
	c, _ := newTestClient(Handlers{})
	if err := c.processPacket(serviceResponse("Parental.ApprovedFeature#1", nil)); err != nil {
		t.Errorf("processPacket() = %v for unknown service method, want nil", err)
	}
}

func TestCollectionsDownloadFlow(t *testing.T) {
	c, _ := newTestClient(Handlers{})

	body := (&protocol.CloudConfigDownloadResponse{
		Data: []protocol.CloudConfigNamespaceData{{
			ENamespace: 1,
			Version:    7,
			Entries: []protocol.CloudConfigEntry{
				{Key: "user-collections.from-tag-favorite", Value: `{"name":"Favorites","added":[730,570]}`},
				{Key: "user-collections.uc-broken", Value: `not json`},
				{Key: "user-collections.uc-empty", Value: `{"added":[10]}`},
			},
		}},
	}).Marshal()

	if err := c.processPacket(serviceResponse(steamlang.NameCloudConfigDownload, body)); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := c.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections() returned error: %v", err)
	}
	want := map[string][]uint32{"Favorites": {730, 570}}
	if diff := deep.Equal(want, got); diff != nil {
		t.Errorf("collections mismatch: %v", diff)
	}
}

func TestCollectionsWaitHonorsContext(t *testing.T) {
	c, _ := newTestClient(Handlers{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Collections(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Collections() = %v, want context.Canceled", err)
	}
}

func TestProductInfoPackageDiscovery(t *testing.T) {
	var (
		gotPackages []uint32
		gotApps     []AppInfo
	)
	c, ft := newTestClient(Handlers{
		PackageInfo: func(packageID uint32) { gotPackages = append(gotPackages, packageID) },
		AppInfo:     func(info AppInfo) { gotApps = append(gotApps, info) },
	})

	blob := append([]byte{0, 0, 0, 0}, binObject("303386",
		binObject("appids",
			binString("1", "816"),
			binString("0", "570"),
		),
	)...)

	msg := &protocol.PICSProductInfoResponse{
		Packages: []protocol.ProductInfo{
			{ID: 303386, ChangeNumber: 12, Buffer: blob},
			{ID: 0, Buffer: []byte{0, 0, 0, 0}},
		},
	}
	if err := c.processPacket(frame(steamlang.EMsgPICSProductInfoResponse, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	if diff := deep.Equal([]uint32{303386, 0}, gotPackages); diff != nil {
		t.Errorf("package ids mismatch: %v", diff)
	}
	// Discovered apps are reported in index order.
	want := []AppInfo{{AppID: 570}, {AppID: 816}}
	if diff := deep.Equal(want, gotApps); diff != nil {
		t.Errorf("discovered apps mismatch: %v", diff)
	}

	// The discovered apps are chased with a product info request.
	msgs := ft.sentMessages(t)
	if len(msgs) != 1 {
		t.Fatalf("sent %d frames, want 1 follow-up request", len(msgs))
	}
	var req protocol.PICSProductInfoRequest
	if err := req.Unmarshal(msgs[0].body); err != nil {
		t.Fatalf("follow-up request does not decode: %v", err)
	}
	if diff := deep.Equal([]uint32{570, 816}, req.AppIDs); diff != nil {
		t.Errorf("follow-up app ids mismatch: %v", diff)
	}
}

func TestProductInfoAppMetadata(t *testing.T) {
	var gotApps []AppInfo
	c, _ := newTestClient(Handlers{
		AppInfo: func(info AppInfo) { gotApps = append(gotApps, info) },
	})

	gameDoc := `"appinfo"
{
	"appid"		"730"
	"common"
	{
		"name"		"Counter-Strike 2"
		"type"		"Game"
	}
}`
	toolDoc := `"appinfo"
{
	"appid"		"1007"
	"common"
	{
		"name"		"Steamworks SDK Redist"
		"type"		"Tool"
	}
}`
	// Game typed but the name never arrived; an entry we cannot title
	// is not reported as a game.
	namelessDoc := `"appinfo"
{
	"appid"		"2020"
	"common"
	{
		"type"		"Game"
	}
}`

	msg := &protocol.PICSProductInfoResponse{
		Apps: []protocol.ProductInfo{
			{ID: 730, Buffer: append([]byte(gameDoc), 0)},
			{ID: 1007, Buffer: append([]byte(toolDoc), 0)},
			{ID: 2020, Buffer: append([]byte(namelessDoc), 0)},
		},
	}
	if err := c.processPacket(frame(steamlang.EMsgPICSProductInfoResponse, nil, msg.Marshal())); err != nil {
		t.Fatalf("processPacket() returned error: %v", err)
	}

	if len(gotApps) != 3 {
		t.Fatalf("handler invoked %d times, want 3", len(gotApps))
	}
	game := gotApps[0]
	if game.AppID != 730 || !game.Game || game.Title == nil || *game.Title != "Counter-Strike 2" {
		t.Errorf("game entry = %+v", game)
	}
	tool := gotApps[1]
	if tool.AppID != 1007 || tool.Game || tool.Title != nil {
		t.Errorf("tool entry = %+v", tool)
	}
	nameless := gotApps[2]
	if nameless.AppID != 2020 || nameless.Game || nameless.Title != nil {
		t.Errorf("nameless entry = %+v", nameless)
	}
}
