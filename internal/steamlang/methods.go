package steamlang

// MethodID identifies one of the unary service methods multiplexed over
// the generic EMsgServiceMethod/EMsgServiceMethodResponse message types.
// Routing inbound responses through a closed set of identities (rather
// than comparing header strings at every call site) keeps typos in the
// method names from silently producing dead branches.
type MethodID int

const (
	MethodUnknown MethodID = iota
	MethodRequestFriendPersonaStates
	MethodCloudConfigDownload
	MethodRichPresenceLocalization
	MethodFriendsGameplayInfo
)

const (
	NameRequestFriendPersonaStates = "Chat.RequestFriendPersonaStates#1"
	NameCloudConfigDownload        = "CloudConfigStore.Download#1"
	NameRichPresenceLocalization   = "Community.GetAppRichPresenceLocalization#1"
	NameFriendsGameplayInfo        = "Player.GetFriendsGameplayInfo#1"
)

var methodNames = map[MethodID]string{
	MethodRequestFriendPersonaStates: NameRequestFriendPersonaStates,
	MethodCloudConfigDownload:        NameCloudConfigDownload,
	MethodRichPresenceLocalization:   NameRichPresenceLocalization,
	MethodFriendsGameplayInfo:        NameFriendsGameplayInfo,
}

var methodIDs = func() map[string]MethodID {
	m := make(map[string]MethodID, len(methodNames))
	for id, name := range methodNames {
		m[name] = id
	}
	return m
}()

// MethodByName resolves a header's target job name to a known method
// identity. Unknown names map to MethodUnknown; the dispatcher logs and
// drops those.
func MethodByName(name string) MethodID {
	return methodIDs[name]
}

// String returns the wire name of the method.
func (m MethodID) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "Unknown"
}
