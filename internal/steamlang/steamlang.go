// Constants lifted from the Steam connection manager protocol. Only the
// subset of message types and enums the client actually speaks is defined;
// values match the ones used by the official clients.
package steamlang

// EMsg identifies the type of a frame on the wire.
type EMsg uint32

const (
	EMsgMulti EMsg = 1

	EMsgClientHeartBeat            EMsg = 703
	EMsgClientLogOff               EMsg = 706
	EMsgClientChangeStatus         EMsg = 716
	EMsgClientLogOnResponse        EMsg = 751
	EMsgClientLoggedOff            EMsg = 757
	EMsgClientPersonaState         EMsg = 766
	EMsgClientFriendsList          EMsg = 767
	EMsgClientLicenseList          EMsg = 768
	EMsgClientRequestFriendData    EMsg = 815
	EMsgClientGetUserStats         EMsg = 818
	EMsgClientGetUserStatsResponse EMsg = 819

	EMsgClientLogon EMsg = 5514

	EMsgServiceMethod               EMsg = 5594
	EMsgServiceMethodResponse       EMsg = 5595
	EMsgServiceMethodCallFromClient EMsg = 9023

	EMsgPICSProductInfoRequest  EMsg = 8903
	EMsgPICSProductInfoResponse EMsg = 8904
)

// EResult is the generic result code carried by most responses.
type EResult int32

const (
	EResultInvalid EResult = 0
	EResultOK      EResult = 2
	EResultFail    EResult = 1
)

// EPersonaState is a user's online status.
type EPersonaState int32

const (
	EPersonaStateOffline EPersonaState = iota
	EPersonaStateOnline
	EPersonaStateBusy
	EPersonaStateAway
	EPersonaStateSnooze
	EPersonaStateLookingToTrade
	EPersonaStateLookingToPlay
	EPersonaStateInvisible
)

// EFriendRelationship describes the relationship between two accounts.
type EFriendRelationship int32

const (
	EFriendRelationshipNone EFriendRelationship = iota
	EFriendRelationshipBlocked
	EFriendRelationshipRequestRecipient
	EFriendRelationshipFriend
	EFriendRelationshipRequestInitiator
	EFriendRelationshipIgnored
	EFriendRelationshipIgnoredFriend
)

// EAccountType is the entity type encoded into a SteamID.
type EAccountType int32

const (
	EAccountTypeInvalid EAccountType = iota
	EAccountTypeIndividual
	EAccountTypeMultiseat
	EAccountTypeGameServer
	EAccountTypeAnonGameServer
	EAccountTypePending
	EAccountTypeContentServer
	EAccountTypeClan
	EAccountTypeChat
)
