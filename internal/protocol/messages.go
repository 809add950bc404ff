package protocol

import (
	"github.com/steamlink-go/steamlink/internal/steamlang"
)

// Message bodies for the subset of the protocol the client speaks. Both
// directions are implemented for every message so the codecs can be
// exercised end to end in tests; in production the client only encodes
// the outbound half and decodes the inbound half.

// ClientLogon is the initial logon request. The magic values stuffed
// into the constants below mirror what the desktop client reports.
type ClientLogon struct {
	ProtocolVersion  uint32
	ClientOSType     uint32
	UIMode           uint32
	ChatMode         uint32
	QosLevel         uint32
	ClientInstanceID uint64
	AccountName      string
	WebLogonNonce    string
}

const (
	LogonProtocolVersion = 65580
	LogonClientOSType    = 4294966596
	LogonUIMode          = 4
	LogonChatMode        = 2
	LogonQosLevel        = 2
)

func (m *ClientLogon) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.ProtocolVersion))
	b = appendVarintField(b, 2, uint64(m.ClientOSType))
	b = appendVarintField(b, 3, uint64(m.UIMode))
	b = appendVarintField(b, 4, uint64(m.ChatMode))
	b = appendVarintField(b, 5, uint64(m.QosLevel))
	b = appendVarintField(b, 6, m.ClientInstanceID)
	b = appendStringField(b, 7, m.AccountName)
	b = appendStringField(b, 8, m.WebLogonNonce)
	return b
}

func (m *ClientLogon) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.ProtocolVersion)
		case 2:
			return f.varint32(&m.ClientOSType)
		case 3:
			return f.varint32(&m.UIMode)
		case 4:
			return f.varint32(&m.ChatMode)
		case 5:
			return f.varint32(&m.QosLevel)
		case 6:
			return f.varint64(&m.ClientInstanceID)
		case 7:
			return f.str(&m.AccountName)
		case 8:
			return f.str(&m.WebLogonNonce)
		}
		return f.skip()
	})
}

// ClientHeartBeat is the periodic keep-alive. It has no fields.
type ClientHeartBeat struct{}

func (m *ClientHeartBeat) Marshal() []byte          { return []byte{} }
func (m *ClientHeartBeat) Unmarshal(b []byte) error { return nil }

// ClientLogonResponse carries the logon result and, on success, the
// interval at which the server expects heartbeats.
type ClientLogonResponse struct {
	Result                    steamlang.EResult
	OutOfGameHeartbeatSeconds int32
}

func (m *ClientLogonResponse) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(int64(m.Result)))
	b = appendVarintField(b, 2, uint64(int64(m.OutOfGameHeartbeatSeconds)))
	return b
}

func (m *ClientLogonResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.eresult(&m.Result)
		case 2:
			return f.int32(&m.OutOfGameHeartbeatSeconds)
		}
		return f.skip()
	})
}

// ClientLoggedOff is sent by the server when the session ends.
type ClientLoggedOff struct {
	Result steamlang.EResult
}

func (m *ClientLoggedOff) Marshal() []byte {
	return appendVarintField(nil, 1, uint64(int64(m.Result)))
}

func (m *ClientLoggedOff) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			return f.eresult(&m.Result)
		}
		return f.skip()
	})
}

// ClientChangeStatus updates our own persona state.
type ClientChangeStatus struct {
	PersonaState steamlang.EPersonaState
}

func (m *ClientChangeStatus) Marshal() []byte {
	return appendVarintField(nil, 1, uint64(int64(m.PersonaState)))
}

func (m *ClientChangeStatus) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			var v int32
			if err := f.int32(&v); err != nil {
				return err
			}
			m.PersonaState = steamlang.EPersonaState(v)
			return nil
		}
		return f.skip()
	})
}

// ClientRequestFriendData asks the server to push persona state for the
// given users.
type ClientRequestFriendData struct {
	PersonaStateRequested uint32
	Friends               []uint64
}

func (m *ClientRequestFriendData) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.PersonaStateRequested))
	for _, f := range m.Friends {
		b = appendVarintField(b, 2, f)
	}
	return b
}

func (m *ClientRequestFriendData) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.PersonaStateRequested)
		case 2:
			var v uint64
			if err := f.varint64(&v); err != nil {
				return err
			}
			m.Friends = append(m.Friends, v)
			return nil
		}
		return f.skip()
	})
}

// FriendEntry is one relationship record in a friends list message.
type FriendEntry struct {
	SteamID      uint64
	Relationship steamlang.EFriendRelationship
}

func (m *FriendEntry) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.SteamID)
	b = appendVarintField(b, 2, uint64(int64(m.Relationship)))
	return b
}

func (m *FriendEntry) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint64(&m.SteamID)
		case 2:
			var v int32
			if err := f.int32(&v); err != nil {
				return err
			}
			m.Relationship = steamlang.EFriendRelationship(v)
			return nil
		}
		return f.skip()
	})
}

// ClientFriendsList is the full or incremental relationship list.
type ClientFriendsList struct {
	Incremental bool
	Friends     []FriendEntry
}

func (m *ClientFriendsList) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, boolBit(m.Incremental))
	for i := range m.Friends {
		b = appendBytesField(b, 2, m.Friends[i].marshal())
	}
	return b
}

func (m *ClientFriendsList) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.bool(&m.Incremental)
		case 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var e FriendEntry
			if err := e.unmarshal(inner); err != nil {
				return err
			}
			m.Friends = append(m.Friends, e)
			return nil
		}
		return f.skip()
	})
}

// RichPresenceKV is one free-form presence attribute.
type RichPresenceKV struct {
	Key   string
	Value string
}

func (m *RichPresenceKV) marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.Key)
	b = appendStringField(b, 2, m.Value)
	return b
}

func (m *RichPresenceKV) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.str(&m.Key)
		case 2:
			return f.str(&m.Value)
		}
		return f.skip()
	})
}

// PersonaStateFriend is one user entry in a persona state push. Optional
// fields are pointers; nil means the server did not include the field.
type PersonaStateFriend struct {
	FriendID        uint64
	PersonaState    *int32
	GamePlayedAppID *uint32
	GameID          *uint64
	PlayerName      *string
	AvatarHash      []byte
	GameName        *string
	RichPresence    []RichPresenceKV
}

func (m *PersonaStateFriend) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.FriendID)
	if m.PersonaState != nil {
		b = appendVarintField(b, 2, uint64(int64(*m.PersonaState)))
	}
	if m.GamePlayedAppID != nil {
		b = appendVarintField(b, 3, uint64(*m.GamePlayedAppID))
	}
	if m.GameID != nil {
		b = appendVarintField(b, 4, *m.GameID)
	}
	if m.PlayerName != nil {
		b = appendStringField(b, 5, *m.PlayerName)
	}
	if m.AvatarHash != nil {
		b = appendBytesField(b, 6, m.AvatarHash)
	}
	if m.GameName != nil {
		b = appendStringField(b, 7, *m.GameName)
	}
	for i := range m.RichPresence {
		b = appendBytesField(b, 8, m.RichPresence[i].marshal())
	}
	return b
}

func (m *PersonaStateFriend) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint64(&m.FriendID)
		case 2:
			var v int32
			if err := f.int32(&v); err != nil {
				return err
			}
			m.PersonaState = &v
			return nil
		case 3:
			var v uint32
			if err := f.varint32(&v); err != nil {
				return err
			}
			m.GamePlayedAppID = &v
			return nil
		case 4:
			var v uint64
			if err := f.varint64(&v); err != nil {
				return err
			}
			m.GameID = &v
			return nil
		case 5:
			var v string
			if err := f.str(&v); err != nil {
				return err
			}
			m.PlayerName = &v
			return nil
		case 6:
			v, err := f.bytes()
			if err != nil {
				return err
			}
			m.AvatarHash = append([]byte(nil), v...)
			return nil
		case 7:
			var v string
			if err := f.str(&v); err != nil {
				return err
			}
			m.GameName = &v
			return nil
		case 8:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var kv RichPresenceKV
			if err := kv.unmarshal(inner); err != nil {
				return err
			}
			m.RichPresence = append(m.RichPresence, kv)
			return nil
		}
		return f.skip()
	})
}

// ClientPersonaState is a presence push for one or more users.
type ClientPersonaState struct {
	StatusFlags uint32
	Friends     []PersonaStateFriend
}

func (m *ClientPersonaState) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.StatusFlags))
	for i := range m.Friends {
		b = appendBytesField(b, 2, m.Friends[i].marshal())
	}
	return b
}

func (m *ClientPersonaState) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.StatusFlags)
		case 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var e PersonaStateFriend
			if err := e.unmarshal(inner); err != nil {
				return err
			}
			m.Friends = append(m.Friends, e)
			return nil
		}
		return f.skip()
	})
}

// License is one owned package entry.
type License struct {
	PackageID uint32
	OwnerID   uint32
	Flags     uint32
	Type      uint32
}

func (m *License) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.PackageID))
	b = appendVarintField(b, 2, uint64(m.OwnerID))
	b = appendVarintField(b, 3, uint64(m.Flags))
	b = appendVarintField(b, 4, uint64(m.Type))
	return b
}

func (m *License) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.PackageID)
		case 2:
			return f.varint32(&m.OwnerID)
		case 3:
			return f.varint32(&m.Flags)
		case 4:
			return f.varint32(&m.Type)
		}
		return f.skip()
	})
}

// ClientLicenseList enumerates every license attached to the account.
type ClientLicenseList struct {
	Result   steamlang.EResult
	Licenses []License
}

func (m *ClientLicenseList) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(int64(m.Result)))
	for i := range m.Licenses {
		b = appendBytesField(b, 2, m.Licenses[i].marshal())
	}
	return b
}

func (m *ClientLicenseList) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.eresult(&m.Result)
		case 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var l License
			if err := l.unmarshal(inner); err != nil {
				return err
			}
			m.Licenses = append(m.Licenses, l)
			return nil
		}
		return f.skip()
	})
}

// PICSProductInfoRequest asks for metadata about packages and/or apps.
type PICSProductInfoRequest struct {
	PackageIDs []uint32
	AppIDs     []uint32
}

func (m *PICSProductInfoRequest) Marshal() []byte {
	var b []byte
	for _, id := range m.PackageIDs {
		b = appendBytesField(b, 1, appendVarintField(nil, 1, uint64(id)))
	}
	for _, id := range m.AppIDs {
		b = appendBytesField(b, 2, appendVarintField(nil, 1, uint64(id)))
	}
	return b
}

func (m *PICSProductInfoRequest) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1, 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var id uint32
			err = eachField(inner, func(n int, _ fieldType, g *fieldReader) error {
				if n == 1 {
					return g.varint32(&id)
				}
				return g.skip()
			})
			if err != nil {
				return err
			}
			if num == 1 {
				m.PackageIDs = append(m.PackageIDs, id)
			} else {
				m.AppIDs = append(m.AppIDs, id)
			}
			return nil
		}
		return f.skip()
	})
}

// ProductInfo is one package or app entry in a product info response.
// Buffer holds the metadata blob: binary key-values for packages (with a
// four byte preamble), NUL terminated text key-values for apps.
type ProductInfo struct {
	ID           uint32
	ChangeNumber uint32
	Buffer       []byte
}

func (m *ProductInfo) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.ID))
	b = appendVarintField(b, 2, uint64(m.ChangeNumber))
	b = appendBytesField(b, 3, m.Buffer)
	return b
}

func (m *ProductInfo) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.ID)
		case 2:
			return f.varint32(&m.ChangeNumber)
		case 3:
			v, err := f.bytes()
			if err != nil {
				return err
			}
			m.Buffer = append([]byte(nil), v...)
			return nil
		}
		return f.skip()
	})
}

// PICSProductInfoResponse carries the requested package and app metadata.
type PICSProductInfoResponse struct {
	Packages []ProductInfo
	Apps     []ProductInfo
}

func (m *PICSProductInfoResponse) Marshal() []byte {
	var b []byte
	for i := range m.Packages {
		b = appendBytesField(b, 1, m.Packages[i].marshal())
	}
	for i := range m.Apps {
		b = appendBytesField(b, 2, m.Apps[i].marshal())
	}
	return b
}

func (m *PICSProductInfoResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1, 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var info ProductInfo
			if err := info.unmarshal(inner); err != nil {
				return err
			}
			if num == 1 {
				m.Packages = append(m.Packages, info)
			} else {
				m.Apps = append(m.Apps, info)
			}
			return nil
		}
		return f.skip()
	})
}

// ClientGetUserStats requests stats and achievements for one game.
type ClientGetUserStats struct {
	GameID uint64
}

func (m *ClientGetUserStats) Marshal() []byte {
	return appendVarintField(nil, 1, m.GameID)
}

func (m *ClientGetUserStats) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			return f.varint64(&m.GameID)
		}
		return f.skip()
	})
}

// UserStat is one numeric stat value.
type UserStat struct {
	StatID uint32
	Value  uint32
}

func (m *UserStat) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.StatID))
	b = appendVarintField(b, 2, uint64(m.Value))
	return b
}

func (m *UserStat) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.StatID)
		case 2:
			return f.varint32(&m.Value)
		}
		return f.skip()
	})
}

// AchievementBlock carries the unlock times for one 32 slot block of
// achievements. A zero unlock time means the slot is locked.
type AchievementBlock struct {
	AchievementID uint32
	UnlockTime    []uint32
}

func (m *AchievementBlock) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.AchievementID))
	for _, t := range m.UnlockTime {
		b = appendVarintField(b, 2, uint64(t))
	}
	return b
}

func (m *AchievementBlock) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.AchievementID)
		case 2:
			var v uint32
			if err := f.varint32(&v); err != nil {
				return err
			}
			m.UnlockTime = append(m.UnlockTime, v)
			return nil
		}
		return f.skip()
	})
}

// ClientGetUserStatsResponse is the stats payload together with the
// binary achievement schema needed to resolve display names.
type ClientGetUserStatsResponse struct {
	GameID            uint64
	Result            steamlang.EResult
	Schema            []byte
	Stats             []UserStat
	AchievementBlocks []AchievementBlock
}

func (m *ClientGetUserStatsResponse) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.GameID)
	b = appendVarintField(b, 2, uint64(int64(m.Result)))
	b = appendBytesField(b, 3, m.Schema)
	for i := range m.Stats {
		b = appendBytesField(b, 4, m.Stats[i].marshal())
	}
	for i := range m.AchievementBlocks {
		b = appendBytesField(b, 5, m.AchievementBlocks[i].marshal())
	}
	return b
}

func (m *ClientGetUserStatsResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint64(&m.GameID)
		case 2:
			return f.eresult(&m.Result)
		case 3:
			v, err := f.bytes()
			if err != nil {
				return err
			}
			m.Schema = append([]byte(nil), v...)
			return nil
		case 4:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var s UserStat
			if err := s.unmarshal(inner); err != nil {
				return err
			}
			m.Stats = append(m.Stats, s)
			return nil
		case 5:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var blk AchievementBlock
			if err := blk.unmarshal(inner); err != nil {
				return err
			}
			m.AchievementBlocks = append(m.AchievementBlocks, blk)
			return nil
		}
		return f.skip()
	})
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
