package protocol

// Bodies for the unary service methods multiplexed over the generic
// service method message types. Requests are routed by the
// target job name stamped into the frame header, not by message type.

// RequestFriendPersonaStatesRequest asks the chat service to push
// persona state for the whole friend roster. It has no fields.
type RequestFriendPersonaStatesRequest struct{}

func (m *RequestFriendPersonaStatesRequest) Marshal() []byte { return []byte{} }

// CloudConfigNamespaceVersion selects one cloud config namespace.
type CloudConfigNamespaceVersion struct {
	ENamespace uint32
	Version    uint64
}

func (m *CloudConfigNamespaceVersion) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.ENamespace))
	b = appendVarintField(b, 2, m.Version)
	return b
}

func (m *CloudConfigNamespaceVersion) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.ENamespace)
		case 2:
			return f.varint64(&m.Version)
		}
		return f.skip()
	})
}

// CloudConfigDownloadRequest fetches the contents of the requested
// namespaces; the collections download uses namespace 1.
type CloudConfigDownloadRequest struct {
	Versions []CloudConfigNamespaceVersion
}

func (m *CloudConfigDownloadRequest) Marshal() []byte {
	var b []byte
	for i := range m.Versions {
		b = appendBytesField(b, 1, m.Versions[i].marshal())
	}
	return b
}

func (m *CloudConfigDownloadRequest) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var v CloudConfigNamespaceVersion
			if err := v.unmarshal(inner); err != nil {
				return err
			}
			m.Versions = append(m.Versions, v)
			return nil
		}
		return f.skip()
	})
}

// CloudConfigEntry is one key/value pair in a namespace. Collection
// definitions arrive as JSON documents in Value.
type CloudConfigEntry struct {
	Key       string
	IsDeleted bool
	Value     string
}

func (m *CloudConfigEntry) marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.Key)
	b = appendVarintField(b, 2, boolBit(m.IsDeleted))
	b = appendStringField(b, 3, m.Value)
	return b
}

func (m *CloudConfigEntry) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.str(&m.Key)
		case 2:
			return f.bool(&m.IsDeleted)
		case 3:
			return f.str(&m.Value)
		}
		return f.skip()
	})
}

// CloudConfigNamespaceData is the downloaded contents of one namespace.
type CloudConfigNamespaceData struct {
	ENamespace uint32
	Version    uint64
	Entries    []CloudConfigEntry
}

func (m *CloudConfigNamespaceData) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.ENamespace))
	b = appendVarintField(b, 2, m.Version)
	for i := range m.Entries {
		b = appendBytesField(b, 3, m.Entries[i].marshal())
	}
	return b
}

func (m *CloudConfigNamespaceData) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.ENamespace)
		case 2:
			return f.varint64(&m.Version)
		case 3:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var e CloudConfigEntry
			if err := e.unmarshal(inner); err != nil {
				return err
			}
			m.Entries = append(m.Entries, e)
			return nil
		}
		return f.skip()
	})
}

// CloudConfigDownloadResponse is the full download payload, possibly
// split across several namespaces.
type CloudConfigDownloadResponse struct {
	Data []CloudConfigNamespaceData
}

func (m *CloudConfigDownloadResponse) Marshal() []byte {
	var b []byte
	for i := range m.Data {
		b = appendBytesField(b, 1, m.Data[i].marshal())
	}
	return b
}

func (m *CloudConfigDownloadResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var d CloudConfigNamespaceData
			if err := d.unmarshal(inner); err != nil {
				return err
			}
			m.Data = append(m.Data, d)
			return nil
		}
		return f.skip()
	})
}

// RichPresenceLocalizationRequest fetches the localization token table
// for a game's rich presence strings.
type RichPresenceLocalizationRequest struct {
	AppID    uint32
	Language string
}

func (m *RichPresenceLocalizationRequest) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.AppID))
	b = appendStringField(b, 2, m.Language)
	return b
}

func (m *RichPresenceLocalizationRequest) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.AppID)
		case 2:
			return f.str(&m.Language)
		}
		return f.skip()
	})
}

// LocalizationToken maps one token name to its translated text.
type LocalizationToken struct {
	Name  string
	Value string
}

func (m *LocalizationToken) marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.Name)
	b = appendStringField(b, 2, m.Value)
	return b
}

func (m *LocalizationToken) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.str(&m.Name)
		case 2:
			return f.str(&m.Value)
		}
		return f.skip()
	})
}

// LocalizationTokenList is the token table for one language.
type LocalizationTokenList struct {
	Language string
	Tokens   []LocalizationToken
}

func (m *LocalizationTokenList) marshal() []byte {
	var b []byte
	b = appendStringField(b, 1, m.Language)
	for i := range m.Tokens {
		b = appendBytesField(b, 2, m.Tokens[i].marshal())
	}
	return b
}

func (m *LocalizationTokenList) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.str(&m.Language)
		case 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var t LocalizationToken
			if err := t.unmarshal(inner); err != nil {
				return err
			}
			m.Tokens = append(m.Tokens, t)
			return nil
		}
		return f.skip()
	})
}

// RichPresenceLocalizationResponse carries the token tables for the
// requested game, one list per language.
type RichPresenceLocalizationResponse struct {
	AppID      uint32
	TokenLists []LocalizationTokenList
}

func (m *RichPresenceLocalizationResponse) Marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.AppID))
	for i := range m.TokenLists {
		b = appendBytesField(b, 2, m.TokenLists[i].marshal())
	}
	return b
}

func (m *RichPresenceLocalizationResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint32(&m.AppID)
		case 2:
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			var l LocalizationTokenList
			if err := l.unmarshal(inner); err != nil {
				return err
			}
			m.TokenLists = append(m.TokenLists, l)
			return nil
		}
		return f.skip()
	})
}

// FriendsGameplayInfoRequest asks the player service who is playing the
// given app, including ourselves.
type FriendsGameplayInfoRequest struct {
	AppID uint32
}

func (m *FriendsGameplayInfoRequest) Marshal() []byte {
	return appendVarintField(nil, 1, uint64(m.AppID))
}

func (m *FriendsGameplayInfoRequest) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			return f.varint32(&m.AppID)
		}
		return f.skip()
	})
}

// OwnGameplayInfo is the caller's own playtime record in a gameplay
// info response.
type OwnGameplayInfo struct {
	SteamID              uint64
	MinutesPlayed        uint32
	MinutesPlayedForever uint32
	InGame               bool
}

func (m *OwnGameplayInfo) marshal() []byte {
	var b []byte
	b = appendVarintField(b, 1, m.SteamID)
	b = appendVarintField(b, 2, uint64(m.MinutesPlayed))
	b = appendVarintField(b, 3, uint64(m.MinutesPlayedForever))
	b = appendVarintField(b, 4, boolBit(m.InGame))
	return b
}

func (m *OwnGameplayInfo) unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		switch num {
		case 1:
			return f.varint64(&m.SteamID)
		case 2:
			return f.varint32(&m.MinutesPlayed)
		case 3:
			return f.varint32(&m.MinutesPlayedForever)
		case 4:
			return f.bool(&m.InGame)
		}
		return f.skip()
	})
}

// FriendsGameplayInfoResponse carries gameplay info; only the caller's
// own record is consumed by this client.
type FriendsGameplayInfoResponse struct {
	YourInfo OwnGameplayInfo
}

func (m *FriendsGameplayInfoResponse) Marshal() []byte {
	return appendBytesField(nil, 1, m.YourInfo.marshal())
}

func (m *FriendsGameplayInfoResponse) Unmarshal(b []byte) error {
	return eachField(b, func(num int, typ fieldType, f *fieldReader) error {
		if num == 1 {
			inner, err := f.bytes()
			if err != nil {
				return err
			}
			return m.YourInfo.unmarshal(inner)
		}
		return f.skip()
	})
}
