package steamlang

// SteamID is the packed 64 bit account identifier: 32 bits of account id,
// 20 bits of instance, 4 bits of account type and 8 bits of universe.
type SteamID uint64

func (id SteamID) AccountID() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

func (id SteamID) Instance() uint32 {
	return uint32((id >> 32) & 0xFFFFF)
}

func (id SteamID) AccountType() EAccountType {
	return EAccountType((id >> 52) & 0xF)
}

func (id SteamID) Universe() int32 {
	return int32(id >> 56)
}

// IsIndividual reports whether the id belongs to a regular user account
// as opposed to a clan, chat room or game server.
func (id SteamID) IsIndividual() bool {
	return id.AccountType() == EAccountTypeIndividual
}
