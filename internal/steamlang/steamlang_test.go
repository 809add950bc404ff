package steamlang

import "testing"

func TestSteamIDUnpacking(t *testing.T) {
	// Account 1001, instance 1, individual, public universe.
	id := SteamID(uint64(1001) | 1<<32 | 1<<52 | 1<<56)

	if got := id.AccountID(); got != 1001 {
		t.Errorf("AccountID() = %d, want 1001", got)
	}
	if got := id.Instance(); got != 1 {
		t.Errorf("Instance() = %d, want 1", got)
	}
	if got := id.AccountType(); got != EAccountTypeIndividual {
		t.Errorf("AccountType() = %d, want individual", got)
	}
	if got := id.Universe(); got != 1 {
		t.Errorf("Universe() = %d, want 1", got)
	}
	if !id.IsIndividual() {
		t.Error("IsIndividual() = false for an individual account")
	}

	clan := SteamID(uint64(555) | 7<<52 | 1<<56)
	if clan.IsIndividual() {
		t.Error("IsIndividual() = true for a clan id")
	}
}

func TestMethodNameRouting(t *testing.T) {
	tests := []struct {
		name string
		want MethodID
	}{
		{NameRequestFriendPersonaStates, MethodRequestFriendPersonaStates},
		{NameCloudConfigDownload, MethodCloudConfigDownload},
		{NameRichPresenceLocalization, MethodRichPresenceLocalization},
		{NameFriendsGameplayInfo, MethodFriendsGameplayInfo},
		{"Parental.ApprovedFeature#1", MethodUnknown},
		{"", MethodUnknown},
	}
	for _, tt := range tests {
		if got := MethodByName(tt.name); got != tt.want {
			t.Errorf("MethodByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	for _, id := range []MethodID{
		MethodRequestFriendPersonaStates,
		MethodCloudConfigDownload,
		MethodRichPresenceLocalization,
		MethodFriendsGameplayInfo,
	} {
		if MethodByName(id.String()) != id {
			t.Errorf("round trip through String() lost method %v", id)
		}
	}
}
