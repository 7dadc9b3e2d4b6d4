package keychain

// Attribute names are fixed, stable wire strings. They mirror the platform
// keychain's raw constant values and must never change: they are the only way
// to address items written by earlier releases.
const (
	// AttrClass selects the item class. All vaultkit items are generic
	// passwords.
	AttrClass            = "class"
	ClassGenericPassword = "genp"

	// AttrService carries the namespace string derived from the store's
	// identifier and configuration.
	AttrService = "svce"

	// AttrAccount carries the caller-facing key within the namespace.
	AttrAccount = "acct"

	// AttrAccessGroup is set only for shared-group namespaces.
	AttrAccessGroup = "agrp"

	// AttrAccessible carries one of the accessibility literals below.
	AttrAccessible = "pdmn"

	// AttrSynchronizable marks cloud-synchronized items.
	AttrSynchronizable = "sync"

	// AttrAccessControl carries the access-control descriptor for
	// enclave-protected items. When present, AttrAccessible is omitted:
	// the hardware key's own policy subsumes it.
	AttrAccessControl = "accc"

	// UseDataProtection selects the data-protection keychain. Items written
	// before this flag existed live in the legacy location and are reached
	// by querying with the flag set to false.
	UseDataProtection = "nleg"

	// ValueData carries the secret blob on writes and returned reads.
	ValueData = "v_Data"
)

// Search and return directives. These never appear on stored items.
const (
	MatchLimit    = "m_Limit"
	MatchLimitOne = "m_LimitOne"
	MatchLimitAll = "m_LimitAll"

	// ReturnData asks CopyMatching to include item data. Reads of
	// access-controlled items with ReturnData set trigger a user-presence
	// check; metadata-only queries never do.
	ReturnData = "r_Data"

	// ReturnAttributes asks CopyMatching to include item attributes only.
	ReturnAttributes = "r_Attrs"

	// UseOperationPrompt supplies the user-facing message shown when the
	// backend collects presence confirmation for an access-controlled read.
	UseOperationPrompt = "u_OpPrompt"
)

// Accessibility literals: frozen historical constants written into the
// AttrAccessible attribute. AccessibleAlways and
// AccessibleAlwaysThisDeviceOnly are retired policies that may only appear in
// migration source queries, never on new writes.
const (
	AccessibleWhenUnlocked                   = "ak"
	AccessibleAfterFirstUnlock               = "ck"
	AccessibleWhenPasscodeSetThisDeviceOnly  = "akpu"
	AccessibleWhenUnlockedThisDeviceOnly     = "aku"
	AccessibleAfterFirstUnlockThisDeviceOnly = "cku"
	AccessibleAlways                         = "dk"
	AccessibleAlwaysThisDeviceOnly           = "dku"
)

// Access-control descriptors written into AttrAccessControl for
// enclave-protected items.
const (
	AccessControlUserPresence       = "udp"
	AccessControlBiometryAny        = "bio"
	AccessControlBiometryCurrentSet = "cbio"
	AccessControlDevicePasscode     = "pin"
)
