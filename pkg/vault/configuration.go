package vault

type configurationKind int

const (
	configurationStandard configurationKind = iota + 1
	configurationCloud
	configurationEnclave
)

// Configuration tags a store as standard, cloud-synchronized, or
// enclave-protected, paired with its read policy. The tag determines which
// backend attributes a store's queries may carry; illegal pairings are
// unrepresentable because each constructor accepts only the policy type
// valid for its tag.
type Configuration struct {
	kind          configurationKind
	accessibility Accessibility
	cloud         CloudAccessibility
	enclave       EnclaveAccessControl
}

// StandardConfiguration pairs a plain store with an accessibility policy.
func StandardConfiguration(a Accessibility) Configuration {
	return Configuration{kind: configurationStandard, accessibility: a}
}

// CloudConfiguration pairs a cloud-synchronized store with one of the
// policies that can sync.
func CloudConfiguration(c CloudAccessibility) Configuration {
	return Configuration{kind: configurationCloud, cloud: c}
}

// EnclaveConfiguration pairs an enclave-protected store with its presence
// requirement. No accessibility policy applies: the hardware key's access
// control subsumes it.
func EnclaveConfiguration(c EnclaveAccessControl) Configuration {
	return Configuration{kind: configurationEnclave, enclave: c}
}

// descriptorTag returns the configuration's contribution to the canonical
// descriptor. Distinct configurations always produce distinct tags: standard
// and cloud use the accessibility tag (cloud with a sync suffix), enclave
// uses the access-control tag.
func (c Configuration) descriptorTag() string {
	switch c.kind {
	case configurationStandard:
		return c.accessibility.String()
	case configurationCloud:
		return c.cloud.String() + "_Synchronizable"
	case configurationEnclave:
		return c.enclave.String()
	default:
		return "UnknownConfiguration"
	}
}
