package keychain

import "strconv"

// Status is a backend status code. The values below are the platform codes
// this layer assigns meaning to; anything else falls into the open-ended
// "other" bucket and is carried verbatim for diagnostics.
type Status int32

const (
	StatusSuccess               Status = 0
	StatusUnimplemented         Status = -4
	StatusParam                 Status = -50
	StatusUserCanceled          Status = -128
	StatusNotAvailable          Status = -25291
	StatusAuthFailed            Status = -25293
	StatusDuplicateItem         Status = -25299
	StatusItemNotFound          Status = -25300
	StatusInteractionNotAllowed Status = -25308
	StatusMissingEntitlement    Status = -34018
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnimplemented:
		return "unimplemented"
	case StatusParam:
		return "param"
	case StatusUserCanceled:
		return "user_canceled"
	case StatusNotAvailable:
		return "not_available"
	case StatusAuthFailed:
		return "auth_failed"
	case StatusDuplicateItem:
		return "duplicate_item"
	case StatusItemNotFound:
		return "item_not_found"
	case StatusInteractionNotAllowed:
		return "interaction_not_allowed"
	case StatusMissingEntitlement:
		return "missing_entitlement"
	default:
		return "status_" + strconv.Itoa(int(s))
	}
}
