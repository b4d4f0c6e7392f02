package membership

import (
	"time"
)

// Compass serializes timestamps without a zone offset.
const dateTimeLayout = "2006-01-02T15:04:05"

// sentinelPaidThruDate is what Compass returns for a member who has never
// had a paid-thru date set, such as right after joining online.
const sentinelPaidThruDate = "0001-01-01T00:00:00"

// Lapse thresholds measured from the paid-thru date. Members past the
// rejoin cutoff must join again as new members; past the renew cutoff they
// may log in only to renew; past the reminder they are nagged to renew.
const (
	lapseRejoinCutoff = 181 * 24 * time.Hour
	// TODO: confirm with membership services whether the renew cutoff
	// should drop to 90 days. Billing has always run with 181.
	lapseRenewCutoff = 181 * 24 * time.Hour
	lapseReminder    = 30 * 24 * time.Hour
)

// FilterMemberTypeCode reports whether an access level counts as a
// successful login for the given login mode.
func FilterMemberTypeCode(accessLevel AccessLevel, loginMode string) string {
	switch loginMode {
	case LoginModeAMAA:
		switch accessLevel {
		case AccessMember, AccessStudent, AccessLoginOnly, AccessAMAQCommunity:
			return StatusSuccess
		}
	case LoginModeAMSA:
		if accessLevel == AccessAMSA {
			return StatusSuccess
		}
	default:
		switch accessLevel {
		case AccessMember, AccessLoginOnly:
			return StatusSuccess
		}
	}
	return StatusFailed
}

// decideAccess inspects StatusCode, MemberTypeCode and PaidThruDate on a
// normalized profile and fills in the access level and messages.
func (s *Service) decideAccess(profile Profile, retVal *ProfileResult) {
	memberType := profile.String("MemberTypeCode")
	switch {
	case profile.String("StatusCode") != "A":
		retVal.Message = "Member status not active"
	case memberTypeCodes[memberType]:
		s.decideFullMemberAccess(profile, retVal)
	case staffTypeCodes[memberType]:
		retVal.AccessLevel = AccessMember
	case amaqNonMemberTypeCodes[memberType]:
		retVal.AccessLevel = AccessAMAQCommunity
	case studentTypeCodes[memberType]:
		// Legacy student records carry no paid-thru date, so none is
		// checked for students.
		retVal.AccessLevel = AccessStudent
	case amsaTypeCodes[memberType]:
		retVal.AccessLevel = AccessAMSA
	default:
		retVal.Message = "Unexpected member type code"
	}
}

// decideFullMemberAccess applies the paid-thru date rules for full AMA
// members.
func (s *Service) decideFullMemberAccess(profile Profile, retVal *ProfileResult) {
	paidThru := profile.String("PaidThruDate")
	if paidThru == sentinelPaidThruDate {
		// Lets a member log in right after joining, before the first
		// payment settles. The card details were validated at join time.
		if profile.Bool("MemberHasPendingDuesPayments") {
			retVal.AccessLevel = AccessMember
			retVal.Message = "Member has payment pending"
		} else if len(s.eftDetailsForDues(profile.String("iMISID"))) != 0 {
			retVal.AccessLevel = AccessMember
			retVal.Message = "Member has EFT setup"
		} else {
			retVal.Message = "Invalid PaidThruDate"
		}
		return
	}

	// An unparseable date leaves the zero time and lands in the rejoin
	// branch below.
	paidThruTime, _ := time.Parse(dateTimeLayout, paidThru)
	lapse := s.clk.Now().Sub(paidThruTime)
	switch {
	case lapse > lapseRejoinCutoff:
		retVal.Message = "Membership lapsed for more than 6 months"
		retVal.CustomerMessage = "Your membership has lapsed, please Join as a new Member again"
	case lapse > lapseRenewCutoff:
		retVal.AccessLevel = AccessLoginOnly
		retVal.Message = "Membership lapsed for more than 3 months"
		retVal.CustomerMessage = `Your membership has lapsed, access to service has been suspended. please <a href="/join-renew">renew your membership</a>`
	case lapse > lapseReminder:
		retVal.AccessLevel = AccessMember
		retVal.Message = "Membership lapsed for more than a month"
		retVal.CustomerMessage = "Your membership has lapsed, please renew your membership now"
	default:
		retVal.AccessLevel = AccessMember
	}
}

// eftDetailsForDues returns the member's current dues EFT registration, or
// nil when there is none or the lookup fails.
func (s *Service) eftDetailsForDues(imisID string) map[string]string {
	details, err := s.api.Search("GetEFTDetailsForDues", map[string]string{"ID": imisID})
	if err != nil {
		s.log.WithError(err).WithField("imis_id", imisID).Warn("membership: EFT details lookup failed")
		return nil
	}
	return details
}
