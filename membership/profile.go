package membership

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/amadigital/compass/libs/compass"
)

// addressTabSlots maps the web address purpose to its fixed tab slot on the
// Compass profile.
var addressTabSlots = map[string]int{
	"Business": 1,
	"Other":    2,
	"Home":     3,
}

// GetMemberProfileByUsername fetches a profile by web username and derives
// its access level.
func (s *Service) GetMemberProfileByUsername(username string) *ProfileResult {
	remote, err := s.api.GetMemberProfileByUsername(username)
	if err != nil {
		return &ProfileResult{Profile: Profile{}, Message: err.Error()}
	}
	return s.processMemberProfile(remote, username)
}

// GetMemberProfileByID fetches a profile by iMIS ID and derives its access
// level. The username is looked up separately since the profile record does
// not carry it.
func (s *Service) GetMemberProfileByID(id string) *ProfileResult {
	remote, err := s.api.GetMemberProfile(id)
	if err != nil {
		return &ProfileResult{Profile: Profile{}, Message: err.Error()}
	}
	return s.processMemberProfile(remote, "")
}

// GetMemberProfileByLogin fetches a profile by username or email address.
// An email login is resolved to a username first; members holding both AMA
// and AMSA records share an email address, so the AMSA flag picks which.
func (s *Service) GetMemberProfileByLogin(login string, isAMSA bool) *ProfileResult {
	if isEmailAddress(login) {
		username, err := s.getUsernameFromEmailAddress(login, isAMSA)
		if err != nil {
			return &ProfileResult{Profile: Profile{}, Message: err.Error()}
		}
		if username != "" {
			login = username
		}
	}
	return s.GetMemberProfileByUsername(login)
}

// getUsernameFromEmailAddress resolves an email address to the unique web
// username on record for it.
func (s *Service) getUsernameFromEmailAddress(email string, isAMSA bool) (string, error) {
	filters := map[string]string{"EmailAddress": email, "AMSA": "FALSE"}
	if isAMSA {
		filters["AMSA"] = "TRUE"
	}
	result, err := s.api.Search("GetUniqueLoginByEmail", filters)
	if err != nil {
		return "", err
	}
	for _, username := range result {
		return username, nil
	}
	return "", nil
}

// processMemberProfile flattens a Compass profile into the web shape and
// derives the access level from StatusCode, MemberTypeCode and PaidThruDate.
func (s *Service) processMemberProfile(result *compass.MemberProfile, login string) *ProfileResult {
	retVal := &ProfileResult{Profile: Profile{}}
	if result == nil {
		retVal.Message = "Unexpected response result"
		return retVal
	}

	profile := Profile{}
	if err := mapstructure.Decode(result, &profile); err != nil {
		retVal.Message = err.Error()
		return retVal
	}

	if login != "" {
		profile["Username"] = login
	} else {
		username, err := s.api.GetUsernameFromIMISID(result.IMISID)
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
		profile["Username"] = username
	}

	if result.UDFields != nil {
		for _, field := range result.UDFields.UDField {
			profile[field.Field] = field.Value.Value
		}
	}
	if result.Relationships != nil {
		profile["WorkRelationshipId"] = ""
		if rc := result.Relationships.RelationshipCollection; rc != nil &&
			rc.RelationshipCode == "WORK" && rc.Relationships.Relationship != nil {
			profile["WorkRelationshipId"] = rc.Relationships.Relationship.TargetID
		}
	}
	if result.OutstandingDuesPayableOnWeb != nil {
		profile["OutstandingDuesPayableOnWeb"] = result.OutstandingDuesPayableOnWeb
	}

	// Address tabs flatten to plain maps so the web shape nests no structs.
	for slot := 1; slot <= 3; slot++ {
		if tab := result.Tab(slot); tab != nil {
			tabMap := map[string]interface{}{}
			if err := decodeLoose(tab, &tabMap); err != nil {
				retVal.Message = err.Error()
				return retVal
			}
			profile[fmt.Sprintf("AddressTab%d", slot)] = tabMap
		}
	}

	if len(s.eftDetailsForDues(result.IMISID)) == 0 {
		profile["PaymentCycle"] = BillingAnnual
	} else {
		profile["PaymentCycle"] = BillingMonthly
	}

	retVal.Profile = profile
	s.decideAccess(profile, retVal)
	return retVal
}

// UpdateMemberProfile writes a web profile back to the CRM. Username and
// password changes ride along in the Account block and are applied after the
// profile update; their failures are aggregated rather than aborting.
func (s *Service) UpdateMemberProfile(profile Profile) *UpdateResult {
	retVal := &UpdateResult{Profile: Profile{}, Status: StatusFailed}
	imisID := profile.String("iMISID")
	if imisID == "" {
		retVal.Message = "Invalid iMIS ID"
		return retVal
	}

	memberProfile, err := s.prepMemberProfile(profile)
	if err != nil {
		retVal.Message = err.Error()
		retVal.CustomerMessage = "Error occurred. Please try again later."
		return retVal
	}
	updated, err := s.api.UpdateMemberProfile(memberProfile)
	if err != nil {
		retVal.Message = err.Error()
		retVal.CustomerMessage = "Error occurred. Please try again later."
		return retVal
	}
	newProfile := s.processMemberProfile(updated, "")

	account := profile.Account()
	usernameChangeOK := true
	passwordChangeOK := true
	errorMessage := ""

	if account.Username != "" && !strings.EqualFold(account.Username, newProfile.Profile.String("Username")) {
		response := s.ChangeUsername(account.Username, account.OldPassword, imisID)
		if response.Status != StatusSuccess {
			usernameChangeOK = false
			errorMessage += "Username change is not successful: " + response.Message
		} else {
			newProfile = s.GetMemberProfileByID(imisID)
		}
	}

	if account.NewPassword != "" && account.OldPassword != "" && account.OldPassword != account.NewPassword {
		response := s.ChangePassword(account.OldPassword, account.NewPassword, imisID)
		if response.Status != StatusSuccess {
			passwordChangeOK = false
			errorMessage += " Password change is not successful: " + response.Message
		}
	}

	if len(newProfile.Profile) != 0 && usernameChangeOK && passwordChangeOK {
		retVal.Profile = newProfile.Profile
		retVal.Status = StatusSuccess
		retVal.Message = "Update successful"
		retVal.CustomerMessage = "Account is updated successful"
	} else {
		retVal.Message = "Error occurred: " + errorMessage
		retVal.CustomerMessage = "Error occurred. Please try again later."
	}
	return retVal
}

// prepMemberProfile denormalizes a web profile into the Compass contract.
// For an existing member the current remote profile is fetched first and
// only the supplied fields are modified.
func (s *Service) prepMemberProfile(profile Profile) (*compass.MemberProfile, error) {
	var memberProfile *compass.MemberProfile
	newRecord := false
	if id := profile.String("iMISID"); id != "" {
		remote, err := s.api.GetMemberProfile(id)
		if err != nil {
			return nil, err
		}
		if remote == nil {
			return nil, errors.Errorf("membership: no profile for iMIS ID %s", id)
		}
		memberProfile = remote
	} else {
		memberProfile = &compass.MemberProfile{}
		newRecord = true
	}

	schema, err := s.api.GetDemographicSchema()
	if err != nil {
		return nil, err
	}

	memberProfile.UDFields = &compass.UDFieldList{}
	// Dues are read-only and never round-trip back to the CRM.
	memberProfile.OutstandingDuesPayableOnWeb = nil

	leftover := map[string]interface{}{}
	for key, value := range profile {
		switch {
		case key == "Address":
			if err := s.applyAddresses(memberProfile, value); err != nil {
				return nil, err
			}
		case schema[key] != nil:
			field := schema[key]
			memberProfile.UDFields.UDField = append(memberProfile.UDFields.UDField, compass.UDField{
				Field: key,
				Table: field.TableName,
				Value: typedValue(value, strings.Contains(field.DataType, "Date")),
			})
		case key == "Account", key == "OutstandingDuesPayableOnWeb":
			// Credentials and dues are handled out of band.
		default:
			leftover[key] = value
		}
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           memberProfile,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(leftover); err != nil {
		return nil, errors.Wrap(err, "membership: decode profile fields")
	}
	if len(md.Unused) != 0 {
		s.log.WithField("fields", md.Unused).Debug("membership: profile fields not part of the contract")
	}

	if newRecord {
		memberProfile.MemberTypeCode = "T-" + profile.String("ChapterCode")
		memberProfile.StatusCode = "A"
	}
	return memberProfile, nil
}

// applyAddresses places web addresses into the profile's fixed tab slots and
// maintains the single WORK practice relationship.
func (s *Service) applyAddresses(memberProfile *compass.MemberProfile, value interface{}) error {
	var addresses []map[string]interface{}
	if err := decodeLoose(value, &addresses); err != nil {
		return errors.Wrap(err, "membership: decode addresses")
	}
	for _, address := range addresses {
		purpose := stringify(address["Purpose"])
		slot, ok := addressTabSlots[purpose]
		if !ok {
			return errors.Errorf("membership: unknown address purpose %q", purpose)
		}
		tab := memberProfile.Tab(slot)
		if tab == nil || tab.AddressNumber == "" {
			tab = &compass.AddressTab{BadAddressCode: ""}
			memberProfile.SetTab(slot, tab)
		}
		if preferred, ok := address["PreferredMail"]; ok {
			tab.PreferredBill = truthy(preferred)
			tab.PreferredShip = truthy(preferred)
		}

		if rawID, ok := address["ID"]; ok {
			id := stringify(rawID)
			rel := workRelationship(memberProfile)
			switch {
			case id != "" && id != "0" && rel == nil:
				memberProfile.Relationships = &compass.Relationships{
					RelationshipCollection: &compass.RelationshipCollection{
						RelationshipCode: "WORK",
						Relationships: compass.RelationshipList{
							Relationship: &compass.Relationship{
								GroupCode:        "PRINCIPAL",
								ReciprocalType:   "PRACTICE",
								RelationshipType: "WORK",
								TargetID:         id,
							},
						},
					},
				}
			case id != "" && id != "0" && rel.TargetID != id:
				rel.TargetID = id
			case id == "0" && rel != nil:
				rel.DeleteRelationship = true
			}
		}

		if err := decodeLoose(address, tab); err != nil {
			return errors.Wrap(err, "membership: decode address")
		}
	}
	return nil
}

// workRelationship returns the profile's WORK relationship slot, or nil.
func workRelationship(memberProfile *compass.MemberProfile) *compass.Relationship {
	if memberProfile.Relationships == nil {
		return nil
	}
	rc := memberProfile.Relationships.RelationshipCollection
	if rc == nil || rc.RelationshipCode != "WORK" {
		return nil
	}
	return rc.Relationships.Relationship
}

func typedValue(value interface{}, isDate bool) compass.TypedValue {
	tv := compass.TypedValue{Type: compass.XSDString, Value: stringify(value)}
	if isDate {
		tv.Type = compass.XSDDateTime
	}
	return tv
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "TRUE") || t == "1"
	}
	return false
}

func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
