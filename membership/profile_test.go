package membership

import (
	"testing"

	"github.com/amadigital/compass/libs/compass"
	"github.com/amadigital/compass/libs/test"
	"github.com/amadigital/compass/libs/testhelpers/mock"
)

func TestProcessMemberProfile(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	dues := &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{{ProductCode: "NSW DUES", Balance: 550}}}
	remote := &compass.MemberProfile{
		IMISID:         "123",
		Firstname:      "Jo",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(10),
		UDFields: &compass.UDFieldList{UDField: []compass.UDField{
			{Field: "CraftGroup", Table: "UD_DEMO", Value: compass.TypedValue{Type: compass.XSDString, Value: "GP"}},
		}},
		Relationships: &compass.Relationships{RelationshipCollection: &compass.RelationshipCollection{
			RelationshipCode: "WORK",
			Relationships:    compass.RelationshipList{Relationship: &compass.Relationship{TargetID: "999"}},
		}},
		OutstandingDuesPayableOnWeb: dues,
	}

	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "123").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{"NextInstalmentDate": "2019-04-01"}, nil))

	res := s.processMemberProfile(remote, "")
	test.Equals(t, AccessMember, res.AccessLevel)
	test.Equals(t, "jo", res.Profile.String("Username"))
	test.Equals(t, "Jo", res.Profile.String("Firstname"))
	test.Equals(t, "GP", res.Profile.String("CraftGroup"))
	test.Equals(t, "999", res.Profile.String("WorkRelationshipId"))
	test.Equals(t, BillingMonthly, res.Profile.String("PaymentCycle"))
	test.Equals(t, dues, res.Profile.DuesLines())
}

func TestProcessMemberProfileWithLogin(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{}, nil))

	remote := &compass.MemberProfile{IMISID: "123", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}
	res := s.processMemberProfile(remote, "jo")
	test.Equals(t, "jo", res.Profile.String("Username"))
	test.Equals(t, BillingAnnual, res.Profile.String("PaymentCycle"))
}

func TestProcessMemberProfileNilResult(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := s.processMemberProfile(nil, "")
	test.Equals(t, "Unexpected response result", res.Message)
	test.Equals(t, AccessNone, res.AccessLevel)
}

func TestPrepMemberProfileNewRecord(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{
		"GraduationDate": {TableName: "UD_DEMO", DataType: "Date", FieldLength: "8"},
		"CraftGroup":     {TableName: "UD_DEMO", DataType: "Char", FieldLength: "30"},
	}, nil))

	profile := Profile{
		"Firstname":      "Jo",
		"ChapterCode":    "NSW",
		"GraduationDate": "2015-12-01T00:00:00",
		"Address": []map[string]interface{}{{
			"Purpose":       "Business",
			"Address1":      "1 Macquarie St",
			"City":          "Sydney",
			"PreferredMail": true,
			"ID":            "999",
		}},
		"Account": map[string]interface{}{"username": "jo", "newPassword": "abcdef12"},
	}
	prepped, err := s.prepMemberProfile(profile)
	test.OK(t, err)
	test.Equals(t, "T-NSW", prepped.MemberTypeCode)
	test.Equals(t, "A", prepped.StatusCode)
	test.Equals(t, "Jo", prepped.Firstname)
	test.Assert(t, prepped.AddressTab1 != nil, "expected business address in tab 1")
	test.Equals(t, "1 Macquarie St", prepped.AddressTab1.Address1)
	test.Equals(t, true, prepped.AddressTab1.PreferredBill)
	test.Equals(t, true, prepped.AddressTab1.PreferredShip)

	rel := workRelationship(prepped)
	test.Assert(t, rel != nil, "expected a WORK relationship")
	test.Equals(t, "999", rel.TargetID)
	test.Equals(t, "PRINCIPAL", rel.GroupCode)
	test.Equals(t, false, rel.DeleteRelationship)

	test.Equals(t, 1, len(prepped.UDFields.UDField))
	test.Equals(t, compass.UDField{
		Field: "GraduationDate",
		Table: "UD_DEMO",
		Value: compass.TypedValue{Type: compass.XSDDateTime, Value: "2015-12-01T00:00:00"},
	}, prepped.UDFields.UDField[0])

	// Credentials stay out of the remote profile.
	test.Equals(t, "", prepped.Username)
}

func TestPrepMemberProfileExistingRecord(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	base := &compass.MemberProfile{
		IMISID:         "123",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		AddressTab1:    &compass.AddressTab{AddressNumber: "800", Address1: "Old St", Phone: "02 9999 9999"},
		Relationships: &compass.Relationships{RelationshipCollection: &compass.RelationshipCollection{
			RelationshipCode: "WORK",
			Relationships:    compass.RelationshipList{Relationship: &compass.Relationship{TargetID: "999"}},
		}},
		OutstandingDuesPayableOnWeb: &compass.DuesLines{},
	}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "123").WithReturns(base, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))

	profile := Profile{
		"iMISID": "123",
		"Address": []map[string]interface{}{{
			"Purpose":  "Business",
			"Address1": "New St",
			"ID":       "0",
		}},
	}
	prepped, err := s.prepMemberProfile(profile)
	test.OK(t, err)
	// Existing records keep their member type.
	test.Equals(t, "M-NSW", prepped.MemberTypeCode)
	// The populated tab is reused, untouched fields survive.
	test.Equals(t, "800", prepped.AddressTab1.AddressNumber)
	test.Equals(t, "New St", prepped.AddressTab1.Address1)
	test.Equals(t, "02 9999 9999", prepped.AddressTab1.Phone)
	// ID "0" flags the practice relationship for deletion.
	test.Equals(t, true, workRelationship(prepped).DeleteRelationship)
	test.Assert(t, prepped.OutstandingDuesPayableOnWeb == nil, "dues must not round-trip")
}

func TestPrepMemberProfileUnknownPurpose(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))

	_, err := s.prepMemberProfile(Profile{
		"Address": []map[string]interface{}{{"Purpose": "Vacation"}},
	})
	test.Assert(t, err != nil, "expected an error for an unknown purpose")
	test.Contains(t, err.Error(), "unknown address purpose")
}

func TestUpdateMemberProfileMissingID(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := s.UpdateMemberProfile(Profile{"Firstname": "Jo"})
	test.Equals(t, StatusFailed, res.Status)
	test.Equals(t, "Invalid iMIS ID", res.Message)
}

func TestUpdateMemberProfile(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	base := &compass.MemberProfile{IMISID: "123", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(5)}
	prepped := &compass.MemberProfile{
		IMISID:         "123",
		Firstname:      "Jo",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(5),
		UDFields:       &compass.UDFieldList{},
	}
	updated := &compass.MemberProfile{IMISID: "123", Firstname: "Jo", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(5)}

	m.Expect(mock.NewExpectation(m.GetMemberProfile, "123").WithReturns(base, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))
	m.Expect(mock.NewExpectation(m.UpdateMemberProfile, prepped).WithReturns(updated, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "123").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{}, nil))

	res := s.UpdateMemberProfile(Profile{"iMISID": "123", "Firstname": "Jo"})
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "Account is updated successful", res.CustomerMessage)
	test.Equals(t, "jo", res.Profile.String("Username"))
	test.Equals(t, "Jo", res.Profile.String("Firstname"))
}

func TestUpdateMemberProfileUsernameChange(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	base := &compass.MemberProfile{IMISID: "123", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(5)}
	prepped := &compass.MemberProfile{
		IMISID:         "123",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(5),
		UDFields:       &compass.UDFieldList{},
	}
	updated := &compass.MemberProfile{IMISID: "123", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(5)}
	refetched := &compass.MemberProfile{IMISID: "123", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(5)}

	m.Expect(mock.NewExpectation(m.GetMemberProfile, "123").WithReturns(base, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))
	m.Expect(mock.NewExpectation(m.UpdateMemberProfile, prepped).WithReturns(updated, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "123").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{}, nil))
	m.Expect(mock.NewExpectation(m.DupCheck, "newjo").WithReturns(false, nil))
	m.Expect(mock.NewExpectation(m.ChangeUsername, "newjo", "abcdef12", "123"))
	// The profile is refetched so the new username is reflected.
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "123").WithReturns(refetched, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "123").WithReturns("newjo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{}, nil))

	res := s.UpdateMemberProfile(Profile{
		"iMISID":  "123",
		"Account": map[string]interface{}{"username": "newjo", "oldPassword": "abcdef12"},
	})
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "newjo", res.Profile.String("Username"))
}
