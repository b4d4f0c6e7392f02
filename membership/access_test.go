package membership

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amadigital/compass/libs/clock"
	"github.com/amadigital/compass/libs/compass/compassmock"
	"github.com/amadigital/compass/libs/test"
	"github.com/amadigital/compass/libs/testhelpers/mock"
)

var testNow = time.Date(2019, 3, 15, 10, 0, 0, 0, time.UTC)

func testService(t *testing.T) (*Service, *compassmock.Client, *clock.ManagedClock) {
	m := compassmock.New(t)
	clk := clock.NewManaged(testNow)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(m, clk, log), m, clk
}

func paidThru(daysAgo int) string {
	return testNow.Add(-time.Duration(daysAgo) * 24 * time.Hour).Format(dateTimeLayout)
}

func decide(s *Service, profile Profile) *ProfileResult {
	retVal := &ProfileResult{Profile: profile}
	s.decideAccess(profile, retVal)
	return retVal
}

func TestDecideAccessInactive(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "I", "MemberTypeCode": "M-NSW", "PaidThruDate": paidThru(0)})
	test.Equals(t, AccessNone, res.AccessLevel)
	test.Equals(t, "Member status not active", res.Message)
}

func TestDecideAccessFullMemberCurrent(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "M-NSW", "PaidThruDate": paidThru(20)})
	test.Equals(t, AccessMember, res.AccessLevel)
	test.Equals(t, "", res.Message)
	test.Equals(t, "", res.CustomerMessage)
}

func TestDecideAccessFullMemberLapsedOverAMonth(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "M-VIC", "PaidThruDate": paidThru(45)})
	test.Equals(t, AccessMember, res.AccessLevel)
	test.Equals(t, "Membership lapsed for more than a month", res.Message)
	test.Equals(t, "Your membership has lapsed, please renew your membership now", res.CustomerMessage)
}

func TestDecideAccessFullMemberLapsedPastRejoinCutoff(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "M-NSW", "PaidThruDate": paidThru(200)})
	test.Equals(t, AccessNone, res.AccessLevel)
	test.Equals(t, "Membership lapsed for more than 6 months", res.Message)
	test.Equals(t, "Your membership has lapsed, please Join as a new Member again", res.CustomerMessage)
}

func TestDecideAccessFullMemberUnparseablePaidThru(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "M-QLD", "PaidThruDate": "not a date"})
	test.Equals(t, AccessNone, res.AccessLevel)
	test.Equals(t, "Membership lapsed for more than 6 months", res.Message)
}

func TestDecideAccessSentinelPaidThruPendingPayment(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{
		"StatusCode":                   "A",
		"MemberTypeCode":               "M-NSW",
		"PaidThruDate":                 sentinelPaidThruDate,
		"MemberHasPendingDuesPayments": true,
	})
	test.Equals(t, AccessMember, res.AccessLevel)
	test.Equals(t, "Member has payment pending", res.Message)
}

func TestDecideAccessSentinelPaidThruWithEFT(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{"NextInstalmentDate": "2019-04-01"}, nil))

	res := decide(s, Profile{
		"StatusCode":     "A",
		"MemberTypeCode": "M-NSW",
		"PaidThruDate":   sentinelPaidThruDate,
		"iMISID":         "123",
	})
	test.Equals(t, AccessMember, res.AccessLevel)
	test.Equals(t, "Member has EFT setup", res.Message)
}

func TestDecideAccessSentinelPaidThruNoEFT(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "123"}).WithReturns(
		map[string]string{}, nil))

	res := decide(s, Profile{
		"StatusCode":     "A",
		"MemberTypeCode": "M-NSW",
		"PaidThruDate":   sentinelPaidThruDate,
		"iMISID":         "123",
	})
	test.Equals(t, AccessNone, res.AccessLevel)
	test.Equals(t, "Invalid PaidThruDate", res.Message)
}

func TestDecideAccessStudentIgnoresPaidThru(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "S-QLD", "PaidThruDate": paidThru(400)})
	test.Equals(t, AccessStudent, res.AccessLevel)
	test.Equals(t, "", res.Message)
}

func TestDecideAccessOtherTypeCodes(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	cases := []struct {
		memberType string
		level      AccessLevel
	}{
		{"STAFF", AccessMember},
		{"D-QLD", AccessAMAQCommunity},
		{"C-QLD", AccessAMAQCommunity},
		{"Q-PMA", AccessAMAQCommunity},
		{"AMSA", AccessAMSA},
	}
	for _, c := range cases {
		res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": c.memberType})
		test.Equals(t, c.level, res.AccessLevel)
	}

	res := decide(s, Profile{"StatusCode": "A", "MemberTypeCode": "X-YZ"})
	test.Equals(t, AccessNone, res.AccessLevel)
	test.Equals(t, "Unexpected member type code", res.Message)
}

func TestFilterMemberTypeCode(t *testing.T) {
	cases := []struct {
		level AccessLevel
		mode  string
		want  string
	}{
		{AccessMember, LoginModeAMAM, StatusSuccess},
		{AccessLoginOnly, LoginModeAMAM, StatusSuccess},
		{AccessStudent, LoginModeAMAM, StatusFailed},
		{AccessAMAQCommunity, LoginModeAMAM, StatusFailed},
		{AccessAMSA, LoginModeAMAM, StatusFailed},
		{AccessNone, LoginModeAMAM, StatusFailed},

		{AccessMember, LoginModeAMAA, StatusSuccess},
		{AccessStudent, LoginModeAMAA, StatusSuccess},
		{AccessLoginOnly, LoginModeAMAA, StatusSuccess},
		{AccessAMAQCommunity, LoginModeAMAA, StatusSuccess},
		{AccessAMSA, LoginModeAMAA, StatusFailed},

		{AccessAMSA, LoginModeAMSA, StatusSuccess},
		{AccessMember, LoginModeAMSA, StatusFailed},
		{AccessStudent, LoginModeAMSA, StatusFailed},
	}
	for _, c := range cases {
		test.Equals(t, c.want, FilterMemberTypeCode(c.level, c.mode))
	}
}
