package membership

import (
	"math"
	"testing"
	"time"

	"github.com/amadigital/compass/libs/compass"
	"github.com/amadigital/compass/libs/test"
	"github.com/amadigital/compass/libs/testhelpers/mock"
)

func TestBillFromDate(t *testing.T) {
	s, m, clk := testService(t)
	defer mock.FinishAll(m)

	// The 15th still bills same-day.
	test.Equals(t, "2019-03-15", s.BillFromDate())

	// Past the 15th, billing starts on the first of the next month.
	clk.WarpForward(5 * 24 * time.Hour)
	test.Equals(t, "2019-04-01", s.BillFromDate())

	// December rolls over into the next year.
	clk.WarpForward(275 * 24 * time.Hour)
	test.Equals(t, "2020-01-01", s.BillFromDate())
}

func TestAllocateDues(t *testing.T) {
	duesLine := &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
		{ProductCode: "NSW DUES", Balance: 300},
		{ProductCode: "AJA", Balance: 200},
	}}
	allocateDues(duesLine, 100, 500)
	test.Equals(t, 60.0, duesLine.DuesLineItem[0].AmountToPay)
	test.Equals(t, 40.0, duesLine.DuesLineItem[1].AmountToPay)

	// A full payment allocates every line's balance.
	allocateDues(duesLine, 500, 500)
	allocated := 0.0
	for _, item := range duesLine.DuesLineItem {
		allocated += item.AmountToPay
	}
	test.Assert(t, math.Abs(allocated-500) < 1e-9, "expected the full amount to be allocated, got %f", allocated)
}

func TestFailureCustomerMessage(t *testing.T) {
	test.Equals(t, "Error has occurred, please contact membership service asap",
		failureCustomerMessage(&compass.PaymentResult{SuccessfulCCDeduction: true}))
	test.Equals(t, "A payment is pending for your account",
		failureCustomerMessage(&compass.PaymentResult{InternalErrorMessage: "A pending payment for dues already exists for 123"}))
	test.Equals(t, "Error has occurred, please try again",
		failureCustomerMessage(&compass.PaymentResult{ErrorMessage: "declined"}))
}

func TestNewUserRecordExisting(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	res := s.NewUserRecord(Profile{"iMISID": "123"})
	test.Equals(t, StatusFailed, res.Status)
	test.Equals(t, "Record already exists", res.Message)
}

func TestNewMemberJoinNoPaymentDetails(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	remote := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(10),
		OutstandingDuesPayableOnWeb: &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
			{ProductCode: "NSW DUES", Balance: 500},
		}},
	}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	res := s.NewMemberJoin(Profile{"iMISID": "100", "ChapterCode": "NSW"}, nil)
	test.Equals(t, StatusFailed, res.Status)
	test.Equals(t, "No payment details provided", res.Message)
}

func TestNewMemberJoinStudent(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	profile := Profile{
		"iMISID":         "200",
		"MemberTypeCode": "S-NSW",
		"ChapterCode":    "NSW",
		"Account":        map[string]interface{}{"username": "stud", "newPassword": "abcdef12"},
	}

	remote := &compass.MemberProfile{IMISID: "200", StatusCode: "A", MemberTypeCode: "S-NSW"}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "200").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "200").WithReturns("stud", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "200"}).WithReturns(
		map[string]string{}, nil))

	// No outstanding dues yet, so they are billed. Students bill to nothing.
	feeReq := &compass.JoinFeeRequest{MemberTypeCode: "S-NSW", ID: "200", AsOf: "2019-03-15"}
	m.Expect(mock.NewExpectation(m.GetJoinFeeBreakdown, feeReq).WithReturns(
		(*compass.JoinFeeBreakdown)(nil), nil))
	m.Expect(mock.NewExpectation(m.BillJoinFeesAsOf, feeReq).WithReturns(
		&compass.MemberProfile{IMISID: "200"}, nil))

	m.Expect(mock.NewExpectation(m.DupCheck, "stud").WithReturns(false, nil))
	m.Expect(mock.NewExpectation(m.AddCredentials, "stud", "abcdef12", "200"))

	// The profile write-back carries the synthesized paid-thru date.
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "200").WithReturns(
		&compass.MemberProfile{IMISID: "200", StatusCode: "A", MemberTypeCode: "S-NSW"}, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))
	prepped := &compass.MemberProfile{
		IMISID:         "200",
		StatusCode:     "A",
		MemberTypeCode: "S-NSW",
		ChapterCode:    "NSW",
		PaidThruDate:   "2019-12-31T00:00:00",
		UDFields:       &compass.UDFieldList{},
	}
	updated := &compass.MemberProfile{
		IMISID:         "200",
		StatusCode:     "A",
		MemberTypeCode: "S-NSW",
		ChapterCode:    "NSW",
		PaidThruDate:   "2019-12-31T00:00:00",
	}
	m.Expect(mock.NewExpectation(m.UpdateMemberProfile, prepped).WithReturns(updated, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "200").WithReturns("stud", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "200"}).WithReturns(
		map[string]string{}, nil))

	res := s.NewMemberJoin(profile, nil)
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "Your account is created with login: stud", res.CustomerMessage)
	test.Equals(t, "2019-12-31T00:00:00", res.Profile.String("PaidThruDate"))
}

func TestNewMemberJoinAnnual(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	profile := Profile{
		"iMISID":         "100",
		"MemberTypeCode": "M-NSW",
		"CategoryCode":   "FGP1",
		"ChapterCode":    "NSW",
		"Account":        map[string]interface{}{"username": "jo", "newPassword": "abcdef12"},
	}
	payment := &Payment{
		BillingMethod:    BillingAnnual,
		CardType:         "VISA",
		CardholderName:   "Jo Citizen",
		CreditCardNumber: "4111111111111111",
		ExpiryMonth:      "01",
		ExpiryYear:       "2022",
		CCV:              "123",
	}

	remote := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(10),
		OutstandingDuesPayableOnWeb: &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
			{ProductCode: "NSW DUES", Balance: 300},
			{ProductCode: "AJA", Balance: 200},
		}},
	}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	// A full annual payment allocates each line in full.
	payableDues := &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
		{ProductCode: "NSW DUES", Balance: 300, AmountToPay: 300},
		{ProductCode: "AJA", Balance: 200, AmountToPay: 200},
	}}
	gateway := &compass.PaymentGateway{
		BatchCreatedBy:   "WEBNSW",
		CashAccountCode:  "VISA_NSW",
		CardholderName:   "Jo Citizen",
		CreditCardNumber: "4111111111111111",
		ExpiryMonth:      "01",
		ExpiryYear:       "2022",
		CCV:              "123",
		PaymentAmount:    500,
	}
	m.Expect(mock.NewExpectation(m.PayJoinDues, "M-NSW", "FGP1", "100", payableDues, gateway).WithReturns(
		&compass.PaymentResult{ReturnCode: compass.PaymentReturnSuccess, CCGatewayRef: "REF123"}, nil))

	m.Expect(mock.NewExpectation(m.DupCheck, "jo").WithReturns(false, nil))
	m.Expect(mock.NewExpectation(m.AddCredentials, "jo", "abcdef12", "100"))

	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(
		&compass.MemberProfile{IMISID: "100", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))
	prepped := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		CategoryCode:   "FGP1",
		ChapterCode:    "NSW",
		PaidThruDate:   paidThru(10),
		UDFields:       &compass.UDFieldList{},
	}
	updated := &compass.MemberProfile{IMISID: "100", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}
	m.Expect(mock.NewExpectation(m.UpdateMemberProfile, prepped).WithReturns(updated, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	res := s.NewMemberJoin(profile, payment)
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "REF123", res.Message)
	test.Equals(t, "Your account is created with login: jo", res.CustomerMessage)
}

func TestNewMemberJoinMonthlyNoUpfront(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	profile := Profile{
		"iMISID":         "100",
		"MemberTypeCode": "M-NSW",
		"CategoryCode":   "FGP1",
		"ChapterCode":    "NSW",
		"Account":        map[string]interface{}{"username": "jo", "newPassword": "abcdef12"},
	}
	payment := &Payment{
		BillingMethod:    BillingMonthly,
		CardType:         "MASTERCARD",
		CardholderName:   "Jo Citizen",
		CreditCardNumber: "5500000000000004",
		ExpiryMonth:      "01",
		ExpiryYear:       "2022",
		CCV:              "123",
	}

	remote := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		PaidThruDate:   paidThru(10),
		OutstandingDuesPayableOnWeb: &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
			{ProductCode: "NSW DUES", Balance: 480},
		}},
	}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	m.Expect(mock.NewExpectation(m.DetermineEFTScheduleForDues, "100", BillingMonthly, 480.0).WithReturns(
		&compass.EFTSchedule{FirstInstalmentDate: "2019-04-01", InstalmentAmount: 40}, nil))

	// No upfront payment is due, so the mandate is registered straight away.
	m.Expect(mock.NewExpectation(m.SetupDuesEFTFromGateway, &compass.DuesEFTRequest{
		ID: "100",
		Gateway: &compass.PaymentGateway{
			BatchCreatedBy:   "WEBNSW",
			CashAccountCode:  "MASTERCARD_NSW",
			CardholderName:   "Jo Citizen",
			CreditCardNumber: "5500000000000004",
			ExpiryMonth:      "01",
			ExpiryYear:       "2022",
			CCV:              "123",
			PaymentAmount:    40,
		},
		Freq:                 BillingMonthly,
		FirstInstalmentDate:  "2019-04-01",
		FinalInstalmentDate:  eftFinalInstalmentDate,
		TieToMerchantAccount: "New South Wales CC",
	}))

	m.Expect(mock.NewExpectation(m.DupCheck, "jo").WithReturns(false, nil))
	m.Expect(mock.NewExpectation(m.AddCredentials, "jo", "abcdef12", "100"))

	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(
		&compass.MemberProfile{IMISID: "100", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}, nil))
	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{}, nil))
	prepped := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		CategoryCode:   "FGP1",
		ChapterCode:    "NSW",
		PaidThruDate:   paidThru(10),
		UDFields:       &compass.UDFieldList{},
	}
	updated := &compass.MemberProfile{IMISID: "100", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}
	m.Expect(mock.NewExpectation(m.UpdateMemberProfile, prepped).WithReturns(updated, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	res := s.NewMemberJoin(profile, payment)
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "Your account is created with login: jo", res.CustomerMessage)
}

func TestNewMemberJoinNoDuesForNonStudent(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	remote := &compass.MemberProfile{IMISID: "100", StatusCode: "A", MemberTypeCode: "M-NSW", PaidThruDate: paidThru(10)}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	feeReq := &compass.JoinFeeRequest{MemberTypeCode: "M-NSW", CategoryCode: "FGP1", ID: "100", AsOf: "2019-03-15"}
	m.Expect(mock.NewExpectation(m.GetJoinFeeBreakdown, feeReq).WithReturns(
		(*compass.JoinFeeBreakdown)(nil), nil))
	m.Expect(mock.NewExpectation(m.BillJoinFeesAsOf, feeReq).WithReturns(
		&compass.MemberProfile{IMISID: "100"}, nil))

	res := s.NewMemberJoin(Profile{
		"iMISID":         "100",
		"MemberTypeCode": "M-NSW",
		"CategoryCode":   "FGP1",
		"ChapterCode":    "NSW",
	}, nil)
	test.Equals(t, StatusFailed, res.Status)
	test.Equals(t, "No dues for non student type | iMISID:100 M-NSW FGP1 | Not submitted to gateway", res.Message)
	test.Equals(t, "Error has occurred, please try again", res.CustomerMessage)
}

func TestBillMember(t *testing.T) {
	s, m, _ := testService(t)
	defer mock.FinishAll(m)

	remote := &compass.MemberProfile{
		IMISID:         "100",
		StatusCode:     "A",
		MemberTypeCode: "M-NSW",
		CategoryCode:   "FGP1",
		PaidThruDate:   paidThru(10),
	}
	m.Expect(mock.NewExpectation(m.GetMemberProfile, "100").WithReturns(remote, nil))
	m.Expect(mock.NewExpectation(m.GetUsernameFromIMISID, "100").WithReturns("jo", nil))
	m.Expect(mock.NewExpectation(m.Search, "GetEFTDetailsForDues", map[string]string{"ID": "100"}).WithReturns(
		map[string]string{}, nil))

	feeReq := &compass.JoinFeeRequest{MemberTypeCode: "M-NSW", CategoryCode: "FGP1", ID: "100", AsOf: "2019-03-15"}
	m.Expect(mock.NewExpectation(m.GetJoinFeeBreakdown, feeReq).WithReturns(&compass.JoinFeeBreakdown{
		Details: []compass.JoinFeeDetail{{ProductCode: "NSW DUES"}, {ProductCode: "AJA"}},
	}, nil))
	billedReq := &compass.JoinFeeRequest{MemberTypeCode: "M-NSW", CategoryCode: "FGP1", ID: "100", ProductCodes: "NSW DUES,AJA", AsOf: "2019-03-15"}
	m.Expect(mock.NewExpectation(m.BillJoinFeesAsOf, billedReq).WithReturns(&compass.MemberProfile{
		IMISID: "100",
		OutstandingDuesPayableOnWeb: &compass.DuesLines{DuesLineItem: []*compass.DuesLineItem{
			{ProductCode: "NSW DUES", Balance: 400},
			{ProductCode: "AJA", Balance: 100},
		}},
	}, nil))

	res := s.BillMember("100")
	test.Equals(t, StatusSuccess, res.Status)
	test.Equals(t, "jo", res.Profile.String("Username"))
}
