package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/amadigital/compass/libs/compass"
)

// eftFinalInstalmentDate keeps dues EFT mandates open ended. The schedule's
// own final date is deliberately not used.
const eftFinalInstalmentDate = "9999-12-31"

// JoinFeeQuote is the quoted cost of one membership category, annually and
// by monthly instalment.
type JoinFeeQuote struct {
	MembershipEnding    string
	TotalFeesIncTax     float64
	InstalmentAmount    float64
	FirstInstalmentDate string
	Description         string
	State               string
}

// JoinFees quotes the join fees for every state branch and category.
func (s *Service) JoinFees() (map[string]map[string]*JoinFeeQuote, error) {
	return s.joinFeesForTypeCodes(joinMemberTypes, categoryTypeCodes)
}

// JoinFeesAMSA quotes the join fees for the AMSA membership categories.
func (s *Service) JoinFeesAMSA() (map[string]map[string]*JoinFeeQuote, error) {
	return s.joinFeesForTypeCodes(amsaJoinMemberTypes, amsaCategoryCodes)
}

func (s *Service) joinFeesForTypeCodes(memberTypes, categories map[string]string) (map[string]map[string]*JoinFeeQuote, error) {
	retVal := map[string]map[string]*JoinFeeQuote{}
	for memberType, state := range memberTypes {
		retVal[memberType] = map[string]*JoinFeeQuote{}
		for categoryCode, description := range categories {
			breakdown, err := s.api.GetJoinFeeBreakdown(&compass.JoinFeeRequest{
				MemberTypeCode: memberType,
				CategoryCode:   categoryCode,
				AsOf:           s.BillFromDate(),
			})
			if err != nil {
				return retVal, err
			}
			if breakdown == nil {
				return retVal, errors.Errorf("membership: no fee breakdown for %s/%s", memberType, categoryCode)
			}
			schedule, err := s.api.DetermineEFTScheduleForDuesForPeriod(
				BillingMonthly, breakdown.Summary.MembershipFeeIncTax, s.BillFromDate(), breakdown.Summary.MembershipEnding)
			if err != nil {
				return retVal, err
			}
			quote := &JoinFeeQuote{
				MembershipEnding: breakdown.Summary.MembershipEnding,
				TotalFeesIncTax:  breakdown.Summary.TotalFeesIncTax,
				Description:      description,
				State:            state,
			}
			if schedule != nil {
				quote.InstalmentAmount = schedule.InstalmentAmount
				quote.FirstInstalmentDate = schedule.FirstInstalmentDate
			}
			retVal[memberType][categoryCode] = quote
		}
	}
	return retVal, nil
}

// BillFromDate picks the date new dues are billed from. Past the 15th,
// billing starts on the first of the next month.
func (s *Service) BillFromDate() string {
	now := s.clk.Now()
	if now.Day() > 15 {
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	return now.Format("2006-01-02")
}

// NewUserRecord creates a bare member record without billing or
// credentials, for flows that capture payment later.
func (s *Service) NewUserRecord(profile Profile) *JoinResult {
	retVal := &JoinResult{Profile: Profile{}, Status: StatusFailed}
	if profile.String("iMISID") != "" {
		retVal.Message = "Record already exists"
		return retVal
	}
	prepped, err := s.prepMemberProfile(profile)
	if err != nil {
		retVal.Message = err.Error()
		return retVal
	}
	created, err := s.api.NewMemberProfile(prepped)
	if err != nil {
		retVal.Message = err.Error()
		return retVal
	}
	memberProfile := s.processMemberProfile(created, "")
	retVal.Profile = memberProfile.Profile
	retVal.Status = StatusSuccess
	retVal.CustomerMessage = "Your tmp account is created"
	return retVal
}

// NewMemberJoin processes a join: create (or resume) the member record,
// bill the join fees, take payment or register an EFT mandate, then create
// web credentials and write the profile back.
func (s *Service) NewMemberJoin(profile Profile, payment *Payment) *JoinResult {
	retVal := &JoinResult{Profile: Profile{}, Status: StatusFailed}

	var memberProfile *ProfileResult
	if profile.String("iMISID") == "" {
		prepped, err := s.prepMemberProfile(profile)
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
		created, err := s.api.NewMemberProfile(prepped)
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
		memberProfile = s.processMemberProfile(created, "")
	} else {
		// A member coming back after a failed payment already has an ID.
		memberProfile = s.GetMemberProfileByID(profile.String("iMISID"))
	}
	imisID := memberProfile.Profile.String("iMISID")
	if imisID == "" {
		retVal.Message = memberProfile.Message
		return retVal
	}

	duesLine := memberProfile.Profile.DuesLines()
	if duesLine == nil || len(duesLine.DuesLineItem) == 0 {
		var err error
		duesLine, err = s.billOutstandingDues(imisID, profile.String("MemberTypeCode"), profile.String("CategoryCode"))
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
	}
	totalAmount := duesTotal(duesLine)

	paymentResult := &compass.PaymentResult{}
	section := profile.String("ChapterCode")
	if section == "" {
		section = "AMSA"
	}
	switch {
	case totalAmount > 0:
		if payment == nil {
			retVal.Message = "No payment details provided"
			return retVal
		}
		gateway := paymentGateway(payment, section, totalAmount)
		if payment.BillingMethod == BillingAnnual {
			// Paying in full updates the paid-thru date automatically.
			result, err := s.payJoinDues(imisID, profile, duesLine, gateway, totalAmount, totalAmount)
			if err != nil {
				retVal.Message = err.Error()
				return retVal
			}
			if result != nil {
				paymentResult = result
			}
		} else {
			schedule, err := s.api.DetermineEFTScheduleForDues(imisID, BillingMonthly, totalAmount)
			if err != nil {
				retVal.Message = err.Error()
				return retVal
			}
			if schedule == nil {
				retVal.Message = "Unexpected response result"
				return retVal
			}
			if schedule.PaymentAmountUpfront > 0 {
				result, err := s.payJoinDues(imisID, profile, duesLine, gateway, schedule.PaymentAmountUpfront, totalAmount)
				if err != nil {
					retVal.Message = err.Error()
					return retVal
				}
				if result != nil {
					paymentResult = result
				}
			} else {
				// TODO: validate the card when no upfront payment is due.
				paymentResult.ReturnCode = compass.PaymentReturnSuccess
			}
			if paymentResult.ReturnCode == compass.PaymentReturnSuccess {
				gateway.PaymentAmount = schedule.InstalmentAmount
				if err := s.api.SetupDuesEFTFromGateway(&compass.DuesEFTRequest{
					ID:                   imisID,
					Gateway:              gateway,
					Freq:                 BillingMonthly,
					FirstInstalmentDate:  schedule.FirstInstalmentDate,
					FinalInstalmentDate:  eftFinalInstalmentDate,
					TieToMerchantAccount: cashAccountCodes[profile.String("ChapterCode")],
				}); err != nil {
					retVal.Message = err.Error()
					return retVal
				}
			}
		}
	case studentTypeCodes[profile.String("MemberTypeCode")]:
		// Student membership carries no dues. The paid-thru date runs to
		// the end of the calendar year.
		paymentResult.ReturnCode = compass.PaymentReturnSuccess
		profile["PaidThruDate"] = fmt.Sprintf("%d-12-31T00:00:00", s.clk.Now().Year())
	default:
		paymentResult.ErrorMessage = "No dues for non student type"
		paymentResult.InternalErrorMessage = "iMISID:" + imisID + " " + profile.String("MemberTypeCode") + " " + profile.String("CategoryCode")
		paymentResult.CCGatewayErrorMessage = "Not submitted to gateway"
		paymentResult.CCGatewayRef = "Not submitted to gateway"
	}

	profile["iMISID"] = imisID

	if paymentResult.ReturnCode == compass.PaymentReturnSuccess {
		account := profile.Account()
		actualUsername, err := s.CreateCredentials(imisID, account.Username, account.NewPassword)
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
		profile["Account"] = map[string]interface{}{
			"username":    actualUsername,
			"oldPassword": account.OldPassword,
			"newPassword": account.NewPassword,
		}

		newProfile := s.UpdateMemberProfile(profile)
		retVal.Profile = newProfile.Profile
		retVal.Status = StatusSuccess
		retVal.Message = paymentResult.CCGatewayRef
		retVal.CustomerMessage = "Your account is created with login: " + actualUsername
	} else {
		retVal.Profile = profile
		retVal.Message = paymentResult.ErrorMessage + " | " + paymentResult.InternalErrorMessage + " | " + paymentResult.CCGatewayErrorMessage
		retVal.CustomerMessage = failureCustomerMessage(paymentResult)
	}
	return retVal
}

// BillMember raises the member's outstanding dues lines without taking
// payment, billing them first when none exist yet.
func (s *Service) BillMember(imisID string) *JoinResult {
	retVal := &JoinResult{Profile: Profile{}, Status: StatusFailed}
	memberProfile := s.GetMemberProfileByID(imisID)
	if memberProfile.Profile.String("iMISID") == "" {
		retVal.Message = memberProfile.Message
		return retVal
	}
	duesLine := memberProfile.Profile.DuesLines()
	if duesLine == nil || len(duesLine.DuesLineItem) == 0 {
		var err error
		duesLine, err = s.billOutstandingDues(imisID,
			memberProfile.Profile.String("MemberTypeCode"), memberProfile.Profile.String("CategoryCode"))
		if err != nil {
			retVal.Message = err.Error()
			return retVal
		}
	}
	retVal.Profile = memberProfile.Profile
	if duesTotal(duesLine) > 0 {
		retVal.Status = StatusSuccess
	}
	return retVal
}

// billOutstandingDues quotes the fees due, then bills them so the dues
// lines exist to pay against.
func (s *Service) billOutstandingDues(imisID, memberTypeCode, categoryCode string) (*compass.DuesLines, error) {
	req := &compass.JoinFeeRequest{
		MemberTypeCode: memberTypeCode,
		CategoryCode:   categoryCode,
		ID:             imisID,
		AsOf:           s.BillFromDate(),
	}
	breakdown, err := s.api.GetJoinFeeBreakdown(req)
	if err != nil {
		return nil, err
	}
	var codes []string
	if breakdown != nil {
		for _, detail := range breakdown.Details {
			codes = append(codes, detail.ProductCode)
		}
	}
	req.ProductCodes = strings.Join(codes, ",")
	billed, err := s.api.BillJoinFeesAsOf(req)
	if err != nil {
		return nil, err
	}
	if billed == nil {
		return nil, nil
	}
	return billed.OutstandingDuesPayableOnWeb, nil
}

// payJoinDues allocates a payment across the dues lines pro rata and
// submits it with the member type and category the contact becomes on
// success.
func (s *Service) payJoinDues(imisID string, profile Profile, duesLine *compass.DuesLines, gateway *compass.PaymentGateway, paymentAmount, totalAmount float64) (*compass.PaymentResult, error) {
	gateway.PaymentAmount = paymentAmount
	allocateDues(duesLine, paymentAmount, totalAmount)
	return s.api.PayJoinDues(profile.String("MemberTypeCode"), profile.String("CategoryCode"), imisID, duesLine, gateway)
}

// payDues allocates a renewal payment across the dues lines pro rata and
// submits it.
func (s *Service) payDues(imisID string, duesLine *compass.DuesLines, gateway *compass.PaymentGateway, paymentAmount, totalAmount float64) (*compass.PaymentResult, error) {
	gateway.PaymentAmount = paymentAmount
	allocateDues(duesLine, paymentAmount, totalAmount)
	return s.api.PayDues(imisID, duesLine, gateway)
}

// allocateDues spreads paymentAmount across the dues lines in proportion to
// each line's balance.
func allocateDues(duesLine *compass.DuesLines, paymentAmount, totalAmount float64) {
	ratio := paymentAmount / totalAmount
	for _, item := range duesLine.DuesLineItem {
		item.AmountToPay = item.Balance * ratio
	}
}

func duesTotal(duesLine *compass.DuesLines) float64 {
	if duesLine == nil {
		return 0
	}
	total := 0.0
	for _, item := range duesLine.DuesLineItem {
		total += item.Balance
	}
	return total
}

func paymentGateway(payment *Payment, section string, amount float64) *compass.PaymentGateway {
	return &compass.PaymentGateway{
		BatchCreatedBy:   "WEB" + section,
		CashAccountCode:  payment.CardType + "_" + section,
		CardholderName:   payment.CardholderName,
		CreditCardNumber: payment.CreditCardNumber,
		ExpiryMonth:      payment.ExpiryMonth,
		ExpiryYear:       payment.ExpiryYear,
		CCV:              payment.CCV,
		PaymentAmount:    amount,
	}
}

// failureCustomerMessage classifies a failed payment into the message shown
// to the member.
func failureCustomerMessage(paymentResult *compass.PaymentResult) string {
	switch {
	case paymentResult.SuccessfulCCDeduction:
		// Money was taken but something failed afterwards.
		return "Error has occurred, please contact membership service asap"
	case strings.Contains(paymentResult.InternalErrorMessage, "pending payment for dues already exists"):
		return "A payment is pending for your account"
	default:
		return "Error has occurred, please try again"
	}
}
