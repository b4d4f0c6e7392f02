package membership

import (
	"github.com/sirupsen/logrus"

	"github.com/amadigital/compass/libs/compass"
)

// RenewalDetails summarizes what a renewal would cost, annually and by
// monthly instalment.
type RenewalDetails struct {
	TotalAmount      float64
	FirstDate        string
	FinalDate        string
	InstalmentAmount float64
	PaymentUpfront   float64
	AlreadyOnEFT     bool
}

// RenewalDetailsResult carries the renewal quote together with the profile
// it was derived from.
type RenewalDetailsResult struct {
	Profile         Profile
	Status          string
	AccessLevel     AccessLevel
	RenewalDetails  *RenewalDetails
	EFTDetails      map[string]string
	Message         string
	CustomerMessage string
}

// RenewMembership processes a renewal: pay the outstanding dues in full or
// register a monthly EFT mandate, then write the profile back. Monthly
// paying members may renew without payment details to update their profile.
func (s *Service) RenewMembership(profile Profile, payment *Payment) *JoinResult {
	retVal := &JoinResult{Profile: Profile{}, Status: StatusFailed}
	logMessage := "Renewal "

	memberProfile := s.GetMemberProfileByID(profile.String("iMISID"))
	imisID := memberProfile.Profile.String("iMISID")
	if imisID == "" {
		retVal.Message = memberProfile.Message
		return retVal
	}

	paymentResult := &compass.PaymentResult{}
	duesLine := memberProfile.Profile.DuesLines()
	if duesLine != nil && len(duesLine.DuesLineItem) != 0 {
		totalAmount := duesTotal(duesLine)
		if totalAmount > 0 && payment != nil {
			gateway := paymentGateway(payment, profile.String("ChapterCode"), totalAmount)
			if payment.BillingMethod == BillingAnnual {
				logMessage += "Paying Annual "
				result, err := s.payDues(imisID, duesLine, gateway, totalAmount, totalAmount)
				if err != nil {
					retVal.Message = err.Error()
					return retVal
				}
				if result != nil {
					paymentResult = result
				}
			} else {
				logMessage += "Paying Monthly EFT "
				schedule, err := s.api.DetermineEFTScheduleForDues(imisID, BillingMonthly, totalAmount)
				if err != nil {
					retVal.Message = err.Error()
					return retVal
				}
				if schedule == nil {
					retVal.Message = "Unexpected response result"
					return retVal
				}
				firstDate := schedule.FirstInstalmentDate
				if schedule.AlreadyRegisteredForDuesEFT {
					// Keep the deduction date of the existing mandate.
					if eftDetails := s.eftDetailsForDues(imisID); eftDetails != nil {
						firstDate = eftDetails["NextInstalmentDate"]
					}
				}
				gateway.PaymentAmount = schedule.InstalmentAmount
				if err := s.api.SetupDuesEFTFromGateway(&compass.DuesEFTRequest{
					ID:                   imisID,
					Gateway:              gateway,
					Freq:                 BillingMonthly,
					FirstInstalmentDate:  firstDate,
					FinalInstalmentDate:  eftFinalInstalmentDate,
					TieToMerchantAccount: cashAccountCodes[profile.String("ChapterCode")],
				}); err != nil {
					retVal.Message = err.Error()
					return retVal
				}
				paymentResult.ReturnCode = compass.PaymentReturnSuccess
			}
		} else {
			logMessage += "No payment "
			paymentResult.ReturnCode = compass.PaymentReturnSuccess
		}
	} else {
		// Shouldn't happen for a renewal, but not fatal.
		logMessage += "No duesline "
		paymentResult.ReturnCode = compass.PaymentReturnSuccess
	}

	logMessage += paymentResult.ReturnCode
	if paymentResult.ReturnCode == compass.PaymentReturnSuccess {
		newProfile := s.UpdateMemberProfile(profile)
		retVal.Profile = newProfile.Profile
		retVal.Status = StatusSuccess
		retVal.Message = logMessage + " " + paymentResult.CCGatewayRef
		retVal.CustomerMessage = "Thank you"
		s.log.WithFields(logrus.Fields{"imis_id": imisID}).Info(logMessage)
	} else {
		retVal.Profile = profile
		retVal.Message = paymentResult.ErrorMessage + " | " + paymentResult.InternalErrorMessage + " | " + paymentResult.CCGatewayErrorMessage + " | " + logMessage
		retVal.CustomerMessage = failureCustomerMessage(paymentResult)
		s.log.WithFields(logrus.Fields{"imis_id": imisID}).Warn(retVal.Message)
	}
	return retVal
}

// MemberRenewalDetails quotes a member's renewal: total dues, the monthly
// instalment schedule and any existing EFT registration.
func (s *Service) MemberRenewalDetails(imisID string) *RenewalDetailsResult {
	retVal := &RenewalDetailsResult{Profile: Profile{}, Status: StatusFailed}
	profile := s.GetMemberProfileByID(imisID)
	if profile.Profile.String("iMISID") == "" {
		retVal.Message = profile.Message
		retVal.CustomerMessage = "Unable to retrieve renewal details, please try again later."
		return retVal
	}

	details := &RenewalDetails{TotalAmount: duesTotal(profile.Profile.DuesLines())}
	schedule, err := s.api.DetermineEFTScheduleForDues(imisID, BillingMonthly, details.TotalAmount)
	if err != nil {
		retVal.Message = err.Error()
		retVal.CustomerMessage = "Unable to retrieve renewal details, please try again later."
		return retVal
	}
	if schedule != nil {
		details.FirstDate = schedule.FirstInstalmentDate
		details.FinalDate = schedule.FinalInstalmentDate
		details.InstalmentAmount = schedule.InstalmentAmount
		details.PaymentUpfront = schedule.PaymentAmountUpfront
		details.AlreadyOnEFT = schedule.AlreadyRegisteredForDuesEFT
	}

	// Dues lines are internal to the payment flow and stay off the quote.
	delete(profile.Profile, "OutstandingDuesPayableOnWeb")

	retVal.Status = StatusSuccess
	retVal.Profile = profile.Profile
	retVal.AccessLevel = profile.AccessLevel
	retVal.RenewalDetails = details
	retVal.EFTDetails = s.eftDetailsForDues(imisID)
	return retVal
}
