// Package membership implements the member-facing integration with the iMIS
// Compass CRM: authentication, access-level decisions, profile translation
// between the flat web shape and the Compass contract, and the join/renew/
// billing lifecycle.
//
// Public operations never return Go errors. Each returns a result struct
// with a Status, an internal Message for diagnostics and, where one is
// defined, a CustomerMessage safe to show to the member. Remote faults are
// folded into Message at the operation boundary.
package membership

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"

	"github.com/amadigital/compass/libs/clock"
	"github.com/amadigital/compass/libs/compass"
)

// AccessLevel is the coarse authorization tier granted after login,
// independent of raw authentication success.
type AccessLevel string

const (
	// AccessNone denies login entirely.
	AccessNone AccessLevel = ""
	// AccessLoginOnly allows login for profile/renewal only; member content
	// stays off limits.
	AccessLoginOnly AccessLevel = "LOGINONLY"
	// AccessMember grants full member content access.
	AccessMember AccessLevel = "MEMBER"
	// AccessStudent grants student member content access.
	AccessStudent AccessLevel = "STUDENT"
	// AccessAMAQCommunity grants access for AMA Queensland community
	// (non-member) accounts.
	AccessAMAQCommunity AccessLevel = "AMAQCOMMUNITY"
	// AccessAMSA grants access to the AMSA website content.
	AccessAMSA AccessLevel = "AMSA"
)

// Operation and login statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Login modes gate which access levels count as a successful login.
const (
	LoginModeAMAM = "AMAM" // default web login
	LoginModeAMAA = "AMAA" // broader association login
	LoginModeAMSA = "AMSA" // AMSA website login
)

// Profile is the flat web-facing member profile: field name to value. The
// "Address" key holds a list of address maps, "Account" holds credentials
// and is never forwarded to the remote profile.
type Profile map[string]interface{}

// String returns the value under key rendered as a string.
func (p Profile) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the value under key interpreted as a boolean. String values
// of "TRUE" (any case) are true, everything else false.
func (p Profile) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "TRUE")
	}
	return false
}

// DuesLines returns the outstanding dues carried on the profile, if any.
func (p Profile) DuesLines() *compass.DuesLines {
	dues, _ := p["OutstandingDuesPayableOnWeb"].(*compass.DuesLines)
	return dues
}

// Account is the credential block carried on a web profile.
type Account struct {
	Username    string `mapstructure:"username"`
	OldPassword string `mapstructure:"oldPassword"`
	NewPassword string `mapstructure:"newPassword"`
}

// Account returns the profile's credential block, or an empty one.
func (p Profile) Account() *Account {
	account := &Account{}
	if raw, ok := p["Account"]; ok {
		decodeLoose(raw, account)
	}
	return account
}

// Payment carries the credit-card details and billing method for a dues
// payment.
type Payment struct {
	BillingMethod    string `mapstructure:"billing_method"`
	CardType         string `mapstructure:"CardType"`
	CardholderName   string `mapstructure:"CardholderName"`
	CreditCardNumber string `mapstructure:"CreditCardNumber"`
	ExpiryMonth      string `mapstructure:"ExpiryMonth"`
	ExpiryYear       string `mapstructure:"ExpiryYear"`
	CCV              string `mapstructure:"CCV"`
}

// Billing methods.
const (
	BillingAnnual  = "Annual"
	BillingMonthly = "Monthly"
)

// LoginResult is the outcome of an authentication attempt.
type LoginResult struct {
	Profile         Profile
	LoginStatus     string
	AccessLevel     AccessLevel
	Message         string
	CustomerMessage string
	SSOToken        *compass.SSOToken
}

// ProfileResult is a fetched profile with its derived access decision.
type ProfileResult struct {
	Profile         Profile
	AccessLevel     AccessLevel
	Message         string
	CustomerMessage string
}

// UpdateResult is the outcome of a profile update.
type UpdateResult struct {
	Profile         Profile
	Status          string
	Message         string
	CustomerMessage string
}

// JoinResult is the outcome of a join, renewal or billing operation.
type JoinResult struct {
	Profile         Profile
	Status          string
	AccessLevel     AccessLevel
	Message         string
	CustomerMessage string
}

// AccountOpResult is the outcome of a credential operation.
type AccountOpResult struct {
	Status          string
	Message         string
	CustomerMessage string
}

// Service orchestrates membership operations against the Compass gateway.
// It holds no mutable state; every operation fetches what it needs from the
// CRM, which remains the single source of truth.
type Service struct {
	api compass.API
	clk clock.Clock
	log logrus.FieldLogger
}

// New returns a Service backed by the given gateway. A nil clock falls back
// to system time and a nil logger to the logrus standard logger.
func New(api compass.API, clk clock.Clock, log logrus.FieldLogger) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{api: api, clk: clk, log: log}
}

// decodeLoose decodes input into output matching only the keys present in
// the input, leaving other fields untouched. Weak typing mirrors the loose
// values web forms submit ("TRUE" for a bool, numbers as strings).
func decodeLoose(input, output interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
