// Package compassmock provides a hand-written mock of the compass API for
// unit tests.
package compassmock

import (
	"testing"

	"github.com/amadigital/compass/libs/compass"
	"github.com/amadigital/compass/libs/testhelpers/mock"
)

var _ compass.API = &Client{}

// Client is a mock compass.API driven by recorded expectations.
type Client struct {
	*mock.Expector
}

// New returns a mock client bound to t.
func New(t *testing.T) *Client {
	return &Client{
		&mock.Expector{T: t},
	}
}

func (c *Client) Authenticate(userName, password string) (*compass.AuthenticateResult, error) {
	rets := c.Record(userName, password)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.AuthenticateResult), mock.SafeError(rets[1])
}

func (c *Client) GetMemberProfile(id string) (*compass.MemberProfile, error) {
	rets := c.Record(id)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.MemberProfile), mock.SafeError(rets[1])
}

func (c *Client) GetMemberProfileByUsername(userName string) (*compass.MemberProfile, error) {
	rets := c.Record(userName)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.MemberProfile), mock.SafeError(rets[1])
}

func (c *Client) UpdateMemberProfile(profile *compass.MemberProfile) (*compass.MemberProfile, error) {
	rets := c.Record(profile)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.MemberProfile), mock.SafeError(rets[1])
}

func (c *Client) NewMemberProfile(profile *compass.MemberProfile) (*compass.MemberProfile, error) {
	rets := c.Record(profile)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.MemberProfile), mock.SafeError(rets[1])
}

func (c *Client) Search(definition string, filters map[string]string) (map[string]string, error) {
	rets := c.Record(definition, filters)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(map[string]string), mock.SafeError(rets[1])
}

func (c *Client) GetLookup(tableName string) (map[string]string, error) {
	rets := c.Record(tableName)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(map[string]string), mock.SafeError(rets[1])
}

func (c *Client) GetUsernameFromIMISID(imisID string) (string, error) {
	rets := c.Record(imisID)
	if len(rets) == 0 {
		return "", nil
	}
	return rets[0].(string), mock.SafeError(rets[1])
}

func (c *Client) GetDemographicSchema() (map[string]*compass.UDFieldSchema, error) {
	rets := c.Record()
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(map[string]*compass.UDFieldSchema), mock.SafeError(rets[1])
}

func (c *Client) DupCheck(userName string) (bool, error) {
	rets := c.Record(userName)
	if len(rets) == 0 {
		return false, nil
	}
	return rets[0].(bool), mock.SafeError(rets[1])
}

func (c *Client) ChangeUsername(newUsername, currentPassword, imisID string) error {
	rets := c.Record(newUsername, currentPassword, imisID)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}

func (c *Client) ChangePassword(currentPassword, newPassword, username string) error {
	rets := c.Record(currentPassword, newPassword, username)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}

func (c *Client) ResetPassword(password, username string) error {
	rets := c.Record(password, username)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}

func (c *Client) AddCredentials(username, password, imisID string) error {
	rets := c.Record(username, password, imisID)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}

func (c *Client) GetJoinFeeBreakdown(req *compass.JoinFeeRequest) (*compass.JoinFeeBreakdown, error) {
	rets := c.Record(req)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.JoinFeeBreakdown), mock.SafeError(rets[1])
}

func (c *Client) BillJoinFeesAsOf(req *compass.JoinFeeRequest) (*compass.MemberProfile, error) {
	rets := c.Record(req)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.MemberProfile), mock.SafeError(rets[1])
}

func (c *Client) DetermineEFTScheduleForDues(imisID, freq string, totalDuesPayable float64) (*compass.EFTSchedule, error) {
	rets := c.Record(imisID, freq, totalDuesPayable)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.EFTSchedule), mock.SafeError(rets[1])
}

func (c *Client) DetermineEFTScheduleForDuesForPeriod(freq string, totalDuesPayable float64, billedFrom, billedTo string) (*compass.EFTSchedule, error) {
	rets := c.Record(freq, totalDuesPayable, billedFrom, billedTo)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.EFTSchedule), mock.SafeError(rets[1])
}

func (c *Client) SetupDuesEFTFromGateway(req *compass.DuesEFTRequest) error {
	rets := c.Record(req)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}

func (c *Client) PayJoinDues(memberTypeCode, categoryCode, imisID string, payableDues *compass.DuesLines, gateway *compass.PaymentGateway) (*compass.PaymentResult, error) {
	rets := c.Record(memberTypeCode, categoryCode, imisID, payableDues, gateway)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.PaymentResult), mock.SafeError(rets[1])
}

func (c *Client) PayDues(imisID string, payableDues *compass.DuesLines, gateway *compass.PaymentGateway) (*compass.PaymentResult, error) {
	rets := c.Record(imisID, payableDues, gateway)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.PaymentResult), mock.SafeError(rets[1])
}

func (c *Client) SaveActivity(activity *compass.Activity) (*compass.ActivityResult, error) {
	rets := c.Record(activity)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.ActivityResult), mock.SafeError(rets[1])
}

func (c *Client) IQAQueryWithParameters(queryPath string, parameters []string) ([]map[string]string, error) {
	rets := c.Record(queryPath, parameters)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].([]map[string]string), mock.SafeError(rets[1])
}

func (c *Client) GetToken(imisID string) (*compass.SSOToken, error) {
	rets := c.Record(imisID)
	if len(rets) == 0 {
		return nil, nil
	}
	return rets[0].(*compass.SSOToken), mock.SafeError(rets[1])
}

func (c *Client) ValidateToken(ssoToken string) (string, error) {
	rets := c.Record(ssoToken)
	if len(rets) == 0 {
		return "", nil
	}
	return rets[0].(string), mock.SafeError(rets[1])
}

func (c *Client) GetUserName(loginToken string) (string, error) {
	rets := c.Record(loginToken)
	if len(rets) == 0 {
		return "", nil
	}
	return rets[0].(string), mock.SafeError(rets[1])
}

func (c *Client) Logout(loginToken string) error {
	rets := c.Record(loginToken)
	if len(rets) == 0 {
		return nil
	}
	return mock.SafeError(rets[0])
}
