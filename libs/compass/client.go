// Package compass is a client for the iMIS Compass CRM web services: the
// Compass WCF service that exposes member records, credentials, dues billing
// and payments, and the older ASMX membership web service used for
// cookie-based single sign-on.
package compass

import (
	"net/http"

	"github.com/samuel/go-metrics/metrics"
)

const (
	defaultServiceLocation    = "https://compass.ama.com.au/CompassWCF.CompassService.svc/basic"
	defaultMembershipLocation = "https://member.ama.com.au/AsiCommon/Services/Membership/MembershipWebService.asmx"

	compassActionBase    = "http://tempuri.org/ICompassService/"
	membershipActionBase = "http://tempuri.org/"

	// loginCookieName keys the session cookie the membership web service
	// expects for GetUserName and Logout.
	loginCookieName = "Login"
)

// API is the surface of the remote services consumed by the membership
// packages. All methods block until the remote call completes or fails.
type API interface {
	Authenticate(userName, password string) (*AuthenticateResult, error)
	GetMemberProfile(id string) (*MemberProfile, error)
	GetMemberProfileByUsername(userName string) (*MemberProfile, error)
	UpdateMemberProfile(profile *MemberProfile) (*MemberProfile, error)
	NewMemberProfile(profile *MemberProfile) (*MemberProfile, error)
	Search(definition string, filters map[string]string) (map[string]string, error)
	GetLookup(tableName string) (map[string]string, error)
	GetUsernameFromIMISID(imisID string) (string, error)
	GetDemographicSchema() (map[string]*UDFieldSchema, error)
	DupCheck(userName string) (bool, error)
	ChangeUsername(newUsername, currentPassword, imisID string) error
	ChangePassword(currentPassword, newPassword, username string) error
	ResetPassword(password, username string) error
	AddCredentials(username, password, imisID string) error
	GetJoinFeeBreakdown(req *JoinFeeRequest) (*JoinFeeBreakdown, error)
	BillJoinFeesAsOf(req *JoinFeeRequest) (*MemberProfile, error)
	DetermineEFTScheduleForDues(imisID, freq string, totalDuesPayable float64) (*EFTSchedule, error)
	DetermineEFTScheduleForDuesForPeriod(freq string, totalDuesPayable float64, billedFrom, billedTo string) (*EFTSchedule, error)
	SetupDuesEFTFromGateway(req *DuesEFTRequest) error
	PayJoinDues(memberTypeCode, categoryCode, imisID string, payableDues *DuesLines, gateway *PaymentGateway) (*PaymentResult, error)
	PayDues(imisID string, payableDues *DuesLines, gateway *PaymentGateway) (*PaymentResult, error)
	SaveActivity(activity *Activity) (*ActivityResult, error)
	IQAQueryWithParameters(queryPath string, parameters []string) ([]map[string]string, error)
	GetToken(imisID string) (*SSOToken, error)
	ValidateToken(ssoToken string) (string, error)
	GetUserName(loginToken string) (string, error)
	Logout(loginToken string) error
}

// Config carries the endpoints and service-account credentials for a Client.
type Config struct {
	// ServiceLocation is the Compass WCF basic endpoint.
	ServiceLocation string
	// MembershipServiceLocation is the ASMX membership web service endpoint.
	MembershipServiceLocation string
	// Username and Password authenticate the web-service account, not a
	// member.
	Username string
	Password string
	// InsecureSkipVerify disables TLS verification for hosts with broken
	// certificates.
	InsecureSkipVerify bool
}

// Client talks to the Compass and membership web services.
type Client struct {
	compass    *soapClient
	membership *soapClient
}

var _ API = (*Client)(nil)

// NewClient returns a Client for the configured endpoints. Metrics for each
// service are registered under "compass" and "membership" scopes when a
// registry is provided.
func NewClient(cfg *Config, metricsRegistry metrics.Registry) *Client {
	serviceLocation := cfg.ServiceLocation
	if serviceLocation == "" {
		serviceLocation = defaultServiceLocation
	}
	membershipLocation := cfg.MembershipServiceLocation
	if membershipLocation == "" {
		membershipLocation = defaultMembershipLocation
	}
	var compassRegistry, membershipRegistry metrics.Registry
	if metricsRegistry != nil {
		compassRegistry = metricsRegistry.Scope("compass")
		membershipRegistry = metricsRegistry.Scope("membership")
	}
	return &Client{
		compass:    newSOAPClient(serviceLocation, compassActionBase, cfg.Username, cfg.Password, cfg.InsecureSkipVerify, compassRegistry),
		membership: newSOAPClient(membershipLocation, membershipActionBase, "", "", cfg.InsecureSkipVerify, membershipRegistry),
	}
}

// Authenticate checks a member's web credentials.
func (c *Client) Authenticate(userName, password string) (*AuthenticateResult, error) {
	res := &authenticateResponse{}
	if err := c.compass.makeSoapRequest("Authenticate", &authenticateRequest{UserName: userName, Password: password}, res); err != nil {
		return nil, err
	}
	return &res.Result, nil
}

// GetMemberProfile fetches a member profile by iMIS ID.
func (c *Client) GetMemberProfile(id string) (*MemberProfile, error) {
	res := &getMemberProfileResponse{}
	if err := c.compass.makeSoapRequest("GetMemberProfile", &getMemberProfileRequest{ID: id}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// GetMemberProfileByUsername fetches a member profile by web username.
func (c *Client) GetMemberProfileByUsername(userName string) (*MemberProfile, error) {
	res := &getMemberProfileByUsernameResponse{}
	if err := c.compass.makeSoapRequest("GetMemberProfileByUsername", &getMemberProfileByUsernameRequest{UserName: userName}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// UpdateMemberProfile writes a member profile and returns the stored record.
func (c *Client) UpdateMemberProfile(profile *MemberProfile) (*MemberProfile, error) {
	res := &updateMemberProfileResponse{}
	if err := c.compass.makeSoapRequest("UpdateMemberProfile", &updateMemberProfileRequest{Profile: profile}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// NewMemberProfile creates a member record and returns it with its assigned
// iMIS ID.
func (c *Client) NewMemberProfile(profile *MemberProfile) (*MemberProfile, error) {
	res := &newMemberProfileResponse{}
	if err := c.compass.makeSoapRequest("NewMemberProfile", &newMemberProfileRequest{Profile: profile}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// Search runs a named search definition with the given filters and returns
// the first generic data row as key/value pairs. The result shape varies by
// definition; callers interpret the keys.
func (c *Client) Search(definition string, filters map[string]string) (map[string]string, error) {
	req := &searchRequest{}
	req.Request.Definition = definition
	for key, value := range filters {
		req.Request.Filters.Filter = append(req.Request.Filters.Filter, searchFilter{ParameterName: key, Value: value})
	}
	res := &searchResponse{}
	if err := c.compass.makeSoapRequest("Search", req, res); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, row := range res.Result.Results.Rows {
		for _, pair := range row.Data.Pairs {
			if pair.Key != "" || pair.Value != "" {
				out[pair.Key] = pair.Value
			}
		}
		// Consumers of Search only ever read a single row.
		break
	}
	return out, nil
}

// GetLookup returns the contents of a reference table (CASH_ACCOUNT,
// CHAPTER, MEMBER_TYPE, CATEGORY, ADDRESSPURPOSE, ...).
func (c *Client) GetLookup(tableName string) (map[string]string, error) {
	res := &getLookupResponse{}
	if err := c.compass.makeSoapRequest("GetLookup", &getLookupRequest{TableName: tableName}, res); err != nil {
		return nil, err
	}
	out := map[string]string{}
	for _, pair := range res.Result.Pairs {
		if pair.Key != "" || pair.Value != "" {
			out[pair.Key] = pair.Value
		}
	}
	return out, nil
}

// GetUsernameFromIMISID resolves the web username for an iMIS ID.
func (c *Client) GetUsernameFromIMISID(imisID string) (string, error) {
	res := &getUsernameFromIMISIDResponse{}
	if err := c.compass.makeSoapRequest("GetUsernameFromiMISID", &getUsernameFromIMISIDRequest{IMISID: imisID}, res); err != nil {
		return "", err
	}
	return res.Result, nil
}

// GetDemographicSchema fetches the user-defined field schema flattened to a
// field name -> schema mapping.
func (c *Client) GetDemographicSchema() (map[string]*UDFieldSchema, error) {
	res := &getDemographicSchemaResponse{}
	if err := c.compass.makeSoapRequest("GetDemographicSchema", &getDemographicSchemaRequest{}, res); err != nil {
		return nil, err
	}
	schema := map[string]*UDFieldSchema{}
	for _, table := range res.Result.Tables.Entries {
		for _, field := range table.Value.Fields.Entries {
			schema[field.Key] = &UDFieldSchema{
				TableName:       table.Value.Name,
				DataType:        field.Value.DataType,
				FieldLength:     field.Value.FieldLength,
				ValidationTable: field.Value.ValidationTable,
			}
		}
	}
	return schema, nil
}

// DupCheck reports whether a username is already in use.
func (c *Client) DupCheck(userName string) (bool, error) {
	res := &dupCheckResponse{}
	if err := c.compass.makeSoapRequest("DupCheck", &dupCheckRequest{UserName: userName}, res); err != nil {
		return false, err
	}
	return res.Result, nil
}

// ChangeUsername changes a member's web username. The account password is
// required and the account must not be disabled or locked out.
func (c *Client) ChangeUsername(newUsername, currentPassword, imisID string) error {
	return c.compass.makeSoapRequest("ChangeUsername", &changeUsernameRequest{
		NewUsername:     newUsername,
		CurrentPassword: currentPassword,
		IMISID:          imisID,
	}, nil)
}

// ChangePassword changes a member's password given their current one. The ID
// parameter is the web username, not the iMIS ID.
func (c *Client) ChangePassword(currentPassword, newPassword, username string) error {
	return c.compass.makeSoapRequest("ChangePassword", &changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
		ID:              username,
	}, nil)
}

// ResetPassword sets a member's password without the current one.
func (c *Client) ResetPassword(password, username string) error {
	return c.compass.makeSoapRequest("ResetPassword", &resetPasswordRequest{
		Password: password,
		UserID:   username,
	}, nil)
}

// AddCredentials creates web login credentials for a member record.
func (c *Client) AddCredentials(username, password, imisID string) error {
	return c.compass.makeSoapRequest("AddCredentials", &addCredentialsRequest{
		Username: username,
		Password: password,
		ID:       imisID,
	}, nil)
}

// GetJoinFeeBreakdown quotes join fees for a member type and category.
func (c *Client) GetJoinFeeBreakdown(req *JoinFeeRequest) (*JoinFeeBreakdown, error) {
	res := &getJoinFeeBreakdownResponse{}
	if err := c.compass.makeSoapRequest("GetJoinFeeBreakdown", &getJoinFeeBreakdownRequest{
		MemberTypeCode: req.MemberTypeCode,
		CategoryCode:   req.CategoryCode,
		ID:             req.ID,
		ProductCodes:   req.ProductCodes,
		AsOf:           req.AsOf,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// BillJoinFeesAsOf bills join fees onto the member record and returns the
// profile carrying the resulting outstanding dues lines.
func (c *Client) BillJoinFeesAsOf(req *JoinFeeRequest) (*MemberProfile, error) {
	res := &billJoinFeesAsOfResponse{}
	if err := c.compass.makeSoapRequest("BillJoinFeesAsOf", &billJoinFeesAsOfRequest{
		MemberTypeCode: req.MemberTypeCode,
		CategoryCode:   req.CategoryCode,
		ID:             req.ID,
		ProductCodes:   req.ProductCodes,
		AsOf:           req.AsOf,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// DetermineEFTScheduleForDues computes the instalment schedule for a member's
// outstanding dues.
func (c *Client) DetermineEFTScheduleForDues(imisID, freq string, totalDuesPayable float64) (*EFTSchedule, error) {
	res := &determineEFTScheduleForDuesResponse{}
	if err := c.compass.makeSoapRequest("DetermineEFTScheduleForDues", &determineEFTScheduleForDuesRequest{
		IMISID:           imisID,
		Freq:             freq,
		TotalDuesPayable: totalDuesPayable,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// DetermineEFTScheduleForDuesForPeriod computes an instalment schedule for an
// arbitrary billing period, used for fee quotes before a record exists.
func (c *Client) DetermineEFTScheduleForDuesForPeriod(freq string, totalDuesPayable float64, billedFrom, billedTo string) (*EFTSchedule, error) {
	res := &determineEFTScheduleForDuesForPeriodResponse{}
	if err := c.compass.makeSoapRequest("DetermineEFTScheduleForDuesForPeriod", &determineEFTScheduleForDuesForPeriodRequest{
		Freq:             freq,
		TotalDuesPayable: totalDuesPayable,
		BilledFrom:       billedFrom,
		BilledTo:         billedTo,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// SetupDuesEFTFromGateway registers a recurring dues EFT mandate.
func (c *Client) SetupDuesEFTFromGateway(req *DuesEFTRequest) error {
	return c.compass.makeSoapRequest("SetupDuesEFTFromGateway", &setupDuesEFTFromGatewayRequest{
		ID:                   req.ID,
		Gateway:              req.Gateway,
		Freq:                 req.Freq,
		FirstInstalmentDate:  req.FirstInstalmentDate,
		FinalInstalmentDate:  req.FinalInstalmentDate,
		TieToMerchantAccount: req.TieToMerchantAccount,
	}, nil)
}

// PayJoinDues submits a join payment. On full payment the member's type,
// category and paid-through date are updated by the service.
func (c *Client) PayJoinDues(memberTypeCode, categoryCode, imisID string, payableDues *DuesLines, gateway *PaymentGateway) (*PaymentResult, error) {
	res := &payJoinDuesResponse{}
	if err := c.compass.makeSoapRequest("PayJoinDues", &payJoinDuesRequest{
		MemberTypeCode: memberTypeCode,
		CategoryCode:   categoryCode,
		ID:             imisID,
		PayableDues:    payableDues,
		Gateway:        gateway,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// PayDues submits a renewal payment against existing dues lines.
func (c *Client) PayDues(imisID string, payableDues *DuesLines, gateway *PaymentGateway) (*PaymentResult, error) {
	res := &payDuesResponse{}
	if err := c.compass.makeSoapRequest("PayDues", &payDuesRequest{
		ID:          imisID,
		PayableDues: payableDues,
		Gateway:     gateway,
	}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// SaveActivity records a contact activity.
func (c *Client) SaveActivity(activity *Activity) (*ActivityResult, error) {
	res := &saveActivityResponse{}
	if err := c.compass.makeSoapRequest("SaveActivity", &saveActivityRequest{Activity: activity}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// IQAQueryWithParameters runs a stored IQA query with positional parameters
// and returns the rows keyed by the result header column names.
func (c *Client) IQAQueryWithParameters(queryPath string, parameters []string) ([]map[string]string, error) {
	req := &iqaQueryRequest{}
	req.Request.QueryLocation = queryPath
	for i, value := range parameters {
		req.Request.Parameters = append(req.Request.Parameters, iqaParameter{Key: i, Value: value})
	}
	res := &iqaQueryResponse{}
	if err := c.compass.makeSoapRequest("IQAQueryWithParameters", req, res); err != nil {
		return nil, err
	}
	header := res.Result.Header.Columns.ResultHeaderColumn
	if len(header) == 0 {
		return nil, nil
	}
	var rows []map[string]string
	for _, row := range res.Result.Rows.ResultRow {
		item := map[string]string{}
		for i, col := range row.Columns.ResultDataColumn {
			if i < len(header) {
				item[header[i].Name] = col.Value
			}
		}
		rows = append(rows, item)
	}
	return rows, nil
}

// GetToken issues an encrypted SSO token for a member.
func (c *Client) GetToken(imisID string) (*SSOToken, error) {
	res := &getTokenResponse{}
	if err := c.compass.makeSoapRequest("GetToken", &getTokenRequest{IMISID: imisID}, res); err != nil {
		return nil, err
	}
	return res.Result, nil
}

// ValidateToken validates an SSO token and returns the service's result.
func (c *Client) ValidateToken(ssoToken string) (string, error) {
	res := &validateTokenResponse{}
	if err := c.compass.makeSoapRequest("ValidateToken", &validateTokenRequest{SSOToken: ssoToken}, res); err != nil {
		return "", err
	}
	return res.Result, nil
}

// GetUserName resolves the username for an active membership web service
// session identified by the Login cookie.
func (c *Client) GetUserName(loginToken string) (string, error) {
	res := &getUserNameResponse{}
	cookie := &http.Cookie{Name: loginCookieName, Value: loginToken}
	if err := c.membership.makeSoapRequest("GetUserName", &getUserNameRequest{}, res, cookie); err != nil {
		return "", err
	}
	return res.Result, nil
}

// Logout ends a membership web service session.
func (c *Client) Logout(loginToken string) error {
	cookie := &http.Cookie{Name: loginCookieName, Value: loginToken}
	return c.membership.makeSoapRequest("Logout", &logoutRequest{}, nil, cookie)
}
