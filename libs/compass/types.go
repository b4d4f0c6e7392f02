package compass

import "encoding/xml"

// MemberProfile is the Compass member-profile data contract. UDFields carries
// the schema-driven user-defined attributes; the three address tabs are fixed
// slots assigned by address purpose.
type MemberProfile struct {
	IMISID              string `xml:"iMISID,omitempty" mapstructure:"iMISID,omitempty"`
	Username            string `xml:"Username,omitempty" mapstructure:"Username,omitempty"`
	Prefix              string `xml:"Prefix,omitempty" mapstructure:"Prefix,omitempty"`
	Firstname           string `xml:"Firstname,omitempty" mapstructure:"Firstname,omitempty"`
	Lastname            string `xml:"Lastname,omitempty" mapstructure:"Lastname,omitempty"`
	FullName            string `xml:"FullName,omitempty" mapstructure:"FullName,omitempty"`
	CompanyName         string `xml:"CompanyName,omitempty" mapstructure:"CompanyName,omitempty"`
	CompanySort         string `xml:"CompanySort,omitempty" mapstructure:"CompanySort,omitempty"`
	DateOfBirth         string `xml:"DateOfBirth,omitempty" mapstructure:"DateOfBirth,omitempty"`
	EmailAddress        string `xml:"EmailAddress,omitempty" mapstructure:"EmailAddress,omitempty"`
	MobilePhone         string `xml:"MobilePhone,omitempty" mapstructure:"MobilePhone,omitempty"`
	MajorKey            string `xml:"MajorKey,omitempty" mapstructure:"MajorKey,omitempty"`
	StatusCode          string `xml:"StatusCode,omitempty" mapstructure:"StatusCode,omitempty"`
	MemberTypeCode      string `xml:"MemberTypeCode,omitempty" mapstructure:"MemberTypeCode,omitempty"`
	CategoryCode        string `xml:"CategoryCode,omitempty" mapstructure:"CategoryCode,omitempty"`
	CategoryDescription string `xml:"CategoryDescription,omitempty" mapstructure:"CategoryDescription,omitempty"`
	ChapterCode         string `xml:"ChapterCode,omitempty" mapstructure:"ChapterCode,omitempty"`
	PaidThruDate        string `xml:"PaidThruDate,omitempty" mapstructure:"PaidThruDate,omitempty"`
	JoinDate            string `xml:"JoinDate,omitempty" mapstructure:"JoinDate,omitempty"`

	MemberHasPendingDuesPayments bool `xml:"MemberHasPendingDuesPayments,omitempty" mapstructure:"MemberHasPendingDuesPayments,omitempty"`

	AddressTab1 *AddressTab `xml:"AddressTab1,omitempty" mapstructure:"AddressTab1,omitempty"`
	AddressTab2 *AddressTab `xml:"AddressTab2,omitempty" mapstructure:"AddressTab2,omitempty"`
	AddressTab3 *AddressTab `xml:"AddressTab3,omitempty" mapstructure:"AddressTab3,omitempty"`

	Relationships *Relationships `xml:"Relationships,omitempty" mapstructure:"-"`
	UDFields      *UDFieldList   `xml:"UDFields,omitempty" mapstructure:"-"`

	OutstandingDuesPayableOnWeb *DuesLines `xml:"OutstandingDuesPayableOnWeb,omitempty" mapstructure:"-"`
}

// Tab returns the address tab in the given slot (1-3), or nil.
func (p *MemberProfile) Tab(slot int) *AddressTab {
	switch slot {
	case 1:
		return p.AddressTab1
	case 2:
		return p.AddressTab2
	case 3:
		return p.AddressTab3
	}
	return nil
}

// SetTab assigns the address tab in the given slot (1-3).
func (p *MemberProfile) SetTab(slot int, tab *AddressTab) {
	switch slot {
	case 1:
		p.AddressTab1 = tab
	case 2:
		p.AddressTab2 = tab
	case 3:
		p.AddressTab3 = tab
	}
}

// AddressTab is one of the three fixed address slots on a member profile.
type AddressTab struct {
	AddressNumber  string `xml:"AddressNumber,omitempty" mapstructure:"AddressNumber,omitempty"`
	BadAddressCode string `xml:"BadAddressCode" mapstructure:"BadAddressCode,omitempty"`
	Address1       string `xml:"Address1,omitempty" mapstructure:"Address1,omitempty"`
	Address2       string `xml:"Address2,omitempty" mapstructure:"Address2,omitempty"`
	Address3       string `xml:"Address3,omitempty" mapstructure:"Address3,omitempty"`
	City           string `xml:"City,omitempty" mapstructure:"City,omitempty"`
	StateProvince  string `xml:"StateProvince,omitempty" mapstructure:"StateProvince,omitempty"`
	PostalCode     string `xml:"PostalCode,omitempty" mapstructure:"PostalCode,omitempty"`
	Country        string `xml:"Country,omitempty" mapstructure:"Country,omitempty"`
	Phone          string `xml:"Phone,omitempty" mapstructure:"Phone,omitempty"`
	Fax            string `xml:"Fax,omitempty" mapstructure:"Fax,omitempty"`
	EmailAddress   string `xml:"EmailAddress,omitempty" mapstructure:"EmailAddress,omitempty"`
	Purpose        string `xml:"Purpose,omitempty" mapstructure:"Purpose,omitempty"`
	ID             string `xml:"ID,omitempty" mapstructure:"ID,omitempty"`
	PreferredBill  bool   `xml:"PreferredBill,omitempty" mapstructure:"PreferredBill,omitempty"`
	PreferredShip  bool   `xml:"PreferredShip,omitempty" mapstructure:"PreferredShip,omitempty"`
}

// Relationships wraps the single supported outbound relationship collection.
type Relationships struct {
	RelationshipCollection *RelationshipCollection `xml:"RelationshipCollection,omitempty"`
}

// RelationshipCollection groups relationships under a relationship code.
// Compass only tracks one WORK relationship per member.
type RelationshipCollection struct {
	RelationshipCode string           `xml:"RelationshipCode"`
	Relationships    RelationshipList `xml:"Relationships"`
}

// RelationshipList holds the single relationship slot.
type RelationshipList struct {
	Relationship *Relationship `xml:"Relationship,omitempty"`
}

// Relationship links a member to a target contact record.
type Relationship struct {
	DeleteRelationship bool   `xml:"DeleteRelationship"`
	GroupCode          string `xml:"GroupCode"`
	ReciprocalType     string `xml:"Reciprocal_Type"`
	RelationshipType   string `xml:"Relationship_Type"`
	TargetID           string `xml:"TargetId"`
}

// UDFieldList wraps the user-defined field entries.
type UDFieldList struct {
	UDField []UDField `xml:"UDField"`
}

// UDField is a schema-driven user-defined attribute value.
type UDField struct {
	Field string     `xml:"Field"`
	Table string     `xml:"Table"`
	Value TypedValue `xml:"Value"`
}

// TypedValue carries a value with its XML schema type so the service can
// distinguish dates from plain strings.
type TypedValue struct {
	Type  string `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr"`
	Value string `xml:",chardata"`
}

// XSD value types for TypedValue.
const (
	XSDString   = "xsd:string"
	XSDDateTime = "xsd:dateTime"
)

// DuesLines is the collection of outstanding dues payable on the web.
type DuesLines struct {
	DuesLineItem []*DuesLineItem `xml:"DuesLineItem,omitempty"`
}

// DuesLineItem is a single billed dues line. AmountToPay is set by the caller
// before submitting a payment.
type DuesLineItem struct {
	ProductCode string  `xml:"ProductCode,omitempty"`
	Description string  `xml:"Description,omitempty"`
	Balance     float64 `xml:"Balance"`
	AmountToPay float64 `xml:"AmountToPay"`
}

// AuthenticateResult is the outcome of a credential check.
type AuthenticateResult struct {
	LoginSuccess    bool `xml:"LoginSuccess"`
	LockedOut       bool `xml:"LockedOut"`
	PasswordExpired bool `xml:"PasswordExpired"`
}

// UDFieldSchema describes one user-defined field from the demographic schema.
type UDFieldSchema struct {
	TableName       string
	DataType        string
	FieldLength     string
	ValidationTable string
}

// JoinFeeRequest identifies the fees to quote or bill.
type JoinFeeRequest struct {
	MemberTypeCode string
	CategoryCode   string
	ID             string
	ProductCodes   string
	AsOf           string
}

// JoinFeeSummary totals a join-fee quote.
type JoinFeeSummary struct {
	MembershipFeeIncTax float64 `xml:"MembershipFeeIncTax"`
	TotalFeesIncTax     float64 `xml:"TotalFeesIncTax"`
	MembershipEnding    string  `xml:"MembershipEnding"`
}

// JoinFeeDetail is one billable product line in a join-fee quote.
type JoinFeeDetail struct {
	ProductCode string  `xml:"ProductCode"`
	Description string  `xml:"Description,omitempty"`
	Amount      float64 `xml:"Amount,omitempty"`
}

/// JoinFeeBreakdown is a join-fee quote: the summary plus per-product details.
type JoinFeeBreakdown struct {
	Summary JoinFeeSummary  `xml:"Summary"`
	Details []JoinFeeDetail `xml:"Details>NewMemberFeeDetails"`
}

// EFTSchedule describes how dues would be collected by instalment.
type EFTSchedule struct {
	FirstInstalmentDate         string  `xml:"FirstInstalmentDate"`
	FinalInstalmentDate         string  `xml:"FinalInstalmentDate"`
	InstalmentAmount            float64 `xml:"InstalmentAmount"`
	PaymentAmountUpfront        float64 `xml:"PaymentAmountUpfront"`
	AlreadyRegisteredForDuesEFT bool    `xml:"AlreadyRegisteredForDuesEFT"`
}

// PaymentGateway is the credit-card block submitted with a dues payment.
type PaymentGateway struct {
	BatchCreatedBy   string  `xml:"BatchCreatedBy"`
	CashAccountCode  string  `xml:"CashAccountCode"`
	CardholderName   string  `xml:"CardholderName"`
	CreditCardNumber string  `xml:"CreditCardNumber"`
	ExpiryMonth      string  `xml:"ExpiryMonth"`
	ExpiryYear       string  `xml:"ExpiryYear"`
	CCV              string  `xml:"CCV"`
	PaymentAmount    float64 `xml:"PaymentAmount"`
}

// PaymentResult is the processor outcome for a dues payment.
type PaymentResult struct {
	ReturnCode            string `xml:"ReturnCode"`
	ErrorMessage          string `xml:"ErrorMessage"`
	InternalErrorMessage  string `xml:"InternalErrorMessage"`
	CCGatewayErrorMessage string `xml:"CCGatewayErrorMessage"`
	CCGatewayRef          string `xml:"CCGatewayRef"`
	SuccessfulCCDeduction bool   `xml:"SuccessfulCCDeduction"`
}

// PaymentReturnSuccess is the ReturnCode reported for an accepted payment.
const PaymentReturnSuccess = "SUCCESS"

// DuesEFTRequest registers a recurring dues EFT mandate with the gateway.
type DuesEFTRequest struct {
	ID                   string
	Gateway              *PaymentGateway
	Freq                 string
	FirstInstalmentDate  string
	FinalInstalmentDate  string
	TieToMerchantAccount string
}

// Activity is a contact activity record for SaveActivity. The service
// requires the full parameter block even when most values are empty.
type Activity struct {
	ContactID           string  `xml:"ContactId"`
	ActivityType        string  `xml:"ActivityType"`
	Note                string  `xml:"Note"`
	CategoryCode        string  `xml:"CategoryCode"`
	ActionCodes         string  `xml:"ActionCodes"`
	FollowUp            string  `xml:"FollowUp"`
	Amount              string  `xml:"Amount"`
	CampaignCode        string  `xml:"CampaignCode"`
	Delete              bool    `xml:"Delete"`
	Description         string  `xml:"Description"`
	EffectiveDate       string  `xml:"EffectiveDate"`
	FinancialEntityCode string  `xml:"FinancialEntityCode"`
	GracePeriod         int     `xml:"GracePeriod"`
	InstituteContactID  string  `xml:"InstituteContactId"`
	IsRecurringRequest  bool    `xml:"IsRecurringRequest"`
	NextInstallDate     string  `xml:"NextInstallDate"`
	OtherCode           string  `xml:"OtherCode"`
	OtherContactID      string  `xml:"OtherContactId"`
	ProductCode         string  `xml:"ProductCode"`
	SolicitorContactID  string  `xml:"SolicitorContactId"`
	SourceCode          string  `xml:"SourceCode"`
	SourceSystem        string  `xml:"SourceSystem"`
	StatusCode          string  `xml:"StatusCode"`
	ThruDate            string  `xml:"ThruDate"`
	TicklerDate         string  `xml:"TicklerDate"`
	TransactionDate     string  `xml:"TransactionDate"`
	Units               string  `xml:"Units"`
	UserField1          string  `xml:"UserField1"`
	UserField2          string  `xml:"UserField2"`
	UserField3          string  `xml:"UserField3"`
	UserField4          string  `xml:"UserField4"`
	UserField5          string  `xml:"UserField5"`
	UserField6          string  `xml:"UserField6"`
	UserField7          string  `xml:"UserField7"`
}

// NewActivity returns an Activity with the defaults the service expects.
func NewActivity(contactID, activityType, note string) *Activity {
	return &Activity{
		ContactID:    contactID,
		ActivityType: activityType,
		Note:         note,
		Amount:       "0",
		Units:        "0",
	}
}

// ActivityResult identifies a saved activity.
type ActivityResult struct {
	ContactID   string `xml:"ContactId"`
	SequenceNum int64  `xml:"SequenceNum"`
}

// SSOToken is an encrypted single-sign-on token issued for a member.
type SSOToken struct {
	Token  string `xml:"Token"`
	Expiry string `xml:"Expiry"`
}

// Wire-level key/value pair shapes.

type keyValueString struct {
	Key   string `xml:"key"`
	Value string `xml:"value"`
}

// Request payloads. The WCF service binds all operations under the tempuri
// namespace; child elements inherit it.

type authenticateRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ Authenticate"`
	UserName string   `xml:"userName"`
	Password string   `xml:"password"`
}

type authenticateResponse struct {
	XMLName xml.Name           `xml:"AuthenticateResponse"`
	Result  AuthenticateResult `xml:"AuthenticateResult"`
}

type getMemberProfileRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ GetMemberProfile"`
	ID      string   `xml:"ID"`
}

type getMemberProfileResponse struct {
	XMLName xml.Name       `xml:"GetMemberProfileResponse"`
	Result  *MemberProfile `xml:"GetMemberProfileResult"`
}

type getMemberProfileByUsernameRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ GetMemberProfileByUsername"`
	UserName string   `xml:"userName"`
}

type getMemberProfileByUsernameResponse struct {
	XMLName xml.Name       `xml:"GetMemberProfileByUsernameResponse"`
	Result  *MemberProfile `xml:"GetMemberProfileByUsernameResult"`
}

type updateMemberProfileRequest struct {
	XMLName xml.Name       `xml:"http://tempuri.org/ UpdateMemberProfile"`
	Profile *MemberProfile `xml:"memberProfile"`
}

type updateMemberProfileResponse struct {
	XMLName xml.Name       `xml:"UpdateMemberProfileResponse"`
	Result  *MemberProfile `xml:"UpdateMemberProfileResult"`
}

type newMemberProfileRequest struct {
	XMLName xml.Name       `xml:"http://tempuri.org/ NewMemberProfile"`
	Profile *MemberProfile `xml:"memberProfile"`
}

type newMemberProfileResponse struct {
	XMLName xml.Name       `xml:"NewMemberProfileResponse"`
	Result  *MemberProfile `xml:"NewMemberProfileResult"`
}

type searchFilter struct {
	ParameterName string `xml:"parameterNameField"`
	Value         string `xml:"valueField"`
}

type searchFilters struct {
	Filter []searchFilter `xml:"filter"`
}

type searchSpec struct {
	Definition string        `xml:"definitionField"`
	Filters    searchFilters `xml:"filterField"`
}

type searchRequest struct {
	XMLName xml.Name   `xml:"http://tempuri.org/ Search"`
	Request searchSpec `xml:"searchRequest"`
}

type searchResponse struct {
	XMLName xml.Name `xml:"SearchResponse"`
	Result  struct {
		Results struct {
			Rows []struct {
				Data struct {
					Pairs []keyValueString `xml:"KeyValuePairOfstringanyType"`
				} `xml:"Data"`
			} `xml:"GenericDataRow"`
		} `xml:"Results"`
	} `xml:"SearchResult"`
}

type getLookupRequest struct {
	XMLName   xml.Name `xml:"http://tempuri.org/ GetLookup"`
	TableName string   `xml:"tableName"`
}

type getLookupResponse struct {
	XMLName xml.Name `xml:"GetLookupResponse"`
	Result  struct {
		Pairs []keyValueString `xml:"KeyValuePairOfstringstring"`
	} `xml:"GetLookupResult"`
}

type getUsernameFromIMISIDRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ GetUsernameFromiMISID"`
	IMISID  string   `xml:"iMISID"`
}

type getUsernameFromIMISIDResponse struct {
	XMLName xml.Name `xml:"GetUsernameFromiMISIDResponse"`
	Result  string   `xml:"GetUsernameFromiMISIDResult"`
}

type getDemographicSchemaRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ GetDemographicSchema"`
}

type schemaField struct {
	DataType        string `xml:"DataType"`
	FieldLength     string `xml:"FieldLength"`
	ValidationTable string `xml:"ValidationTable"`
}

type schemaFieldEntry struct {
	Key   string      `xml:"Key"`
	Value schemaField `xml:"Value"`
}

type schemaTable struct {
	Name   string `xml:"Name"`
	Fields struct {
		Entries []schemaFieldEntry `xml:"KeyValueOfstringFieldSchemarxDJnjdP"`
	} `xml:"Fields"`
}

type schemaTableEntry struct {
	Key   string      `xml:"Key"`
	Value schemaTable `xml:"Value"`
}

type getDemographicSchemaResponse struct {
	XMLName xml.Name `xml:"GetDemographicSchemaResponse"`
	Result  struct {
		Tables struct {
			Entries []schemaTableEntry `xml:"KeyValueOfstringTableSchemarxDJnjdP"`
		} `xml:"Tables"`
	} `xml:"GetDemographicSchemaResult"`
}

type dupCheckRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ DupCheck"`
	UserName string   `xml:"userName"`
}

type dupCheckResponse struct {
	XMLName xml.Name `xml:"DupCheckResponse"`
	Result  bool     `xml:"DupCheckResult"`
}

type changeUsernameRequest struct {
	XMLName         xml.Name `xml:"http://tempuri.org/ ChangeUsername"`
	NewUsername     string   `xml:"newUsername"`
	CurrentPassword string   `xml:"currentPassword"`
	IMISID          string   `xml:"iMISID"`
}

type changePasswordRequest struct {
	XMLName         xml.Name `xml:"http://tempuri.org/ ChangePassword"`
	CurrentPassword string   `xml:"currentPassword"`
	NewPassword     string   `xml:"newPassword"`
	ID              string   `xml:"ID"`
}

type resetPasswordRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ ResetPassword"`
	Password string   `xml:"password"`
	UserID   string   `xml:"userID"`
}

type addCredentialsRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ AddCredentials"`
	Username string   `xml:"username"`
	Password string   `xml:"password"`
	ID       string   `xml:"ID"`
}

type getJoinFeeBreakdownRequest struct {
	XMLName        xml.Name `xml:"http://tempuri.org/ GetJoinFeeBreakdown"`
	MemberTypeCode string   `xml:"memberTypeCode"`
	CategoryCode   string   `xml:"categoryCode"`
	ID             string   `xml:"ID"`
	ProductCodes   string   `xml:"productCodes"`
	AsOf           string   `xml:"asOf"`
}

type getJoinFeeBreakdownResponse struct {
	XMLName xml.Name          `xml:"GetJoinFeeBreakdownResponse"`
	Result  *JoinFeeBreakdown `xml:"GetJoinFeeBreakdownResult"`
}

type billJoinFeesAsOfRequest struct {
	XMLName        xml.Name `xml:"http://tempuri.org/ BillJoinFeesAsOf"`
	MemberTypeCode string   `xml:"memberTypeCode"`
	CategoryCode   string   `xml:"categoryCode"`
	ID             string   `xml:"ID"`
	ProductCodes   string   `xml:"productCodes"`
	AsOf           string   `xml:"asOf"`
}

type billJoinFeesAsOfResponse struct {
	XMLName xml.Name       `xml:"BillJoinFeesAsOfResponse"`
	Result  *MemberProfile `xml:"BillJoinFeesAsOfResult"`
}

type determineEFTScheduleForDuesRequest struct {
	XMLName          xml.Name `xml:"http://tempuri.org/ DetermineEFTScheduleForDues"`
	IMISID           string   `xml:"iMISID"`
	Freq             string   `xml:"freq"`
	TotalDuesPayable float64  `xml:"totalDuesPayable"`
}

type determineEFTScheduleForDuesResponse struct {
	XMLName xml.Name     `xml:"DetermineEFTScheduleForDuesResponse"`
	Result  *EFTSchedule `xml:"DetermineEFTScheduleForDuesResult"`
}

type determineEFTScheduleForDuesForPeriodRequest struct {
	XMLName          xml.Name `xml:"http://tempuri.org/ DetermineEFTScheduleForDuesForPeriod"`
	Freq             string   `xml:"freq"`
	TotalDuesPayable float64  `xml:"totalDuesPayable"`
	BilledFrom       string   `xml:"billedFrom"`
	BilledTo         string   `xml:"billedTo"`
}

type determineEFTScheduleForDuesForPeriodResponse struct {
	XMLName xml.Name     `xml:"DetermineEFTScheduleForDuesForPeriodResponse"`
	Result  *EFTSchedule `xml:"DetermineEFTScheduleForDuesForPeriodResult"`
}

type setupDuesEFTFromGatewayRequest struct {
	XMLName              xml.Name        `xml:"http://tempuri.org/ SetupDuesEFTFromGateway"`
	ID                   string          `xml:"ID"`
	Gateway              *PaymentGateway `xml:"gateway"`
	Freq                 string          `xml:"freq"`
	FirstInstalmentDate  string          `xml:"firstInstalmentDate"`
	FinalInstalmentDate  string          `xml:"finalInstalmentDate"`
	TieToMerchantAccount string          `xml:"tieToMerchantAccount"`
}

type payJoinDuesRequest struct {
	XMLName        xml.Name        `xml:"http://tempuri.org/ PayJoinDues"`
	MemberTypeCode string          `xml:"memberTypeCode"`
	CategoryCode   string          `xml:"categoryCode"`
	ID             string          `xml:"ID"`
	PayableDues    *DuesLines      `xml:"payableDues"`
	Gateway        *PaymentGateway `xml:"gateway"`
}

type payJoinDuesResponse struct {
	XMLName xml.Name       `xml:"PayJoinDuesResponse"`
	Result  *PaymentResult `xml:"PayJoinDuesResult"`
}

type payDuesRequest struct {
	XMLName     xml.Name        `xml:"http://tempuri.org/ PayDues"`
	ID          string          `xml:"ID"`
	PayableDues *DuesLines      `xml:"payableDues"`
	Gateway     *PaymentGateway `xml:"gateway"`
}

type payDuesResponse struct {
	XMLName xml.Name       `xml:"PayDuesResponse"`
	Result  *PaymentResult `xml:"PayDuesResult"`
}

type saveActivityRequest struct {
	XMLName  xml.Name  `xml:"http://tempuri.org/ SaveActivity"`
	Activity *Activity `xml:"activity"`
}

type saveActivityResponse struct {
	XMLName xml.Name        `xml:"SaveActivityResponse"`
	Result  *ActivityResult `xml:"SaveActivityResult"`
}

type iqaParameter struct {
	Key   int    `xml:"Key"`
	Value string `xml:"Value"`
}

type iqaQueryRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ IQAQueryWithParameters"`
	Request struct {
		QueryLocation string         `xml:"QueryLocation"`
		Parameters    []iqaParameter `xml:"Parameters>Parameter"`
	} `xml:"iqaQueryRequest"`
}

type iqaQueryResponse struct {
	XMLName xml.Name `xml:"IQAQueryWithParametersResponse"`
	Result  struct {
		Header struct {
			Columns struct {
				ResultHeaderColumn []struct {
					Name     string `xml:"Name"`
					DataType string `xml:"DataType"`
				} `xml:"ResultHeaderColumn"`
			} `xml:"Columns"`
		} `xml:"Header"`
		Rows struct {
			ResultRow []struct {
				Columns struct {
					ResultDataColumn []struct {
						Value string `xml:"Value"`
					} `xml:"ResultDataColumn"`
				} `xml:"Columns"`
			} `xml:"ResultRow"`
		} `xml:"Rows"`
	} `xml:"IQAQueryWithParametersResult"`
}

type getTokenRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ GetToken"`
	IMISID  string   `xml:"iMISID"`
}

type getTokenResponse struct {
	XMLName xml.Name  `xml:"GetTokenResponse"`
	Result  *SSOToken `xml:"GetTokenResult"`
}

type validateTokenRequest struct {
	XMLName  xml.Name `xml:"http://tempuri.org/ ValidateToken"`
	SSOToken string   `xml:"ssoToken"`
}

type validateTokenResponse struct {
	XMLName xml.Name `xml:"ValidateTokenResponse"`
	Result  string   `xml:"ValidateTokenResult"`
}

// Membership web service (ASMX) payloads.

type getUserNameRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ GetUserName"`
}

type getUserNameResponse struct {
	XMLName xml.Name `xml:"GetUserNameResponse"`
	Result  string   `xml:"GetUserNameResult"`
}

type logoutRequest struct {
	XMLName xml.Name `xml:"http://tempuri.org/ Logout"`
}
