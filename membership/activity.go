package membership

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/amadigital/compass/libs/compass"
)

// IQA query locations used by the web flows.
const (
	practiceListQuery       = "$/ContactManagement/DefaultSystem/Queries/Advanced/Contact/WEB/WEB_List_of_Practice"
	findDuplicateQuery      = "$/ContactManagement/DefaultSystem/Queries/Advanced/Contact/WEB/WEB_Find_Duplicate"
	memberByContactKeyQuery = "$/AMAREST/Member_by_contact_key"
	invoiceQuery            = "$/ContactManagement/DefaultSystem/Queries/Advanced/Contact/WEB/WEB_Invoice"
)

// LookupPractice lists practice contact records matching a name, for the
// work address picker.
func (s *Service) LookupPractice(name string) ([]map[string]string, error) {
	return s.api.IQAQueryWithParameters(practiceListQuery, []string{"", name})
}

// FindRecord searches for existing member records matching a name and date
// of birth, to stop duplicate joins.
func (s *Service) FindRecord(firstName, lastName, dob string) ([]map[string]string, error) {
	return s.api.IQAQueryWithParameters(findDuplicateQuery, []string{firstName, lastName, dob})
}

// FindRecordByContactKey resolves a contact key to exactly one member
// record.
func (s *Service) FindRecordByContactKey(contactKey string) (map[string]string, error) {
	rows, err := s.api.IQAQueryWithParameters(memberByContactKeyQuery, []string{contactKey})
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 || len(rows[0]) == 0 {
		return nil, errors.New("membership: no unique record found")
	}
	return rows[0], nil
}

// InvoiceLine is one line of a member invoice, aggregated by transaction
// date. PayMethod and ActivityType are only filled when details were asked
// for.
type InvoiceLine struct {
	TransactionDate string
	Description     string
	ProductCode     string
	Amount          float64
	GST             float64
	PayMethod       string
	ActivityType    string
}

// Invoice is a member's payment history for a period plus the billing
// address to print it with.
type Invoice struct {
	Lines   []*InvoiceLine
	Billing map[string]interface{}
}

// Invoice builds a member invoice for the period. Transactions sharing a
// date are merged into one line with amounts summed, descriptions and
// product codes appended and GST components totalled.
func (s *Service) Invoice(imisID, start, end string, showDetails bool) (*Invoice, error) {
	rows, err := s.api.IQAQueryWithParameters(invoiceQuery, []string{imisID, start, end})
	if err != nil {
		return nil, err
	}

	byDate := map[string]*InvoiceLine{}
	for _, row := range rows {
		date := row["TransactionDate"]
		amount, _ := strconv.ParseFloat(row["Amount"], 64)
		line := byDate[date]
		if line == nil {
			line = &InvoiceLine{
				TransactionDate: date,
				Description:     row["Description"],
				ProductCode:     row["ProductCode"],
				Amount:          amount,
			}
			if showDetails {
				line.PayMethod = row["PayMethod"]
				line.ActivityType = row["ActivityType"]
			}
			byDate[date] = line
		} else {
			line.Amount += amount
			line.Description += ", " + row["Description"]
			line.ProductCode += ", " + row["ProductCode"]
		}
		if strings.Contains(row["Description"], "GST") {
			line.GST += amount
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	invoice := &Invoice{}
	for _, date := range dates {
		invoice.Lines = append(invoice.Lines, byDate[date])
	}

	profileResponse := s.GetMemberProfileByID(imisID)
	profile := profileResponse.Profile
	for _, tabKey := range []string{"AddressTab1", "AddressTab2", "AddressTab3"} {
		tab, ok := profile[tabKey].(map[string]interface{})
		if !ok || !truthy(tab["PreferredBill"]) {
			continue
		}
		billing := map[string]interface{}{}
		for k, v := range tab {
			billing[k] = v
		}
		billing["Name"] = profile["FullName"]
		billing["iMISID"] = profile["iMISID"]
		billing["MajorKey"] = profile["MajorKey"]
		billing["CategoryCode"] = profile["CategoryCode"]
		billing["CategoryDescription"] = profile["CategoryDescription"]
		invoice.Billing = billing
		break
	}
	return invoice, nil
}

// ActivityOpResult is the outcome of recording a contact activity.
type ActivityOpResult struct {
	Status      string
	Message     string
	SequenceNum int64
}

// NewActivity records a contact activity against a member.
func (s *Service) NewActivity(activity *compass.Activity) *ActivityOpResult {
	retVal := &ActivityOpResult{Status: StatusFailed}
	result, err := s.api.SaveActivity(activity)
	if err != nil {
		retVal.Message = err.Error()
		return retVal
	}
	if result == nil || result.ContactID == "" {
		retVal.Message = "Unknown error, response invalid"
		return retVal
	}
	retVal.Status = StatusSuccess
	retVal.SequenceNum = result.SequenceNum
	return retVal
}

// ProfileDiff reports how a submitted profile compares with the processed
// profile the CRM returned for it.
type ProfileDiff struct {
	IsSame    bool
	FieldDiff []string
}

// CompareProfiles checks that every field of a submitted web profile made
// it into the processed profile, comparing case-insensitively with web
// booleans matched loosely.
func CompareProfiles(profile, processedProfile Profile) *ProfileDiff {
	diff := &ProfileDiff{}
	fieldCount := 0
	sameCount := 0
	for key, value := range profile {
		switch key {
		case "Address":
			var addresses []map[string]interface{}
			if err := decodeLoose(value, &addresses); err != nil {
				fieldCount++
				diff.FieldDiff = append(diff.FieldDiff, key)
				continue
			}
			for _, address := range addresses {
				slot := addressTabSlots[stringify(address["Purpose"])]
				tabKey := fmt.Sprintf("AddressTab%d", slot)
				tab, _ := processedProfile[tabKey].(map[string]interface{})
				for addressKey, addressValue := range address {
					if addressKey == "ID" {
						continue
					}
					fieldCount++
					if strings.EqualFold(stringify(tab[addressKey]), stringify(addressValue)) {
						sameCount++
					} else {
						diff.FieldDiff = append(diff.FieldDiff, tabKey+"-"+addressKey)
					}
				}
			}
		case "Account":
			// Credentials never round-trip.
		default:
			fieldCount++
			want := stringify(value)
			switch {
			case strings.EqualFold(want, stringify(processedProfile[key])),
				strings.EqualFold(want, "TRUE") && truthy(processedProfile[key]),
				strings.EqualFold(want, "FALSE") && !truthy(processedProfile[key]):
				sameCount++
			default:
				diff.FieldDiff = append(diff.FieldDiff, key)
			}
		}
	}
	diff.IsSame = sameCount == fieldCount
	return diff
}
