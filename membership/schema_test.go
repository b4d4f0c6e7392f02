package membership

import (
	"testing"

	"github.com/amadigital/compass/libs/compass"
	"github.com/amadigital/compass/libs/compass/compassmock"
	"github.com/amadigital/compass/libs/test"
	"github.com/amadigital/compass/libs/testhelpers/mock"
)

func TestUDFieldsSchema(t *testing.T) {
	m := compassmock.New(t)
	defer mock.FinishAll(m)
	svc := New(m, nil, nil)

	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{
		"GraduationDate": {TableName: "UD_DEMO", DataType: "Date", FieldLength: "8"},
	}, nil))

	schema, err := svc.UDFieldsSchema(false)
	test.OK(t, err)
	test.Equals(t, map[string]*UDFieldInfo{
		"GraduationDate": {TableName: "UD_DEMO", Type: "Date 8"},
	}, schema)
}

func TestUDFieldsSchemaWithValidationTables(t *testing.T) {
	m := compassmock.New(t)
	defer mock.FinishAll(m)
	svc := New(m, nil, nil)

	m.Expect(mock.NewExpectation(m.GetDemographicSchema).WithReturns(map[string]*compass.UDFieldSchema{
		"CraftGroup": {TableName: "UD_DEMO", DataType: "Char", FieldLength: "30", ValidationTable: "CRAFT_GROUP"},
	}, nil))
	m.Expect(mock.NewExpectation(m.GetLookup, "CRAFT_GROUP").WithReturns(map[string]string{
		"GP": "General Practitioner",
	}, nil))

	schema, err := svc.UDFieldsSchema(true)
	test.OK(t, err)
	test.Equals(t, &UDFieldInfo{
		TableName:       "UD_DEMO",
		Type:            "Char 30",
		Validation:      "CRAFT_GROUP",
		ValidationTable: map[string]string{"GP": "General Practitioner"},
	}, schema["CraftGroup"])
}
