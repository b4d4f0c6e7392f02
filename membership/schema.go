package membership

// UDFieldInfo describes one user-defined demographic field, optionally with
// the contents of its validation lookup table.
type UDFieldInfo struct {
	TableName       string
	Type            string
	Validation      string
	ValidationTable map[string]string
}

// UDFieldsSchema returns the demographic field schema keyed by field name.
// Fetching validation tables costs one extra lookup call per validated
// field, so it is opt-in.
func (s *Service) UDFieldsSchema(withValidationTables bool) (map[string]*UDFieldInfo, error) {
	schema, err := s.api.GetDemographicSchema()
	if err != nil {
		return nil, err
	}
	retVal := make(map[string]*UDFieldInfo, len(schema))
	for name, field := range schema {
		info := &UDFieldInfo{
			TableName: field.TableName,
			Type:      field.DataType + " " + field.FieldLength,
		}
		if withValidationTables && field.ValidationTable != "" {
			table, err := s.api.GetLookup(field.ValidationTable)
			if err != nil {
				return nil, err
			}
			info.Validation = field.ValidationTable
			info.ValidationTable = table
		}
		retVal[name] = info
	}
	return retVal, nil
}

// Lookup returns the contents of a reference lookup table, such as
// CASH_ACCOUNT, CHAPTER, MEMBER_TYPE, CATEGORY or PREFIX.
func (s *Service) Lookup(tableName string) (map[string]string, error) {
	return s.api.GetLookup(tableName)
}
