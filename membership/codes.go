package membership

// Classification tables for iMIS member type and category codes. These
// mirror the CRM's reference data; changes there must be reflected here.

// memberTypeCodes are the full member types for each state branch.
var memberTypeCodes = map[string]bool{
	"M-ACT": true,
	"M-NSW": true,
	"M-TAS": true,
	"M-QLD": true,
	"M-NT":  true,
	"M-SA":  true,
	"M-VIC": true,
	"M-WA":  true,
}

// studentTypeCodes are the student member types for each state branch.
var studentTypeCodes = map[string]bool{
	"S-ACT": true,
	"S-NSW": true,
	"S-TAS": true,
	"S-QLD": true,
	"S-NT":  true,
	"S-SA":  true,
	"S-VIC": true,
	"S-WA":  true,
}

// amsaTypeCodes are the member types served by the AMSA website.
var amsaTypeCodes = map[string]bool{
	"AMSA": true,
}

// amaqNonMemberTypeCodes are AMA Queensland community (non-member) types.
var amaqNonMemberTypeCodes = map[string]bool{
	"D-QLD": true,
	"C-QLD": true,
	"Q-PMA": true,
}

// staffTypeCodes are internal staff accounts.
var staffTypeCodes = map[string]bool{
	"STAFF": true,
}

// joinMemberTypes maps the member type codes open to online joins to their
// state branch.
var joinMemberTypes = map[string]string{
	"M-ACT": "ACT",
	"M-QLD": "QLD",
	"M-NT":  "NT",
	"M-TAS": "TAS",
	"M-SA":  "SA",
	"M-NSW": "NSW",
	"M-VIC": "VIC",
	"M-WA":  "WA",
}

// amsaJoinMemberTypes maps the AMSA member type codes open to online joins
// to their branch.
var amsaJoinMemberTypes = map[string]string{
	"AMSA": "AMSA",
}

// cashAccountCodes maps a state branch to the merchant cash account that
// recurring EFT deductions are tied to. Branches without an entry settle
// through the default account.
var cashAccountCodes = map[string]string{
	"ACT": "ACT CC",
	"NT":  "NT CC",
	"QLD": "Queensland CC",
	"TAS": "TAS CC",
	"SA":  "South Australia CC",
	"NSW": "New South Wales CC",
}

// categoryTypeCodes maps dues category codes to their descriptions, used
// when quoting join fees.
var categoryTypeCodes = map[string]string{
	"FPS1": "Full time specialist",
	"FPP1": "Full time general practitioner",
	"F1Y1": "First year after graduation (intern)",
	"F2Y1": "Second year after graduation",
	"F3Y1": "Third year after graduation",
	"F4Y1": "Fourth year after graduation",
	"F5Y1": "Fifth year after graduation",
	"F6Y1": "Sixth year or more after graduation",
	"FPH1": "Part-time no more than 2 half days per week",
	"FPT1": "Part-time 11-20 hours per week",
	"FPT2": "Part-time no more than 5 half days per week",
	"FSR1": "Salaried Medical Officer with PP Rights or Specialist Quals",
	"FSS1": "Salaried/Career Medical Officer",
}

// amsaCategoryCodes maps AMSA dues category codes to their descriptions.
var amsaCategoryCodes = map[string]string{
	"AMSAA": "AMSA Annual Membership",
	"AMSAD": "AMSA Degree Membership",
}
