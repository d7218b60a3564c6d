package numplan

// Class groups numbering-plan codes by service type.
type Class string

const (
	ClassGeographic     Class = "geographic"
	ClassMobile         Class = "mobile"
	ClassVoIP           Class = "voip"
	ClassTollFree       Class = "toll_free"
	ClassRepresentative Class = "representative"
)

// Code is one numbering-plan entry. MinDigits and MaxDigits bound the total
// digit count of a number, code digits included.
type Code struct {
	Prefix    string `json:"prefix"`
	Region    string `json:"region"`
	Class     Class  `json:"class"`
	MinDigits int    `json:"min_digits"`
	MaxDigits int    `json:"max_digits"`
}

// DefaultCodes is the South Korean numbering plan used by Default.
var DefaultCodes = []Code{
	{Prefix: "02", Region: "서울", Class: ClassGeographic, MinDigits: 9, MaxDigits: 10},

	{Prefix: "031", Region: "경기", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "032", Region: "인천", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "033", Region: "강원", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "041", Region: "충남", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "042", Region: "대전", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "043", Region: "충북", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "044", Region: "세종", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "051", Region: "부산", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "052", Region: "울산", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "053", Region: "대구", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "054", Region: "경북", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "055", Region: "경남", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "061", Region: "전남", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "062", Region: "광주", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "063", Region: "전북", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},
	{Prefix: "064", Region: "제주", Class: ClassGeographic, MinDigits: 10, MaxDigits: 11},

	{Prefix: "010", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "011", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "016", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "017", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "018", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "019", Region: "이동전화", Class: ClassMobile, MinDigits: 11, MaxDigits: 11},
	{Prefix: "070", Region: "인터넷전화", Class: ClassVoIP, MinDigits: 11, MaxDigits: 11},

	{Prefix: "080", Region: "수신자부담", Class: ClassTollFree, MinDigits: 10, MaxDigits: 10},

	// Nationwide representative numbers (대표번호) carry no area code.
	{Prefix: "1522", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1533", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1544", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1566", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1577", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1588", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1599", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1600", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1644", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1661", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1666", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1668", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1670", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1688", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1800", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1811", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1833", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1855", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1877", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
	{Prefix: "1899", Region: "대표번호", Class: ClassRepresentative, MinDigits: 8, MaxDigits: 8},
}
