package money

import (
	"fmt"
	"sort"
	"strings"
)

// Currency is a validated ISO 4217 currency code.
// Construct one with ParseCurrency; a zero value is not a valid currency.
type Currency string

// Commonly referenced currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
)

// Info holds display metadata for one currency.
type Info struct {
	Code    Currency
	Name    string
	Symbol  string
	Region  string
	// MinorUnits is the number of decimal places used for display
	// (0 for JPY, 2 for most, 3 for a few Gulf currencies).
	MinorUnits int32
	Popular    bool
}

// ErrUnknownCurrency is returned by ParseCurrency for codes outside the
// supported set. Unknown codes are rejected at the boundary rather than
// defaulted.
type ErrUnknownCurrency struct {
	Code string
}

func (e *ErrUnknownCurrency) Error() string {
	return fmt.Sprintf("unknown currency code: %q", e.Code)
}

// ParseCurrency validates a currency code against the supported set.
// The code is case-insensitive.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := currencyInfo[c]; !ok {
		return "", &ErrUnknownCurrency{Code: code}
	}
	return c, nil
}

// Lookup returns the metadata for a currency code.
func Lookup(c Currency) (Info, bool) {
	info, ok := currencyInfo[c]
	return info, ok
}

// MinorUnits returns the display decimal places for a currency,
// defaulting to 2 when the currency is unknown.
func (c Currency) MinorUnits() int32 {
	if info, ok := currencyInfo[c]; ok {
		return info.MinorUnits
	}
	return 2
}

func (c Currency) String() string { return string(c) }

// Currencies returns all supported currencies sorted by code.
func Currencies() []Info {
	infos := make([]Info, 0, len(currencyInfo))
	for _, info := range currencyInfo {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Popular returns the currencies flagged as popular, sorted by code.
func Popular() []Info {
	var infos []Info
	for _, info := range currencyInfo {
		if info.Popular {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Search returns currencies whose code or name contains the query
// (case-insensitive), sorted by code. An empty query returns everything.
func Search(query string) []Info {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Currencies()
	}
	var infos []Info
	for _, info := range currencyInfo {
		if strings.Contains(strings.ToLower(string(info.Code)), q) ||
			strings.Contains(strings.ToLower(info.Name), q) {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// currencyInfo is the fixed reference table of supported currencies.
var currencyInfo = map[Currency]Info{
	"AED": {Code: "AED", Name: "UAE Dirham", Symbol: "د.إ", Region: "United Arab Emirates", MinorUnits: 2},
	"ARS": {Code: "ARS", Name: "Argentine Peso", Symbol: "$", Region: "Argentina", MinorUnits: 2},
	"AUD": {Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Region: "Australia", MinorUnits: 2, Popular: true},
	"BDT": {Code: "BDT", Name: "Bangladeshi Taka", Symbol: "৳", Region: "Bangladesh", MinorUnits: 2},
	"BGN": {Code: "BGN", Name: "Bulgarian Lev", Symbol: "лв", Region: "Bulgaria", MinorUnits: 2},
	"BHD": {Code: "BHD", Name: "Bahraini Dinar", Symbol: ".د.ب", Region: "Bahrain", MinorUnits: 3},
	"BND": {Code: "BND", Name: "Brunei Dollar", Symbol: "B$", Region: "Brunei", MinorUnits: 2},
	"BOB": {Code: "BOB", Name: "Bolivian Boliviano", Symbol: "Bs.", Region: "Bolivia", MinorUnits: 2},
	"BRL": {Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Region: "Brazil", MinorUnits: 2},
	"CAD": {Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Region: "Canada", MinorUnits: 2, Popular: true},
	"CHF": {Code: "CHF", Name: "Swiss Franc", Symbol: "Fr", Region: "Switzerland", MinorUnits: 2, Popular: true},
	"CLP": {Code: "CLP", Name: "Chilean Peso", Symbol: "$", Region: "Chile", MinorUnits: 0},
	"CNY": {Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Region: "China", MinorUnits: 2, Popular: true},
	"COP": {Code: "COP", Name: "Colombian Peso", Symbol: "$", Region: "Colombia", MinorUnits: 2},
	"CRC": {Code: "CRC", Name: "Costa Rican Colón", Symbol: "₡", Region: "Costa Rica", MinorUnits: 2},
	"CZK": {Code: "CZK", Name: "Czech Koruna", Symbol: "Kč", Region: "Czechia", MinorUnits: 2},
	"DKK": {Code: "DKK", Name: "Danish Krone", Symbol: "kr", Region: "Denmark", MinorUnits: 2},
	"DOP": {Code: "DOP", Name: "Dominican Peso", Symbol: "RD$", Region: "Dominican Republic", MinorUnits: 2},
	"DZD": {Code: "DZD", Name: "Algerian Dinar", Symbol: "د.ج", Region: "Algeria", MinorUnits: 2},
	"EGP": {Code: "EGP", Name: "Egyptian Pound", Symbol: "E£", Region: "Egypt", MinorUnits: 2},
	"EUR": {Code: "EUR", Name: "Euro", Symbol: "€", Region: "Eurozone", MinorUnits: 2, Popular: true},
	"FJD": {Code: "FJD", Name: "Fijian Dollar", Symbol: "FJ$", Region: "Fiji", MinorUnits: 2},
	"GBP": {Code: "GBP", Name: "Pound Sterling", Symbol: "£", Region: "United Kingdom", MinorUnits: 2, Popular: true},
	"GEL": {Code: "GEL", Name: "Georgian Lari", Symbol: "₾", Region: "Georgia", MinorUnits: 2},
	"GHS": {Code: "GHS", Name: "Ghanaian Cedi", Symbol: "₵", Region: "Ghana", MinorUnits: 2},
	"GTQ": {Code: "GTQ", Name: "Guatemalan Quetzal", Symbol: "Q", Region: "Guatemala", MinorUnits: 2},
	"HKD": {Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$", Region: "Hong Kong", MinorUnits: 2, Popular: true},
	"HNL": {Code: "HNL", Name: "Honduran Lempira", Symbol: "L", Region: "Honduras", MinorUnits: 2},
	"HRK": {Code: "HRK", Name: "Croatian Kuna", Symbol: "kn", Region: "Croatia", MinorUnits: 2},
	"HUF": {Code: "HUF", Name: "Hungarian Forint", Symbol: "Ft", Region: "Hungary", MinorUnits: 2},
	"IDR": {Code: "IDR", Name: "Indonesian Rupiah", Symbol: "Rp", Region: "Indonesia", MinorUnits: 2},
	"ILS": {Code: "ILS", Name: "Israeli New Shekel", Symbol: "₪", Region: "Israel", MinorUnits: 2},
	"INR": {Code: "INR", Name: "Indian Rupee", Symbol: "₹", Region: "India", MinorUnits: 2, Popular: true},
	"ISK": {Code: "ISK", Name: "Icelandic Króna", Symbol: "kr", Region: "Iceland", MinorUnits: 0},
	"JMD": {Code: "JMD", Name: "Jamaican Dollar", Symbol: "J$", Region: "Jamaica", MinorUnits: 2},
	"JOD": {Code: "JOD", Name: "Jordanian Dinar", Symbol: "د.ا", Region: "Jordan", MinorUnits: 3},
	"JPY": {Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Region: "Japan", MinorUnits: 0, Popular: true},
	"KES": {Code: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Region: "Kenya", MinorUnits: 2},
	"KHR": {Code: "KHR", Name: "Cambodian Riel", Symbol: "៛", Region: "Cambodia", MinorUnits: 2},
	"KRW": {Code: "KRW", Name: "South Korean Won", Symbol: "₩", Region: "South Korea", MinorUnits: 0, Popular: true},
	"KWD": {Code: "KWD", Name: "Kuwaiti Dinar", Symbol: "د.ك", Region: "Kuwait", MinorUnits: 3},
	"KZT": {Code: "KZT", Name: "Kazakhstani Tenge", Symbol: "₸", Region: "Kazakhstan", MinorUnits: 2},
	"LAK": {Code: "LAK", Name: "Lao Kip", Symbol: "₭", Region: "Laos", MinorUnits: 2},
	"LKR": {Code: "LKR", Name: "Sri Lankan Rupee", Symbol: "Rs", Region: "Sri Lanka", MinorUnits: 2},
	"MAD": {Code: "MAD", Name: "Moroccan Dirham", Symbol: "د.م.", Region: "Morocco", MinorUnits: 2},
	"MMK": {Code: "MMK", Name: "Myanmar Kyat", Symbol: "K", Region: "Myanmar", MinorUnits: 2},
	"MNT": {Code: "MNT", Name: "Mongolian Tögrög", Symbol: "₮", Region: "Mongolia", MinorUnits: 2},
	"MOP": {Code: "MOP", Name: "Macanese Pataca", Symbol: "MOP$", Region: "Macau", MinorUnits: 2},
	"MUR": {Code: "MUR", Name: "Mauritian Rupee", Symbol: "₨", Region: "Mauritius", MinorUnits: 2},
	"MVR": {Code: "MVR", Name: "Maldivian Rufiyaa", Symbol: "Rf", Region: "Maldives", MinorUnits: 2},
	"MXN": {Code: "MXN", Name: "Mexican Peso", Symbol: "Mex$", Region: "Mexico", MinorUnits: 2},
	"MYR": {Code: "MYR", Name: "Malaysian Ringgit", Symbol: "RM", Region: "Malaysia", MinorUnits: 2},
	"NGN": {Code: "NGN", Name: "Nigerian Naira", Symbol: "₦", Region: "Nigeria", MinorUnits: 2},
	"NOK": {Code: "NOK", Name: "Norwegian Krone", Symbol: "kr", Region: "Norway", MinorUnits: 2},
	"NPR": {Code: "NPR", Name: "Nepalese Rupee", Symbol: "₨", Region: "Nepal", MinorUnits: 2},
	"NZD": {Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Region: "New Zealand", MinorUnits: 2},
	"OMR": {Code: "OMR", Name: "Omani Rial", Symbol: "ر.ع.", Region: "Oman", MinorUnits: 3},
	"PAB": {Code: "PAB", Name: "Panamanian Balboa", Symbol: "B/.", Region: "Panama", MinorUnits: 2},
	"PEN": {Code: "PEN", Name: "Peruvian Sol", Symbol: "S/", Region: "Peru", MinorUnits: 2},
	"PHP": {Code: "PHP", Name: "Philippine Peso", Symbol: "₱", Region: "Philippines", MinorUnits: 2},
	"PKR": {Code: "PKR", Name: "Pakistani Rupee", Symbol: "₨", Region: "Pakistan", MinorUnits: 2},
	"PLN": {Code: "PLN", Name: "Polish Złoty", Symbol: "zł", Region: "Poland", MinorUnits: 2},
	"PYG": {Code: "PYG", Name: "Paraguayan Guaraní", Symbol: "₲", Region: "Paraguay", MinorUnits: 0},
	"QAR": {Code: "QAR", Name: "Qatari Riyal", Symbol: "ر.ق", Region: "Qatar", MinorUnits: 2},
	"RON": {Code: "RON", Name: "Romanian Leu", Symbol: "lei", Region: "Romania", MinorUnits: 2},
	"RSD": {Code: "RSD", Name: "Serbian Dinar", Symbol: "дин.", Region: "Serbia", MinorUnits: 2},
	"RUB": {Code: "RUB", Name: "Russian Ruble", Symbol: "₽", Region: "Russia", MinorUnits: 2},
	"SAR": {Code: "SAR", Name: "Saudi Riyal", Symbol: "ر.س", Region: "Saudi Arabia", MinorUnits: 2},
	"SEK": {Code: "SEK", Name: "Swedish Krona", Symbol: "kr", Region: "Sweden", MinorUnits: 2},
	"SGD": {Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Region: "Singapore", MinorUnits: 2, Popular: true},
	"THB": {Code: "THB", Name: "Thai Baht", Symbol: "฿", Region: "Thailand", MinorUnits: 2, Popular: true},
	"TND": {Code: "TND", Name: "Tunisian Dinar", Symbol: "د.ت", Region: "Tunisia", MinorUnits: 3},
	"TRY": {Code: "TRY", Name: "Turkish Lira", Symbol: "₺", Region: "Türkiye", MinorUnits: 2},
	"TWD": {Code: "TWD", Name: "New Taiwan Dollar", Symbol: "NT$", Region: "Taiwan", MinorUnits: 2, Popular: true},
	"TZS": {Code: "TZS", Name: "Tanzanian Shilling", Symbol: "TSh", Region: "Tanzania", MinorUnits: 2},
	"UAH": {Code: "UAH", Name: "Ukrainian Hryvnia", Symbol: "₴", Region: "Ukraine", MinorUnits: 2},
	"USD": {Code: "USD", Name: "US Dollar", Symbol: "$", Region: "United States", MinorUnits: 2, Popular: true},
	"UYU": {Code: "UYU", Name: "Uruguayan Peso", Symbol: "$U", Region: "Uruguay", MinorUnits: 2},
	"VND": {Code: "VND", Name: "Vietnamese Đồng", Symbol: "₫", Region: "Vietnam", MinorUnits: 0, Popular: true},
	"ZAR": {Code: "ZAR", Name: "South African Rand", Symbol: "R", Region: "South Africa", MinorUnits: 2},
}
