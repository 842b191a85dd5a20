package pricing

import (
	"fmt"
	"regexp"
	"strings"
)

// gstinPattern: 2-digit state code, 10-character PAN, entity number, the
// literal 'Z', and a check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// gstStateCodes are the recognized GST state/UT code prefixes.
var gstStateCodes = map[string]string{
	"01": "Jammu and Kashmir", "02": "Himachal Pradesh", "03": "Punjab",
	"04": "Chandigarh", "05": "Uttarakhand", "06": "Haryana", "07": "Delhi",
	"08": "Rajasthan", "09": "Uttar Pradesh", "10": "Bihar", "11": "Sikkim",
	"12": "Arunachal Pradesh", "13": "Nagaland", "14": "Manipur",
	"15": "Mizoram", "16": "Tripura", "17": "Meghalaya", "18": "Assam",
	"19": "West Bengal", "20": "Jharkhand", "21": "Odisha",
	"22": "Chhattisgarh", "23": "Madhya Pradesh", "24": "Gujarat",
	"26": "Dadra and Nagar Haveli and Daman and Diu", "27": "Maharashtra",
	"28": "Andhra Pradesh", "29": "Karnataka", "30": "Goa",
	"31": "Lakshadweep", "32": "Kerala", "33": "Tamil Nadu",
	"34": "Puducherry", "35": "Andaman and Nicobar Islands",
	"36": "Telangana", "37": "Andhra Pradesh (new)", "38": "Ladakh",
}

// ValidateGSTIN checks the 15-character GSTIN format and the state-code
// prefix. It fails closed: malformed input is rejected with a reason, never
// silently accepted.
func ValidateGSTIN(gstin string) error {
	cleaned := strings.ToUpper(strings.TrimSpace(gstin))
	if cleaned == "" {
		return fmt.Errorf("gstin is required")
	}
	if len(cleaned) != 15 {
		return fmt.Errorf("gstin must be 15 characters, got %d", len(cleaned))
	}
	if !gstinPattern.MatchString(cleaned) {
		return fmt.Errorf("gstin %q does not match the required format", cleaned)
	}
	if _, ok := gstStateCodes[cleaned[:2]]; !ok {
		return fmt.Errorf("gstin state code %q is not recognized", cleaned[:2])
	}
	return nil
}

// GSTStateName returns the state name for a valid GSTIN, for display.
func GSTStateName(gstin string) (string, error) {
	if err := ValidateGSTIN(gstin); err != nil {
		return "", err
	}
	cleaned := strings.ToUpper(strings.TrimSpace(gstin))
	return gstStateCodes[cleaned[:2]], nil
}
