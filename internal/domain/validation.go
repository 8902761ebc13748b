package domain

import "regexp"

var (
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

func IsValidPAN(s string) bool   { return panPattern.MatchString(s) }
func IsValidIFSC(s string) bool  { return ifscPattern.MatchString(s) }
func IsValidPhone(s string) bool { return phonePattern.MatchString(s) }

func ValidateBankDetails(d BankDetails) error {
	switch {
	case d.AccountHolderName == "" || d.AccountNumber == "" || d.BankName == "":
		return NewValidationError("bank details are incomplete")
	case !IsValidIFSC(d.IFSCCode):
		return NewValidationError("invalid IFSC code")
	}
	return nil
}
