package domain

type BankDetails struct {
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	BankName          string `json:"bank_name"`
}

// BankDetailsCipher seals bank details into a self-describing envelope.
type BankDetailsCipher interface {
	Encrypt(details BankDetails) (string, error)
	Decrypt(envelope string) (BankDetails, error)
}
