package util

import "regexp"

// Formats carried over from the directory's registration rules: Brazilian
// CNPJ (NN.NNN.NNN/NNNN-NN), phone ((NN) NNNN-NNNN or (NN) NNNNN-NNNN),
// numeric CRM and http(s) URLs.
var (
	cnpjRe  = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	phoneRe = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
	crmRe   = regexp.MustCompile(`^\d+$`)
	urlRe   = regexp.MustCompile(`^https?://.+`)
)

func IsValidCNPJ(s string) bool {
	return cnpjRe.MatchString(s)
}

func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func IsValidCRM(s string) bool {
	return crmRe.MatchString(s)
}

func IsValidURL(s string) bool {
	return urlRe.MatchString(s)
}
