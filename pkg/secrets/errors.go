package secrets

import "errors"

var (
	ErrMasterKeyTooShort   = errors.New("secrets.master_key_too_short")
	ErrEmptyPurpose        = errors.New("secrets.empty_purpose")
	ErrKeyDerivationFailed = errors.New("secrets.key_derivation_failed")
)
