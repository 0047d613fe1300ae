package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrUserExists         = fmt.Errorf("callsign already registered")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("incorrect password")
	ErrNotLoggedIn        = fmt.Errorf("no active session")

	// ADIF import errors
	ErrMalformedInput = fmt.Errorf("input is not ADIF")
	ErrFieldMapping   = fmt.Errorf("record mapping failed")
	ErrImportAborted  = fmt.Errorf("import aborted")

	// Storage errors
	ErrCollectionNotFound = fmt.Errorf("collection not found")
	ErrStorageRead        = fmt.Errorf("storage read failed")
	ErrStorageWrite       = fmt.Errorf("storage write failed")

	// Reference data errors
	ErrEntityNotFound = fmt.Errorf("DXCC entity not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
