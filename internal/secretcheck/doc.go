// Package secretcheck holds static checks, run as tests, that keep private key material out of formatted output
// anywhere in the module.
//
// It has no non-test code and is not meant to be imported.
package secretcheck
