package xerrors

// Unwrap splits a joined error into its parts. A plain error is returned as a
// single element slice and nil yields nil.
func Unwrap(err error) []error {
	if err == nil {
		return nil
	}
	u, ok := err.(interface {
		Unwrap() []error
	})
	if !ok {
		return []error{err}
	}
	return u.Unwrap()
}
